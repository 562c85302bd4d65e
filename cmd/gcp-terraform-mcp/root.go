package main

import (
	"fmt"

	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Kamalesh-Seervi/gap-terraform-mcp-server/internal/analyzer"
	"github.com/Kamalesh-Seervi/gap-terraform-mcp-server/internal/checkov"
	"github.com/Kamalesh-Seervi/gap-terraform-mcp-server/internal/config"
	"github.com/Kamalesh-Seervi/gap-terraform-mcp-server/internal/kb"
	"github.com/Kamalesh-Seervi/gap-terraform-mcp-server/internal/registryapi"
	"github.com/Kamalesh-Seervi/gap-terraform-mcp-server/internal/runner"
	"github.com/Kamalesh-Seervi/gap-terraform-mcp-server/internal/tools"
	"github.com/Kamalesh-Seervi/gap-terraform-mcp-server/internal/workflow"
)

const serverName = "gcp-terraform-mcp"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   serverName,
		Short: "MCP server for Terraform on GCP",
		Long: "Terraform on GCP best practices, infrastructure as code patterns, " +
			"and security compliance with Checkov, served over the MCP stdio protocol.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s %s\n", serverName, version)
			fmt.Printf("  Build time: %s\n", buildTime)
			fmt.Printf("  Git commit: %s\n", gitCommit)
		},
	})

	return root
}

func serve() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := newLogger(cfg.LogLevel)
	logger.WithFields(logrus.Fields{
		"version":   version,
		"terraform": cfg.TerraformPath,
		"checkov":   cfg.CheckovPath,
	}).Info("starting server")

	store, err := kb.Load(logger)
	if err != nil {
		return fmt.Errorf("failed to load knowledge base: %w", err)
	}

	registry := registryapi.NewClient(
		registryapi.WithBaseURL(cfg.RegistryBaseURL),
		registryapi.WithTimeout(cfg.HTTPTimeout),
		registryapi.WithLogger(logger),
	)
	run := runner.New(logger)

	s := server.NewMCPServer(
		serverName,
		version,
		server.WithToolCapabilities(true),
		server.WithInstructions(
			"Terraform on GCP best practices, infrastructure as code patterns, "+
				"and security compliance with Checkov",
		),
	)

	tools.Register(s, tools.Deps{
		Workflow: workflow.New(run, cfg.TerraformPath, logger),
		Checkov:  checkov.New(run, cfg.CheckovPath, logger),
		KB:       store,
		Analyzer: analyzer.NewService(registry, run, cfg.TerraformPath, logger),
		Logger:   logger,
	})

	return server.ServeStdio(s)
}

// newLogger configures logrus to write to stderr: stdout carries the MCP
// stdio protocol and must stay clean.
func newLogger(level string) *logrus.Logger {
	logger := logrus.New()

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	return logger
}
