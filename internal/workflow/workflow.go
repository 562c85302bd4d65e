// Package workflow wraps the terraform CLI lifecycle commands: init,
// validate, plan, apply and destroy, plus the static workflow guide.
package workflow

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Kamalesh-Seervi/gap-terraform-mcp-server/internal/response"
	"github.com/Kamalesh-Seervi/gap-terraform-mcp-server/internal/runner"
)

//go:embed guide.md
var workflowGuide string

// Ops executes terraform workflow operations against a working directory.
type Ops struct {
	runner        runner.Runner
	terraformPath string
	logger        *logrus.Logger
}

// New creates a workflow Ops handler.
func New(run runner.Runner, terraformPath string, logger *logrus.Logger) *Ops {
	return &Ops{runner: run, terraformPath: terraformPath, logger: logger}
}

// Guide returns the security-first workflow guide.
func (o *Ops) Guide() *response.Response {
	o.logger.Info("getting terraform workflow guide")
	return response.Success(workflowGuide, map[string]any{
		"workflow_steps": []string{
			"init", "fmt", "validate", "security_scan", "plan",
			"security_scan_plan", "apply", "document", "destroy",
		},
		"security_checkpoints": []string{
			"before_init", "after_validate", "after_first_scan",
			"after_plan", "after_plan_scan", "after_apply",
		},
	})
}

// Init runs terraform init in workingDir.
func (o *Ops) Init(ctx context.Context, workingDir string) *response.Response {
	o.logger.WithField("path", workingDir).Info("initializing terraform project")

	args := []string{"init"}
	res, err := o.run(ctx, workingDir, args)
	if err != nil {
		return execFailure("An error occurred during Terraform initialization", err)
	}
	if res.ExitCode != 0 {
		o.logger.WithField("path", workingDir).Error("terraform init failed")
		return response.Failure(
			fmt.Sprintf("Error initializing Terraform project: %s", res.Stderr),
			res.Stderr, map[string]any{"command": o.command(args)})
	}

	return response.Success(
		fmt.Sprintf("Terraform project initialized successfully in %s.\n\n%s", workingDir, res.Stdout),
		map[string]any{"raw_output": res.Stdout, "command": o.command(args)})
}

// Validate formats the configuration, then runs terraform validate -json
// and reports diagnostics.
func (o *Ops) Validate(ctx context.Context, workingDir string) *response.Response {
	o.logger.WithField("path", workingDir).Info("validating terraform project")

	// Format first; formatting failures do not block validation.
	if _, err := o.run(ctx, workingDir, []string{"fmt", "-recursive"}); err != nil {
		o.logger.WithError(err).Warn("terraform fmt failed")
	}

	args := []string{"validate", "-json"}
	res, err := o.run(ctx, workingDir, args)
	if err != nil {
		return execFailure("An error occurred during Terraform validation", err)
	}
	if res.ExitCode != 0 && res.Stdout == "" {
		o.logger.WithField("path", workingDir).Error("terraform validate failed")
		return response.Failure(
			fmt.Sprintf("Error validating Terraform project: %s", res.Stderr),
			res.Stderr, map[string]any{"command": o.command(args)})
	}

	if valid, errs := parseValidateOutput(res.Stdout); !valid {
		return response.Failure(
			fmt.Sprintf("Terraform validation failed with errors:\n\n%s", errs),
			errs, map[string]any{"raw_output": res.Stdout, "command": o.command(args)})
	}

	return response.Success("Terraform configuration is valid.",
		map[string]any{"raw_output": res.Stdout, "command": o.command(args)})
}

// Plan generates an execution plan, writing it to tfplan in workingDir.
// Variables become -var=key=value arguments in sorted key order.
func (o *Ops) Plan(ctx context.Context, workingDir string, variables map[string]string) *response.Response {
	o.logger.WithField("path", workingDir).Info("planning terraform project")

	args := append([]string{"plan", "-out=tfplan"}, varArgs(variables)...)
	res, err := o.run(ctx, workingDir, args)
	if err != nil {
		return execFailure("An error occurred during Terraform plan", err)
	}
	if res.ExitCode != 0 {
		o.logger.WithField("path", workingDir).Error("terraform plan failed")
		return response.Failure(
			fmt.Sprintf("Error planning Terraform project: %s", res.Stderr),
			res.Stderr, map[string]any{"command": o.command(args)})
	}

	return response.Success(formatPlanOutput(res.Stdout), map[string]any{
		"raw_output": res.Stdout,
		"command":    o.command(args),
		"plan_file":  filepath.Join(workingDir, "tfplan"),
	})
}

// Apply applies a previously generated plan file.
func (o *Ops) Apply(ctx context.Context, workingDir, planFile string) *response.Response {
	if planFile == "" {
		planFile = "tfplan"
	}
	o.logger.WithFields(logrus.Fields{"path": workingDir, "plan_file": planFile}).Info("applying terraform plan")

	if _, err := os.Stat(filepath.Join(workingDir, planFile)); err != nil {
		return response.Failure(
			fmt.Sprintf("Error: Plan file %s not found. Run terraform plan first.", planFile),
			fmt.Sprintf("Plan file %s not found", planFile), nil)
	}

	args := []string{"apply", planFile}
	res, err := o.run(ctx, workingDir, args)
	if err != nil {
		return execFailure("An error occurred during Terraform apply", err)
	}
	if res.ExitCode != 0 {
		o.logger.WithField("path", workingDir).Error("terraform apply failed")
		return response.Failure(
			fmt.Sprintf("Error applying Terraform plan: %s", res.Stderr),
			res.Stderr, map[string]any{"command": o.command(args)})
	}

	return response.Success(
		fmt.Sprintf("Terraform plan applied successfully.\n\n%s", res.Stdout),
		map[string]any{"raw_output": res.Stdout, "command": o.command(args)})
}

// Destroy tears down managed resources without interactive approval.
func (o *Ops) Destroy(ctx context.Context, workingDir string, variables map[string]string) *response.Response {
	o.logger.WithField("path", workingDir).Info("destroying terraform resources")

	args := append([]string{"destroy", "-auto-approve"}, varArgs(variables)...)
	res, err := o.run(ctx, workingDir, args)
	if err != nil {
		return execFailure("An error occurred during Terraform destroy", err)
	}
	if res.ExitCode != 0 {
		o.logger.WithField("path", workingDir).Error("terraform destroy failed")
		return response.Failure(
			fmt.Sprintf("Error destroying Terraform resources: %s", res.Stderr),
			res.Stderr, map[string]any{"command": o.command(args)})
	}

	return response.Success(
		fmt.Sprintf("Terraform resources destroyed successfully.\n\n%s", res.Stdout),
		map[string]any{"raw_output": res.Stdout, "command": o.command(args)})
}

func (o *Ops) run(ctx context.Context, dir string, args []string) (*runner.Result, error) {
	return o.runner.Run(ctx, dir, o.terraformPath, args...)
}

func (o *Ops) command(args []string) string {
	return o.terraformPath + " " + strings.Join(args, " ")
}

func varArgs(variables map[string]string) []string {
	keys := make([]string, 0, len(variables))
	for k := range variables {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	args := make([]string, 0, len(keys))
	for _, k := range keys {
		args = append(args, fmt.Sprintf("-var=%s=%s", k, variables[k]))
	}
	return args
}

func execFailure(prefix string, err error) *response.Response {
	return response.Failure(fmt.Sprintf("%s: %v", prefix, err), err.Error(), nil)
}
