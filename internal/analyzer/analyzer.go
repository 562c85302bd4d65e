// Package analyzer implements the module analysis pipeline: resolve a
// registry module's latest version, materialize its source through
// terraform init, extract its interface from variables.tf, outputs.tf and
// README.md, and render a structured report.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Kamalesh-Seervi/gap-terraform-mcp-server/internal/hclscan"
	"github.com/Kamalesh-Seervi/gap-terraform-mcp-server/internal/registryapi"
	"github.com/Kamalesh-Seervi/gap-terraform-mcp-server/internal/runner"
)

// Service exposes registry-facing operations: module search and module
// analysis. A Service is safe for concurrent use; every analysis owns an
// independent scratch directory.
type Service struct {
	registry *registryapi.Client
	fetcher  *Fetcher
	logger   *logrus.Logger
}

// NewService wires the analysis pipeline.
func NewService(reg *registryapi.Client, run runner.Runner, terraformPath string, logger *logrus.Logger) *Service {
	return &Service{
		registry: reg,
		fetcher:  NewFetcher(reg, run, terraformPath, logger),
		logger:   logger,
	}
}

// Analyze runs the full pipeline for a namespace/name/provider identifier.
// Stage failures become structured failure results; they never escape as
// errors. The scratch directory is removed on every path.
func (s *Service) Analyze(ctx context.Context, moduleID string) *AnalysisResult {
	opID := uuid.NewString()
	log := s.logger.WithFields(logrus.Fields{"module_id": moduleID, "op_id": opID})
	log.Info("analyzing module")

	id, err := registryapi.ParseModuleID(moduleID)
	if err != nil {
		return &AnalysisResult{
			Success:  false,
			ModuleID: moduleID,
			Content:  fmt.Sprintf("Invalid module ID: %s. Format should be namespace/name/provider.", moduleID),
			Err:      fmt.Sprintf("Invalid module ID: %s", moduleID),
		}
	}

	mod, err := s.fetcher.Fetch(ctx, id, opID)
	if err != nil {
		return s.failedFetch(moduleID, err, log)
	}
	defer mod.Close()

	data := extractModuleData(mod.Dir)

	return &AnalysisResult{
		Success:  true,
		ModuleID: moduleID,
		Version:  mod.Version,
		Data:     data,
		Content:  Render(moduleID, mod.Version, data),
	}
}

func (s *Service) failedFetch(moduleID string, err error, log *logrus.Entry) *AnalysisResult {
	result := &AnalysisResult{Success: false, ModuleID: moduleID}

	var regErr *registryapi.RegistryError
	var fetchErr *FetchError
	switch {
	case errors.As(err, &regErr):
		log.WithField("status", regErr.StatusCode).Error("module details fetch failed")
		result.Content = fmt.Sprintf("Error fetching module details: %s", regErr.Body)
		result.Err = regErr.Body
	case errors.As(err, &fetchErr):
		log.Error("module download failed")
		result.Content = fmt.Sprintf("Error downloading module: %s", fetchErr.Output)
		result.Err = fetchErr.Output
	default:
		log.WithError(err).Error("module analysis failed")
		result.Content = fmt.Sprintf("An error occurred while analyzing the Terraform module: %v", err)
		result.Err = err.Error()
	}

	return result
}

// extractModuleData reads the module's interface files. Every file is
// optional: a missing file or unmatched pattern contributes nothing and
// never fails the analysis.
func extractModuleData(moduleDir string) ModuleData {
	data := ModuleData{
		Inputs:  []VariableDescriptor{},
		Outputs: []OutputDescriptor{},
	}
	if moduleDir == "" {
		return data
	}

	if src, err := os.ReadFile(filepath.Join(moduleDir, "variables.tf")); err == nil {
		for _, b := range hclscan.Blocks(string(src), "variable") {
			v := VariableDescriptor{Name: b.Name}
			if s, ok := hclscan.Attribute(b.Body, "description"); ok {
				v.Description = s
			}
			if s, ok := hclscan.Attribute(b.Body, "type"); ok {
				v.Type = s
			}
			if s, ok := hclscan.Attribute(b.Body, "default"); ok {
				v.Default = s
			}
			data.Inputs = append(data.Inputs, v)
		}
	}

	if src, err := os.ReadFile(filepath.Join(moduleDir, "outputs.tf")); err == nil {
		for _, b := range hclscan.Blocks(string(src), "output") {
			o := OutputDescriptor{Name: b.Name}
			if s, ok := hclscan.Attribute(b.Body, "description"); ok {
				o.Description = s
			}
			if s, ok := hclscan.Attribute(b.Body, "value"); ok {
				o.Value = s
			}
			data.Outputs = append(data.Outputs, o)
		}
	}

	if readme, err := os.ReadFile(filepath.Join(moduleDir, "README.md")); err == nil {
		data.Readme = string(readme)
	}

	return data
}
