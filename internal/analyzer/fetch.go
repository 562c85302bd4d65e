package analyzer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	goversion "github.com/hashicorp/go-version"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/sirupsen/logrus"
	"github.com/zclconf/go-cty/cty"

	"github.com/Kamalesh-Seervi/gap-terraform-mcp-server/internal/registryapi"
	"github.com/Kamalesh-Seervi/gap-terraform-mcp-server/internal/runner"
)

// refName is the module reference written into the scratch manifest.
// Materialized module directories are named after it, sometimes with a
// provider-qualifying suffix.
const refName = "analyzed_module"

// FetchError reports a failed materialization step, carrying the external
// tool's diagnostic stream.
type FetchError struct {
	Output string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("module download failed: %s", e.Output)
}

// Fetcher resolves a module's latest version and materializes its source
// into a scratch directory via terraform init.
type Fetcher struct {
	registry      *registryapi.Client
	runner        runner.Runner
	terraformPath string
	logger        *logrus.Logger
}

// NewFetcher creates a Fetcher.
func NewFetcher(reg *registryapi.Client, run runner.Runner, terraformPath string, logger *logrus.Logger) *Fetcher {
	return &Fetcher{
		registry:      reg,
		runner:        run,
		terraformPath: terraformPath,
		logger:        logger,
	}
}

// FetchedModule is the outcome of a successful fetch. Dir is empty when the
// materialized directory could not be located; extraction then proceeds
// with an effectively-empty module. Close removes the scratch directory
// and must be called on every path.
type FetchedModule struct {
	Version string
	Dir     string

	scratch string
}

// Close deletes the scratch directory and everything under it.
func (m *FetchedModule) Close() error {
	if m.scratch == "" {
		return nil
	}
	return os.RemoveAll(m.scratch)
}

// Fetch resolves id's published version and downloads its source. A non-200
// registry response surfaces as *registryapi.RegistryError before any
// subprocess is invoked; a failing terraform init surfaces as *FetchError.
func (f *Fetcher) Fetch(ctx context.Context, id registryapi.ModuleID, opID string) (*FetchedModule, error) {
	details, err := f.registry.Details(ctx, id)
	if err != nil {
		return nil, err
	}

	f.logger.WithFields(logrus.Fields{
		"module_id": id.String(),
		"version":   details.Version,
		"op_id":     opID,
	}).Info("resolved module version")

	scratch, err := os.MkdirTemp("", "module-analysis-"+opID+"-")
	if err != nil {
		return nil, fmt.Errorf("failed to create scratch directory: %w", err)
	}

	mod := &FetchedModule{Version: details.Version, scratch: scratch}

	if err := f.writeManifest(scratch, id, details.Version); err != nil {
		mod.Close()
		return nil, err
	}

	res, err := f.runner.Run(ctx, scratch, f.terraformPath, "init", "-get=true")
	if err != nil {
		mod.Close()
		return nil, fmt.Errorf("failed to run terraform init: %w", err)
	}
	if res.ExitCode != 0 {
		mod.Close()
		return nil, &FetchError{Output: res.Stderr}
	}

	mod.Dir = locateModuleDir(scratch)
	if mod.Dir == "" {
		f.logger.WithField("module_id", id.String()).Warn("materialized module directory not found")
	}

	return mod, nil
}

// writeManifest generates the minimal main.tf referencing the module. An
// empty or unparsable version pins nothing and lets terraform resolve the
// latest release.
func (f *Fetcher) writeManifest(dir string, id registryapi.ModuleID, version string) error {
	file := hclwrite.NewEmptyFile()
	body := file.Body().AppendNewBlock("module", []string{refName}).Body()
	body.SetAttributeValue("source", cty.StringVal(id.String()))

	if version != "" {
		if _, err := goversion.NewVersion(version); err != nil {
			f.logger.WithField("version", version).Warn("registry returned unparsable version, leaving unpinned")
		} else {
			body.SetAttributeValue("version", cty.StringVal(version))
		}
	}

	path := filepath.Join(dir, "main.tf")
	if err := os.WriteFile(path, file.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

// locateModuleDir finds the materialized module directory. The conventional
// path is checked first; otherwise the modules directory is scanned for any
// entry whose name starts with the manifest reference name, which handles
// provider-suffixed directory names. The prefix scan could match an
// unintended sibling if several entries shared the prefix, but each
// analysis owns a fresh scratch directory so only this module's entries
// exist here.
func locateModuleDir(scratch string) string {
	conventional := filepath.Join(scratch, ".terraform", "modules", refName)
	if info, err := os.Stat(conventional); err == nil && info.IsDir() {
		return conventional
	}

	modulesDir := filepath.Join(scratch, ".terraform", "modules")
	entries, err := os.ReadDir(modulesDir)
	if err != nil {
		return ""
	}
	for _, e := range entries {
		if e.IsDir() && strings.HasPrefix(e.Name(), refName) {
			return filepath.Join(modulesDir, e.Name())
		}
	}
	return ""
}
