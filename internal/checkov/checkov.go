// Package checkov wraps the checkov security scanner: JSON scans and the
// automatic fix mode.
package checkov

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Kamalesh-Seervi/gap-terraform-mcp-server/internal/response"
	"github.com/Kamalesh-Seervi/gap-terraform-mcp-server/internal/runner"
)

// Scanner executes checkov against Terraform directories.
type Scanner struct {
	runner      runner.Runner
	checkovPath string
	logger      *logrus.Logger
}

// New creates a Scanner.
func New(run runner.Runner, checkovPath string, logger *logrus.Logger) *Scanner {
	return &Scanner{runner: run, checkovPath: checkovPath, logger: logger}
}

// ScanResult mirrors the checkov JSON output consumed by the formatter.
type ScanResult struct {
	Summary struct {
		Passed        int `json:"passed"`
		Failed        int `json:"failed"`
		Skipped       int `json:"skipped"`
		ParsingErrors int `json:"parsing_errors"`
	} `json:"summary"`
	Results struct {
		FailedChecks []Check `json:"failed_checks"`
		PassedChecks []Check `json:"passed_checks"`
	} `json:"results"`
}

// Check is one checkov finding.
type Check struct {
	CheckID     string `json:"check_id"`
	CheckName   string `json:"check_name"`
	FilePath    string `json:"file_path"`
	Resource    string `json:"resource"`
	Guideline   string `json:"guideline"`
	Remediation string `json:"check_remediation"`
}

// FixedIssue records one issue checkov fixed in place.
type FixedIssue struct {
	CheckID     string `json:"check_id"`
	File        string `json:"file"`
	Description string `json:"description,omitempty"`
}

// Scan runs a checkov scan with JSON output. An empty framework defaults
// to terraform.
func (s *Scanner) Scan(ctx context.Context, path, framework string) *response.Response {
	if framework == "" {
		framework = "terraform"
	}
	s.logger.WithFields(logrus.Fields{"path": path, "framework": framework}).Info("running checkov scan")

	args := []string{"-d", path, "--framework", framework, "-o", "json"}
	res, err := s.runner.Run(ctx, "", s.checkovPath, args...)
	if err != nil {
		return response.Failure(fmt.Sprintf("An error occurred during the Checkov scan: %v", err), err.Error(), nil)
	}

	// checkov exits non-zero when checks fail, which still produces a
	// report on stdout. Only a silent failure is an error.
	if res.ExitCode != 0 && res.Stdout == "" {
		s.logger.WithField("path", path).Error("checkov scan failed")
		return response.Failure(fmt.Sprintf("Error running Checkov scan: %s", res.Stderr), res.Stderr, nil)
	}

	var scan ScanResult
	if err := json.Unmarshal([]byte(res.Stdout), &scan); err != nil {
		s.logger.WithError(err).Error("failed to parse checkov output")
		return response.Failure(
			fmt.Sprintf("Failed to parse Checkov output. Raw output: %s", res.Stdout),
			"unparsable checkov output", map[string]any{"raw_output": res.Stdout})
	}

	return response.Success(formatScanResult(&scan), map[string]any{
		"summary": map[string]any{
			"passed":  scan.Summary.Passed,
			"failed":  scan.Summary.Failed,
			"skipped": scan.Summary.Skipped,
		},
		"raw_results": scan,
	})
}

// Fix runs checkov --fix, optionally restricted to specific check IDs.
func (s *Scanner) Fix(ctx context.Context, path string, checks []string) *response.Response {
	s.logger.WithField("path", path).Info("fixing security issues")

	args := []string{"-d", path, "--framework", "terraform", "--fix"}
	if len(checks) > 0 {
		args = append(args, "--check", strings.Join(checks, ","))
	}

	res, err := s.runner.Run(ctx, "", s.checkovPath, args...)
	if err != nil {
		return response.Failure(fmt.Sprintf("An error occurred while fixing security issues: %v", err), err.Error(), nil)
	}
	if res.ExitCode != 0 && res.Stdout == "" {
		s.logger.WithField("path", path).Error("checkov fix failed")
		return response.Failure(fmt.Sprintf("Error fixing security issues: %s", res.Stderr), res.Stderr, nil)
	}

	if !strings.Contains(res.Stdout, "Fixed") {
		return response.Success(
			fmt.Sprintf("No security issues were automatically fixed. Manual remediation may be required.\n\nOutput: %s", res.Stdout),
			map[string]any{"fixed_issues": []FixedIssue{}, "raw_output": res.Stdout})
	}

	fixed := extractFixedIssues(res.Stdout)
	return response.Success(
		fmt.Sprintf("Successfully fixed %d security issues in %s.\n\n%s", len(fixed), path, formatFixedIssues(fixed)),
		map[string]any{"fixed_issues": fixed, "raw_output": res.Stdout})
}

func formatScanResult(scan *ScanResult) string {
	lines := []string{
		"# Checkov Security Scan Results\n",
		"## Summary\n",
		fmt.Sprintf("- Passed: %d", scan.Summary.Passed),
		fmt.Sprintf("- Failed: %d", scan.Summary.Failed),
		fmt.Sprintf("- Skipped: %d", scan.Summary.Skipped),
		fmt.Sprintf("- Parsing Errors: %d\n", scan.Summary.ParsingErrors),
	}

	if len(scan.Results.FailedChecks) > 0 {
		lines = append(lines, "## Failed Checks\n")
		for _, c := range scan.Results.FailedChecks {
			remediation := c.Remediation
			if remediation == "" {
				remediation = "No specific remediation provided."
			}
			lines = append(lines,
				fmt.Sprintf("### %s: %s", c.CheckID, c.CheckName),
				fmt.Sprintf("- File: %s", c.FilePath),
				fmt.Sprintf("- Resource: %s", c.Resource),
				fmt.Sprintf("- Guideline: %s\n", c.Guideline),
				"#### Remediation:",
				remediation+"\n",
			)
		}
	}

	if len(scan.Results.PassedChecks) > 0 {
		lines = append(lines, fmt.Sprintf("## Passed Checks: %d\n", len(scan.Results.PassedChecks)))
	}

	return strings.Join(lines, "\n")
}

// extractFixedIssues scans checkov --fix output for "Fixed <check>: <file>"
// lines and the follow-up "... was fixed" descriptions.
func extractFixedIssues(out string) []FixedIssue {
	var fixed []FixedIssue
	var current *FixedIssue

	for _, line := range strings.Split(out, "\n") {
		switch {
		case strings.HasPrefix(line, "Fixed"):
			if current != nil && current.CheckID != "" {
				fixed = append(fixed, *current)
			}
			current = nil

			parts := strings.SplitN(line, ":", 2)
			if len(parts) == 2 {
				checkID := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(parts[0]), "Fixed"))
				current = &FixedIssue{CheckID: checkID, File: strings.TrimSpace(parts[1])}
			}
		case strings.Contains(line, "was fixed") && current != nil:
			current.Description = strings.TrimSpace(line)
		}
	}

	if current != nil && current.CheckID != "" {
		fixed = append(fixed, *current)
	}
	return fixed
}

func formatFixedIssues(fixed []FixedIssue) string {
	if len(fixed) == 0 {
		return "No issues were fixed automatically."
	}

	lines := []string{"## Fixed Issues\n"}
	for _, f := range fixed {
		lines = append(lines, fmt.Sprintf("### %s", f.CheckID), fmt.Sprintf("- File: %s", f.File))
		if f.Description != "" {
			lines = append(lines, fmt.Sprintf("- Description: %s", f.Description))
		}
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
