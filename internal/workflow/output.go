package workflow

import (
	"encoding/json"
	"fmt"
	"strings"
)

// validateOutput mirrors the terraform validate -json payload.
type validateOutput struct {
	Valid       bool `json:"valid"`
	Diagnostics []struct {
		Severity string `json:"severity"`
		Summary  string `json:"summary"`
		Detail   string `json:"detail"`
		Range    *struct {
			Filename string `json:"filename"`
		} `json:"range"`
	} `json:"diagnostics"`
}

// parseValidateOutput interprets terraform validate -json output. It
// returns validity plus a bullet list of error diagnostics. Unparsable
// output is treated as invalid with an explanatory message.
func parseValidateOutput(out string) (bool, string) {
	var parsed validateOutput
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		return false, "Could not parse validation output."
	}

	if parsed.Valid {
		return true, ""
	}

	var errs []string
	for _, d := range parsed.Diagnostics {
		if d.Severity != "error" {
			continue
		}
		location := ""
		if d.Range != nil && d.Range.Filename != "" {
			location = fmt.Sprintf(" in %s", d.Range.Filename)
		}
		errs = append(errs, fmt.Sprintf("- %s%s: %s", d.Summary, location, d.Detail))
	}
	if len(errs) == 0 {
		return false, "No validation errors found."
	}
	return false, strings.Join(errs, "\n")
}

// formatPlanOutput extracts the plan summary from raw terraform plan
// output. Everything from the "Plan:" line onward is kept; output without
// a summary line passes through untouched.
func formatPlanOutput(out string) string {
	var kept []string
	inSummary := false
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "Plan:") {
			inSummary = true
			kept = append(kept, "\n## Plan Summary\n")
		}
		if inSummary {
			kept = append(kept, line)
		}
	}

	if len(kept) > 0 {
		return "# Terraform Plan\n\n" + strings.Join(kept, "\n")
	}
	return "# Terraform Plan\n\n" + out
}
