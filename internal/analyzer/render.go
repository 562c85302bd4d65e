package analyzer

import (
	"fmt"
	"strings"
)

const (
	// readmeLimit is the maximum README length included in a report.
	readmeLimit = 2000

	// readmeTruncationSuffix is appended when the README is cut off.
	readmeTruncationSuffix = "...\n\n(README truncated due to length)"

	registryModulesURL = "https://registry.terraform.io/modules/"
)

// Render produces the module analysis report. The layout is fixed: title,
// version and registry link, inputs, outputs, then the README truncated to
// readmeLimit characters. Identical inputs always render byte-identical
// output.
func Render(moduleID, version string, data ModuleData) string {
	lines := []string{fmt.Sprintf("# Module Analysis: %s\n", moduleID)}

	lines = append(lines,
		fmt.Sprintf("**Version:** %s", version),
		fmt.Sprintf("**Registry Link:** %s%s\n", registryModulesURL, moduleID),
	)

	lines = append(lines, fmt.Sprintf("## Inputs (%d)\n", len(data.Inputs)))
	for _, in := range data.Inputs {
		desc := in.Description
		if desc == "" {
			desc = "No description provided"
		}
		varType := in.Type
		if varType == "" {
			varType = "any"
		}
		def := in.Default
		if def == "" {
			def = "no default"
		}

		lines = append(lines,
			fmt.Sprintf("### %s", in.Name),
			fmt.Sprintf("- **Description:** %s", desc),
			fmt.Sprintf("- **Type:** %s", varType),
			fmt.Sprintf("- **Default:** %s\n", def),
		)
	}

	lines = append(lines, fmt.Sprintf("## Outputs (%d)\n", len(data.Outputs)))
	for _, out := range data.Outputs {
		desc := out.Description
		if desc == "" {
			desc = "No description provided"
		}

		lines = append(lines,
			fmt.Sprintf("### %s", out.Name),
			fmt.Sprintf("- **Description:** %s\n", desc),
		)
	}

	// The limit counts characters, not bytes; a byte cut could split a rune.
	readme := data.Readme
	if runes := []rune(readme); len(runes) > readmeLimit {
		readme = string(runes[:readmeLimit]) + readmeTruncationSuffix
	}
	lines = append(lines, fmt.Sprintf("## README\n\n%s", readme))

	return strings.Join(lines, "\n")
}
