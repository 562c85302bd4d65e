// Package hclscan performs best-effort textual extraction of variable and
// output declarations from Terraform source. It is deliberately not an HCL
// parser: blocks are matched by pattern, and a block body ends at the first
// closing brace, so nested sub-blocks (validation, lifecycle) truncate the
// captured body. That limitation is part of the contract relied on by the
// module report.
package hclscan

import (
	"fmt"
	"regexp"
	"strings"
)

// Block is one named top-level declaration and its raw body text, in
// source order.
type Block struct {
	Name string
	Body string
}

var blockPatterns = map[string]*regexp.Regexp{
	"variable": regexp.MustCompile(`variable\s+"([^"]+)"\s+{([^}]+)}`),
	"output":   regexp.MustCompile(`output\s+"([^"]+)"\s+{([^}]+)}`),
}

var descriptionPattern = regexp.MustCompile(`description\s+=\s+"([^"]+)"`)

// Blocks finds all blocks of the given keyword in source order. The body is
// the text strictly between the opening brace and the first closing brace.
// No matches yields an empty slice, never an error.
func Blocks(src, keyword string) []Block {
	re, ok := blockPatterns[keyword]
	if !ok {
		re = regexp.MustCompile(fmt.Sprintf(`%s\s+"([^"]+)"\s+{([^}]+)}`, regexp.QuoteMeta(keyword)))
	}

	matches := re.FindAllStringSubmatch(src, -1)
	blocks := make([]Block, 0, len(matches))
	for _, m := range matches {
		blocks = append(blocks, Block{Name: m[1], Body: m[2]})
	}
	return blocks
}

// Attribute extracts a single-line attribute assignment from a block body.
// description returns the double-quoted literal content; type, default and
// value return the trimmed remainder of the line verbatim. A multi-line or
// otherwise unmatched attribute reports false, never an error.
func Attribute(body, name string) (string, bool) {
	if name == "description" {
		m := descriptionPattern.FindStringSubmatch(body)
		if m == nil {
			return "", false
		}
		return m[1], true
	}

	re := regexp.MustCompile(fmt.Sprintf(`%s\s+=\s+([^\n]+)`, regexp.QuoteMeta(name)))
	m := re.FindStringSubmatch(body)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}
