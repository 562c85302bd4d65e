// Package tools registers the server's MCP tools and adapts domain
// responses to MCP call results.
package tools

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"github.com/Kamalesh-Seervi/gap-terraform-mcp-server/internal/analyzer"
	"github.com/Kamalesh-Seervi/gap-terraform-mcp-server/internal/checkov"
	"github.com/Kamalesh-Seervi/gap-terraform-mcp-server/internal/kb"
	"github.com/Kamalesh-Seervi/gap-terraform-mcp-server/internal/response"
	"github.com/Kamalesh-Seervi/gap-terraform-mcp-server/internal/workflow"
)

// Deps are the domain handlers behind the tool surface.
type Deps struct {
	Workflow *workflow.Ops
	Checkov  *checkov.Scanner
	KB       *kb.Store
	Analyzer *analyzer.Service
	Logger   *logrus.Logger
}

// Register adds every tool to the MCP server.
func Register(s *server.MCPServer, deps Deps) {
	s.AddTools(workflowTools(deps)...)
	s.AddTools(checkovTools(deps)...)
	s.AddTools(kbTools(deps)...)
	s.AddTools(registryTools(deps)...)
}

// toResult converts the shared content+metadata contract into an MCP call
// result. Failures become tool errors, not protocol errors.
func toResult(r *response.Response) *mcp.CallToolResult {
	if r.OK() {
		return mcp.NewToolResultText(r.Content)
	}
	return mcp.NewToolResultError(r.Content)
}

// stringMapArg extracts an optional object argument as a string map.
// Non-string values are accepted and stringified by the caller; anything
// that is not an object yields nil.
func stringMapArg(req mcp.CallToolRequest, name string) map[string]string {
	raw, ok := req.GetArguments()[name].(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}

// stringSliceArg extracts an optional array argument as a string slice.
func stringSliceArg(req mcp.CallToolRequest, name string) []string {
	raw, ok := req.GetArguments()[name].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
