package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func checkovTools(deps Deps) []server.ServerTool {
	return []server.ServerTool{
		{
			Tool: mcp.NewTool("terraform_run_checkov",
				mcp.WithDescription("Run Checkov scan"),
				mcp.WithReadOnlyHintAnnotation(true),
				mcp.WithString("path",
					mcp.Required(),
					mcp.Description("Path to the Terraform code to scan")),
				mcp.WithString("framework",
					mcp.Description("Framework to scan (default: terraform)")),
			),
			Handler: func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				path, err := req.RequireString("path")
				if err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}
				framework := req.GetString("framework", "terraform")
				return toResult(deps.Checkov.Scan(ctx, path, framework)), nil
			},
		},
		{
			Tool: mcp.NewTool("terraform_fix_security_issues",
				mcp.WithDescription("Fix security issues with Checkov"),
				mcp.WithString("path",
					mcp.Required(),
					mcp.Description("Path to the Terraform code to fix")),
				mcp.WithArray("checks",
					mcp.Description("Specific check IDs to fix"),
					mcp.Items(map[string]any{"type": "string"})),
			),
			Handler: func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				path, err := req.RequireString("path")
				if err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}
				return toResult(deps.Checkov.Fix(ctx, path, stringSliceArg(req, "checks"))), nil
			},
		},
	}
}
