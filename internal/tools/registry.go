package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registryTools(deps Deps) []server.ServerTool {
	return []server.ServerTool{
		{
			Tool: mcp.NewTool("terraform_search_modules",
				mcp.WithDescription("Search Terraform modules"),
				mcp.WithReadOnlyHintAnnotation(true),
				mcp.WithOpenWorldHintAnnotation(true),
				mcp.WithString("query",
					mcp.Required(),
					mcp.Description("Search query for modules")),
				mcp.WithString("provider",
					mcp.Description("Provider to filter by (default: google)")),
			),
			Handler: func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				query, err := req.RequireString("query")
				if err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}
				provider := req.GetString("provider", "google")
				return toResult(deps.Analyzer.SearchModules(ctx, query, provider)), nil
			},
		},
		{
			Tool: mcp.NewTool("terraform_analyze_module",
				mcp.WithDescription("Analyze Terraform module"),
				mcp.WithReadOnlyHintAnnotation(true),
				mcp.WithOpenWorldHintAnnotation(true),
				mcp.WithString("module_id",
					mcp.Required(),
					mcp.Description("Module ID in the format namespace/name/provider")),
			),
			Handler: func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				moduleID, err := req.RequireString("module_id")
				if err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}
				return toResult(deps.Analyzer.Analyze(ctx, moduleID).Response()), nil
			},
		},
	}
}
