package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func kbTools(deps Deps) []server.ServerTool {
	return []server.ServerTool{
		{
			Tool: mcp.NewTool("terraform_gcp_best_practices",
				mcp.WithDescription("Get GCP best practices"),
				mcp.WithReadOnlyHintAnnotation(true),
				mcp.WithString("category",
					mcp.Description("Category filter: Networking, Security, IAM, Storage, Compute")),
			),
			Handler: func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return toResult(deps.KB.BestPractices(req.GetString("category", ""))), nil
			},
		},
		{
			Tool: mcp.NewTool("terraform_gcp_security_recommendations",
				mcp.WithDescription("Get GCP security recommendations"),
				mcp.WithReadOnlyHintAnnotation(true),
				mcp.WithString("impact",
					mcp.Description("Impact filter: HIGH, MEDIUM or LOW")),
			),
			Handler: func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return toResult(deps.KB.SecurityRecommendations(req.GetString("impact", ""))), nil
			},
		},
		{
			Tool: mcp.NewTool("terraform_gcp_provider_resources_listing",
				mcp.WithDescription("List GCP provider resources"),
				mcp.WithReadOnlyHintAnnotation(true),
				mcp.WithString("service",
					mcp.Description("Service filter: compute, storage, container, sql, iam, cloudrun, bigquery")),
			),
			Handler: func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return toResult(deps.KB.ProviderResources(req.GetString("service", ""))), nil
			},
		},
		{
			Tool: mcp.NewTool("terraform_gcp_resource_documentation",
				mcp.WithDescription("Get GCP resource documentation"),
				mcp.WithReadOnlyHintAnnotation(true),
				mcp.WithString("resource_name",
					mcp.Required(),
					mcp.Description("Resource name, e.g. google_compute_instance")),
			),
			Handler: func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				name, err := req.RequireString("resource_name")
				if err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}
				return toResult(deps.KB.ResourceDocumentation(name)), nil
			},
		},
		{
			Tool: mcp.NewTool("terraform_genai_modules",
				mcp.WithDescription("List GenAI modules"),
				mcp.WithReadOnlyHintAnnotation(true),
			),
			Handler: func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return toResult(deps.KB.GenAIModules()), nil
			},
		},
		{
			Tool: mcp.NewTool("terraform_vertex_ai_module",
				mcp.WithDescription("Get Vertex AI module template"),
				mcp.WithReadOnlyHintAnnotation(true),
			),
			Handler: func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return toResult(deps.KB.VertexAIModule()), nil
			},
		},
		{
			Tool: mcp.NewTool("terraform_gke_ai_module",
				mcp.WithDescription("Get GKE AI module template"),
				mcp.WithReadOnlyHintAnnotation(true),
			),
			Handler: func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return toResult(deps.KB.GKEAIModule()), nil
			},
		},
	}
}
