package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func workflowTools(deps Deps) []server.ServerTool {
	return []server.ServerTool{
		{
			Tool: mcp.NewTool("terraform_workflow_guide",
				mcp.WithDescription("Get workflow guide for Terraform on GCP"),
				mcp.WithTitleAnnotation("Terraform Workflow Guide"),
				mcp.WithReadOnlyHintAnnotation(true),
			),
			Handler: func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return toResult(deps.Workflow.Guide()), nil
			},
		},
		{
			Tool: mcp.NewTool("terraform_init",
				mcp.WithDescription("Initialize Terraform project"),
				mcp.WithString("path",
					mcp.Required(),
					mcp.Description("Directory containing Terraform configuration files")),
			),
			Handler: func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				path, err := req.RequireString("path")
				if err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}
				return toResult(deps.Workflow.Init(ctx, path)), nil
			},
		},
		{
			Tool: mcp.NewTool("terraform_validate",
				mcp.WithDescription("Validate Terraform project"),
				mcp.WithString("path",
					mcp.Required(),
					mcp.Description("Directory containing Terraform configuration files")),
			),
			Handler: func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				path, err := req.RequireString("path")
				if err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}
				return toResult(deps.Workflow.Validate(ctx, path)), nil
			},
		},
		{
			Tool: mcp.NewTool("terraform_plan",
				mcp.WithDescription("Plan Terraform project"),
				mcp.WithString("path",
					mcp.Required(),
					mcp.Description("Directory containing Terraform configuration files")),
				mcp.WithObject("variables",
					mcp.Description("Optional variables passed as -var=key=value")),
			),
			Handler: func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				path, err := req.RequireString("path")
				if err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}
				return toResult(deps.Workflow.Plan(ctx, path, stringMapArg(req, "variables"))), nil
			},
		},
		{
			Tool: mcp.NewTool("terraform_apply",
				mcp.WithDescription("Apply Terraform plan"),
				mcp.WithDestructiveHintAnnotation(true),
				mcp.WithString("path",
					mcp.Required(),
					mcp.Description("Directory containing Terraform configuration files")),
				mcp.WithString("plan_file",
					mcp.Description("Plan file to apply (default: tfplan)")),
			),
			Handler: func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				path, err := req.RequireString("path")
				if err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}
				planFile := req.GetString("plan_file", "tfplan")
				return toResult(deps.Workflow.Apply(ctx, path, planFile)), nil
			},
		},
		{
			Tool: mcp.NewTool("terraform_destroy",
				mcp.WithDescription("Destroy Terraform resources"),
				mcp.WithDestructiveHintAnnotation(true),
				mcp.WithString("path",
					mcp.Required(),
					mcp.Description("Directory containing Terraform configuration files")),
				mcp.WithObject("variables",
					mcp.Description("Optional variables passed as -var=key=value")),
			),
			Handler: func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				path, err := req.RequireString("path")
				if err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}
				return toResult(deps.Workflow.Destroy(ctx, path, stringMapArg(req, "variables"))), nil
			},
		},
	}
}
