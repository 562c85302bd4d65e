package analyzer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Kamalesh-Seervi/gap-terraform-mcp-server/internal/registryapi"
	"github.com/Kamalesh-Seervi/gap-terraform-mcp-server/internal/response"
)

// SearchModules queries the public registry and formats the matches as a
// markdown listing. An empty provider defaults to google.
func (s *Service) SearchModules(ctx context.Context, query, provider string) *response.Response {
	if provider == "" {
		provider = "google"
	}
	s.logger.WithFields(logrus.Fields{"query": query, "provider": provider}).Info("searching modules")

	result, err := s.registry.Search(ctx, query, provider)
	if err != nil {
		var regErr *registryapi.RegistryError
		if errors.As(err, &regErr) {
			return response.Failure(
				fmt.Sprintf("Error searching for modules: %s", regErr.Body), regErr.Body, nil)
		}
		return response.Failure(
			fmt.Sprintf("An error occurred while searching for Terraform modules: %v", err), err.Error(), nil)
	}

	if len(result.Modules) == 0 {
		return response.Success(
			fmt.Sprintf("No modules found for query: '%s' with provider: '%s'", query, provider),
			map[string]any{"count": 0, "modules": []registryapi.ModuleSummary{}})
	}

	lines := []string{
		"# Terraform Module Search Results\n",
		fmt.Sprintf("Found %d modules matching '%s' for provider '%s':\n", len(result.Modules), query, provider),
	}

	for _, m := range result.Modules {
		lines = append(lines, fmt.Sprintf("## %s/%s/%s", m.Namespace, m.Name, m.Provider))
		if m.Description != "" {
			lines = append(lines, m.Description+"\n")
		}
		lines = append(lines,
			fmt.Sprintf("- **Version:** %s", m.Version),
			fmt.Sprintf("- **Downloads:** %d", m.Downloads),
			fmt.Sprintf("- **Source:** terraform-%s-%s", m.Provider, m.Name),
			fmt.Sprintf("- **URL:** https://registry.terraform.io/modules/%s/%s/%s/\n", m.Namespace, m.Name, m.Provider),
		)
	}

	return response.Success(strings.Join(lines, "\n"), map[string]any{
		"count":   len(result.Modules),
		"modules": result.Modules,
	})
}
