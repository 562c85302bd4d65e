package kb

import (
	"fmt"
	"strings"

	"github.com/Kamalesh-Seervi/gap-terraform-mcp-server/internal/response"
)

// BestPractices returns the best-practice entries, filtered by category
// when one is given (case-insensitive). An unmatched category is a failure.
func (s *Store) BestPractices(category string) *response.Response {
	s.logger.WithField("category", category).Info("getting GCP best practices")

	practices := s.practices
	if category != "" {
		practices = nil
		for _, p := range s.practices {
			if strings.EqualFold(p.Category, category) {
				practices = append(practices, p)
			}
		}
	}

	if len(practices) == 0 {
		msg := fmt.Sprintf("No best practices found for category: %s", category)
		return response.Failure(msg, msg, nil)
	}

	lines := []string{"# GCP Terraform Best Practices\n"}
	for _, p := range practices {
		lines = append(lines,
			fmt.Sprintf("## %s", p.Title),
			p.Description+"\n",
			"### Terraform Example",
			fmt.Sprintf("```terraform\n%s\n```\n", p.TerraformExample),
			fmt.Sprintf("**Documentation:** [%s Documentation](%s)\n", p.Category, p.DocumentationURL),
		)
	}

	return response.Success(strings.Join(lines, "\n"), map[string]any{
		"count":     len(practices),
		"practices": practices,
	})
}

// SecurityRecommendations returns the security recommendations, filtered
// by impact (HIGH, MEDIUM, LOW) when one is given.
func (s *Store) SecurityRecommendations(impact string) *response.Response {
	s.logger.WithField("impact", impact).Info("getting GCP security recommendations")

	recs := s.recommendations
	if impact != "" {
		recs = nil
		for _, r := range s.recommendations {
			if strings.EqualFold(r.Impact, impact) {
				recs = append(recs, r)
			}
		}
	}

	if len(recs) == 0 {
		msg := fmt.Sprintf("No security recommendations found for impact level: %s", impact)
		return response.Failure(msg, msg, nil)
	}

	lines := []string{"# GCP Security Recommendations\n"}
	for _, r := range recs {
		lines = append(lines,
			fmt.Sprintf("## %s: %s", r.ID, r.Title),
			fmt.Sprintf("**Impact: %s**\n", r.Impact),
			r.Description+"\n",
			"### Terraform Example",
			fmt.Sprintf("```terraform\n%s\n```\n", r.TerraformExample),
			"### Remediation",
			r.Remediation+"\n",
			"### Compliance",
			strings.Join(r.Compliance, ", ")+"\n",
		)
	}

	return response.Success(strings.Join(lines, "\n"), map[string]any{
		"count":           len(recs),
		"recommendations": recs,
	})
}

// ProviderResources lists the google provider catalog. A known service
// name narrows the listing to that service; anything else returns the full
// catalog.
func (s *Store) ProviderResources(service string) *response.Response {
	s.logger.WithField("service", service).Info("listing GCP provider resources")

	catalog := s.catalog
	if service != "" {
		for _, svc := range s.catalog {
			if svc.Service == service {
				catalog = []ServiceResources{svc}
				break
			}
		}
	}

	lines := []string{"# GCP Terraform Provider Resources\n"}
	services := make([]string, 0, len(catalog))
	for _, svc := range catalog {
		services = append(services, svc.Service)
		lines = append(lines, fmt.Sprintf("## %s Resources", capitalize(svc.Service)))
		for _, r := range svc.Resources {
			lines = append(lines, fmt.Sprintf("- **%s**: %s [Documentation](%s)", r.Name, r.Description, r.DocumentationURL))
		}
		lines = append(lines, "")
	}

	return response.Success(strings.Join(lines, "\n"), map[string]any{
		"services":  services,
		"resources": catalog,
	})
}

// ResourceDocumentation returns detailed documentation for one resource,
// falling back to the catalog entry when only a summary is available.
func (s *Store) ResourceDocumentation(resourceName string) *response.Response {
	s.logger.WithField("resource", resourceName).Info("getting resource documentation")

	if doc, ok := s.docs[resourceName]; ok {
		lines := []string{
			fmt.Sprintf("# %s\n", resourceName),
			doc.Description + "\n",
			"## Arguments\n",
		}
		for _, arg := range doc.Arguments {
			required := "Optional"
			if arg.Required {
				required = "Required"
			}
			lines = append(lines, fmt.Sprintf("- **%s** - (%s, %s) %s", arg.Name, required, arg.Type, arg.Description))
		}
		lines = append(lines, "\n## Example Usage\n", fmt.Sprintf("```terraform\n%s\n```", doc.Example))

		return response.Success(strings.Join(lines, "\n"), map[string]any{
			"resource":      resourceName,
			"documentation": doc,
		})
	}

	for _, svc := range s.catalog {
		for _, r := range svc.Resources {
			if r.Name == resourceName {
				content := fmt.Sprintf("# %s\n\n%s\n\nFor detailed documentation, visit: %s",
					resourceName, r.Description, r.DocumentationURL)
				return response.Success(content, map[string]any{
					"resource": r,
					"note":     "Limited documentation available. Follow the link for full details.",
				})
			}
		}
	}

	msg := fmt.Sprintf("Resource documentation not found for: %s", resourceName)
	return response.Failure(msg, msg, nil)
}

// GenAIModules lists the curated AI/ML modules.
func (s *Store) GenAIModules() *response.Response {
	s.logger.Info("listing GenAI modules")

	lines := []string{
		"# GCP GenAI Terraform Modules\n",
		"Available modules for AI/ML workloads on Google Cloud Platform:\n",
	}
	for _, m := range s.genai {
		lines = append(lines, fmt.Sprintf("## %s", m.Title), m.Description+"\n", "### Capabilities")
		for _, c := range m.Capabilities {
			lines = append(lines, fmt.Sprintf("- %s", c))
		}
		lines = append(lines, fmt.Sprintf("\n**GitHub Repository:** [%s](%s)\n", m.Repository, m.Repository))
	}

	return response.Success(strings.Join(lines, "\n"), map[string]any{
		"count":   len(s.genai),
		"modules": s.genai,
	})
}

// VertexAIModule returns the Vertex AI module template.
func (s *Store) VertexAIModule() *response.Response {
	s.logger.Info("getting Vertex AI module template")
	return response.Success(vertexAIModuleTemplate, map[string]any{
		"module_name": "vertex_ai",
		"repository":  "https://github.com/terraform-google-modules/terraform-google-vertex-ai",
	})
}

// GKEAIModule returns the GKE AI workload module template.
func (s *Store) GKEAIModule() *response.Response {
	s.logger.Info("getting GKE AI module template")
	return response.Success(gkeAIModuleTemplate, map[string]any{
		"module_name": "gke_ai",
		"repository":  "https://github.com/terraform-google-modules/terraform-google-kubernetes-engine",
	})
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
