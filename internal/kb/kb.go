// Package kb holds the static GCP knowledge base: best practices, security
// recommendations, the provider resource catalog and GenAI module
// templates. Datasets are embedded YAML, parsed once at process start, and
// never mutated afterwards.
package kb

import (
	_ "embed"
	"fmt"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

//go:embed data/best_practices.yaml
var bestPracticesYAML []byte

//go:embed data/security_recommendations.yaml
var securityRecommendationsYAML []byte

//go:embed data/provider_resources.yaml
var providerResourcesYAML []byte

//go:embed data/resource_docs.yaml
var resourceDocsYAML []byte

//go:embed data/genai_modules.yaml
var genaiModulesYAML []byte

//go:embed data/vertex_ai_module.md
var vertexAIModuleTemplate string

//go:embed data/gke_ai_module.md
var gkeAIModuleTemplate string

// BestPractice is one best-practice entry with a worked Terraform example.
type BestPractice struct {
	Category         string `yaml:"category" json:"category"`
	Title            string `yaml:"title" json:"title"`
	Description      string `yaml:"description" json:"description"`
	TerraformExample string `yaml:"terraform_example" json:"terraform_example"`
	DocumentationURL string `yaml:"documentation_url" json:"documentation_url"`
}

// SecurityRecommendation is one security recommendation with an impact
// rating and compliance mappings.
type SecurityRecommendation struct {
	ID               string   `yaml:"id" json:"id"`
	Title            string   `yaml:"title" json:"title"`
	Description      string   `yaml:"description" json:"description"`
	Impact           string   `yaml:"impact" json:"impact"`
	TerraformExample string   `yaml:"terraform_example" json:"terraform_example"`
	Remediation      string   `yaml:"remediation" json:"remediation"`
	Compliance       []string `yaml:"compliance" json:"compliance"`
}

// Resource is one catalog entry of the google provider.
type Resource struct {
	Name             string `yaml:"name" json:"name"`
	Description      string `yaml:"description" json:"description"`
	DocumentationURL string `yaml:"documentation_url" json:"documentation_url"`
}

// ServiceResources groups catalog entries under their GCP service, in
// catalog order.
type ServiceResources struct {
	Service   string     `json:"service"`
	Resources []Resource `json:"resources"`
}

// ResourceArgument documents one argument of a provider resource.
type ResourceArgument struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Required    bool   `yaml:"required" json:"required"`
	Type        string `yaml:"type" json:"type"`
}

// ResourceDoc is the detailed documentation of one provider resource.
type ResourceDoc struct {
	Description string             `yaml:"description" json:"description"`
	Arguments   []ResourceArgument `yaml:"arguments" json:"arguments"`
	Example     string             `yaml:"example" json:"example"`
}

// GenAIModule describes one curated AI/ML Terraform module.
type GenAIModule struct {
	Name         string   `yaml:"name" json:"name"`
	Title        string   `yaml:"title" json:"title"`
	Description  string   `yaml:"description" json:"description"`
	Capabilities []string `yaml:"capabilities" json:"capabilities"`
	Repository   string   `yaml:"repository" json:"repository"`
}

// Store is the loaded, read-only knowledge base.
type Store struct {
	practices       []BestPractice
	recommendations []SecurityRecommendation
	catalog         []ServiceResources
	docs            map[string]ResourceDoc
	genai           []GenAIModule
	logger          *logrus.Logger
}

// Load parses the embedded datasets into a Store.
func Load(logger *logrus.Logger) (*Store, error) {
	s := &Store{logger: logger}

	if err := yaml.Unmarshal(bestPracticesYAML, &s.practices); err != nil {
		return nil, fmt.Errorf("failed to parse best practices dataset: %w", err)
	}
	if err := yaml.Unmarshal(securityRecommendationsYAML, &s.recommendations); err != nil {
		return nil, fmt.Errorf("failed to parse security recommendations dataset: %w", err)
	}
	catalog, err := parseCatalog(providerResourcesYAML)
	if err != nil {
		return nil, fmt.Errorf("failed to parse provider resource catalog: %w", err)
	}
	s.catalog = catalog
	if err := yaml.Unmarshal(resourceDocsYAML, &s.docs); err != nil {
		return nil, fmt.Errorf("failed to parse resource documentation dataset: %w", err)
	}
	if err := yaml.Unmarshal(genaiModulesYAML, &s.genai); err != nil {
		return nil, fmt.Errorf("failed to parse genai modules dataset: %w", err)
	}

	return s, nil
}

// parseCatalog decodes the service-to-resources mapping while preserving
// the document's key order, which a plain map decode would lose.
func parseCatalog(data []byte) ([]ServiceResources, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}

	mapping := doc.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("catalog root is not a mapping")
	}

	var catalog []ServiceResources
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key := mapping.Content[i]
		var resources []Resource
		if err := mapping.Content[i+1].Decode(&resources); err != nil {
			return nil, fmt.Errorf("failed to decode resources for %q: %w", key.Value, err)
		}
		catalog = append(catalog, ServiceResources{Service: key.Value, Resources: resources})
	}
	return catalog, nil
}
