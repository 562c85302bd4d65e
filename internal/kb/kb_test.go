package kb

import (
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	s, err := Load(logger)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return s
}

func TestLoad(t *testing.T) {
	s := testStore(t)

	if len(s.practices) != 5 {
		t.Errorf("practices = %d", len(s.practices))
	}
	if len(s.recommendations) != 5 {
		t.Errorf("recommendations = %d", len(s.recommendations))
	}
	if len(s.genai) != 4 {
		t.Errorf("genai modules = %d", len(s.genai))
	}
	if _, ok := s.docs["google_compute_instance"]; !ok {
		t.Error("missing google_compute_instance documentation")
	}

	// document order survives decoding
	wantOrder := []string{"compute", "storage", "container", "sql", "iam", "cloudrun", "bigquery"}
	if len(s.catalog) != len(wantOrder) {
		t.Fatalf("catalog services = %d", len(s.catalog))
	}
	for i, want := range wantOrder {
		if s.catalog[i].Service != want {
			t.Errorf("catalog[%d] = %q, want %q", i, s.catalog[i].Service, want)
		}
	}
}

func TestBestPractices(t *testing.T) {
	s := testStore(t)

	resp := s.BestPractices("")
	if !resp.OK() {
		t.Fatalf("expected success, got %q", resp.Content)
	}
	if resp.Metadata["count"] != 5 {
		t.Errorf("count = %v", resp.Metadata["count"])
	}
	if !strings.Contains(resp.Content, "# GCP Terraform Best Practices") {
		t.Errorf("content = %q", resp.Content[:60])
	}

	resp = s.BestPractices("security")
	if !resp.OK() {
		t.Fatalf("expected success, got %q", resp.Content)
	}
	if resp.Metadata["count"] != 1 {
		t.Errorf("filtered count = %v", resp.Metadata["count"])
	}
	if !strings.Contains(resp.Content, "Cloud Armor") {
		t.Error("security practice missing from filtered output")
	}

	resp = s.BestPractices("databases")
	if resp.OK() {
		t.Fatal("expected failure for unknown category")
	}
	if resp.Content != "No best practices found for category: databases" {
		t.Errorf("content = %q", resp.Content)
	}
}

func TestSecurityRecommendations(t *testing.T) {
	s := testStore(t)

	resp := s.SecurityRecommendations("high")
	if !resp.OK() {
		t.Fatalf("expected success, got %q", resp.Content)
	}
	if resp.Metadata["count"] != 2 {
		t.Errorf("count = %v", resp.Metadata["count"])
	}
	if !strings.Contains(resp.Content, "## SEC-GCP-001: Enable VPC Service Controls") {
		t.Error("high-impact recommendation missing")
	}
	if strings.Contains(resp.Content, "SEC-GCP-002") {
		t.Error("medium-impact recommendation must be filtered out")
	}

	resp = s.SecurityRecommendations("critical")
	if resp.OK() {
		t.Fatal("expected failure for unknown impact")
	}
}

func TestProviderResources(t *testing.T) {
	s := testStore(t)

	resp := s.ProviderResources("storage")
	if !resp.OK() {
		t.Fatalf("expected success, got %q", resp.Content)
	}
	services, ok := resp.Metadata["services"].([]string)
	if !ok || len(services) != 1 || services[0] != "storage" {
		t.Errorf("services = %v", resp.Metadata["services"])
	}
	if !strings.Contains(resp.Content, "## Storage Resources") {
		t.Errorf("content = %q", resp.Content)
	}

	// an unknown service falls back to the full catalog
	resp = s.ProviderResources("unknown")
	services, _ = resp.Metadata["services"].([]string)
	if len(services) != 7 {
		t.Errorf("fallback services = %v", services)
	}
}

func TestResourceDocumentation(t *testing.T) {
	s := testStore(t)

	resp := s.ResourceDocumentation("google_compute_instance")
	if !resp.OK() {
		t.Fatalf("expected success, got %q", resp.Content)
	}
	for _, fragment := range []string{"# google_compute_instance", "## Arguments", "## Example Usage"} {
		if !strings.Contains(resp.Content, fragment) {
			t.Errorf("content missing %q", fragment)
		}
	}

	// catalog-only resources fall back to the summary link
	resp = s.ResourceDocumentation("google_container_cluster")
	if !resp.OK() {
		t.Fatalf("expected success, got %q", resp.Content)
	}
	if !strings.Contains(resp.Content, "For detailed documentation, visit:") {
		t.Errorf("content = %q", resp.Content)
	}

	resp = s.ResourceDocumentation("google_nonexistent")
	if resp.OK() {
		t.Fatal("expected failure")
	}
	if resp.Content != "Resource documentation not found for: google_nonexistent" {
		t.Errorf("content = %q", resp.Content)
	}
}

func TestGenAIModules(t *testing.T) {
	s := testStore(t)

	resp := s.GenAIModules()
	if !resp.OK() {
		t.Fatalf("expected success, got %q", resp.Content)
	}
	if resp.Metadata["count"] != 4 {
		t.Errorf("count = %v", resp.Metadata["count"])
	}
	if !strings.Contains(resp.Content, "# GCP GenAI Terraform Modules") {
		t.Errorf("content = %q", resp.Content[:60])
	}
}

func TestModuleTemplates(t *testing.T) {
	s := testStore(t)

	vertex := s.VertexAIModule()
	if !vertex.OK() || !strings.Contains(vertex.Content, "vertex") {
		t.Errorf("vertex template = %q", vertex.Content[:60])
	}
	if vertex.Metadata["module_name"] != "vertex_ai" {
		t.Errorf("module_name = %v", vertex.Metadata["module_name"])
	}

	gke := s.GKEAIModule()
	if !gke.OK() || !strings.Contains(gke.Content, "gke") {
		t.Errorf("gke template = %q", gke.Content[:60])
	}
}
