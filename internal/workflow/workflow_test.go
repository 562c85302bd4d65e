package workflow

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/Kamalesh-Seervi/gap-terraform-mcp-server/internal/runner"
	"github.com/Kamalesh-Seervi/gap-terraform-mcp-server/internal/testdata"
)

func testOps(run runner.Runner) *Ops {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return New(run, "terraform", logger)
}

func TestGuide(t *testing.T) {
	resp := testOps(&testdata.RecordingRunner{}).Guide()

	if !resp.OK() {
		t.Fatal("expected success")
	}
	if !strings.Contains(resp.Content, "Security-First") {
		t.Errorf("guide content missing expected heading: %q", resp.Content[:80])
	}
	steps, ok := resp.Metadata["workflow_steps"].([]string)
	if !ok || len(steps) != 9 {
		t.Errorf("workflow_steps = %v", resp.Metadata["workflow_steps"])
	}
}

func TestInit(t *testing.T) {
	run := &testdata.RecordingRunner{
		Result: &runner.Result{Stdout: "Terraform has been successfully initialized!"},
	}
	resp := testOps(run).Init(context.Background(), "/work/project")

	if !resp.OK() {
		t.Fatalf("expected success, got %q", resp.Content)
	}
	if len(run.Calls) != 1 {
		t.Fatalf("calls = %d", len(run.Calls))
	}
	call := run.Calls[0]
	if call.Dir != "/work/project" || call.Name != "terraform" {
		t.Errorf("call = %+v", call)
	}
	if len(call.Args) != 1 || call.Args[0] != "init" {
		t.Errorf("args = %v", call.Args)
	}
	if resp.Metadata["command"] != "terraform init" {
		t.Errorf("command = %v", resp.Metadata["command"])
	}
	if !strings.Contains(resp.Content, "initialized successfully in /work/project") {
		t.Errorf("content = %q", resp.Content)
	}
}

func TestInitFailure(t *testing.T) {
	run := &testdata.RecordingRunner{
		Result: &runner.Result{ExitCode: 1, Stderr: "Error: no configuration files"},
	}
	resp := testOps(run).Init(context.Background(), "/work/project")

	if resp.OK() {
		t.Fatal("expected failure")
	}
	if !strings.Contains(resp.Content, "Error initializing Terraform project: Error: no configuration files") {
		t.Errorf("content = %q", resp.Content)
	}
}

func TestValidateRunsFmtFirst(t *testing.T) {
	run := &testdata.RecordingRunner{
		Result: &runner.Result{Stdout: `{"valid": true, "diagnostics": []}`},
	}
	resp := testOps(run).Validate(context.Background(), "/work/project")

	if !resp.OK() {
		t.Fatalf("expected success, got %q", resp.Content)
	}
	if len(run.Calls) != 2 {
		t.Fatalf("calls = %d", len(run.Calls))
	}
	if got := run.Calls[0].Args; len(got) != 2 || got[0] != "fmt" || got[1] != "-recursive" {
		t.Errorf("first call args = %v", got)
	}
	if got := run.Calls[1].Args; len(got) != 2 || got[0] != "validate" || got[1] != "-json" {
		t.Errorf("second call args = %v", got)
	}
	if resp.Content != "Terraform configuration is valid." {
		t.Errorf("content = %q", resp.Content)
	}
}

func TestValidateReportsDiagnostics(t *testing.T) {
	out := `{"valid": false, "diagnostics": [
		{"severity": "error", "summary": "Unsupported argument",
		 "detail": "An argument named \"nme\" is not expected here.",
		 "range": {"filename": "main.tf"}},
		{"severity": "warning", "summary": "Deprecated", "detail": "ignore me"}
	]}`
	run := &testdata.RecordingRunner{Result: &runner.Result{ExitCode: 1, Stdout: out}}
	resp := testOps(run).Validate(context.Background(), "/work/project")

	if resp.OK() {
		t.Fatal("expected failure")
	}
	want := `- Unsupported argument in main.tf: An argument named "nme" is not expected here.`
	if !strings.Contains(resp.Content, want) {
		t.Errorf("content = %q", resp.Content)
	}
	if strings.Contains(resp.Content, "Deprecated") {
		t.Error("warnings must not be listed as errors")
	}
}

func TestPlanSortsVariables(t *testing.T) {
	run := &testdata.RecordingRunner{
		Result: &runner.Result{Stdout: "...\nPlan: 2 to add, 0 to change, 0 to destroy.\n"},
	}
	resp := testOps(run).Plan(context.Background(), "/work/project", map[string]string{
		"zone":    "us-central1-a",
		"project": "demo",
		"region":  "us-central1",
	})

	if !resp.OK() {
		t.Fatalf("expected success, got %q", resp.Content)
	}
	want := []string{"plan", "-out=tfplan", "-var=project=demo", "-var=region=us-central1", "-var=zone=us-central1-a"}
	got := run.Calls[0].Args
	if len(got) != len(want) {
		t.Fatalf("args = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("args[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if resp.Metadata["plan_file"] != filepath.Join("/work/project", "tfplan") {
		t.Errorf("plan_file = %v", resp.Metadata["plan_file"])
	}
	if !strings.Contains(resp.Content, "## Plan Summary") {
		t.Errorf("content = %q", resp.Content)
	}
}

func TestApplyRequiresPlanFile(t *testing.T) {
	run := &testdata.RecordingRunner{}
	resp := testOps(run).Apply(context.Background(), t.TempDir(), "")

	if resp.OK() {
		t.Fatal("expected failure")
	}
	if resp.Content != "Error: Plan file tfplan not found. Run terraform plan first." {
		t.Errorf("content = %q", resp.Content)
	}
	if len(run.Calls) != 0 {
		t.Errorf("apply must not run without a plan file, calls = %v", run.Calls)
	}
}

func TestApply(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "custom.tfplan"), []byte("plan"), 0o644); err != nil {
		t.Fatal(err)
	}

	run := &testdata.RecordingRunner{
		Result: &runner.Result{Stdout: "Apply complete! Resources: 2 added."},
	}
	resp := testOps(run).Apply(context.Background(), dir, "custom.tfplan")

	if !resp.OK() {
		t.Fatalf("expected success, got %q", resp.Content)
	}
	if got := run.Calls[0].Args; len(got) != 2 || got[0] != "apply" || got[1] != "custom.tfplan" {
		t.Errorf("args = %v", got)
	}
	if !strings.Contains(resp.Content, "Terraform plan applied successfully.") {
		t.Errorf("content = %q", resp.Content)
	}
}

func TestDestroy(t *testing.T) {
	run := &testdata.RecordingRunner{
		Result: &runner.Result{Stdout: "Destroy complete! Resources: 2 destroyed."},
	}
	resp := testOps(run).Destroy(context.Background(), "/work/project", map[string]string{"region": "us-central1"})

	if !resp.OK() {
		t.Fatalf("expected success, got %q", resp.Content)
	}
	want := []string{"destroy", "-auto-approve", "-var=region=us-central1"}
	got := run.Calls[0].Args
	if len(got) != len(want) {
		t.Fatalf("args = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("args[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestParseValidateOutput(t *testing.T) {
	tests := []struct {
		name      string
		out       string
		wantValid bool
		wantErrs  string
	}{
		{
			name:      "valid",
			out:       `{"valid": true, "diagnostics": []}`,
			wantValid: true,
		},
		{
			name:      "unparsable",
			out:       "not json",
			wantValid: false,
			wantErrs:  "Could not parse validation output.",
		},
		{
			name:      "invalid without error diagnostics",
			out:       `{"valid": false, "diagnostics": []}`,
			wantValid: false,
			wantErrs:  "No validation errors found.",
		},
		{
			name: "error without range",
			out: `{"valid": false, "diagnostics": [
				{"severity": "error", "summary": "Missing block", "detail": "A provider block is required."}]}`,
			wantValid: false,
			wantErrs:  "- Missing block: A provider block is required.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, errs := parseValidateOutput(tt.out)
			if valid != tt.wantValid {
				t.Errorf("valid = %v, want %v", valid, tt.wantValid)
			}
			if errs != tt.wantErrs {
				t.Errorf("errs = %q, want %q", errs, tt.wantErrs)
			}
		})
	}
}

func TestFormatPlanOutput(t *testing.T) {
	raw := "Refreshing state...\n\nTerraform will perform the following actions:\n\nPlan: 1 to add, 0 to change, 0 to destroy.\nNote: saved plan to tfplan"
	got := formatPlanOutput(raw)

	if !strings.HasPrefix(got, "# Terraform Plan\n\n") {
		t.Errorf("missing header: %q", got)
	}
	if !strings.Contains(got, "## Plan Summary") {
		t.Errorf("missing summary marker: %q", got)
	}
	if strings.Contains(got, "Refreshing state") {
		t.Error("pre-summary noise must be dropped")
	}
	if !strings.Contains(got, "Plan: 1 to add, 0 to change, 0 to destroy.") {
		t.Errorf("summary line lost: %q", got)
	}

	noSummary := "Error output with no summary line"
	if got := formatPlanOutput(noSummary); got != "# Terraform Plan\n\n"+noSummary {
		t.Errorf("passthrough = %q", got)
	}
}
