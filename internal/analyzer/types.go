package analyzer

import (
	"github.com/Kamalesh-Seervi/gap-terraform-mcp-server/internal/response"
)

// VariableDescriptor describes one variable block discovered in a module's
// variables.tf. Optional fields stay empty when the source does not carry a
// single-line assignment for them.
type VariableDescriptor struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type,omitempty"`
	Default     string `json:"default,omitempty"`
}

// OutputDescriptor describes one output block from outputs.tf.
type OutputDescriptor struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Value       string `json:"value,omitempty"`
}

// ModuleData aggregates everything extracted from a materialized module, in
// first-occurrence source order.
type ModuleData struct {
	Inputs  []VariableDescriptor `json:"inputs"`
	Outputs []OutputDescriptor   `json:"outputs"`
	Readme  string               `json:"readme"`
}

// AnalysisResult is the outcome of one module analysis. Content and the
// structured fields are dual views of the same outcome.
type AnalysisResult struct {
	Success  bool
	Content  string
	ModuleID string
	Version  string
	Data     ModuleData

	// Err holds the failure message when Success is false.
	Err string
}

// Response converts the result into the shared content+metadata contract.
func (r *AnalysisResult) Response() *response.Response {
	if !r.Success {
		return response.Failure(r.Content, r.Err, nil)
	}
	return response.Success(r.Content, map[string]any{
		"module_id":   r.ModuleID,
		"version":     r.Version,
		"module_data": r.Data,
	})
}
