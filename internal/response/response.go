// Package response defines the result contract shared by every tool handler:
// human-readable content plus a structured metadata record. The tool layer
// converts these into MCP call results without inspecting domain types.
package response

// Response carries the rendered text and structured metadata for one tool
// invocation. Metadata always contains a "success" entry.
type Response struct {
	Content  string
	Metadata map[string]any
}

// Success builds a successful response. The meta map may be nil.
func Success(content string, meta map[string]any) *Response {
	if meta == nil {
		meta = make(map[string]any)
	}
	meta["success"] = true
	return &Response{Content: content, Metadata: meta}
}

// Failure builds a failed response. The error message is recorded in
// metadata under "error"; meta may be nil.
func Failure(content, errMsg string, meta map[string]any) *Response {
	if meta == nil {
		meta = make(map[string]any)
	}
	meta["success"] = false
	meta["error"] = errMsg
	return &Response{Content: content, Metadata: meta}
}

// OK reports whether the response represents a successful invocation.
func (r *Response) OK() bool {
	ok, _ := r.Metadata["success"].(bool)
	return ok
}
