package response

import "testing"

func TestSuccess(t *testing.T) {
	r := Success("done", map[string]any{"count": 2})

	if !r.OK() {
		t.Error("OK() = false")
	}
	if r.Content != "done" {
		t.Errorf("Content = %q", r.Content)
	}
	if r.Metadata["count"] != 2 {
		t.Errorf("count = %v", r.Metadata["count"])
	}
}

func TestSuccessNilMeta(t *testing.T) {
	r := Success("done", nil)
	if r.Metadata["success"] != true {
		t.Errorf("metadata = %v", r.Metadata)
	}
}

func TestFailure(t *testing.T) {
	r := Failure("it broke", "boom", nil)

	if r.OK() {
		t.Error("OK() = true")
	}
	if r.Metadata["error"] != "boom" {
		t.Errorf("error = %v", r.Metadata["error"])
	}
}
