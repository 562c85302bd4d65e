//go:build windows

package runner

import "os/exec"

// configureProcAttrs is a no-op: there is no process group to signal, so
// cancellation kills only the direct child.
func configureProcAttrs(cmd *exec.Cmd) {}
