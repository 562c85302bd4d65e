//go:build unix

package runner

import (
	"os/exec"
	"syscall"
)

// configureProcAttrs puts the child in its own process group and signals the
// whole group on context cancellation. terraform spawns provider plugins as
// children; killing only the direct process would leave them running.
func configureProcAttrs(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
}
