//go:build windows

package decoder

import (
	"os/exec"
	"syscall"
)

// applyPlatformAttrs suppresses the decoder child's console window.
func applyPlatformAttrs(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{HideWindow: true}
}
