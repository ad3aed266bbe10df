//go:build !windows

package decoder

import "os/exec"

// applyPlatformAttrs is a no-op on non-Windows platforms: there is no
// equivalent console-window concern to suppress.
func applyPlatformAttrs(cmd *exec.Cmd) {}
