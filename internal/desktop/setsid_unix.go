//go:build !windows

package desktop

import "syscall"

// sessionAttr places the handler in its own session, detached from the
// overlay's controlling terminal.
func sessionAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setsid: true}
}
