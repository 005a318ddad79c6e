//go:build !windows

package snooper

import "syscall"

// relaxUmask drops the default mask to 0o002 so that directories and
// files created during collection stay group-writable. Later writers,
// possibly different users of the same shared job directory, must be
// able to create sibling files. The mask is intentionally not
// restored: the process is terminating.
func relaxUmask() {
	syscall.Umask(0o002)
}
