//go:build windows

package snooper

// Windows has no process umask; permissions on shared trees are
// handled by ACLs there.
func relaxUmask() {}
