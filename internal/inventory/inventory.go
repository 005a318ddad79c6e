// Package inventory enumerates the software modules linked into the
// running binary. A statically compiled program has no runtime module
// loader to introspect, so the build-time manifest embedded by the Go
// toolchain is the authoritative record of what this process carries.
package inventory

import (
	"runtime/debug"
)

// Collect returns the mapping of module path to origin for the main
// module and every dependency recorded in the binary's build info.
// The origin is the replace-directive target when one is in effect
// (typically a filesystem path for local replacements), otherwise the
// resolved version. Modules with no recorded origin at all are
// excluded, mirroring how interpreter-level inventories drop builtins
// with no backing file.
func Collect() map[string]string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return map[string]string{}
	}
	return fromBuildInfo(bi)
}

// GoVersion returns the toolchain version recorded in the binary, or
// empty when build info is unavailable.
func GoVersion() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	return bi.GoVersion
}

func fromBuildInfo(bi *debug.BuildInfo) map[string]string {
	out := make(map[string]string, len(bi.Deps)+1)
	if bi.Main.Path != "" {
		// The main module is always concretely present — it is the
		// binary itself — even when the toolchain records no version
		// for it (test binaries, plain go build from a worktree).
		o := origin(bi.Main)
		if o == "" {
			o = "(devel)"
		}
		out[bi.Main.Path] = o
	}
	for _, dep := range bi.Deps {
		if dep == nil || dep.Path == "" {
			continue
		}
		if o := origin(*dep); o != "" {
			out[dep.Path] = o
		}
	}
	return out
}

func origin(m debug.Module) string {
	if m.Replace != nil {
		r := m.Replace
		if r.Version != "" && r.Version != "(devel)" {
			return r.Path + "@" + r.Version
		}
		return r.Path
	}
	return m.Version
}
