package env

import (
	"os"
	"strings"
)

// Var is a K->V environment mapping.
type Var map[string]string

// FilterPrefix returns every variable from environ whose key starts with
// prefix. environ entries are "K=V" strings as returned by os.Environ().
// Malformed entries and empty keys are skipped.
func FilterPrefix(environ []string, prefix string) Var {
	out := make(Var)
	if prefix == "" {
		return out
	}
	for _, kv := range environ {
		i := strings.IndexByte(kv, '=')
		if i <= 0 {
			continue
		}
		k := kv[:i]
		if strings.HasPrefix(k, prefix) {
			out[k] = kv[i+1:]
		}
	}
	return out
}

// Truthy reports whether an environment value counts as "set".
// Any non-empty value enables the toggle except the conventional
// negatives ("0", "false", "no", "off", case-insensitive).
func Truthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "0", "false", "no", "off":
		return false
	}
	return true
}

// LookupTruthy reports whether the named variable is present with a
// truthy value in the process environment.
func LookupTruthy(name string) bool {
	v, ok := os.LookupEnv(name)
	return ok && Truthy(v)
}
