// Package rank decides whether this process is a secondary rank of a
// multi-process parallel job. Only rank zero of a job emits a record;
// every other rank would produce a near-duplicate.
package rank

import (
	"os"
	"strconv"
)

// Detector is an optional capability: a parallel runtime that may or
// may not be present in the host process. All three query methods must
// be safe to call in any state.
type Detector interface {
	// Initialized reports whether the runtime has been set up.
	Initialized() bool
	// Finalized reports whether the runtime has already been torn down.
	Finalized() bool
	// Rank returns this process's ordinal within the default
	// communicator. Only meaningful when Initialized && !Finalized.
	Rank() (int, error)
}

// rankVars are checked in order. Parallel launchers disagree on the
// variable name; the first one present wins.
var rankVars = []string{
	"PMI_RANK",
	"PMIX_RANK",
	"OMPI_COMM_WORLD_RANK",
	"SLURM_PROCID",
	"PALS_RANKID",
}

// EnvDetector reads the per-process rank that parallel launchers
// export into the environment. It is the default Detector: a launcher
// that set none of the known variables means this is not a parallel
// job.
type EnvDetector struct {
	// Lookup overrides os.LookupEnv, for tests.
	Lookup func(string) (string, bool)
}

func (d EnvDetector) lookup(name string) (string, bool) {
	if d.Lookup != nil {
		return d.Lookup(name)
	}
	return os.LookupEnv(name)
}

func (d EnvDetector) Initialized() bool {
	for _, v := range rankVars {
		if _, ok := d.lookup(v); ok {
			return true
		}
	}
	return false
}

// Finalized always reports false: environment variables outlive the
// launcher handshake, and treating them as live is the conservative
// reading for suppression purposes.
func (d EnvDetector) Finalized() bool { return false }

func (d EnvDetector) Rank() (int, error) {
	for _, v := range rankVars {
		if s, ok := d.lookup(v); ok {
			return strconv.Atoi(s)
		}
	}
	return 0, nil
}

// IsNonzero reports whether d identifies this process as a secondary
// rank of an initialized, non-finalized parallel job. Every failure
// path answers false: absent runtime, uninitialized, finalized, query
// error, even a panicking detector. A wrong "false" costs one
// redundant record; a wrong "true" loses the job's record entirely.
func IsNonzero(d Detector) (nonzero bool) {
	defer func() {
		if recover() != nil {
			nonzero = false
		}
	}()
	if d == nil {
		return false
	}
	if d.Finalized() {
		return false
	}
	if !d.Initialized() {
		return false
	}
	r, err := d.Rank()
	if err != nil {
		return false
	}
	return r > 0
}
