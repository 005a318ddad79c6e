package rank

import (
	"errors"
	"testing"
)

type fakeDetector struct {
	initialized bool
	finalized   bool
	rank        int
	err         error
	panics      bool
}

func (f fakeDetector) Initialized() bool { return f.initialized }
func (f fakeDetector) Finalized() bool   { return f.finalized }
func (f fakeDetector) Rank() (int, error) {
	if f.panics {
		panic("runtime torn down")
	}
	return f.rank, f.err
}

func TestIsNonzero(t *testing.T) {
	cases := []struct {
		name string
		d    Detector
		want bool
	}{
		{"nil detector", nil, false},
		{"uninitialized", fakeDetector{initialized: false}, false},
		{"finalized", fakeDetector{initialized: true, finalized: true, rank: 3}, false},
		{"rank zero", fakeDetector{initialized: true, rank: 0}, false},
		{"rank nonzero", fakeDetector{initialized: true, rank: 3}, true},
		{"query error", fakeDetector{initialized: true, err: errors.New("boom")}, false},
		{"panicking detector", fakeDetector{initialized: true, panics: true}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsNonzero(tc.d); got != tc.want {
				t.Fatalf("IsNonzero = %v, want %v", got, tc.want)
			}
		})
	}
}

func envWith(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestEnvDetectorAbsent(t *testing.T) {
	d := EnvDetector{Lookup: envWith(nil)}
	if d.Initialized() {
		t.Fatal("no launcher variables means uninitialized")
	}
	if IsNonzero(d) {
		t.Fatal("absent runtime must not suppress logging")
	}
}

func TestEnvDetectorRankVariants(t *testing.T) {
	for _, v := range []string{"PMI_RANK", "PMIX_RANK", "OMPI_COMM_WORLD_RANK", "SLURM_PROCID", "PALS_RANKID"} {
		d := EnvDetector{Lookup: envWith(map[string]string{v: "2"})}
		if !d.Initialized() {
			t.Errorf("%s present should count as initialized", v)
		}
		if !IsNonzero(d) {
			t.Errorf("%s=2 should suppress", v)
		}
	}
}

func TestEnvDetectorRankZero(t *testing.T) {
	d := EnvDetector{Lookup: envWith(map[string]string{"PMI_RANK": "0"})}
	if IsNonzero(d) {
		t.Fatal("rank 0 must not suppress")
	}
}

func TestEnvDetectorGarbageRank(t *testing.T) {
	d := EnvDetector{Lookup: envWith(map[string]string{"PMI_RANK": "not-a-number"})}
	if IsNonzero(d) {
		t.Fatal("unparseable rank must be treated as rank 0")
	}
}
