package snooper

import (
	"fmt"
	"path/filepath"
	"strconv"
	"time"
)

// subsecondFormat renders time-of-day with microsecond precision. The
// microseconds are the tie-breaker that keeps filenames unique when
// many processes start within the same second on one host.
const subsecondFormat = "15.04.05.000000"

// destDir is <root>/<year>/<month>/<day>/<jobid>. Date components are
// numeric and unpadded ("2024/3/1", not "2024/03/01") — external
// analysis tooling depends on this exact layout.
func (s *Snooper) destDir(now time.Time) string {
	return filepath.Join(
		s.cfg.LogRoot,
		strconv.Itoa(now.Year()),
		strconv.Itoa(int(now.Month())),
		strconv.Itoa(now.Day()),
		s.cfg.JobID(),
	)
}

// fileName is <hostname>.<pid>.<HH.MM.SS.microseconds>.
func fileName(hostname string, pid int, now time.Time) string {
	return fmt.Sprintf("%s.%d.%s", hostname, pid, now.Format(subsecondFormat))
}
