package gc

import (
	"strconv"
	"strings"
	"time"

	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/ebterr"
)

// defaultExpireAgo is applied when prune_expire is empty/unspecified.
const defaultExpireAgo = 14 * 24 * time.Hour

var unitDurations = map[string]time.Duration{
	"second":  time.Second,
	"seconds": time.Second,
	"minute":  time.Minute,
	"minutes": time.Minute,
	"hour":    time.Hour,
	"hours":   time.Hour,
	"day":     24 * time.Hour,
	"days":    24 * time.Hour,
	"week":    7 * 24 * time.Hour,
	"weeks":   7 * 24 * time.Hour,
	"month":   30 * 24 * time.Hour,
	"months":  30 * 24 * time.Hour,
	"year":    365 * 24 * time.Hour,
	"years":   365 * 24 * time.Hour,
}

// ResolveExpiry parses prune_expire into an absolute cutoff time relative
// to now. "never" has no cutoff and is rejected as InvalidInput; callers
// check IsNever first and skip the sweep entirely. "now" expires
// everything unreferenced right away. "<N>.<unit>.ago" computes
// now - N*unit. An empty string defaults to two weeks ago.
func ResolveExpiry(pruneExpire string, now time.Time) (time.Time, error) {
	const op = "gc.ResolveExpiry"

	switch strings.TrimSpace(pruneExpire) {
	case "":
		return now.Add(-defaultExpireAgo), nil
	case "now":
		return now, nil
	}

	parts := strings.Split(pruneExpire, ".")
	if len(parts) != 3 || parts[2] != "ago" {
		return time.Time{}, ebterr.New(op, ebterr.KindInvalidInput,
			"prune_expire must be \"never\", \"now\", or \"<N>.<unit>.ago\": got "+pruneExpire)
	}

	n, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, ebterr.New(op, ebterr.KindInvalidInput, "invalid count in prune_expire: "+parts[0])
	}

	unit, ok := unitDurations[strings.ToLower(parts[1])]
	if !ok {
		return time.Time{}, ebterr.New(op, ebterr.KindInvalidInput, "unknown unit in prune_expire: "+parts[1])
	}

	return now.Add(-time.Duration(n) * unit), nil
}

// IsNever reports whether pruneExpire requests that the sweep be skipped
// entirely.
func IsNever(pruneExpire string) bool {
	return strings.TrimSpace(pruneExpire) == "never"
}
