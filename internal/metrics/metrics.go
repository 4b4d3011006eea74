// Package metrics derives consistency and progress signals from timestamped
// wellbeing events. Every function is pure; "today" always comes from the
// caller so results are reproducible.
package metrics

import (
	"math"
	"sort"
	"time"
)

// Timestamped is any event that happened at a point in time.
type Timestamped interface {
	Timestamp() time.Time
}

// gapTolerance treats consecutive calendar days as contiguous. Buckets are
// local midnights, so consecutive days are 23-25h apart and a skipped day
// is at least 47h.
const gapTolerance = 36 * time.Hour

const dateLayout = "2006-01-02"

// DayBucket truncates t to local midnight in loc.
func DayBucket(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// dayBuckets returns the distinct days holding at least one entry, oldest first.
func dayBuckets[T Timestamped](entries []T, loc *time.Location) []time.Time {
	seen := make(map[int64]time.Time, len(entries))
	for _, e := range entries {
		day := DayBucket(e.Timestamp(), loc)
		seen[day.Unix()] = day
	}
	days := make([]time.Time, 0, len(seen))
	for _, d := range seen {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

// FilterSince keeps the entries at or after since. A zero since keeps everything.
func FilterSince[T Timestamped](entries []T, since time.Time) []T {
	if since.IsZero() {
		return entries
	}
	out := make([]T, 0, len(entries))
	for _, e := range entries {
		if !e.Timestamp().Before(since) {
			out = append(out, e)
		}
	}
	return out
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
