package metrics

import (
	"strings"
	"time"

	"wellness-go/internal/models"
)

// moodScale maps check-in moods onto an ordinal 1-5 scale.
var moodScale = map[string]float64{
	"great":      5,
	"good":       4,
	"okay":       3,
	"struggling": 2,
	"anxious":    1,
}

// MoodScore returns the ordinal value of a mood label.
func MoodScore(mood string) (float64, bool) {
	v, ok := moodScale[strings.ToLower(strings.TrimSpace(mood))]
	return v, ok
}

// CurrentStreak counts the contiguous days, walking back from the most recent
// check-in. The streak is broken (0) when that check-in is more than the gap
// tolerance before today. Days are bucketed in now's location.
func CurrentStreak[T Timestamped](entries []T, now time.Time) int {
	loc := now.Location()
	days := dayBuckets(entries, loc)
	if len(days) == 0 {
		return 0
	}
	today := DayBucket(now, loc)
	if today.Sub(days[len(days)-1]) > gapTolerance {
		return 0
	}
	streak := 1
	for i := len(days) - 1; i > 0; i-- {
		if days[i].Sub(days[i-1]) > gapTolerance {
			break
		}
		streak++
	}
	return streak
}

// LongestStreak is the longest run of contiguous days ever observed.
func LongestStreak[T Timestamped](entries []T, loc *time.Location) int {
	days := dayBuckets(entries, loc)
	if len(days) == 0 {
		return 0
	}
	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i].Sub(days[i-1]) > gapTolerance {
			run = 1
			continue
		}
		run++
		if run > longest {
			longest = run
		}
	}
	return longest
}

// CountInRange counts distinct days with activity in the last `days` calendar
// days, today included.
func CountInRange[T Timestamped](entries []T, days int, now time.Time) int {
	if days <= 0 {
		return 0
	}
	loc := now.Location()
	today := DayBucket(now, loc)
	start := today.AddDate(0, 0, -(days - 1))
	count := 0
	for _, d := range dayBuckets(entries, loc) {
		if !d.Before(start) && !d.After(today) {
			count++
		}
	}
	return count
}

// AverageMoodScore is the mean ordinal mood. Unknown moods are ignored.
func AverageMoodScore(entries []models.MoodEntry) float64 {
	scores := make([]float64, 0, len(entries))
	for _, e := range entries {
		if v, ok := MoodScore(e.Mood); ok {
			scores = append(scores, v)
		}
	}
	return mean(scores)
}

// LastCheckInDate formats the day of the most recent entry as YYYY-MM-DD.
func LastCheckInDate[T Timestamped](entries []T, loc *time.Location) (string, bool) {
	if len(entries) == 0 {
		return "", false
	}
	latest := entries[0].Timestamp()
	for _, e := range entries[1:] {
		if ts := e.Timestamp(); ts.After(latest) {
			latest = ts
		}
	}
	return DayBucket(latest, loc).Format(dateLayout), true
}

// BuildStreakData derives the check-in summary from mood entries.
func BuildStreakData(entries []models.MoodEntry, now time.Time) models.StreakData {
	last, _ := LastCheckInDate(entries, now.Location())
	return models.StreakData{
		CurrentStreak:    CurrentStreak(entries, now),
		LongestStreak:    LongestStreak(entries, now.Location()),
		TotalCheckIns:    len(entries),
		ThisWeekCheckIns: CountInRange(entries, 7, now),
		LastCheckInDate:  last,
		AverageMood:      round2(AverageMoodScore(entries)),
	}
}

// HeatmapCell is one calendar day of activity.
type HeatmapCell struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
	Level int    `json:"level"`
}

const maxHeatmapLevel = 4

// BuildHeatmap returns one cell per calendar day of the last `days` days,
// oldest first. Level is the entry count capped at 4.
func BuildHeatmap[T Timestamped](entries []T, days int, now time.Time) []HeatmapCell {
	if days <= 0 {
		return []HeatmapCell{}
	}
	loc := now.Location()
	counts := make(map[string]int, len(entries))
	for _, e := range entries {
		counts[DayBucket(e.Timestamp(), loc).Format(dateLayout)]++
	}

	today := DayBucket(now, loc)
	cells := make([]HeatmapCell, 0, days)
	for i := days - 1; i >= 0; i-- {
		date := today.AddDate(0, 0, -i).Format(dateLayout)
		count := counts[date]
		cells = append(cells, HeatmapCell{
			Date:  date,
			Count: count,
			Level: min(count, maxHeatmapLevel),
		})
	}
	return cells
}
