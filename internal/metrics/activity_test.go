package metrics

import (
	"testing"
	"time"
	_ "time/tzdata"

	"wellness-go/internal/models"
)

func mood(t time.Time, m string) models.MoodEntry {
	return models.MoodEntry{Mood: m, CreatedAt: t}
}

func at(loc *time.Location, month time.Month, day, hour int) time.Time {
	return time.Date(2024, month, day, hour, 0, 0, 0, loc)
}

func TestStreakSkipsMissingDay(t *testing.T) {
	// 2024-03-04 is a Monday; Thursday the 7th is missing.
	loc := time.UTC
	entries := []models.MoodEntry{
		mood(at(loc, 3, 4, 9), "Good"),
		mood(at(loc, 3, 5, 22), "Okay"),
		mood(at(loc, 3, 6, 7), "Great"),
		mood(at(loc, 3, 8, 12), "Good"),
	}
	now := at(loc, 3, 8, 18)

	if got := CurrentStreak(entries, now); got != 1 {
		t.Fatalf("CurrentStreak=%d, want 1", got)
	}
	if got := LongestStreak(entries, loc); got != 3 {
		t.Fatalf("LongestStreak=%d, want 3", got)
	}
}

func TestCurrentStreak(t *testing.T) {
	loc := time.UTC
	entries := []models.MoodEntry{
		mood(at(loc, 3, 1, 23), "Good"),
		mood(at(loc, 3, 2, 1), "Good"),
		mood(at(loc, 3, 2, 20), "Good"),
		mood(at(loc, 3, 3, 6), "Good"),
	}
	cases := []struct {
		name string
		now  time.Time
		want int
	}{
		{"same day", at(loc, 3, 3, 22), 3},
		{"yesterday still counts", at(loc, 3, 4, 23), 3},
		{"two days ago breaks", at(loc, 3, 5, 0), 0},
	}
	for _, c := range cases {
		if got := CurrentStreak(entries, c.now); got != c.want {
			t.Fatalf("%s: CurrentStreak=%d, want %d", c.name, got, c.want)
		}
	}
	if got := CurrentStreak([]models.MoodEntry{}, at(loc, 3, 3, 0)); got != 0 {
		t.Fatalf("CurrentStreak(empty)=%d, want 0", got)
	}
}

func TestStreakAcrossDSTAndTimeZones(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("LoadLocation: %v", err)
	}
	// Clocks spring forward on 2024-03-10 in New York.
	entries := []models.MoodEntry{
		mood(at(ny, 3, 9, 23), "Good"),
		mood(at(ny, 3, 10, 8), "Good"),
		mood(at(ny, 3, 11, 7), "Good"),
	}
	now := at(ny, 3, 11, 20)
	if got := CurrentStreak(entries, now); got != 3 {
		t.Fatalf("CurrentStreak=%d, want 3", got)
	}
	// The same instants viewed from UTC land on 03-10, 03-10, 03-11.
	if got := CurrentStreak(entries, now.UTC()); got != 2 {
		t.Fatalf("CurrentStreak(UTC)=%d, want 2", got)
	}
}

func TestLongestStreak(t *testing.T) {
	loc := time.UTC
	entries := []models.MoodEntry{
		mood(at(loc, 1, 1, 9), "Good"),
		mood(at(loc, 1, 2, 9), "Good"),
		mood(at(loc, 1, 10, 9), "Good"),
		mood(at(loc, 1, 11, 9), "Good"),
		mood(at(loc, 1, 12, 9), "Good"),
		mood(at(loc, 1, 12, 21), "Good"),
		mood(at(loc, 1, 13, 9), "Good"),
		mood(at(loc, 1, 20, 9), "Good"),
	}
	if got := LongestStreak(entries, loc); got != 4 {
		t.Fatalf("LongestStreak=%d, want 4", got)
	}
	if got := LongestStreak([]models.MoodEntry{}, loc); got != 0 {
		t.Fatalf("LongestStreak(empty)=%d, want 0", got)
	}
}

func TestCountInRangeIsCalendarInclusive(t *testing.T) {
	loc := time.UTC
	now := at(loc, 5, 20, 8)
	entries := []models.MoodEntry{
		mood(at(loc, 5, 20, 7), "Good"),
		mood(at(loc, 5, 20, 1), "Okay"),
		mood(at(loc, 5, 14, 23), "Good"), // 6 days before today: inside
		mood(at(loc, 5, 13, 23), "Good"), // 7 days before today: outside
		mood(at(loc, 5, 21, 9), "Good"),  // tomorrow: outside
	}
	if got := CountInRange(entries, 7, now); got != 2 {
		t.Fatalf("CountInRange(7)=%d, want 2", got)
	}
	if got := CountInRange(entries, 1, now); got != 1 {
		t.Fatalf("CountInRange(1)=%d, want 1", got)
	}
	if got := CountInRange(entries, 0, now); got != 0 {
		t.Fatalf("CountInRange(0)=%d, want 0", got)
	}
}

func TestAverageMoodScore(t *testing.T) {
	now := time.Now()
	entries := []models.MoodEntry{
		mood(now, "Great"),
		mood(now, "Anxious"),
		mood(now, "okay"),
		mood(now, "Meh"),
	}
	if got := AverageMoodScore(entries); got != 3 {
		t.Fatalf("AverageMoodScore=%v, want 3", got)
	}
	if got := AverageMoodScore(nil); got != 0 {
		t.Fatalf("AverageMoodScore(nil)=%v, want 0", got)
	}
}

func TestLastCheckInDate(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	entries := []models.MoodEntry{
		mood(time.Date(2024, 6, 1, 20, 0, 0, 0, time.UTC), "Good"),
		mood(time.Date(2024, 5, 30, 8, 0, 0, 0, time.UTC), "Good"),
	}
	got, ok := LastCheckInDate(entries, loc)
	if !ok || got != "2024-06-02" {
		t.Fatalf("LastCheckInDate=%q,%v, want 2024-06-02", got, ok)
	}
	if _, ok := LastCheckInDate([]models.MoodEntry{}, loc); ok {
		t.Fatalf("LastCheckInDate(empty) ok=true")
	}
}

func TestBuildStreakData(t *testing.T) {
	loc := time.UTC
	entries := []models.MoodEntry{
		mood(at(loc, 3, 6, 9), "Great"),
		mood(at(loc, 3, 7, 9), "Good"),
		mood(at(loc, 3, 7, 19), "Struggling"),
	}
	got := BuildStreakData(entries, at(loc, 3, 8, 10))
	want := models.StreakData{
		CurrentStreak:    2,
		LongestStreak:    2,
		TotalCheckIns:    3,
		ThisWeekCheckIns: 2,
		LastCheckInDate:  "2024-03-07",
		AverageMood:      3.67,
	}
	if got != want {
		t.Fatalf("BuildStreakData=%+v, want %+v", got, want)
	}
}

func TestBuildHeatmap(t *testing.T) {
	loc := time.UTC
	now := at(loc, 3, 10, 12)
	entries := []models.MoodEntry{
		mood(at(loc, 3, 10, 1), "Good"),
		mood(at(loc, 3, 8, 1), "Good"),
		mood(at(loc, 3, 8, 2), "Good"),
		mood(at(loc, 3, 8, 3), "Good"),
		mood(at(loc, 3, 8, 4), "Good"),
		mood(at(loc, 3, 8, 5), "Good"),
		mood(at(loc, 2, 1, 5), "Good"),
	}
	cells := BuildHeatmap(entries, 3, now)
	if len(cells) != 3 {
		t.Fatalf("len=%d, want 3", len(cells))
	}
	want := []HeatmapCell{
		{Date: "2024-03-08", Count: 5, Level: 4},
		{Date: "2024-03-09", Count: 0, Level: 0},
		{Date: "2024-03-10", Count: 1, Level: 1},
	}
	for i := range want {
		if cells[i] != want[i] {
			t.Fatalf("cells[%d]=%+v, want %+v", i, cells[i], want[i])
		}
	}
}

func TestFilterSince(t *testing.T) {
	loc := time.UTC
	entries := []models.MoodEntry{
		mood(at(loc, 3, 1, 0), "Good"),
		mood(at(loc, 3, 5, 0), "Good"),
	}
	if got := FilterSince(entries, at(loc, 3, 3, 0)); len(got) != 1 {
		t.Fatalf("FilterSince len=%d, want 1", len(got))
	}
	if got := FilterSince(entries, time.Time{}); len(got) != 2 {
		t.Fatalf("FilterSince(zero) len=%d, want 2", len(got))
	}
}
