package main

import (
	"fmt"
	"time"

	"wellness-go/internal/metrics"
	"wellness-go/internal/models"

	"github.com/spf13/cobra"
)

// --- wellnessctl streak ---

var streakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Compute check-in streaks from a mood export",
	RunE:  runStreak,
}

// --- wellnessctl timeline ---

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Merge an assessment history export into daily rows",
	RunE:  runTimeline,
}

func init() {
	streakCmd.Flags().String("moods", "", "JSON array of mood entries (required)")
	streakCmd.Flags().String("tz", "UTC", "IANA time zone used for day boundaries")
	streakCmd.Flags().String("now", "", "Evaluate as of this RFC 3339 time (default: now)")
	streakCmd.Flags().Int("heatmap-days", 0, "Also emit a heatmap of this many days")

	timelineCmd.Flags().String("history", "", "JSON array of assessment history entries (required)")
	timelineCmd.Flags().String("tz", "UTC", "IANA time zone used for day boundaries")

	rootCmd.AddCommand(streakCmd)
	rootCmd.AddCommand(timelineCmd)
}

func runStreak(cmd *cobra.Command, args []string) error {
	moodsPath, _ := cmd.Flags().GetString("moods")
	tz, _ := cmd.Flags().GetString("tz")
	nowFlag, _ := cmd.Flags().GetString("now")
	heatmapDays, _ := cmd.Flags().GetInt("heatmap-days")
	if moodsPath == "" {
		return fmt.Errorf("--moods is required")
	}

	loc, err := time.LoadLocation(tz)
	if err != nil {
		return fmt.Errorf("unknown time zone %q: %w", tz, err)
	}
	now := time.Now()
	if nowFlag != "" {
		if now, err = time.Parse(time.RFC3339, nowFlag); err != nil {
			return fmt.Errorf("--now: %w", err)
		}
	}
	now = now.In(loc)

	var moods []models.MoodEntry
	if err := readJSON(moodsPath, &moods); err != nil {
		return err
	}

	out := struct {
		Streak  models.StreakData     `json:"streak"`
		Heatmap []metrics.HeatmapCell `json:"heatmap,omitempty"`
	}{Streak: metrics.BuildStreakData(moods, now)}
	if heatmapDays > 0 {
		out.Heatmap = metrics.BuildHeatmap(moods, heatmapDays, now)
	}
	return writeJSON(cmd.OutOrStdout(), out)
}

func runTimeline(cmd *cobra.Command, args []string) error {
	historyPath, _ := cmd.Flags().GetString("history")
	tz, _ := cmd.Flags().GetString("tz")
	if historyPath == "" {
		return fmt.Errorf("--history is required")
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return fmt.Errorf("unknown time zone %q: %w", tz, err)
	}

	var history []models.AssessmentHistoryEntry
	if err := readJSON(historyPath, &history); err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), metrics.BuildTimeline(history, loc))
}
