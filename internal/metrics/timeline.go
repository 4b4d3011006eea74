package metrics

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"wellness-go/internal/models"
	"wellness-go/internal/scoring"
)

// TimelineRow holds one day of assessment scores. It serializes flat:
// {"date": ..., "<type>": score, ..., "overall": mean}.
type TimelineRow struct {
	Date    string
	Scores  map[string]float64
	Overall float64
}

func (r TimelineRow) MarshalJSON() ([]byte, error) {
	flat := make(map[string]any, len(r.Scores)+2)
	for k, v := range r.Scores {
		flat[k] = v
	}
	flat["date"] = r.Date
	flat["overall"] = r.Overall
	return json.Marshal(flat)
}

func (r *TimelineRow) UnmarshalJSON(data []byte) error {
	var flat map[string]json.RawMessage
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}
	*r = TimelineRow{Scores: make(map[string]float64, len(flat))}
	for k, raw := range flat {
		var err error
		switch k {
		case "date":
			err = json.Unmarshal(raw, &r.Date)
		case "overall":
			err = json.Unmarshal(raw, &r.Overall)
		default:
			var v float64
			if err = json.Unmarshal(raw, &v); err == nil {
				r.Scores[k] = v
			}
		}
		if err != nil {
			return fmt.Errorf("timeline row key %q: %w", k, err)
		}
	}
	return nil
}

// sortedHistory returns a copy of history ordered by completion time.
func sortedHistory(history []models.AssessmentHistoryEntry) []models.AssessmentHistoryEntry {
	sorted := make([]models.AssessmentHistoryEntry, len(history))
	copy(sorted, history)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CompletedAt.Before(sorted[j].CompletedAt)
	})
	return sorted
}

// BuildTimeline merges completions of every assessment type into one row per
// calendar day. A later completion of the same type on the same day replaces
// the earlier one, and Overall is the mean of the types present that day.
func BuildTimeline(history []models.AssessmentHistoryEntry, loc *time.Location) []TimelineRow {
	byDate := make(map[string]*TimelineRow)
	for _, entry := range sortedHistory(history) {
		date := DayBucket(entry.CompletedAt, loc).Format(dateLayout)
		row, ok := byDate[date]
		if !ok {
			row = &TimelineRow{Date: date, Scores: make(map[string]float64)}
			byDate[date] = row
		}
		row.Scores[scoring.NormalizeType(entry.AssessmentType)] = entry.Score
	}

	rows := make([]TimelineRow, 0, len(byDate))
	for _, row := range byDate {
		values := make([]float64, 0, len(row.Scores))
		for _, v := range row.Scores {
			values = append(values, v)
		}
		row.Overall = mean(values)
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date < rows[j].Date })
	return rows
}

// TimelineTypes lists the assessment types present in rows, sorted.
func TimelineTypes(rows []TimelineRow) []string {
	seen := make(map[string]bool)
	for _, r := range rows {
		for k := range r.Scores {
			seen[k] = true
		}
	}
	types := make([]string, 0, len(seen))
	for k := range seen {
		types = append(types, k)
	}
	sort.Strings(types)
	return types
}
