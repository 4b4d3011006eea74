package scoring

import "wellness-go/internal/models"

// ResolveBand returns the label of the first band whose Max is >= value.
// Bands must be ordered by ascending Max; a value above every threshold
// falls into the last band. ok is false only when bands is empty.
func ResolveBand(bands []models.Band, value float64) (label string, ok bool) {
	if len(bands) == 0 {
		return "", false
	}
	for _, b := range bands {
		if value <= b.Max {
			return b.Label, true
		}
	}
	return bands[len(bands)-1].Label, true
}
