package tools

import (
	"fmt"
	"math"

	"github.com/skillmorph/assistant-go/internal/models"
)

// CourseSummary is a catalog course as presented to the reasoning step:
// identical to the stored row except the duration is a human-readable string.
type CourseSummary struct {
	Title       string   `json:"title"`
	Category    string   `json:"category"`
	Price       *float64 `json:"price"`
	Duration    string   `json:"duration"`
	Description string   `json:"description"`
	Instructor  string   `json:"instructor"`
}

// FormatDuration converts integer seconds into a fixed-granularity human
// string: hours to one decimal above an hour, whole minutes above a minute,
// raw seconds below that. Applied exactly once, server side; the model is
// told never to re-convert it.
func FormatDuration(seconds int64) string {
	switch {
	case seconds >= 3600:
		return fmt.Sprintf("%.1f hours", float64(seconds)/3600)
	case seconds >= 60:
		return fmt.Sprintf("%d minutes", int64(math.Round(float64(seconds)/60)))
	default:
		return fmt.Sprintf("%d seconds", seconds)
	}
}

// summarizeCourses converts stored rows into presentation summaries.
func summarizeCourses(courses []models.Course) []CourseSummary {
	summaries := make([]CourseSummary, 0, len(courses))
	for _, c := range courses {
		summaries = append(summaries, CourseSummary{
			Title:       c.Title,
			Category:    c.Category,
			Price:       c.Price,
			Duration:    FormatDuration(c.DurationSeconds),
			Description: c.Description,
			Instructor:  c.Instructor,
		})
	}
	return summaries
}
