package dashboard

import (
	"sort"

	"github.com/ehr/dashboard/internal/domain/patient"
)

// Trend is the number of follow-ups scheduled per date. Dates and Counts are
// aligned by index; Dates is strictly ascending.
type Trend struct {
	Dates  []string `json:"dates"`
	Counts []int    `json:"counts"`
}

// ComputeTrend groups records by follow-up date. Records without a date are
// skipped.
func ComputeTrend(c patient.Collection) Trend {
	perDate := make(map[string]int)
	for _, r := range c {
		if r.HasFollowUp() {
			perDate[r.FollowUpDate]++
		}
	}

	t := Trend{
		Dates:  make([]string, 0, len(perDate)),
		Counts: make([]int, 0, len(perDate)),
	}
	for d := range perDate {
		t.Dates = append(t.Dates, d)
	}
	sort.Strings(t.Dates)
	for _, d := range t.Dates {
		t.Counts = append(t.Counts, perDate[d])
	}
	return t
}
