package dashboard

import (
	"github.com/ehr/dashboard/internal/domain/patient"
)

// Dashboard is everything the admin page renders, computed from one snapshot.
type Dashboard struct {
	Today           string     `json:"today"`
	Population      Population `json:"population"`
	Compliance      Compliance `json:"compliance"`
	Trend           Trend      `json:"trend"`
	Charts          []Series   `json:"charts"`
	InsightsHeading string     `json:"insights_heading"`
	Insights        []string   `json:"insights"`
}

// Compute runs every aggregation over c. It has no side effects; calling it
// twice with the same arguments yields equal results.
func Compute(c patient.Collection, today string, rules []Rule) *Dashboard {
	return &Dashboard{
		Today:           today,
		Population:      ComputePopulation(c),
		Compliance:      ComputeCompliance(c, today),
		Trend:           ComputeTrend(c),
		Charts:          Charts(c),
		InsightsHeading: InsightsHeading,
		Insights:        EvaluateInsights(c, rules),
	}
}
