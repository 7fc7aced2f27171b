package dashboard

import (
	"fmt"
	"strconv"

	"github.com/ehr/dashboard/internal/domain/patient"
)

// Gender labels counted by the ratio card. Any other value is left out of the
// label but still shows up in the gender chart.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
)

// Population holds the headline counters of the dashboard.
type Population struct {
	TotalCount       int     `json:"total_count"`
	AverageAge       float64 `json:"average_age"`
	AverageAgeLabel  string  `json:"average_age_label"`
	MaleCount        int     `json:"male_count"`
	FemaleCount      int     `json:"female_count"`
	GenderRatioLabel string  `json:"gender_ratio_label"`
}

// ComputePopulation derives total count, mean age and the Male:Female label.
// The average age of an empty collection is 0.
func ComputePopulation(c patient.Collection) Population {
	p := Population{TotalCount: len(c)}

	if len(c) > 0 {
		sum := 0
		for _, r := range c {
			sum += r.Age
		}
		p.AverageAge = float64(sum) / float64(len(c))
	}
	p.AverageAgeLabel = strconv.FormatFloat(roundTenth(p.AverageAge), 'f', 1, 64)

	for _, row := range Frequency(c.Genders()) {
		switch row.Category {
		case GenderMale:
			p.MaleCount = row.Count
		case GenderFemale:
			p.FemaleCount = row.Count
		}
	}
	p.GenderRatioLabel = GenderRatioLabel(p.MaleCount, p.FemaleCount)
	return p
}

// GenderRatioLabel renders the fixed "Male:Female = m:f" card text.
func GenderRatioLabel(male, female int) string {
	return fmt.Sprintf("Male:Female = %d:%d", male, female)
}
