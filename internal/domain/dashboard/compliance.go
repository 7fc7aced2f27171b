package dashboard

import (
	"math"
	"strconv"

	"github.com/ehr/dashboard/internal/domain/patient"
)

// DateLayout is the follow-up date format. Dates in this layout sort
// lexicographically in chronological order.
const DateLayout = "2006-01-02"

// UndefinedLabel is shown when no record has a follow-up date.
const UndefinedLabel = "n/a"

// Compliance is the share of scheduled follow-ups that are not yet overdue.
//
// When Scheduled is 0 the ratio is undefined: Defined is false, Percent is 0
// and Label is UndefinedLabel.
type Compliance struct {
	Today     string  `json:"today"`
	Scheduled int     `json:"scheduled"`
	OnTime    int     `json:"on_time"`
	Percent   float64 `json:"percent"`
	Defined   bool    `json:"defined"`
	Label     string  `json:"label"`
}

// ComputeCompliance counts records whose follow-up date is on or after today.
// today must be in DateLayout form; comparison is a plain string comparison.
func ComputeCompliance(c patient.Collection, today string) Compliance {
	res := Compliance{Today: today, Label: UndefinedLabel}

	for _, r := range c {
		if !r.HasFollowUp() {
			continue
		}
		res.Scheduled++
		if r.FollowUpDate >= today {
			res.OnTime++
		}
	}

	if res.Scheduled == 0 {
		return res
	}

	res.Defined = true
	res.Percent = roundTenth(float64(res.OnTime) / float64(res.Scheduled) * 100)
	res.Label = strconv.FormatFloat(res.Percent, 'f', 1, 64) + "%"
	return res
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
