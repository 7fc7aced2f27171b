package dashboard

import (
	"github.com/ehr/dashboard/internal/domain/patient"
)

// Chart kinds understood by the dashboard front end.
const (
	KindBar      = "bar"
	KindPie      = "pie"
	KindDoughnut = "doughnut"
	KindLine     = "line"
)

// Chart names, also used as the :name path segment.
const (
	ChartAge        = "age"
	ChartGender     = "gender"
	ChartDiagnosis  = "diagnosis"
	ChartMedication = "medication"
	ChartFollowUp   = "followup"
)

// Series is the render contract for one chart: Labels and Values always have
// the same length.
type Series struct {
	Name   string    `json:"name"`
	Kind   string    `json:"kind"`
	Title  string    `json:"title"`
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// Len returns the number of points in the series.
func (s Series) Len() int { return len(s.Labels) }

// SeriesFromFrequency converts a frequency table into a chart series,
// preserving row order.
func SeriesFromFrequency(name, kind, title string, rows []CategoryCount) Series {
	s := Series{
		Name:   name,
		Kind:   kind,
		Title:  title,
		Labels: make([]string, len(rows)),
		Values: make([]float64, len(rows)),
	}
	for i, row := range rows {
		s.Labels[i] = row.Category
		s.Values[i] = float64(row.Count)
	}
	return s
}

// AgeSeries plots each patient's age in record order.
func AgeSeries(c patient.Collection) Series {
	s := Series{
		Name:   ChartAge,
		Kind:   KindBar,
		Title:  "Age",
		Labels: c.Names(),
		Values: make([]float64, len(c)),
	}
	for i, age := range c.Ages() {
		s.Values[i] = float64(age)
	}
	return s
}

func GenderSeries(c patient.Collection) Series {
	return SeriesFromFrequency(ChartGender, KindPie, "Gender Distribution", Frequency(c.Genders()))
}

func DiagnosisSeries(c patient.Collection) Series {
	return SeriesFromFrequency(ChartDiagnosis, KindBar, "Diagnosis Count", Frequency(c.Diagnoses()))
}

func MedicationSeries(c patient.Collection) Series {
	return SeriesFromFrequency(ChartMedication, KindDoughnut, "Medication Trends", Frequency(c.Medications()))
}

// FollowUpSeries plots the number of follow-ups per scheduled date.
func FollowUpSeries(c patient.Collection) Series {
	t := ComputeTrend(c)
	s := Series{
		Name:   ChartFollowUp,
		Kind:   KindLine,
		Title:  "Follow-Up Compliance",
		Labels: t.Dates,
		Values: make([]float64, len(t.Counts)),
	}
	for i, n := range t.Counts {
		s.Values[i] = float64(n)
	}
	return s
}

var chartBuilders = []struct {
	name  string
	build func(patient.Collection) Series
}{
	{ChartAge, AgeSeries},
	{ChartGender, GenderSeries},
	{ChartDiagnosis, DiagnosisSeries},
	{ChartMedication, MedicationSeries},
	{ChartFollowUp, FollowUpSeries},
}

// ChartNames lists the available charts in display order.
func ChartNames() []string {
	names := make([]string, len(chartBuilders))
	for i, b := range chartBuilders {
		names[i] = b.name
	}
	return names
}

// Charts builds every chart in display order.
func Charts(c patient.Collection) []Series {
	out := make([]Series, 0, len(chartBuilders))
	for _, b := range chartBuilders {
		out = append(out, b.build(c))
	}
	return out
}

// ChartByName picks one chart out of charts. The second result is false for
// an unknown name.
func ChartByName(charts []Series, name string) (Series, bool) {
	for _, s := range charts {
		if s.Name == name {
			return s, true
		}
	}
	return Series{}, false
}
