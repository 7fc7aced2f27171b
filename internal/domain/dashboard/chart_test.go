package dashboard

import (
	"reflect"
	"testing"

	"github.com/ehr/dashboard/internal/domain/patient"
)

func TestCharts_LabelsAndValuesAligned(t *testing.T) {
	for _, c := range []patient.Collection{nil, sampleRecords()} {
		charts := Charts(c)
		if len(charts) != len(ChartNames()) {
			t.Fatalf("expected %d charts, got %d", len(ChartNames()), len(charts))
		}
		for i, s := range charts {
			if s.Name != ChartNames()[i] {
				t.Errorf("chart %d: expected %s, got %s", i, ChartNames()[i], s.Name)
			}
			if len(s.Labels) != len(s.Values) {
				t.Errorf("chart %s: %d labels vs %d values", s.Name, len(s.Labels), len(s.Values))
			}
		}
	}
}

func TestAgeSeries(t *testing.T) {
	s := AgeSeries(sampleRecords())
	if !reflect.DeepEqual(s.Labels, []string{"Alice", "Bob", "Cara", "Dev"}) {
		t.Errorf("unexpected labels %v", s.Labels)
	}
	if !reflect.DeepEqual(s.Values, []float64{30, 50, 40, 25}) {
		t.Errorf("unexpected values %v", s.Values)
	}
	if s.Kind != KindBar {
		t.Errorf("expected bar, got %s", s.Kind)
	}
}

func TestGenderSeries_OpenCategories(t *testing.T) {
	s := GenderSeries(sampleRecords())
	if !reflect.DeepEqual(s.Labels, []string{"Female", "Male", "Non-binary"}) {
		t.Errorf("unexpected labels %v", s.Labels)
	}
	if !reflect.DeepEqual(s.Values, []float64{2, 1, 1}) {
		t.Errorf("unexpected values %v", s.Values)
	}
}

func TestDiagnosisAndMedicationSeries(t *testing.T) {
	d := DiagnosisSeries(sampleRecords())
	if d.Labels[0] != "Hypertension" || d.Values[0] != 2 {
		t.Errorf("expected Hypertension=2 first, got %v %v", d.Labels, d.Values)
	}
	m := MedicationSeries(sampleRecords())
	if m.Kind != KindDoughnut || m.Labels[0] != "Lisinopril" {
		t.Errorf("unexpected medication series %+v", m)
	}
}

func TestFollowUpSeries(t *testing.T) {
	s := FollowUpSeries(sampleRecords())
	if !reflect.DeepEqual(s.Labels, []string{"2024-05-01", "2024-07-01"}) {
		t.Errorf("unexpected labels %v", s.Labels)
	}
	if !reflect.DeepEqual(s.Values, []float64{1, 2}) {
		t.Errorf("unexpected values %v", s.Values)
	}
}

func TestChartByName(t *testing.T) {
	charts := Charts(sampleRecords())
	s, ok := ChartByName(charts, ChartMedication)
	if !ok || s.Name != ChartMedication {
		t.Fatalf("expected medication chart, got %+v ok=%v", s, ok)
	}
	if _, ok := ChartByName(charts, "heatmap"); ok {
		t.Error("expected unknown chart to be reported")
	}
}
