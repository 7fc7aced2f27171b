package patient

import (
	"encoding/json"
	"testing"
)

func TestPatientRecord_JSONFieldNames(t *testing.T) {
	raw := `{"name":"Ana","age":41,"gender":"Female","diagnosis":"Hypertension, Diabetes","medication":"Metformin","followUpDate":"2024-06-01"}`
	var r PatientRecord
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Name != "Ana" || r.Age != 41 || r.Gender != "Female" {
		t.Errorf("unexpected record: %+v", r)
	}
	if r.Diagnosis != "Hypertension, Diabetes" {
		t.Errorf("expected diagnosis preserved verbatim, got %q", r.Diagnosis)
	}
	if r.FollowUpDate != "2024-06-01" {
		t.Errorf("expected followUpDate 2024-06-01, got %q", r.FollowUpDate)
	}
}

func TestPatientRecord_HasFollowUp(t *testing.T) {
	var r PatientRecord
	if err := json.Unmarshal([]byte(`{"name":"Bo","age":30}`), &r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.HasFollowUp() {
		t.Error("expected no follow-up when field is absent")
	}
	r.FollowUpDate = "2024-01-01"
	if !r.HasFollowUp() {
		t.Error("expected follow-up when date is set")
	}
}

func TestPatientRecord_OmitsEmptyFollowUp(t *testing.T) {
	b, err := json.Marshal(PatientRecord{Name: "Cy", Age: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := m["followUpDate"]; ok {
		t.Error("expected followUpDate to be omitted when empty")
	}
}

func TestCollection_Clone(t *testing.T) {
	c := Collection{{Name: "A", Age: 1}, {Name: "B", Age: 2}}
	clone := c.Clone()
	clone[0].Name = "changed"
	if c[0].Name != "A" {
		t.Error("expected clone to not alias the original")
	}

	var empty Collection
	if got := empty.Clone(); got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil clone, got %#v", got)
	}
}

func TestCollection_Projections(t *testing.T) {
	c := Collection{
		{Name: "A", Age: 10, Gender: "Male", Diagnosis: "Flu", Medication: "Rest"},
		{Name: "B", Age: 20, Gender: "Female", Diagnosis: "Cold", Medication: "Tea", FollowUpDate: "2024-01-02"},
	}
	if got := c.Names(); got[0] != "A" || got[1] != "B" {
		t.Errorf("unexpected names: %v", got)
	}
	if got := c.Ages(); got[0] != 10 || got[1] != 20 {
		t.Errorf("unexpected ages: %v", got)
	}
	if got := c.Genders(); got[0] != "Male" || got[1] != "Female" {
		t.Errorf("unexpected genders: %v", got)
	}
	if got := c.Diagnoses(); got[1] != "Cold" {
		t.Errorf("unexpected diagnoses: %v", got)
	}
	if got := c.Medications(); got[0] != "Rest" {
		t.Errorf("unexpected medications: %v", got)
	}
	if got := c.WithFollowUp(); len(got) != 1 || got[0].Name != "B" {
		t.Errorf("unexpected follow-up subset: %v", got)
	}
	if c.Len() != 2 {
		t.Errorf("expected Len 2, got %d", c.Len())
	}
}
