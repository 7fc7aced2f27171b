package patient

// PatientRecord is a single entry of the persisted patients blob. Field names
// match the stored JSON exactly.
type PatientRecord struct {
	Name         string `json:"name"`
	Age          int    `json:"age"`
	Gender       string `json:"gender"`
	Diagnosis    string `json:"diagnosis"`
	Medication   string `json:"medication"`
	FollowUpDate string `json:"followUpDate,omitempty"`
}

// HasFollowUp reports whether a follow-up date was recorded.
func (r PatientRecord) HasFollowUp() bool {
	return r.FollowUpDate != ""
}

// Collection is an ordered snapshot of patient records. Aggregations read it
// and never modify it.
type Collection []PatientRecord

func (c Collection) Len() int { return len(c) }

// Clone returns a copy that shares no backing array with c. A nil collection
// clones to an empty, non-nil one.
func (c Collection) Clone() Collection {
	out := make(Collection, len(c))
	copy(out, c)
	return out
}

func (c Collection) Names() []string {
	out := make([]string, len(c))
	for i, r := range c {
		out[i] = r.Name
	}
	return out
}

func (c Collection) Ages() []int {
	out := make([]int, len(c))
	for i, r := range c {
		out[i] = r.Age
	}
	return out
}

func (c Collection) Genders() []string {
	out := make([]string, len(c))
	for i, r := range c {
		out[i] = r.Gender
	}
	return out
}

func (c Collection) Diagnoses() []string {
	out := make([]string, len(c))
	for i, r := range c {
		out[i] = r.Diagnosis
	}
	return out
}

func (c Collection) Medications() []string {
	out := make([]string, len(c))
	for i, r := range c {
		out[i] = r.Medication
	}
	return out
}

// WithFollowUp returns the records that have a follow-up date, in order.
func (c Collection) WithFollowUp() Collection {
	out := make(Collection, 0, len(c))
	for _, r := range c {
		if r.HasFollowUp() {
			out = append(out, r)
		}
	}
	return out
}
