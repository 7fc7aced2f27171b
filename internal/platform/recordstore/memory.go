package recordstore

import (
	"context"

	"github.com/ehr/dashboard/internal/domain/patient"
)

// Memory serves a fixed collection.
type Memory struct {
	records patient.Collection
}

func NewMemory(records ...patient.PatientRecord) *Memory {
	return &Memory{records: patient.Collection(records).Clone()}
}

func (m *Memory) Driver() Driver { return DriverMemory }

func (m *Memory) Load(_ context.Context) (patient.Collection, error) {
	return m.records.Clone(), nil
}
