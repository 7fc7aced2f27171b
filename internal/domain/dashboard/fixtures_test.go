package dashboard

import "github.com/ehr/dashboard/internal/domain/patient"

func sampleRecords() patient.Collection {
	return patient.Collection{
		{Name: "Alice", Age: 30, Gender: "Female", Diagnosis: "Hypertension", Medication: "Lisinopril", FollowUpDate: "2024-07-01"},
		{Name: "Bob", Age: 50, Gender: "Male", Diagnosis: "Type 2 Diabetes", Medication: "Metformin", FollowUpDate: "2024-05-01"},
		{Name: "Cara", Age: 40, Gender: "Female", Diagnosis: "Hypertension", Medication: "Lisinopril", FollowUpDate: "2024-07-01"},
		{Name: "Dev", Age: 25, Gender: "Non-binary", Diagnosis: "Asthma", Medication: "Albuterol"},
	}
}
