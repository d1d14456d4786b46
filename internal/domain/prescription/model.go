package prescription

import "time"

// Prescription is a create-only medication order. PrescribedDate is
// fixed at creation and never changes.
type Prescription struct {
	ID                  string    `json:"id"`
	PatientID           string    `json:"patient_id"`
	DrugName            string    `json:"drug_name"`
	Dosage              string    `json:"dosage"`
	DurationDays        int       `json:"duration_days"`
	PrescribingDoctorID string    `json:"prescribing_doctor_id"`
	PrescribedDate      time.Time `json:"prescribed_date"`
}

// Clone returns a copy safe to hand across the store boundary.
func (p *Prescription) Clone() *Prescription {
	if p == nil {
		return nil
	}
	out := *p
	return &out
}
