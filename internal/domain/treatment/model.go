package treatment

import "time"

// Record is a create-only treatment entry.
type Record struct {
	ID                string    `json:"id"`
	PatientID         string    `json:"patient_id"`
	Diagnosis         string    `json:"diagnosis"`
	Notes             string    `json:"notes"`
	Date              time.Time `json:"date"`
	AttendingDoctorID string    `json:"attending_doctor_id"`
}

// Clone returns a copy safe to hand across the store boundary.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	out := *r
	return &out
}
