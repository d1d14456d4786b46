package appointment

import "time"

// Status is the appointment lifecycle state.
type Status string

const (
	StatusScheduled Status = "SCHEDULED"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
	StatusNoShow    Status = "NO_SHOW"
)

// Valid reports whether s is a recognized status.
func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// Appointment links a patient and a doctor at an exact timestamp.
// Appointments are never deleted; only the status changes.
type Appointment struct {
	ID        string    `json:"id"`
	PatientID string    `json:"patient_id"`
	DoctorID  string    `json:"doctor_id"`
	Time      time.Time `json:"time"`
	Status    Status    `json:"status"`
}

// Clone returns a copy safe to hand across the store boundary.
func (a *Appointment) Clone() *Appointment {
	if a == nil {
		return nil
	}
	out := *a
	return &out
}
