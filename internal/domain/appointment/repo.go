package appointment

import (
	"context"
	"time"
)

type Repository interface {
	// CreateScheduled atomically verifies that no SCHEDULED appointment
	// exists for (a.DoctorID, a.Time) and inserts a. It fails Conflict
	// on a double booking and on a duplicate id; no interleaving insert
	// can slip between the check and the write.
	CreateScheduled(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id string) (*Appointment, error)
	Update(ctx context.Context, a *Appointment) error
	List(ctx context.Context) ([]*Appointment, error)
	ListByPatient(ctx context.Context, patientID string) ([]*Appointment, error)
	ListByDoctor(ctx context.Context, doctorID string) ([]*Appointment, error)
	ListByStatus(ctx context.Context, status Status) ([]*Appointment, error)
	// ListByDoctorAndDate returns the doctor's SCHEDULED appointments on
	// the given calendar day, ascending by time.
	ListByDoctorAndDate(ctx context.Context, doctorID string, day time.Time) ([]*Appointment, error)
	HasConflict(ctx context.Context, doctorID string, at time.Time) (bool, error)
	Count(ctx context.Context) (int, error)
}
