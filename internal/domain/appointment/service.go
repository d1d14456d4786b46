package appointment

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/domain/patient"
	"github.com/hms/hms/internal/domain/staff"
	"github.com/hms/hms/internal/platform/authz"
	"github.com/hms/hms/internal/platform/herr"
	"github.com/hms/hms/internal/platform/idgen"
)

// Service schedules appointments and drives their status lifecycle.
type Service struct {
	appointments Repository
	patients     patient.Repository
	staffDir     staff.Repository
	ids          *idgen.Generator
	log          zerolog.Logger

	now func() time.Time
}

func NewService(appointments Repository, patients patient.Repository, staffDir staff.Repository, ids *idgen.Generator, log zerolog.Logger) *Service {
	return &Service{
		appointments: appointments,
		patients:     patients,
		staffDir:     staffDir,
		ids:          ids,
		log:          log.With().Str("service", "appointment").Logger(),
		now:          time.Now,
	}
}

// Schedule books an appointment for a patient with a doctor at an exact
// timestamp. A doctor can hold at most one SCHEDULED appointment per
// instant; a second request for the same (doctor, time) fails Conflict.
func (s *Service) Schedule(ctx context.Context, actor *staff.Staff, patientID, doctorID string, at time.Time) (*Appointment, error) {
	if err := authz.Require(actor, authz.ActionViewHistory); err != nil {
		return nil, err
	}
	if at.Before(s.now()) {
		return nil, herr.Invalidf("appointment time %s is in the past", at.Format(time.RFC3339))
	}

	p, err := s.patients.GetByID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	doc, err := s.staffDir.GetByID(ctx, doctorID)
	if err != nil {
		return nil, herr.NotFoundf("doctor not found: %s", doctorID)
	}
	if !doc.IsDoctor() {
		return nil, herr.Invalidf("staff member %s is not a doctor, role: %s", doctorID, doc.Role)
	}

	a := &Appointment{
		ID:        s.ids.AppointmentID(),
		PatientID: patientID,
		DoctorID:  doctorID,
		Time:      at,
		Status:    StatusScheduled,
	}
	if err := s.appointments.CreateScheduled(ctx, a); err != nil {
		s.log.Warn().Err(err).Str("doctor_id", doctorID).Time("at", at).Msg("scheduling rejected")
		return nil, err
	}

	p.AddAppointment(a.ID)
	if err := s.patients.Update(ctx, p); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("appointment_id", a.ID).
		Str("patient_id", patientID).
		Str("doctor_id", doctorID).
		Time("at", at).
		Msg("appointment scheduled")
	return a, nil
}

// UpdateStatus overwrites the appointment's status. The prior state is
// deliberately not checked: a cancelled appointment can be re-marked
// completed, matching the system's loose transition rules.
func (s *Service) UpdateStatus(ctx context.Context, actor *staff.Staff, appointmentID string, status Status) error {
	if err := authz.Require(actor, authz.ActionViewHistory); err != nil {
		return err
	}
	if !status.Valid() {
		return herr.Invalidf("invalid appointment status: %s", status)
	}

	a, err := s.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return err
	}
	a.Status = status
	if err := s.appointments.Update(ctx, a); err != nil {
		return err
	}

	s.log.Info().
		Str("appointment_id", appointmentID).
		Str("status", string(status)).
		Msg("appointment status updated")
	return nil
}

// Complete marks the appointment COMPLETED.
func (s *Service) Complete(ctx context.Context, actor *staff.Staff, appointmentID string) error {
	return s.UpdateStatus(ctx, actor, appointmentID, StatusCompleted)
}

// Cancel marks the appointment CANCELLED.
func (s *Service) Cancel(ctx context.Context, actor *staff.Staff, appointmentID string) error {
	return s.UpdateStatus(ctx, actor, appointmentID, StatusCancelled)
}

// MarkNoShow marks the appointment NO_SHOW.
func (s *Service) MarkNoShow(ctx context.Context, actor *staff.Staff, appointmentID string) error {
	return s.UpdateStatus(ctx, actor, appointmentID, StatusNoShow)
}

// Get resolves an appointment by id.
func (s *Service) Get(ctx context.Context, appointmentID string) (*Appointment, error) {
	return s.appointments.GetByID(ctx, appointmentID)
}

// ByPatient lists a patient's appointments, most recent first.
func (s *Service) ByPatient(ctx context.Context, patientID string) ([]*Appointment, error) {
	return s.appointments.ListByPatient(ctx, patientID)
}

// ByDoctor lists a doctor's appointments, most recent first.
func (s *Service) ByDoctor(ctx context.Context, doctorID string) ([]*Appointment, error) {
	return s.appointments.ListByDoctor(ctx, doctorID)
}

// DoctorSchedule lists a doctor's SCHEDULED appointments on a calendar
// day, ascending by time.
func (s *Service) DoctorSchedule(ctx context.Context, doctorID string, day time.Time) ([]*Appointment, error) {
	return s.appointments.ListByDoctorAndDate(ctx, doctorID, day)
}

// Scheduled lists every appointment still in SCHEDULED state.
func (s *Service) Scheduled(ctx context.Context) ([]*Appointment, error) {
	return s.appointments.ListByStatus(ctx, StatusScheduled)
}

// All lists every appointment.
func (s *Service) All(ctx context.Context) ([]*Appointment, error) {
	return s.appointments.List(ctx)
}

// Count returns the number of appointments ever booked.
func (s *Service) Count(ctx context.Context) (int, error) {
	return s.appointments.Count(ctx)
}
