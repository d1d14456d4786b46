// Package history composes a patient's full record out of the patient,
// staff, appointment, prescription and treatment stores. It is strictly
// read-only: building a report never mutates any store, so two reads
// with no intervening writes return structurally equal reports.
package history

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/domain/appointment"
	"github.com/hms/hms/internal/domain/patient"
	"github.com/hms/hms/internal/domain/prescription"
	"github.com/hms/hms/internal/domain/staff"
	"github.com/hms/hms/internal/domain/treatment"
	"github.com/hms/hms/internal/platform/authz"
)

// Report is the unified patient history aggregate. Appointments,
// prescriptions and treatments are ordered most recent first.
type Report struct {
	Patient        *patient.Patient             `json:"patient"`
	AssignedDoctor *staff.Staff                 `json:"assigned_doctor,omitempty"`
	Appointments   []*appointment.Appointment   `json:"appointments"`
	Prescriptions  []*prescription.Prescription `json:"prescriptions"`
	Treatments     []*treatment.Record          `json:"treatments"`
}

type Service struct {
	patients      patient.Repository
	staffDir      staff.Repository
	appointments  appointment.Repository
	prescriptions prescription.Repository
	treatments    treatment.Repository
	log           zerolog.Logger
}

func NewService(patients patient.Repository, staffDir staff.Repository, appointments appointment.Repository, prescriptions prescription.Repository, treatments treatment.Repository, log zerolog.Logger) *Service {
	return &Service{
		patients:      patients,
		staffDir:      staffDir,
		appointments:  appointments,
		prescriptions: prescriptions,
		treatments:    treatments,
		log:           log.With().Str("service", "history").Logger(),
	}
}

// PatientHistory builds the unified report for a patient. Gated on
// authentication only. The assigned doctor is omitted when the patient
// has none, or when the assigned id no longer resolves to a doctor.
func (s *Service) PatientHistory(ctx context.Context, actor *staff.Staff, patientID string) (*Report, error) {
	if err := authz.Require(actor, authz.ActionViewHistory); err != nil {
		return nil, err
	}

	p, err := s.patients.GetByID(ctx, patientID)
	if err != nil {
		return nil, err
	}

	appts, err := s.appointments.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	rxs, err := s.prescriptions.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	recs, err := s.treatments.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}

	var doc *staff.Staff
	if p.AssignedDoctorID != "" {
		if d, err := s.staffDir.GetByID(ctx, p.AssignedDoctorID); err == nil && d.IsDoctor() {
			doc = d
		}
	}

	s.log.Debug().Str("patient_id", patientID).Msg("history report built")
	return &Report{
		Patient:        p,
		AssignedDoctor: doc,
		Appointments:   appts,
		Prescriptions:  rxs,
		Treatments:     recs,
	}, nil
}
