package prescription

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/domain/patient"
	"github.com/hms/hms/internal/domain/staff"
	"github.com/hms/hms/internal/platform/authz"
	"github.com/hms/hms/internal/platform/herr"
	"github.com/hms/hms/internal/platform/idgen"
)

const maxDurationDays = 365

// Service creates prescriptions and answers prescription queries.
// Creation is gated on the PRESCRIBE capability; the capability table
// grants it to doctors only, so the prescribing doctor recorded on the
// order is simply the acting staff id.
type Service struct {
	prescriptions Repository
	patients      patient.Repository
	ids           *idgen.Generator
	log           zerolog.Logger

	now func() time.Time
}

func NewService(prescriptions Repository, patients patient.Repository, ids *idgen.Generator, log zerolog.Logger) *Service {
	return &Service{
		prescriptions: prescriptions,
		patients:      patients,
		ids:           ids,
		log:           log.With().Str("service", "prescription").Logger(),
		now:           time.Now,
	}
}

// Create writes a new prescription for a patient and links it into the
// patient's record.
func (s *Service) Create(ctx context.Context, actor *staff.Staff, patientID, drugName, dosage string, durationDays int) (*Prescription, error) {
	if err := authz.Require(actor, authz.ActionPrescribe); err != nil {
		s.log.Warn().Err(err).Str("patient_id", patientID).Msg("prescription denied")
		return nil, err
	}

	p, err := s.patients.GetByID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(drugName) == "" {
		return nil, herr.Invalidf("drug name cannot be empty")
	}
	if strings.TrimSpace(dosage) == "" {
		return nil, herr.Invalidf("dosage cannot be empty")
	}
	if durationDays <= 0 {
		return nil, herr.Invalidf("duration must be positive, got %d days", durationDays)
	}
	if durationDays > maxDurationDays {
		return nil, herr.Invalidf("duration cannot exceed %d days, got %d", maxDurationDays, durationDays)
	}

	rx := &Prescription{
		ID:                  s.ids.PrescriptionID(),
		PatientID:           patientID,
		DrugName:            drugName,
		Dosage:              dosage,
		DurationDays:        durationDays,
		PrescribingDoctorID: actor.StaffID,
		PrescribedDate:      s.now(),
	}
	if err := s.prescriptions.Create(ctx, rx); err != nil {
		return nil, err
	}

	p.AddPrescription(rx.ID)
	if err := s.patients.Update(ctx, p); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("prescription_id", rx.ID).
		Str("patient_id", patientID).
		Str("doctor_id", rx.PrescribingDoctorID).
		Str("drug", drugName).
		Msg("prescription created")
	return rx, nil
}

// ByPatient lists a patient's prescriptions, most recent first.
func (s *Service) ByPatient(ctx context.Context, actor *staff.Staff, patientID string) ([]*Prescription, error) {
	if err := authz.Require(actor, authz.ActionViewHistory); err != nil {
		return nil, err
	}
	if strings.TrimSpace(patientID) == "" {
		return nil, herr.Invalidf("patient id cannot be empty")
	}
	return s.prescriptions.ListByPatient(ctx, patientID)
}

// ByDoctor lists a doctor's prescriptions, most recent first.
func (s *Service) ByDoctor(ctx context.Context, actor *staff.Staff, doctorID string) ([]*Prescription, error) {
	if err := authz.Require(actor, authz.ActionViewHistory); err != nil {
		return nil, err
	}
	if strings.TrimSpace(doctorID) == "" {
		return nil, herr.Invalidf("doctor id cannot be empty")
	}
	return s.prescriptions.ListByDoctor(ctx, doctorID)
}

// SearchByDrug lists prescriptions whose drug name matches exactly,
// ignoring case. An empty query returns every prescription.
func (s *Service) SearchByDrug(ctx context.Context, actor *staff.Staff, drugName string) ([]*Prescription, error) {
	if err := authz.Require(actor, authz.ActionViewHistory); err != nil {
		return nil, err
	}
	if strings.TrimSpace(drugName) == "" {
		return s.prescriptions.List(ctx)
	}
	return s.prescriptions.ListByDrugName(ctx, drugName)
}

// All lists every prescription, most recent first.
func (s *Service) All(ctx context.Context, actor *staff.Staff) ([]*Prescription, error) {
	if err := authz.Require(actor, authz.ActionViewHistory); err != nil {
		return nil, err
	}
	return s.prescriptions.List(ctx)
}

// Get resolves a prescription by id.
func (s *Service) Get(ctx context.Context, id string) (*Prescription, error) {
	if strings.TrimSpace(id) == "" {
		return nil, herr.Invalidf("prescription id cannot be empty")
	}
	return s.prescriptions.GetByID(ctx, id)
}
