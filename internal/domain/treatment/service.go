package treatment

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

// Service records treatments and answers treatment queries. Recording
// is deliberately open to any authenticated staff member, not just
// doctors; the attending doctor field carries the acting staff id.
type Service struct {
	treatments Repository
	patients   patient.Repository
	ids        *idgen.Generator
	log        zerolog.Logger

	now func() time.Time
}

func NewService(treatments Repository, patients patient.Repository, ids *idgen.Generator, log zerolog.Logger) *Service {
	return &Service{
		treatments: treatments,
		patients:   patients,
		ids:        ids,
		log:        log.With().Str("service", "treatment").Logger(),
		now:        time.Now,
	}
}

// Record writes a treatment record for a patient and links it into the
// patient's record. Notes may be empty.
func (s *Service) Record(ctx context.Context, actor *staff.Staff, patientID, diagnosis, notes string) (*Record, error) {
	if err := authz.Require(actor, authz.ActionViewHistory); err != nil {
		return nil, err
	}

	p, err := s.patients.GetByID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(diagnosis) == "" {
		return nil, herr.Invalidf("diagnosis cannot be empty")
	}

	rec := &Record{
		ID:                s.ids.TreatmentID(),
		PatientID:         patientID,
		Diagnosis:         diagnosis,
		Notes:             notes,
		Date:              s.now(),
		AttendingDoctorID: actor.StaffID,
	}
	if err := s.treatments.Create(ctx, rec); err != nil {
		return nil, err
	}

	p.AddTreatment(rec.ID)
	if err := s.patients.Update(ctx, p); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("treatment_id", rec.ID).
		Str("patient_id", patientID).
		Str("staff_id", rec.AttendingDoctorID).
		Msg("treatment recorded")
	return rec, nil
}

// ByPatient lists a patient's treatments, most recent first.
func (s *Service) ByPatient(ctx context.Context, actor *staff.Staff, patientID string) ([]*Record, error) {
	if err := authz.Require(actor, authz.ActionViewHistory); err != nil {
		return nil, err
	}
	if strings.TrimSpace(patientID) == "" {
		return nil, herr.Invalidf("patient id cannot be empty")
	}
	return s.treatments.ListByPatient(ctx, patientID)
}

// ByDoctor lists treatments recorded under a doctor, most recent first.
func (s *Service) ByDoctor(ctx context.Context, actor *staff.Staff, doctorID string) ([]*Record, error) {
	if err := authz.Require(actor, authz.ActionViewHistory); err != nil {
		return nil, err
	}
	if strings.TrimSpace(doctorID) == "" {
		return nil, herr.Invalidf("doctor id cannot be empty")
	}
	return s.treatments.ListByDoctor(ctx, doctorID)
}

// All lists every treatment record, most recent first.
func (s *Service) All(ctx context.Context, actor *staff.Staff) ([]*Record, error) {
	if err := authz.Require(actor, authz.ActionViewHistory); err != nil {
		return nil, err
	}
	return s.treatments.List(ctx)
}

// Get resolves a treatment record by id.
func (s *Service) Get(ctx context.Context, id string) (*Record, error) {
	if strings.TrimSpace(id) == "" {
		return nil, herr.Invalidf("treatment id cannot be empty")
	}
	return s.treatments.GetByID(ctx, id)
}
