package patient

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/domain/person"
	"github.com/hms/hms/internal/domain/staff"
	"github.com/hms/hms/internal/platform/authz"
	"github.com/hms/hms/internal/platform/herr"
	"github.com/hms/hms/internal/platform/idgen"
)

// Service owns patient onboarding, doctor assignment and the patient's
// medical history list. Doctor assignment touches both the patient and
// staff stores; all validation runs before the first write so a failed
// call never leaves partial state behind.
type Service struct {
	patients Repository
	staffDir staff.Repository
	ids      *idgen.Generator
	log      zerolog.Logger

	// Serializes the doctor reassignment check-then-act sequence so two
	// concurrent assignments cannot interleave between the two stores.
	assignMu sync.Mutex
}

func NewService(patients Repository, staffDir staff.Repository, ids *idgen.Generator, log zerolog.Logger) *Service {
	return &Service{
		patients: patients,
		staffDir: staffDir,
		ids:      ids,
		log:      log.With().Str("service", "patient").Logger(),
	}
}

// Onboard registers a new patient. Gated on ONBOARD_PATIENT.
func (s *Service) Onboard(ctx context.Context, actor *staff.Staff, name string, age int, gender person.Gender) (*Patient, error) {
	if err := authz.Require(actor, authz.ActionOnboardPatient); err != nil {
		s.log.Warn().Err(err).Msg("onboard patient denied")
		return nil, err
	}

	if strings.TrimSpace(name) == "" {
		return nil, herr.Invalidf("patient name cannot be empty")
	}
	if !person.ValidAge(age) {
		return nil, herr.Invalidf("invalid age: %d", age)
	}
	if gender != person.GenderMale && gender != person.GenderFemale {
		return nil, herr.Invalidf("invalid gender: %q", gender)
	}

	p := &Patient{
		PersonID:  idgen.PersonID(s.ids.PatientID()),
		PatientID: s.ids.PatientID(),
		Name:      name,
		Age:       age,
		Gender:    gender,
	}
	if err := s.patients.Create(ctx, p); err != nil {
		return nil, err
	}

	s.log.Info().Str("patient_id", p.PatientID).Msg("patient onboarded")
	return p, nil
}

// AssignToDoctor assigns a patient to a doctor, detaching the patient
// from any previously assigned doctor first. The patient record and
// both doctor records stay consistent: the patient points at exactly
// one doctor and appears in exactly that doctor's patient set.
func (s *Service) AssignToDoctor(ctx context.Context, actor *staff.Staff, patientID, doctorID string) error {
	if err := authz.Require(actor, authz.ActionViewHistory); err != nil {
		return err
	}

	s.assignMu.Lock()
	defer s.assignMu.Unlock()

	p, err := s.patients.GetByID(ctx, patientID)
	if err != nil {
		return err
	}
	doc, err := s.staffDir.GetByID(ctx, doctorID)
	if err != nil {
		return herr.NotFoundf("doctor not found: %s", doctorID)
	}
	if !doc.IsDoctor() {
		return herr.Invalidf("staff member %s is not a doctor, role: %s", doctorID, doc.Role)
	}

	// Detach from the old doctor before attaching to the new one.
	if p.AssignedDoctorID != "" && p.AssignedDoctorID != doctorID {
		if old, err := s.staffDir.GetByID(ctx, p.AssignedDoctorID); err == nil && old.IsDoctor() {
			old.RemovePatient(patientID)
			if err := s.staffDir.Update(ctx, old); err != nil {
				return err
			}
		}
	}

	p.AssignedDoctorID = doctorID
	doc.AssignPatient(patientID)

	if err := s.patients.Update(ctx, p); err != nil {
		return err
	}
	if err := s.staffDir.Update(ctx, doc); err != nil {
		return err
	}

	s.log.Info().
		Str("patient_id", patientID).
		Str("doctor_id", doctorID).
		Msg("patient assigned to doctor")
	return nil
}

// AddMedicalHistory appends a history entry to the patient's record.
func (s *Service) AddMedicalHistory(ctx context.Context, actor *staff.Staff, patientID, entry string) error {
	if err := authz.Require(actor, authz.ActionViewHistory); err != nil {
		return err
	}
	if strings.TrimSpace(entry) == "" {
		return herr.Invalidf("history entry cannot be empty")
	}

	p, err := s.patients.GetByID(ctx, patientID)
	if err != nil {
		return err
	}
	p.AddMedicalHistory(entry)
	if err := s.patients.Update(ctx, p); err != nil {
		return err
	}

	s.log.Info().Str("patient_id", patientID).Msg("medical history added")
	return nil
}

// Get resolves a patient by id.
func (s *Service) Get(ctx context.Context, patientID string) (*Patient, error) {
	return s.patients.GetByID(ctx, patientID)
}

// All lists every patient.
func (s *Service) All(ctx context.Context) ([]*Patient, error) {
	return s.patients.List(ctx)
}

// ByDoctor lists the patients assigned to a doctor.
func (s *Service) ByDoctor(ctx context.Context, doctorID string) ([]*Patient, error) {
	return s.patients.ListByDoctor(ctx, doctorID)
}

// SearchByName matches patients by name substring, case-insensitively.
// An empty query returns every patient.
func (s *Service) SearchByName(ctx context.Context, name string) ([]*Patient, error) {
	if strings.TrimSpace(name) == "" {
		return s.patients.List(ctx)
	}
	return s.patients.SearchByName(ctx, name)
}

// Count returns the number of registered patients.
func (s *Service) Count(ctx context.Context) (int, error) {
	return s.patients.Count(ctx)
}
