package staff

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/domain/person"
	"github.com/hms/hms/internal/platform/authz"
	"github.com/hms/hms/internal/platform/idgen"
)

// Service onboards staff and answers directory queries. Every
// onboarding operation is gated on the ONBOARD_STAFF capability;
// directory reads are open.
type Service struct {
	repo Repository
	ids  *idgen.Generator
	log  zerolog.Logger
}

func NewService(repo Repository, ids *idgen.Generator, log zerolog.Logger) *Service {
	return &Service{repo: repo, ids: ids, log: log.With().Str("service", "staff").Logger()}
}

// OnboardDoctor registers a new doctor.
func (s *Service) OnboardDoctor(ctx context.Context, actor *Staff, name string, age int, gender person.Gender, department, specialization string) (*Staff, error) {
	return s.onboard(ctx, actor, &Staff{
		Name:           name,
		Age:            age,
		Gender:         gender,
		Role:           authz.RoleDoctor,
		Department:     department,
		Specialization: specialization,
	})
}

// OnboardNurse registers a new nurse.
func (s *Service) OnboardNurse(ctx context.Context, actor *Staff, name string, age int, gender person.Gender, department, ward string) (*Staff, error) {
	return s.onboard(ctx, actor, &Staff{
		Name:       name,
		Age:        age,
		Gender:     gender,
		Role:       authz.RoleNurse,
		Department: department,
		Ward:       ward,
	})
}

// OnboardAdmin registers a new administrative staff member.
func (s *Service) OnboardAdmin(ctx context.Context, actor *Staff, name string, age int, gender person.Gender, department string) (*Staff, error) {
	return s.onboard(ctx, actor, &Staff{
		Name:       name,
		Age:        age,
		Gender:     gender,
		Role:       authz.RoleAdmin,
		Department: department,
	})
}

func (s *Service) onboard(ctx context.Context, actor *Staff, rec *Staff) (*Staff, error) {
	if err := authz.Require(actor, authz.ActionOnboardStaff); err != nil {
		s.log.Warn().Err(err).Str("role", string(rec.Role)).Msg("onboard staff denied")
		return nil, err
	}

	rec.PersonID = idgen.PersonID(s.ids.StaffID())
	rec.StaffID = s.ids.StaffID()

	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("staff_id", rec.StaffID).
		Str("role", string(rec.Role)).
		Str("department", rec.Department).
		Msg("staff onboarded")
	return rec, nil
}

// FindByID resolves a staff member by id, matching case-insensitively
// so console input like "s2001" resolves to S2001.
func (s *Service) FindByID(ctx context.Context, staffID string) (*Staff, error) {
	return s.repo.GetByID(ctx, strings.ToUpper(strings.TrimSpace(staffID)))
}

// All lists every staff member.
func (s *Service) All(ctx context.Context) ([]*Staff, error) {
	return s.repo.List(ctx)
}

// Doctors lists all doctors.
func (s *Service) Doctors(ctx context.Context) ([]*Staff, error) {
	return s.repo.ListByRole(ctx, authz.RoleDoctor)
}

// Nurses lists all nurses.
func (s *Service) Nurses(ctx context.Context) ([]*Staff, error) {
	return s.repo.ListByRole(ctx, authz.RoleNurse)
}

// ByDepartment lists staff in a department.
func (s *Service) ByDepartment(ctx context.Context, department string) ([]*Staff, error) {
	return s.repo.ListByDepartment(ctx, department)
}

// Count returns the directory size.
func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
