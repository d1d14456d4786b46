package staff

import (
	"github.com/hms/hms/internal/domain/person"
	"github.com/hms/hms/internal/platform/authz"
)

// Staff is a hospital staff record. The Role field selects the variant;
// Specialization and AssignedPatientIDs are meaningful for doctors,
// Ward for nurses.
type Staff struct {
	PersonID   string        `json:"person_id"`
	StaffID    string        `json:"staff_id"`
	Name       string        `json:"name"`
	Age        int           `json:"age"`
	Gender     person.Gender `json:"gender"`
	Role       authz.Role    `json:"role"`
	Department string        `json:"department"`

	// Doctor only.
	Specialization     string   `json:"specialization,omitempty"`
	AssignedPatientIDs []string `json:"assigned_patient_ids,omitempty"`

	// Nurse only.
	Ward string `json:"ward,omitempty"`
}

var _ authz.Actor = (*Staff)(nil)

// Authenticated implements authz.Actor. A nil record is nobody.
func (s *Staff) Authenticated() bool { return s != nil }

// ActorRole implements authz.Actor.
func (s *Staff) ActorRole() authz.Role {
	if s == nil {
		return ""
	}
	return s.Role
}

// IsDoctor reports whether the record is a doctor.
func (s *Staff) IsDoctor() bool { return s != nil && s.Role == authz.RoleDoctor }

// AssignPatient records patientID in the doctor's patient set. Adding
// an already-present id is a no-op; the set carries no order guarantee.
func (s *Staff) AssignPatient(patientID string) {
	for _, id := range s.AssignedPatientIDs {
		if id == patientID {
			return
		}
	}
	s.AssignedPatientIDs = append(s.AssignedPatientIDs, patientID)
}

// RemovePatient drops patientID from the doctor's patient set.
func (s *Staff) RemovePatient(patientID string) {
	for i, id := range s.AssignedPatientIDs {
		if id == patientID {
			s.AssignedPatientIDs = append(s.AssignedPatientIDs[:i], s.AssignedPatientIDs[i+1:]...)
			return
		}
	}
}

// HasPatient reports whether patientID is in the doctor's patient set.
func (s *Staff) HasPatient(patientID string) bool {
	for _, id := range s.AssignedPatientIDs {
		if id == patientID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy safe to hand across the store boundary.
func (s *Staff) Clone() *Staff {
	if s == nil {
		return nil
	}
	out := *s
	if s.AssignedPatientIDs != nil {
		out.AssignedPatientIDs = append([]string(nil), s.AssignedPatientIDs...)
	}
	return &out
}
