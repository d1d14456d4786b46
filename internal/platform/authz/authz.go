// Package authz is the single source of truth for access control. Each
// staff role carries a fixed capability set; every mutating domain
// operation calls Require before touching a store. No other package
// re-derives permissions.
package authz

import (
	"github.com/hms/hms/internal/platform/herr"
)

// Role is a staff role variant.
type Role string

const (
	RoleDoctor Role = "Doctor"
	RoleNurse  Role = "Nurse"
	RoleAdmin  Role = "Admin"
)

// Capabilities is the permission triple fixed per role.
type Capabilities struct {
	Prescribe       bool
	OnboardPatients bool
	OnboardStaff    bool
}

var roleCapabilities = map[Role]Capabilities{
	RoleDoctor: {Prescribe: true},
	RoleNurse:  {},
	RoleAdmin:  {OnboardPatients: true, OnboardStaff: true},
}

// CapabilitiesFor returns the capability set fixed for role. Unknown
// roles get the empty set.
func CapabilitiesFor(role Role) Capabilities {
	return roleCapabilities[role]
}

// Action names a gated operation.
type Action string

const (
	ActionOnboardPatient Action = "ONBOARD_PATIENT"
	ActionOnboardStaff   Action = "ONBOARD_STAFF"
	ActionPrescribe      Action = "PRESCRIBE"
	ActionViewHistory    Action = "VIEW_HISTORY"
)

// Actor is the authenticated staff record performing an operation.
// Implementations must be nil-receiver safe for Authenticated.
type Actor interface {
	Authenticated() bool
	ActorRole() Role
}

func authenticated(actor Actor) bool {
	return actor != nil && actor.Authenticated()
}

// CanOnboardPatients reports whether actor may onboard patients.
func CanOnboardPatients(actor Actor) bool {
	return authenticated(actor) && roleCapabilities[actor.ActorRole()].OnboardPatients
}

// CanOnboardStaff reports whether actor may onboard staff.
func CanOnboardStaff(actor Actor) bool {
	return authenticated(actor) && roleCapabilities[actor.ActorRole()].OnboardStaff
}

// CanPrescribe reports whether actor may prescribe medication.
func CanPrescribe(actor Actor) bool {
	return authenticated(actor) && roleCapabilities[actor.ActorRole()].Prescribe
}

// CanViewHistory reports whether anyone is signed in at all. This is
// the explicit "is anyone authenticated" predicate; it never errors.
func CanViewHistory(actor Actor) bool {
	return authenticated(actor)
}

// Require gates action on actor's capabilities. It returns nil when the
// gate passes, an Unauthorized error naming the deficiency when it does
// not, and InvalidArgument for an unrecognized action.
func Require(actor Actor, action Action) error {
	switch action {
	case ActionOnboardPatient:
		if !CanOnboardPatients(actor) {
			return herr.Unauthorizedf("only Admin staff can onboard patients, your role: %s", roleName(actor))
		}
	case ActionOnboardStaff:
		if !CanOnboardStaff(actor) {
			return herr.Unauthorizedf("only Admin staff can onboard staff, your role: %s", roleName(actor))
		}
	case ActionPrescribe:
		if !CanPrescribe(actor) {
			return herr.Unauthorizedf("only Doctors can prescribe medication, your role: %s", roleName(actor))
		}
	case ActionViewHistory:
		if !CanViewHistory(actor) {
			return herr.Unauthorizedf("staff not authenticated")
		}
	default:
		return herr.Invalidf("unknown action: %s", action)
	}
	return nil
}

func roleName(actor Actor) string {
	if !authenticated(actor) {
		return "none"
	}
	return string(actor.ActorRole())
}
