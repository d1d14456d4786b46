package authz

import (
	"errors"
	"testing"

	"github.com/hms/hms/internal/platform/herr"
)

type fakeActor struct {
	role Role
}

func (f *fakeActor) Authenticated() bool { return f != nil }
func (f *fakeActor) ActorRole() Role     { return f.role }

func TestCapabilityTable(t *testing.T) {
	tests := []struct {
		role Role
		want Capabilities
	}{
		{RoleDoctor, Capabilities{Prescribe: true}},
		{RoleNurse, Capabilities{}},
		{RoleAdmin, Capabilities{OnboardPatients: true, OnboardStaff: true}},
		{Role("Janitor"), Capabilities{}},
	}
	for _, tt := range tests {
		if got := CapabilitiesFor(tt.role); got != tt.want {
			t.Errorf("CapabilitiesFor(%s) = %+v, want %+v", tt.role, got, tt.want)
		}
	}
}

func TestRequire(t *testing.T) {
	doctor := &fakeActor{role: RoleDoctor}
	nurse := &fakeActor{role: RoleNurse}
	admin := &fakeActor{role: RoleAdmin}

	tests := []struct {
		name    string
		actor   Actor
		action  Action
		wantErr error
	}{
		{"admin onboards patient", admin, ActionOnboardPatient, nil},
		{"admin onboards staff", admin, ActionOnboardStaff, nil},
		{"doctor prescribes", doctor, ActionPrescribe, nil},
		{"nurse views history", nurse, ActionViewHistory, nil},
		{"nurse onboards patient", nurse, ActionOnboardPatient, herr.ErrUnauthorized},
		{"nurse onboards staff", nurse, ActionOnboardStaff, herr.ErrUnauthorized},
		{"nurse prescribes", nurse, ActionPrescribe, herr.ErrUnauthorized},
		{"doctor onboards patient", doctor, ActionOnboardPatient, herr.ErrUnauthorized},
		{"doctor onboards staff", doctor, ActionOnboardStaff, herr.ErrUnauthorized},
		{"admin prescribes", admin, ActionPrescribe, herr.ErrUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Require(tt.actor, tt.action)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Require returned %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Require returned %v, want kind %v", err, tt.wantErr)
			}
		})
	}
}

func TestRequireNilActor(t *testing.T) {
	for _, action := range []Action{ActionOnboardPatient, ActionOnboardStaff, ActionPrescribe, ActionViewHistory} {
		if err := Require(nil, action); !errors.Is(err, herr.ErrUnauthorized) {
			t.Errorf("Require(nil, %s) = %v, want Unauthorized", action, err)
		}
	}
}

func TestRequireNilTypedActor(t *testing.T) {
	var actor *fakeActor
	if err := Require(actor, ActionViewHistory); !errors.Is(err, herr.ErrUnauthorized) {
		t.Errorf("typed-nil actor passed the gate: %v", err)
	}
}

func TestRequireUnknownAction(t *testing.T) {
	err := Require(&fakeActor{role: RoleAdmin}, Action("DELETE_EVERYTHING"))
	if !errors.Is(err, herr.ErrInvalidArgument) {
		t.Fatalf("unknown action returned %v, want InvalidArgument", err)
	}
}

func TestCanViewHistoryIsAPredicate(t *testing.T) {
	if CanViewHistory(nil) {
		t.Error("CanViewHistory(nil) = true")
	}
	var typedNil *fakeActor
	if CanViewHistory(typedNil) {
		t.Error("CanViewHistory(typed nil) = true")
	}
	if !CanViewHistory(&fakeActor{role: RoleNurse}) {
		t.Error("CanViewHistory(nurse) = false")
	}
}
