package appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/domain/patient"
	"github.com/hms/hms/internal/domain/person"
	"github.com/hms/hms/internal/domain/staff"
	"github.com/hms/hms/internal/platform/authz"
	"github.com/hms/hms/internal/platform/herr"
	"github.com/hms/hms/internal/platform/idgen"
)

type fixture struct {
	svc      *Service
	patients *patient.MemoryRepository
	staffDir *staff.MemoryRepository
	nurse    *staff.Staff
	doctor   *staff.Staff
	patient  *patient.Patient
	now      time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	patients := patient.NewMemoryRepository()
	staffDir := staff.NewMemoryRepository()

	f := &fixture{
		patients: patients,
		staffDir: staffDir,
		nurse:    &staff.Staff{StaffID: "S1", Name: "Nurse", Role: authz.RoleNurse},
		doctor:   &staff.Staff{StaffID: "S2001", Name: "Dr. X", Role: authz.RoleDoctor},
		patient:  &patient.Patient{PatientID: "P1001", Name: "Jane Doe", Age: 30, Gender: person.GenderFemale},
		now:      time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC),
	}
	if err := staffDir.Create(ctx, f.nurse); err != nil {
		t.Fatal(err)
	}
	if err := staffDir.Create(ctx, f.doctor); err != nil {
		t.Fatal(err)
	}
	if err := patients.Create(ctx, f.patient); err != nil {
		t.Fatal(err)
	}

	f.svc = NewService(NewMemoryRepository(), patients, staffDir, idgen.New(), zerolog.Nop())
	f.svc.now = func() time.Time { return f.now }
	return f
}

func TestSchedule(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	at := f.now.Add(24 * time.Hour)

	a, err := f.svc.Schedule(ctx, f.nurse, "P1001", "S2001", at)
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if a.Status != StatusScheduled {
		t.Errorf("Status = %s, want SCHEDULED", a.Status)
	}
	if a.ID != "A3001" {
		t.Errorf("ID = %s, want A3001", a.ID)
	}

	// The appointment id is appended to the patient's record.
	p, _ := f.patients.GetByID(ctx, "P1001")
	if len(p.AppointmentIDs) != 1 || p.AppointmentIDs[0] != a.ID {
		t.Errorf("patient appointment ids = %v", p.AppointmentIDs)
	}
}

func TestScheduleDoubleBooking(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	at := f.now.Add(24 * time.Hour)

	if _, err := f.svc.Schedule(ctx, f.nurse, "P1001", "S2001", at); err != nil {
		t.Fatal(err)
	}
	if _, err := f.svc.Schedule(ctx, f.nurse, "P1001", "S2001", at); !errors.Is(err, herr.ErrConflict) {
		t.Fatalf("same slot: err = %v, want Conflict", err)
	}

	// One minute later is a different slot.
	if _, err := f.svc.Schedule(ctx, f.nurse, "P1001", "S2001", at.Add(time.Minute)); err != nil {
		t.Fatalf("adjacent slot rejected: %v", err)
	}
}

func TestScheduleCancelledSlotIsFree(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	at := f.now.Add(24 * time.Hour)

	a, err := f.svc.Schedule(ctx, f.nurse, "P1001", "S2001", at)
	if err != nil {
		t.Fatal(err)
	}
	if err := f.svc.Cancel(ctx, f.nurse, a.ID); err != nil {
		t.Fatal(err)
	}

	// Only SCHEDULED appointments block the slot.
	if _, err := f.svc.Schedule(ctx, f.nurse, "P1001", "S2001", at); err != nil {
		t.Fatalf("slot still blocked after cancellation: %v", err)
	}
}

func TestScheduleValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	at := f.now.Add(24 * time.Hour)

	if _, err := f.svc.Schedule(ctx, f.nurse, "P1001", "S2001", f.now.Add(-time.Minute)); !errors.Is(err, herr.ErrInvalidArgument) {
		t.Errorf("past time: err = %v, want InvalidArgument", err)
	}
	if _, err := f.svc.Schedule(ctx, f.nurse, "P9999", "S2001", at); !errors.Is(err, herr.ErrNotFound) {
		t.Errorf("unknown patient: err = %v, want NotFound", err)
	}
	if _, err := f.svc.Schedule(ctx, f.nurse, "P1001", "S9999", at); !errors.Is(err, herr.ErrNotFound) {
		t.Errorf("unknown doctor: err = %v, want NotFound", err)
	}
	if _, err := f.svc.Schedule(ctx, f.nurse, "P1001", f.nurse.StaffID, at); !errors.Is(err, herr.ErrInvalidArgument) {
		t.Errorf("nurse as doctor: err = %v, want InvalidArgument", err)
	}
	if _, err := f.svc.Schedule(ctx, nil, "P1001", "S2001", at); !errors.Is(err, herr.ErrUnauthorized) {
		t.Errorf("nil actor: err = %v, want Unauthorized", err)
	}

	// Failed calls never touch the patient record.
	p, _ := f.patients.GetByID(ctx, "P1001")
	if len(p.AppointmentIDs) != 0 {
		t.Errorf("failed scheduling appended ids: %v", p.AppointmentIDs)
	}
}

func TestStatusTransitions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	a, err := f.svc.Schedule(ctx, f.nurse, "P1001", "S2001", f.now.Add(time.Hour))
	if err != nil {
		t.Fatal(err)
	}

	if err := f.svc.Complete(ctx, f.nurse, a.ID); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	got, _ := f.svc.Get(ctx, a.ID)
	if got.Status != StatusCompleted {
		t.Errorf("Status = %s, want COMPLETED", got.Status)
	}

	// Transitions are unchecked against the prior state: a completed
	// appointment can still be cancelled and re-completed.
	if err := f.svc.Cancel(ctx, f.nurse, a.ID); err != nil {
		t.Fatalf("Cancel after Complete: %v", err)
	}
	if err := f.svc.Complete(ctx, f.nurse, a.ID); err != nil {
		t.Fatalf("Complete after Cancel: %v", err)
	}
	got, _ = f.svc.Get(ctx, a.ID)
	if got.Status != StatusCompleted {
		t.Errorf("Status = %s, want COMPLETED", got.Status)
	}

	if err := f.svc.MarkNoShow(ctx, f.nurse, a.ID); err != nil {
		t.Fatal(err)
	}

	if err := f.svc.Complete(ctx, f.nurse, "A9999"); !errors.Is(err, herr.ErrNotFound) {
		t.Errorf("unknown id: err = %v, want NotFound", err)
	}
	if err := f.svc.UpdateStatus(ctx, f.nurse, a.ID, Status("TELEPORTED")); !errors.Is(err, herr.ErrInvalidArgument) {
		t.Errorf("bogus status: err = %v, want InvalidArgument", err)
	}
	if err := f.svc.Cancel(ctx, nil, a.ID); !errors.Is(err, herr.ErrUnauthorized) {
		t.Errorf("nil actor: err = %v, want Unauthorized", err)
	}
}

func TestDoctorSchedule(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	day := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)

	late, err := f.svc.Schedule(ctx, f.nurse, "P1001", "S2001", day.Add(15*time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	early, err := f.svc.Schedule(ctx, f.nurse, "P1001", "S2001", day.Add(9*time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	otherDay, err := f.svc.Schedule(ctx, f.nurse, "P1001", "S2001", day.Add(36*time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if err := f.svc.Cancel(ctx, f.nurse, otherDay.ID); err != nil {
		t.Fatal(err)
	}
	cancelledSameDay, err := f.svc.Schedule(ctx, f.nurse, "P1001", "S2001", day.Add(11*time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if err := f.svc.Cancel(ctx, f.nurse, cancelledSameDay.ID); err != nil {
		t.Fatal(err)
	}

	sched, err := f.svc.DoctorSchedule(ctx, "S2001", day)
	if err != nil {
		t.Fatalf("DoctorSchedule: %v", err)
	}
	if len(sched) != 2 {
		t.Fatalf("schedule has %d entries, want 2 (scheduled, same day only)", len(sched))
	}
	if sched[0].ID != early.ID || sched[1].ID != late.ID {
		t.Errorf("schedule not ascending by time: %s, %s", sched[0].ID, sched[1].ID)
	}
}

func TestQueriesOrderMostRecentFirst(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	first, _ := f.svc.Schedule(ctx, f.nurse, "P1001", "S2001", f.now.Add(1*time.Hour))
	second, _ := f.svc.Schedule(ctx, f.nurse, "P1001", "S2001", f.now.Add(2*time.Hour))

	byPatient, err := f.svc.ByPatient(ctx, "P1001")
	if err != nil || len(byPatient) != 2 {
		t.Fatalf("ByPatient = %d, err %v", len(byPatient), err)
	}
	if byPatient[0].ID != second.ID || byPatient[1].ID != first.ID {
		t.Errorf("ByPatient order = %s, %s", byPatient[0].ID, byPatient[1].ID)
	}

	byDoctor, err := f.svc.ByDoctor(ctx, "S2001")
	if err != nil || len(byDoctor) != 2 {
		t.Fatalf("ByDoctor = %d, err %v", len(byDoctor), err)
	}

	scheduled, err := f.svc.Scheduled(ctx)
	if err != nil || len(scheduled) != 2 {
		t.Fatalf("Scheduled = %d, err %v", len(scheduled), err)
	}

	if cnt, _ := f.svc.Count(ctx); cnt != 2 {
		t.Errorf("Count = %d, want 2", cnt)
	}
}
