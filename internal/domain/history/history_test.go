package history

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/domain/appointment"
	"github.com/hms/hms/internal/domain/patient"
	"github.com/hms/hms/internal/domain/person"
	"github.com/hms/hms/internal/domain/prescription"
	"github.com/hms/hms/internal/domain/staff"
	"github.com/hms/hms/internal/domain/treatment"
	"github.com/hms/hms/internal/platform/authz"
	"github.com/hms/hms/internal/platform/herr"
	"github.com/hms/hms/internal/platform/idgen"
)

// env wires every service over shared stores, the way the process
// entrypoint does.
type env struct {
	staffSvc       *staff.Service
	patientSvc     *patient.Service
	appointmentSvc *appointment.Service
	rxSvc          *prescription.Service
	treatmentSvc   *treatment.Service
	historySvc     *Service
}

func newEnv() *env {
	ids := idgen.New()
	log := zerolog.Nop()
	staffRepo := staff.NewMemoryRepository()
	patientRepo := patient.NewMemoryRepository()
	appointmentRepo := appointment.NewMemoryRepository()
	rxRepo := prescription.NewMemoryRepository()
	treatmentRepo := treatment.NewMemoryRepository()

	return &env{
		staffSvc:       staff.NewService(staffRepo, ids, log),
		patientSvc:     patient.NewService(patientRepo, staffRepo, ids, log),
		appointmentSvc: appointment.NewService(appointmentRepo, patientRepo, staffRepo, ids, log),
		rxSvc:          prescription.NewService(rxRepo, patientRepo, ids, log),
		treatmentSvc:   treatment.NewService(treatmentRepo, patientRepo, ids, log),
		historySvc:     NewService(patientRepo, staffRepo, appointmentRepo, rxRepo, treatmentRepo, log),
	}
}

func bootstrapAdmin() *staff.Staff {
	return &staff.Staff{StaffID: "S1", Name: "Root", Role: authz.RoleAdmin, Department: "Administration"}
}

func TestPatientHistoryEndToEnd(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	admin := bootstrapAdmin()

	drX, err := e.staffSvc.OnboardDoctor(ctx, admin, "Dr. X", 45, person.GenderMale, "Cardiology", "Cardiology")
	if err != nil {
		t.Fatalf("onboard doctor: %v", err)
	}
	jane, err := e.patientSvc.Onboard(ctx, admin, "Jane Doe", 30, person.GenderFemale)
	if err != nil {
		t.Fatalf("onboard patient: %v", err)
	}
	if err := e.patientSvc.AssignToDoctor(ctx, admin, jane.PatientID, drX.StaffID); err != nil {
		t.Fatalf("assign: %v", err)
	}

	t0 := time.Now().Add(48 * time.Hour)
	appt, err := e.appointmentSvc.Schedule(ctx, drX, jane.PatientID, drX.StaffID, t0)
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if _, err := e.rxSvc.Create(ctx, drX, jane.PatientID, "Aspirin", "100mg", 10); err != nil {
		t.Fatalf("prescribe: %v", err)
	}

	rep, err := e.historySvc.PatientHistory(ctx, drX, jane.PatientID)
	if err != nil {
		t.Fatalf("PatientHistory: %v", err)
	}
	if rep.AssignedDoctor == nil || rep.AssignedDoctor.StaffID != drX.StaffID {
		t.Errorf("AssignedDoctor = %+v, want Dr. X", rep.AssignedDoctor)
	}
	if len(rep.Prescriptions) != 1 || rep.Prescriptions[0].DrugName != "Aspirin" {
		t.Errorf("Prescriptions = %+v", rep.Prescriptions)
	}
	if len(rep.Treatments) != 0 {
		t.Errorf("Treatments = %+v, want none", rep.Treatments)
	}
	if len(rep.Patient.AppointmentIDs) != 1 || rep.Patient.AppointmentIDs[0] != appt.ID {
		t.Errorf("AppointmentIDs = %v", rep.Patient.AppointmentIDs)
	}
	if len(rep.Appointments) != 1 || rep.Appointments[0].Status != appointment.StatusScheduled {
		t.Errorf("Appointments = %+v, want one SCHEDULED entry", rep.Appointments)
	}
}

func TestPatientHistoryIdempotentRead(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	admin := bootstrapAdmin()

	doc, err := e.staffSvc.OnboardDoctor(ctx, admin, "Dr. Y", 50, person.GenderFemale, "Oncology", "Oncology")
	if err != nil {
		t.Fatal(err)
	}
	p, err := e.patientSvc.Onboard(ctx, admin, "John Doe", 41, person.GenderMale)
	if err != nil {
		t.Fatal(err)
	}
	if err := e.patientSvc.AssignToDoctor(ctx, admin, p.PatientID, doc.StaffID); err != nil {
		t.Fatal(err)
	}
	if _, err := e.rxSvc.Create(ctx, doc, p.PatientID, "Tamoxifen", "20mg", 30); err != nil {
		t.Fatal(err)
	}
	if _, err := e.treatmentSvc.Record(ctx, doc, p.PatientID, "Stage I", "Chemo cycle 1"); err != nil {
		t.Fatal(err)
	}
	if err := e.patientSvc.AddMedicalHistory(ctx, doc, p.PatientID, "Family history of cancer"); err != nil {
		t.Fatal(err)
	}

	first, err := e.historySvc.PatientHistory(ctx, doc, p.PatientID)
	if err != nil {
		t.Fatal(err)
	}
	second, err := e.historySvc.PatientHistory(ctx, doc, p.PatientID)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("two reads differ:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestPatientHistoryErrors(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	admin := bootstrapAdmin()

	if _, err := e.historySvc.PatientHistory(ctx, nil, "P1001"); !errors.Is(err, herr.ErrUnauthorized) {
		t.Errorf("nil actor: err = %v, want Unauthorized", err)
	}
	if _, err := e.historySvc.PatientHistory(ctx, admin, "P9999"); !errors.Is(err, herr.ErrNotFound) {
		t.Errorf("unknown patient: err = %v, want NotFound", err)
	}
}

func TestPatientHistoryUnassignedPatient(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	admin := bootstrapAdmin()

	p, err := e.patientSvc.Onboard(ctx, admin, "Loner", 25, person.GenderMale)
	if err != nil {
		t.Fatal(err)
	}

	rep, err := e.historySvc.PatientHistory(ctx, admin, p.PatientID)
	if err != nil {
		t.Fatal(err)
	}
	if rep.AssignedDoctor != nil {
		t.Errorf("AssignedDoctor = %+v, want nil", rep.AssignedDoctor)
	}
	if len(rep.Appointments) != 0 || len(rep.Prescriptions) != 0 || len(rep.Treatments) != 0 {
		t.Errorf("fresh patient has history: %+v", rep)
	}
}
