// Package cli is the interactive console collaborator. It owns input
// parsing, prompting and report rendering, and consumes the domain
// services strictly through their operation contracts.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/domain/appointment"
	"github.com/hms/hms/internal/domain/history"
	"github.com/hms/hms/internal/domain/patient"
	"github.com/hms/hms/internal/domain/person"
	"github.com/hms/hms/internal/domain/prescription"
	"github.com/hms/hms/internal/domain/staff"
	"github.com/hms/hms/internal/domain/treatment"
)

// Services bundles everything the console consumes.
type Services struct {
	Staff         *staff.Service
	Patients      *patient.Service
	Appointments  *appointment.Service
	Prescriptions *prescription.Service
	Treatments    *treatment.Service
	History       *history.Service
}

type App struct {
	in           *bufio.Scanner
	out          io.Writer
	log          zerolog.Logger
	sessions     *SessionManager
	hospitalName string
	svc          Services
}

func NewApp(in io.Reader, out io.Writer, hospitalName string, idleTimeout time.Duration, svc Services, log zerolog.Logger) *App {
	return &App{
		in:           bufio.NewScanner(in),
		out:          out,
		log:          log.With().Str("component", "cli").Logger(),
		sessions:     NewSessionManager(idleTimeout),
		hospitalName: hospitalName,
		svc:          svc,
	}
}

// Run drives the console until the user exits or input ends.
func (a *App) Run(ctx context.Context) error {
	fmt.Fprintf(a.out, "==== %s ====\n", strings.ToUpper(a.hospitalName))

	for {
		if !a.sessions.Active() {
			ok, err := a.login(ctx)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(a.out, "Exiting system...")
				return nil
			}
		}
		done, err := a.mainMenu(ctx)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

func (a *App) login(ctx context.Context) (bool, error) {
	fmt.Fprintln(a.out, "\n--- LOGIN ---")
	all, err := a.svc.Staff.All(ctx)
	if err != nil {
		return false, err
	}
	fmt.Fprintln(a.out, "Available staff IDs:")
	for _, s := range all {
		fmt.Fprintf(a.out, "  %s - %s (%s)\n", s.StaffID, s.Name, s.Role)
	}

	for {
		input, ok := a.prompt("\nEnter staff ID (or 'exit' to quit): ")
		if !ok {
			return false, nil
		}
		if strings.EqualFold(input, "exit") {
			return false, nil
		}

		actor, err := a.svc.Staff.FindByID(ctx, input)
		if err != nil {
			fmt.Fprintln(a.out, "Invalid staff ID.")
			continue
		}

		sess := a.sessions.Start(actor)
		a.log.Info().
			Str("session_id", sess.ID.String()).
			Str("staff_id", actor.StaffID).
			Msg("staff signed in")
		fmt.Fprintf(a.out, "\nWelcome, %s (%s)!\n", actor.Name, actor.Role)
		return true, nil
	}
}

// mainMenu shows the top-level menu once. It reports done=true when the
// user chose to exit the process.
func (a *App) mainMenu(ctx context.Context) (bool, error) {
	actor, err := a.sessions.Actor()
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return false, nil
	}

	fmt.Fprintln(a.out, "\n========== MAIN MENU ==========")
	fmt.Fprintf(a.out, "Signed in as: %s (%s)\n", actor.Name, actor.Role)
	fmt.Fprintln(a.out, "1. Staff management")
	fmt.Fprintln(a.out, "2. Patient management")
	fmt.Fprintln(a.out, "3. Appointment management")
	fmt.Fprintln(a.out, "4. Prescription management")
	fmt.Fprintln(a.out, "5. Treatment management")
	fmt.Fprintln(a.out, "6. Patient history report")
	fmt.Fprintln(a.out, "7. Sign out")
	fmt.Fprintln(a.out, "0. Exit")

	choice, ok := a.promptInt("Choose option: ")
	if !ok {
		return true, nil
	}

	switch choice {
	case 1:
		a.staffMenu(ctx, actor)
	case 2:
		a.patientMenu(ctx, actor)
	case 3:
		a.appointmentMenu(ctx, actor)
	case 4:
		a.prescriptionMenu(ctx, actor)
	case 5:
		a.treatmentMenu(ctx, actor)
	case 6:
		a.viewPatientHistory(ctx, actor)
	case 7:
		a.sessions.End()
		fmt.Fprintln(a.out, "Signed out.")
	case 0:
		fmt.Fprintln(a.out, "Exiting system...")
		return true, nil
	default:
		fmt.Fprintln(a.out, "Invalid option.")
	}
	return false, nil
}

func (a *App) staffMenu(ctx context.Context, actor *staff.Staff) {
	fmt.Fprintln(a.out, "\n--- Staff Management ---")
	fmt.Fprintln(a.out, "1. View all staff")
	fmt.Fprintln(a.out, "2. View all doctors")
	fmt.Fprintln(a.out, "3. View staff by department")
	fmt.Fprintln(a.out, "4. Onboard doctor")
	fmt.Fprintln(a.out, "5. Onboard nurse")
	fmt.Fprintln(a.out, "6. Onboard admin")
	fmt.Fprintln(a.out, "0. Back")

	choice, ok := a.promptInt("Choose option: ")
	if !ok {
		return
	}
	switch choice {
	case 1:
		all, err := a.svc.Staff.All(ctx)
		if err != nil {
			a.fail(err)
			return
		}
		fmt.Fprintf(a.out, "\n========== ALL STAFF (%d) ==========\n", len(all))
		for _, s := range all {
			fmt.Fprintln(a.out, renderStaff(s))
		}
	case 2:
		docs, err := a.svc.Staff.Doctors(ctx)
		if err != nil {
			a.fail(err)
			return
		}
		fmt.Fprintf(a.out, "\n========== DOCTORS (%d) ==========\n", len(docs))
		for _, s := range docs {
			fmt.Fprintln(a.out, renderStaff(s))
		}
	case 3:
		dept, ok := a.prompt("Department: ")
		if !ok {
			return
		}
		members, err := a.svc.Staff.ByDepartment(ctx, dept)
		if err != nil {
			a.fail(err)
			return
		}
		fmt.Fprintf(a.out, "\n========== %s (%d) ==========\n", strings.ToUpper(dept), len(members))
		for _, s := range members {
			fmt.Fprintln(a.out, renderStaff(s))
		}
	case 4:
		name, age, gender, ok := a.promptPerson()
		if !ok {
			return
		}
		dept, ok := a.prompt("Department: ")
		if !ok {
			return
		}
		spec, ok := a.prompt("Specialization: ")
		if !ok {
			return
		}
		doc, err := a.svc.Staff.OnboardDoctor(ctx, actor, name, age, gender, dept, spec)
		if err != nil {
			a.fail(err)
			return
		}
		fmt.Fprintln(a.out, "Doctor onboarded.")
		fmt.Fprintln(a.out, renderStaff(doc))
	case 5:
		name, age, gender, ok := a.promptPerson()
		if !ok {
			return
		}
		dept, ok := a.prompt("Department: ")
		if !ok {
			return
		}
		ward, ok := a.prompt("Ward: ")
		if !ok {
			return
		}
		nurse, err := a.svc.Staff.OnboardNurse(ctx, actor, name, age, gender, dept, ward)
		if err != nil {
			a.fail(err)
			return
		}
		fmt.Fprintln(a.out, "Nurse onboarded.")
		fmt.Fprintln(a.out, renderStaff(nurse))
	case 6:
		name, age, gender, ok := a.promptPerson()
		if !ok {
			return
		}
		dept, ok := a.prompt("Department: ")
		if !ok {
			return
		}
		adm, err := a.svc.Staff.OnboardAdmin(ctx, actor, name, age, gender, dept)
		if err != nil {
			a.fail(err)
			return
		}
		fmt.Fprintln(a.out, "Admin onboarded.")
		fmt.Fprintln(a.out, renderStaff(adm))
	}
}

func (a *App) patientMenu(ctx context.Context, actor *staff.Staff) {
	fmt.Fprintln(a.out, "\n--- Patient Management ---")
	fmt.Fprintln(a.out, "1. View all patients")
	fmt.Fprintln(a.out, "2. Onboard patient")
	fmt.Fprintln(a.out, "3. Assign patient to doctor")
	fmt.Fprintln(a.out, "4. Search patients by name")
	fmt.Fprintln(a.out, "5. Add medical history entry")
	fmt.Fprintln(a.out, "0. Back")

	choice, ok := a.promptInt("Choose option: ")
	if !ok {
		return
	}
	switch choice {
	case 1:
		patients, err := a.svc.Patients.All(ctx)
		if err != nil {
			a.fail(err)
			return
		}
		fmt.Fprintf(a.out, "\n========== ALL PATIENTS (%d) ==========\n", len(patients))
		for _, p := range patients {
			fmt.Fprintln(a.out, renderPatient(p))
		}
	case 2:
		name, age, gender, ok := a.promptPerson()
		if !ok {
			return
		}
		p, err := a.svc.Patients.Onboard(ctx, actor, name, age, gender)
		if err != nil {
			a.fail(err)
			return
		}
		fmt.Fprintln(a.out, "Patient onboarded.")
		fmt.Fprintln(a.out, renderPatient(p))
	case 3:
		docs, err := a.svc.Staff.Doctors(ctx)
		if err != nil {
			a.fail(err)
			return
		}
		if len(docs) == 0 {
			fmt.Fprintln(a.out, "No doctors available. Onboard a doctor first.")
			return
		}
		fmt.Fprintln(a.out, "\n--- Available Doctors ---")
		for _, d := range docs {
			fmt.Fprintf(a.out, "  %s - %s\n", d.StaffID, d.Name)
		}
		patientID, ok := a.prompt("Patient ID: ")
		if !ok {
			return
		}
		doctorID, ok := a.prompt("Doctor ID: ")
		if !ok {
			return
		}
		if err := a.svc.Patients.AssignToDoctor(ctx, actor, patientID, doctorID); err != nil {
			a.fail(err)
			return
		}
		fmt.Fprintln(a.out, "Patient assigned.")
	case 4:
		query, ok := a.prompt("Name to search: ")
		if !ok {
			return
		}
		results, err := a.svc.Patients.SearchByName(ctx, query)
		if err != nil {
			a.fail(err)
			return
		}
		fmt.Fprintf(a.out, "\n========== SEARCH RESULTS (%d) ==========\n", len(results))
		for _, p := range results {
			fmt.Fprintln(a.out, renderPatient(p))
		}
	case 5:
		patientID, ok := a.prompt("Patient ID: ")
		if !ok {
			return
		}
		entry, ok := a.prompt("History entry: ")
		if !ok {
			return
		}
		if err := a.svc.Patients.AddMedicalHistory(ctx, actor, patientID, entry); err != nil {
			a.fail(err)
			return
		}
		fmt.Fprintln(a.out, "History entry added.")
	}
}

func (a *App) appointmentMenu(ctx context.Context, actor *staff.Staff) {
	fmt.Fprintln(a.out, "\n--- Appointment Management ---")
	fmt.Fprintln(a.out, "1. View all appointments")
	fmt.Fprintln(a.out, "2. Schedule appointment")
	fmt.Fprintln(a.out, "3. Complete appointment")
	fmt.Fprintln(a.out, "4. Cancel appointment")
	fmt.Fprintln(a.out, "5. Mark no-show")
	fmt.Fprintln(a.out, "6. View doctor's schedule for a day")
	fmt.Fprintln(a.out, "0. Back")

	choice, ok := a.promptInt("Choose option: ")
	if !ok {
		return
	}
	switch choice {
	case 1:
		appts, err := a.svc.Appointments.All(ctx)
		if err != nil {
			a.fail(err)
			return
		}
		fmt.Fprintf(a.out, "\n========== ALL APPOINTMENTS (%d) ==========\n", len(appts))
		for _, appt := range appts {
			fmt.Fprintln(a.out, renderAppointment(appt))
		}
	case 2:
		patientID, ok := a.prompt("Patient ID: ")
		if !ok {
			return
		}
		doctorID, ok := a.prompt("Doctor ID: ")
		if !ok {
			return
		}
		raw, ok := a.prompt("Date and time (YYYY-MM-DD HH:MM): ")
		if !ok {
			return
		}
		at, valid := parseDateTime(raw)
		if !valid {
			fmt.Fprintln(a.out, "Unparseable date/time.")
			return
		}
		appt, err := a.svc.Appointments.Schedule(ctx, actor, patientID, doctorID, at)
		if err != nil {
			a.fail(err)
			return
		}
		fmt.Fprintln(a.out, "Appointment scheduled.")
		fmt.Fprintln(a.out, renderAppointment(appt))
	case 3:
		a.transition(ctx, actor, a.svc.Appointments.Complete, "completed")
	case 4:
		a.transition(ctx, actor, a.svc.Appointments.Cancel, "cancelled")
	case 5:
		a.transition(ctx, actor, a.svc.Appointments.MarkNoShow, "marked as no-show")
	case 6:
		doctorID, ok := a.prompt("Doctor ID: ")
		if !ok {
			return
		}
		raw, ok := a.prompt("Date (YYYY-MM-DD): ")
		if !ok {
			return
		}
		day, valid := parseDate(raw)
		if !valid {
			fmt.Fprintln(a.out, "Unparseable date.")
			return
		}
		sched, err := a.svc.Appointments.DoctorSchedule(ctx, doctorID, day)
		if err != nil {
			a.fail(err)
			return
		}
		fmt.Fprintf(a.out, "\n========== SCHEDULE (%d) ==========\n", len(sched))
		for _, appt := range sched {
			fmt.Fprintln(a.out, renderAppointment(appt))
		}
	}
}

func (a *App) transition(ctx context.Context, actor *staff.Staff, op func(context.Context, *staff.Staff, string) error, verb string) {
	id, ok := a.prompt("Appointment ID: ")
	if !ok {
		return
	}
	if err := op(ctx, actor, id); err != nil {
		a.fail(err)
		return
	}
	fmt.Fprintf(a.out, "Appointment %s.\n", verb)
}

func (a *App) prescriptionMenu(ctx context.Context, actor *staff.Staff) {
	fmt.Fprintln(a.out, "\n--- Prescription Management ---")
	fmt.Fprintln(a.out, "1. View all prescriptions")
	fmt.Fprintln(a.out, "2. Create prescription")
	fmt.Fprintln(a.out, "3. View patient's prescriptions")
	fmt.Fprintln(a.out, "4. Search by drug name")
	fmt.Fprintln(a.out, "0. Back")

	choice, ok := a.promptInt("Choose option: ")
	if !ok {
		return
	}
	switch choice {
	case 1:
		rxs, err := a.svc.Prescriptions.All(ctx, actor)
		if err != nil {
			a.fail(err)
			return
		}
		fmt.Fprintf(a.out, "\n========== ALL PRESCRIPTIONS (%d) ==========\n", len(rxs))
		for _, rx := range rxs {
			fmt.Fprintln(a.out, renderPrescription(rx))
		}
	case 2:
		patientID, ok := a.prompt("Patient ID: ")
		if !ok {
			return
		}
		drug, ok := a.prompt("Drug name: ")
		if !ok {
			return
		}
		dosage, ok := a.prompt("Dosage: ")
		if !ok {
			return
		}
		days, ok := a.promptInt("Duration (days): ")
		if !ok {
			return
		}
		rx, err := a.svc.Prescriptions.Create(ctx, actor, patientID, drug, dosage, days)
		if err != nil {
			a.fail(err)
			return
		}
		fmt.Fprintln(a.out, "Prescription created.")
		fmt.Fprintln(a.out, renderPrescription(rx))
	case 3:
		patientID, ok := a.prompt("Patient ID: ")
		if !ok {
			return
		}
		rxs, err := a.svc.Prescriptions.ByPatient(ctx, actor, patientID)
		if err != nil {
			a.fail(err)
			return
		}
		fmt.Fprintf(a.out, "\n========== PRESCRIPTIONS (%d) ==========\n", len(rxs))
		for _, rx := range rxs {
			fmt.Fprintln(a.out, renderPrescription(rx))
		}
	case 4:
		drug, ok := a.prompt("Drug name: ")
		if !ok {
			return
		}
		rxs, err := a.svc.Prescriptions.SearchByDrug(ctx, actor, drug)
		if err != nil {
			a.fail(err)
			return
		}
		fmt.Fprintf(a.out, "\n========== MATCHES (%d) ==========\n", len(rxs))
		for _, rx := range rxs {
			fmt.Fprintln(a.out, renderPrescription(rx))
		}
	}
}

func (a *App) treatmentMenu(ctx context.Context, actor *staff.Staff) {
	fmt.Fprintln(a.out, "\n--- Treatment Management ---")
	fmt.Fprintln(a.out, "1. View all treatments")
	fmt.Fprintln(a.out, "2. Record treatment")
	fmt.Fprintln(a.out, "3. View patient's treatments")
	fmt.Fprintln(a.out, "0. Back")

	choice, ok := a.promptInt("Choose option: ")
	if !ok {
		return
	}
	switch choice {
	case 1:
		recs, err := a.svc.Treatments.All(ctx, actor)
		if err != nil {
			a.fail(err)
			return
		}
		fmt.Fprintf(a.out, "\n========== ALL TREATMENTS (%d) ==========\n", len(recs))
		for _, rec := range recs {
			fmt.Fprintln(a.out, renderTreatment(rec))
		}
	case 2:
		patientID, ok := a.prompt("Patient ID: ")
		if !ok {
			return
		}
		diagnosis, ok := a.prompt("Diagnosis: ")
		if !ok {
			return
		}
		notes, ok := a.prompt("Notes (optional): ")
		if !ok {
			return
		}
		rec, err := a.svc.Treatments.Record(ctx, actor, patientID, diagnosis, notes)
		if err != nil {
			a.fail(err)
			return
		}
		fmt.Fprintln(a.out, "Treatment recorded.")
		fmt.Fprintln(a.out, renderTreatment(rec))
	case 3:
		patientID, ok := a.prompt("Patient ID: ")
		if !ok {
			return
		}
		recs, err := a.svc.Treatments.ByPatient(ctx, actor, patientID)
		if err != nil {
			a.fail(err)
			return
		}
		fmt.Fprintf(a.out, "\n========== TREATMENTS (%d) ==========\n", len(recs))
		for _, rec := range recs {
			fmt.Fprintln(a.out, renderTreatment(rec))
		}
	}
}

func (a *App) viewPatientHistory(ctx context.Context, actor *staff.Staff) {
	patientID, ok := a.prompt("Patient ID: ")
	if !ok {
		return
	}
	rep, err := a.svc.History.PatientHistory(ctx, actor, patientID)
	if err != nil {
		a.fail(err)
		return
	}
	fmt.Fprint(a.out, renderReport(rep))
}

// -- input helpers --

func (a *App) prompt(label string) (string, bool) {
	fmt.Fprint(a.out, label)
	if !a.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(a.in.Text()), true
}

func (a *App) promptInt(label string) (int, bool) {
	for {
		raw, ok := a.prompt(label)
		if !ok {
			return 0, false
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			fmt.Fprintln(a.out, "Enter a number.")
			continue
		}
		return n, true
	}
}

func (a *App) promptPerson() (string, int, person.Gender, bool) {
	name, ok := a.prompt("Name: ")
	if !ok {
		return "", 0, "", false
	}
	age, ok := a.promptInt("Age: ")
	if !ok {
		return "", 0, "", false
	}
	for {
		raw, ok := a.prompt("Gender (Male/Female): ")
		if !ok {
			return "", 0, "", false
		}
		gender, err := person.ParseGender(raw)
		if err != nil {
			fmt.Fprintln(a.out, err.Error())
			continue
		}
		return name, age, gender, true
	}
}

func (a *App) fail(err error) {
	a.log.Debug().Err(err).Msg("operation failed")
	fmt.Fprintf(a.out, "ERROR: %s\n", err.Error())
}
