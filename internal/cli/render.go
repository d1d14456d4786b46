package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/hms/hms/internal/domain/appointment"
	"github.com/hms/hms/internal/domain/history"
	"github.com/hms/hms/internal/domain/patient"
	"github.com/hms/hms/internal/domain/prescription"
	"github.com/hms/hms/internal/domain/staff"
	"github.com/hms/hms/internal/domain/treatment"
	"github.com/hms/hms/internal/platform/authz"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04"
)

func renderStaff(s *staff.Staff) string {
	switch s.Role {
	case authz.RoleDoctor:
		return fmt.Sprintf("Dr. %s (%s) - %s | Dept: %s | Patients: %d",
			s.Name, s.StaffID, s.Specialization, s.Department, len(s.AssignedPatientIDs))
	case authz.RoleNurse:
		return fmt.Sprintf("Nurse %s (%s) - Ward: %s | Dept: %s",
			s.Name, s.StaffID, s.Ward, s.Department)
	default:
		return fmt.Sprintf("Admin %s (%s) - Dept: %s", s.Name, s.StaffID, s.Department)
	}
}

func renderPatient(p *patient.Patient) string {
	doctor := p.AssignedDoctorID
	if doctor == "" {
		doctor = "Not Assigned"
	}
	return fmt.Sprintf("Patient: %s (ID: %s) - Age: %d, Gender: %s | Doctor: %s",
		p.Name, p.PatientID, p.Age, p.Gender, doctor)
}

func renderAppointment(a *appointment.Appointment) string {
	return fmt.Sprintf("Appointment %s: Patient %s with Doctor %s on %s [%s]",
		a.ID, a.PatientID, a.DoctorID, a.Time.Format(dateTimeLayout), a.Status)
}

func renderPrescription(rx *prescription.Prescription) string {
	return fmt.Sprintf("Rx %s: %s (%s) for %d days | Prescribed by %s on %s",
		rx.ID, rx.DrugName, rx.Dosage, rx.DurationDays,
		rx.PrescribingDoctorID, rx.PrescribedDate.Format(dateLayout))
}

func renderTreatment(rec *treatment.Record) string {
	return fmt.Sprintf("Treatment %s on %s: %s | Notes: %s | Doctor: %s",
		rec.ID, rec.Date.Format(dateLayout), rec.Diagnosis, rec.Notes, rec.AttendingDoctorID)
}

// renderReport builds the full patient history report text.
func renderReport(rep *history.Report) string {
	var b strings.Builder
	b.WriteString("\n========== PATIENT HISTORY REPORT ==========\n")
	b.WriteString(renderPatient(rep.Patient))
	b.WriteString("\n")

	if rep.AssignedDoctor != nil {
		fmt.Fprintf(&b, "\nAssigned Doctor: %s (%s)\n",
			rep.AssignedDoctor.Name, rep.AssignedDoctor.Specialization)
	} else {
		b.WriteString("\nAssigned Doctor: Not Assigned\n")
	}

	b.WriteString("\n--- Medical History ---\n")
	if len(rep.Patient.MedicalHistory) == 0 {
		b.WriteString("No medical history recorded.\n")
	}
	for i, entry := range rep.Patient.MedicalHistory {
		fmt.Fprintf(&b, "%d. %s\n", i+1, entry)
	}

	fmt.Fprintf(&b, "\n--- Appointments (%d) ---\n", len(rep.Appointments))
	if len(rep.Appointments) == 0 {
		b.WriteString("No appointments recorded.\n")
	}
	for _, appt := range rep.Appointments {
		b.WriteString(renderAppointment(appt))
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\n--- Treatments (%d) ---\n", len(rep.Treatments))
	if len(rep.Treatments) == 0 {
		b.WriteString("No treatments recorded.\n")
	}
	for _, rec := range rep.Treatments {
		b.WriteString(renderTreatment(rec))
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\n--- Prescriptions (%d) ---\n", len(rep.Prescriptions))
	if len(rep.Prescriptions) == 0 {
		b.WriteString("No prescriptions recorded.\n")
	}
	for _, rx := range rep.Prescriptions {
		b.WriteString(renderPrescription(rx))
		b.WriteString("\n")
	}

	b.WriteString("============================================\n")
	return b.String()
}

func parseDateTime(input string) (time.Time, bool) {
	t, err := time.ParseInLocation(dateTimeLayout, strings.TrimSpace(input), time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func parseDate(input string) (time.Time, bool) {
	t, err := time.ParseInLocation(dateLayout, strings.TrimSpace(input), time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
