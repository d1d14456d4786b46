package patient

import (
	"github.com/hms/hms/internal/domain/person"
)

// Patient is a patient record. The id lists are denormalized,
// append-only references into the appointment, treatment and
// prescription stores; the services that create those records append
// here in the same logical transaction.
type Patient struct {
	PersonID  string        `json:"person_id"`
	PatientID string        `json:"patient_id"`
	Name      string        `json:"name"`
	Age       int           `json:"age"`
	Gender    person.Gender `json:"gender"`

	// Empty when no doctor is assigned. Kept in sync with the owning
	// doctor's AssignedPatientIDs.
	AssignedDoctorID string `json:"assigned_doctor_id,omitempty"`

	MedicalHistory  []string `json:"medical_history"`
	AppointmentIDs  []string `json:"appointment_ids"`
	TreatmentIDs    []string `json:"treatment_ids"`
	PrescriptionIDs []string `json:"prescription_ids"`
}

// AddMedicalHistory appends an entry, preserving insertion order.
func (p *Patient) AddMedicalHistory(entry string) {
	p.MedicalHistory = append(p.MedicalHistory, entry)
}

// AddAppointment appends an appointment id.
func (p *Patient) AddAppointment(appointmentID string) {
	p.AppointmentIDs = append(p.AppointmentIDs, appointmentID)
}

// AddTreatment appends a treatment id.
func (p *Patient) AddTreatment(treatmentID string) {
	p.TreatmentIDs = append(p.TreatmentIDs, treatmentID)
}

// AddPrescription appends a prescription id.
func (p *Patient) AddPrescription(prescriptionID string) {
	p.PrescriptionIDs = append(p.PrescriptionIDs, prescriptionID)
}

// Clone returns a deep copy safe to hand across the store boundary.
func (p *Patient) Clone() *Patient {
	if p == nil {
		return nil
	}
	out := *p
	out.MedicalHistory = cloneStrings(p.MedicalHistory)
	out.AppointmentIDs = cloneStrings(p.AppointmentIDs)
	out.TreatmentIDs = cloneStrings(p.TreatmentIDs)
	out.PrescriptionIDs = cloneStrings(p.PrescriptionIDs)
	return &out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}
