// Package idgen produces the prefixed record identifiers used across
// the stores. Each entity kind owns an independent monotonic counter
// seeded at a distinct base so ids stay human-distinguishable
// (P1001..., S2001..., A3001..., T4001..., RX5001...). Counters only
// move forward; a drawn id is never reused, even if the record it was
// drawn for is discarded.
package idgen

import (
	"fmt"
	"sync/atomic"
)

const (
	patientBase      = 1000
	staffBase        = 2000
	appointmentBase  = 3000
	treatmentBase    = 4000
	prescriptionBase = 5000
)

// Generator hands out unique ids per entity kind. Safe for concurrent
// use; increment-and-read is the atomic unit.
type Generator struct {
	patient      atomic.Int64
	staff        atomic.Int64
	appointment  atomic.Int64
	treatment    atomic.Int64
	prescription atomic.Int64
}

// New returns a Generator with every counter at its base offset.
func New() *Generator {
	g := &Generator{}
	g.patient.Store(patientBase)
	g.staff.Store(staffBase)
	g.appointment.Store(appointmentBase)
	g.treatment.Store(treatmentBase)
	g.prescription.Store(prescriptionBase)
	return g
}

// PatientID returns the next patient id.
func (g *Generator) PatientID() string {
	return fmt.Sprintf("P%d", g.patient.Add(1))
}

// StaffID returns the next staff id.
func (g *Generator) StaffID() string {
	return fmt.Sprintf("S%d", g.staff.Add(1))
}

// AppointmentID returns the next appointment id.
func (g *Generator) AppointmentID() string {
	return fmt.Sprintf("A%d", g.appointment.Add(1))
}

// TreatmentID returns the next treatment id.
func (g *Generator) TreatmentID() string {
	return fmt.Sprintf("T%d", g.treatment.Add(1))
}

// PrescriptionID returns the next prescription id.
func (g *Generator) PrescriptionID() string {
	return fmt.Sprintf("RX%d", g.prescription.Add(1))
}

// PersonID returns a person id for the given kind draw. Person records
// and their business records draw from the same kind counter, so a
// patient ends up with e.g. person id PER-P1001 and patient id P1002.
func PersonID(kindID string) string {
	return "PER-" + kindID
}
