package appointment

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/hms/hms/internal/platform/herr"
)

// MemoryRepository is the process-lifetime appointment store. The
// store's own mutex is the exclusive region that makes the
// conflict-check-then-insert sequence atomic.
type MemoryRepository struct {
	mu      sync.RWMutex
	records map[string]*Appointment
}

var _ Repository = (*MemoryRepository)(nil)

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{records: make(map[string]*Appointment)}
}

func (r *MemoryRepository) CreateScheduled(_ context.Context, a *Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[a.ID]; ok {
		return herr.Conflictf("appointment already exists: %s", a.ID)
	}
	if r.hasConflict(a.DoctorID, a.Time) {
		return herr.Conflictf("doctor %s already has an appointment at %s", a.DoctorID, a.Time.Format(time.RFC3339))
	}
	r.records[a.ID] = a.Clone()
	return nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (*Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.records[id]
	if !ok {
		return nil, herr.NotFoundf("appointment not found: %s", id)
	}
	return a.Clone(), nil
}

func (r *MemoryRepository) Update(_ context.Context, a *Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[a.ID]; !ok {
		return herr.NotFoundf("appointment not found: %s", a.ID)
	}
	r.records[a.ID] = a.Clone()
	return nil
}

func (r *MemoryRepository) List(_ context.Context) ([]*Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(*Appointment) bool { return true }, mostRecentFirst), nil
}

func (r *MemoryRepository) ListByPatient(_ context.Context, patientID string) ([]*Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(a *Appointment) bool { return a.PatientID == patientID }, mostRecentFirst), nil
}

func (r *MemoryRepository) ListByDoctor(_ context.Context, doctorID string) ([]*Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(a *Appointment) bool { return a.DoctorID == doctorID }, mostRecentFirst), nil
}

func (r *MemoryRepository) ListByStatus(_ context.Context, status Status) ([]*Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(a *Appointment) bool { return a.Status == status }, mostRecentFirst), nil
}

func (r *MemoryRepository) ListByDoctorAndDate(_ context.Context, doctorID string, day time.Time) ([]*Appointment, error) {
	y, m, d := day.Date()
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(a *Appointment) bool {
		ay, am, ad := a.Time.Date()
		return a.DoctorID == doctorID &&
			a.Status == StatusScheduled &&
			ay == y && am == m && ad == d
	}, ascendingByTime), nil
}

func (r *MemoryRepository) HasConflict(_ context.Context, doctorID string, at time.Time) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.hasConflict(doctorID, at), nil
}

func (r *MemoryRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records), nil
}

// hasConflict reports a SCHEDULED appointment for the doctor at exactly
// the given instant. Callers must hold at least a read lock.
func (r *MemoryRepository) hasConflict(doctorID string, at time.Time) bool {
	for _, a := range r.records {
		if a.DoctorID == doctorID && a.Status == StatusScheduled && a.Time.Equal(at) {
			return true
		}
	}
	return false
}

type ordering int

const (
	mostRecentFirst ordering = iota
	ascendingByTime
)

func (r *MemoryRepository) collect(match func(*Appointment) bool, ord ordering) []*Appointment {
	var out []*Appointment
	for _, a := range r.records {
		if match(a) {
			out = append(out, a.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if ord == ascendingByTime {
			return out[i].Time.Before(out[j].Time)
		}
		return out[i].Time.After(out[j].Time)
	})
	return out
}
