package prescription

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/hms/hms/internal/platform/herr"
)

// MemoryRepository is the process-lifetime prescription store.
// Prescriptions are create-only; there is no update path.
type MemoryRepository struct {
	mu      sync.RWMutex
	records map[string]*Prescription
}

var _ Repository = (*MemoryRepository)(nil)

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{records: make(map[string]*Prescription)}
}

func (r *MemoryRepository) Create(_ context.Context, p *Prescription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[p.ID]; ok {
		return herr.Conflictf("prescription already exists: %s", p.ID)
	}
	r.records[p.ID] = p.Clone()
	return nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (*Prescription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.records[id]
	if !ok {
		return nil, herr.NotFoundf("prescription not found: %s", id)
	}
	return p.Clone(), nil
}

func (r *MemoryRepository) List(_ context.Context) ([]*Prescription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(*Prescription) bool { return true }), nil
}

func (r *MemoryRepository) ListByPatient(_ context.Context, patientID string) ([]*Prescription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(p *Prescription) bool { return p.PatientID == patientID }), nil
}

func (r *MemoryRepository) ListByDoctor(_ context.Context, doctorID string) ([]*Prescription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(p *Prescription) bool { return p.PrescribingDoctorID == doctorID }), nil
}

// ListByDrugName matches the drug name exactly, ignoring case.
func (r *MemoryRepository) ListByDrugName(_ context.Context, drugName string) ([]*Prescription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(p *Prescription) bool {
		return strings.EqualFold(p.DrugName, drugName)
	}), nil
}

func (r *MemoryRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records), nil
}

// collect gathers matching records most recent first, id as tiebreak.
func (r *MemoryRepository) collect(match func(*Prescription) bool) []*Prescription {
	var out []*Prescription
	for _, p := range r.records {
		if match(p) {
			out = append(out, p.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].PrescribedDate.Equal(out[j].PrescribedDate) {
			return out[i].PrescribedDate.After(out[j].PrescribedDate)
		}
		return out[i].ID > out[j].ID
	})
	return out
}
