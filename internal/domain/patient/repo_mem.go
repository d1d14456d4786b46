package patient

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/hms/hms/internal/platform/herr"
)

// MemoryRepository is the process-lifetime patient store.
type MemoryRepository struct {
	mu      sync.RWMutex
	records map[string]*Patient
}

var _ Repository = (*MemoryRepository)(nil)

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{records: make(map[string]*Patient)}
}

func (r *MemoryRepository) Create(_ context.Context, p *Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[p.PatientID]; ok {
		return herr.Conflictf("patient already exists: %s", p.PatientID)
	}
	r.records[p.PatientID] = p.Clone()
	return nil
}

func (r *MemoryRepository) GetByID(_ context.Context, patientID string) (*Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.records[patientID]
	if !ok {
		return nil, herr.NotFoundf("patient not found: %s", patientID)
	}
	return p.Clone(), nil
}

func (r *MemoryRepository) Update(_ context.Context, p *Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[p.PatientID]; !ok {
		return herr.NotFoundf("patient not found: %s", p.PatientID)
	}
	r.records[p.PatientID] = p.Clone()
	return nil
}

func (r *MemoryRepository) List(_ context.Context) ([]*Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(*Patient) bool { return true }), nil
}

func (r *MemoryRepository) ListByDoctor(_ context.Context, doctorID string) ([]*Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(p *Patient) bool { return p.AssignedDoctorID == doctorID }), nil
}

// SearchByName matches case-insensitively on a name substring.
func (r *MemoryRepository) SearchByName(_ context.Context, query string) ([]*Patient, error) {
	q := strings.ToLower(query)
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(p *Patient) bool {
		return strings.Contains(strings.ToLower(p.Name), q)
	}), nil
}

func (r *MemoryRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records), nil
}

func (r *MemoryRepository) collect(match func(*Patient) bool) []*Patient {
	var out []*Patient
	for _, p := range r.records {
		if match(p) {
			out = append(out, p.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PatientID < out[j].PatientID })
	return out
}
