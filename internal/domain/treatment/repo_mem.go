package treatment

import (
	"context"
	"sort"
	"sync"

	"github.com/hms/hms/internal/platform/herr"
)

// MemoryRepository is the process-lifetime treatment store. Treatment
// records are create-only; there is no update path.
type MemoryRepository struct {
	mu      sync.RWMutex
	records map[string]*Record
}

var _ Repository = (*MemoryRepository)(nil)

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{records: make(map[string]*Record)}
}

func (r *MemoryRepository) Create(_ context.Context, rec *Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[rec.ID]; ok {
		return herr.Conflictf("treatment already exists: %s", rec.ID)
	}
	r.records[rec.ID] = rec.Clone()
	return nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (*Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[id]
	if !ok {
		return nil, herr.NotFoundf("treatment not found: %s", id)
	}
	return rec.Clone(), nil
}

func (r *MemoryRepository) List(_ context.Context) ([]*Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(*Record) bool { return true }), nil
}

func (r *MemoryRepository) ListByPatient(_ context.Context, patientID string) ([]*Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(rec *Record) bool { return rec.PatientID == patientID }), nil
}

func (r *MemoryRepository) ListByDoctor(_ context.Context, doctorID string) ([]*Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(rec *Record) bool { return rec.AttendingDoctorID == doctorID }), nil
}

func (r *MemoryRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records), nil
}

// collect gathers matching records most recent first, id as tiebreak.
func (r *MemoryRepository) collect(match func(*Record) bool) []*Record {
	var out []*Record
	for _, rec := range r.records {
		if match(rec) {
			out = append(out, rec.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID > out[j].ID
	})
	return out
}
