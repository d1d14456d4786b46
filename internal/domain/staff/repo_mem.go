package staff

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/hms/hms/internal/platform/authz"
	"github.com/hms/hms/internal/platform/herr"
)

// MemoryRepository is the process-lifetime staff store. All state is
// held in a map keyed by staff id; records cross the boundary as deep
// copies so callers never share memory with the store.
type MemoryRepository struct {
	mu      sync.RWMutex
	records map[string]*Staff
}

var _ Repository = (*MemoryRepository)(nil)

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{records: make(map[string]*Staff)}
}

func (r *MemoryRepository) Create(_ context.Context, s *Staff) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[s.StaffID]; ok {
		return herr.Conflictf("staff already exists: %s", s.StaffID)
	}
	r.records[s.StaffID] = s.Clone()
	return nil
}

func (r *MemoryRepository) GetByID(_ context.Context, staffID string) (*Staff, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.records[staffID]
	if !ok {
		return nil, herr.NotFoundf("staff not found: %s", staffID)
	}
	return s.Clone(), nil
}

func (r *MemoryRepository) Update(_ context.Context, s *Staff) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[s.StaffID]; !ok {
		return herr.NotFoundf("staff not found: %s", s.StaffID)
	}
	r.records[s.StaffID] = s.Clone()
	return nil
}

func (r *MemoryRepository) List(_ context.Context) ([]*Staff, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(*Staff) bool { return true }), nil
}

func (r *MemoryRepository) ListByRole(_ context.Context, role authz.Role) ([]*Staff, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(s *Staff) bool { return s.Role == role }), nil
}

func (r *MemoryRepository) ListByDepartment(_ context.Context, department string) ([]*Staff, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(s *Staff) bool {
		return strings.EqualFold(s.Department, department)
	}), nil
}

func (r *MemoryRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records), nil
}

// collect gathers matching records in stable id order. Callers must
// hold at least a read lock.
func (r *MemoryRepository) collect(match func(*Staff) bool) []*Staff {
	var out []*Staff
	for _, s := range r.records {
		if match(s) {
			out = append(out, s.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StaffID < out[j].StaffID })
	return out
}
