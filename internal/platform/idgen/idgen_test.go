package idgen

import (
	"strconv"
	"strings"
	"sync"
	"testing"
)

func TestFirstDraws(t *testing.T) {
	g := New()
	tests := []struct {
		got, want string
	}{
		{g.PatientID(), "P1001"},
		{g.StaffID(), "S2001"},
		{g.AppointmentID(), "A3001"},
		{g.TreatmentID(), "T4001"},
		{g.PrescriptionID(), "RX5001"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("first draw = %s, want %s", tt.got, tt.want)
		}
	}
}

func TestStrictlyIncreasing(t *testing.T) {
	g := New()
	prev := 0
	for i := 0; i < 100; i++ {
		id := g.AppointmentID()
		n, err := strconv.Atoi(strings.TrimPrefix(id, "A"))
		if err != nil {
			t.Fatalf("unparseable id %q: %v", id, err)
		}
		if n <= prev {
			t.Fatalf("id %d not greater than previous %d", n, prev)
		}
		prev = n
	}
}

func TestCountersAreIndependent(t *testing.T) {
	g := New()
	g.PatientID()
	g.PatientID()
	if got := g.StaffID(); got != "S2001" {
		t.Errorf("staff counter moved with patient draws: %s", got)
	}
}

func TestConcurrentDrawsAreUnique(t *testing.T) {
	const workers = 16
	const perWorker = 250

	g := New()
	var mu sync.Mutex
	seen := make(map[string]bool, workers*perWorker)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids := make([]string, 0, perWorker)
			for j := 0; j < perWorker; j++ {
				ids = append(ids, g.PrescriptionID())
			}
			mu.Lock()
			defer mu.Unlock()
			for _, id := range ids {
				if seen[id] {
					t.Errorf("duplicate id issued: %s", id)
				}
				seen[id] = true
			}
		}()
	}
	wg.Wait()

	if len(seen) != workers*perWorker {
		t.Fatalf("issued %d unique ids, want %d", len(seen), workers*perWorker)
	}
}

func TestPersonID(t *testing.T) {
	if got := PersonID("P1001"); got != "PER-P1001" {
		t.Errorf("PersonID = %s, want PER-P1001", got)
	}
}
