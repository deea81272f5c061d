package source

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore serves records from memory, newest inspection first.
type MemoryStore struct {
	mu      sync.RWMutex
	records []Record
	closed  bool
}

// NewMemoryStore creates a store over a copy of records.
func NewMemoryStore(records []Record) *MemoryStore {
	rs := slices.Clone(records)
	sortRecords(rs)
	return &MemoryStore{records: rs}
}

// Page implements Store.
func (s *MemoryStore) Page(ctx context.Context, q Query, offset, limit int) (Page, error) {
	if err := ctx.Err(); err != nil {
		return Page{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return Page{}, ErrClosed
	}

	matched := s.records
	if !q.IsZero() {
		matched = make([]Record, 0, len(s.records))
		for _, r := range s.records {
			if q.Matches(r) {
				matched = append(matched, r)
			}
		}
	}
	return paginate(matched, offset, limit), nil
}

// Len returns the number of stored records.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Close makes further Page calls fail with ErrClosed.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func paginate(rs []Record, offset, limit int) Page {
	total := len(rs)
	if offset < 0 {
		offset = 0
	}
	if offset >= total || limit <= 0 {
		return Page{Total: total}
	}
	end := min(offset+limit, total)
	return Page{Records: slices.Clone(rs[offset:end]), Total: total}
}

func sortRecords(rs []Record) {
	slices.SortStableFunc(rs, func(a, b Record) int {
		if c := b.InspectedAt.Compare(a.InspectedAt); c != 0 {
			return c
		}
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
}

var (
	suppliers  = []string{"Aerodyne Castings", "Boreal Fasteners", "Cirrus Avionics", "Delta Composites", "Everest Hydraulics", "Falcon Machining", "Gale Titanium", "Horizon Seals"}
	parts      = []string{"wing spar bracket", "hydraulic actuator", "fuel line coupling", "landing gear pin", "avionics harness", "turbine blade", "cabin pressure valve", "flap hinge"}
	inspectors = []string{"A. Okafor", "B. Lindqvist", "C. Moreau", "D. Tanaka", "E. Novak", "F. Haddad"}
	notes      = []string{
		"Dimensional check within tolerance.",
		"Surface finish flagged for rework.",
		"Certificate of conformance missing; supplier notified.",
		"Torque values verified on sample of 12.",
		"",
	}
)

// Generate produces n synthetic inspection records. The same seed always
// yields the same records, identifiers included.
func Generate(n int, seed uint64) ([]Record, error) {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	ids := rand.NewChaCha8(seedBytes(seed))
	base := time.Date(2026, time.January, 1, 8, 0, 0, 0, time.UTC)

	out := make([]Record, 0, n)
	for i := 0; i < n; i++ {
		id, err := uuid.NewRandomFromReader(ids)
		if err != nil {
			return nil, fmt.Errorf("generate id %d: %w", i, err)
		}
		status := Statuses[rng.IntN(len(Statuses))]
		score := 60 + rng.IntN(41)
		if status == StatusFailed {
			score = 20 + rng.IntN(40)
		}
		out = append(out, Record{
			ID:          id.String(),
			Supplier:    suppliers[rng.IntN(len(suppliers))],
			Part:        parts[rng.IntN(len(parts))],
			Inspector:   inspectors[rng.IntN(len(inspectors))],
			Status:      status,
			Score:       score,
			InspectedAt: base.Add(time.Duration(i) * 37 * time.Minute),
			Notes:       notes[rng.IntN(len(notes))],
		})
	}
	return out, nil
}

func seedBytes(seed uint64) [32]byte {
	var b [32]byte
	for i := 0; i < 4; i++ {
		v := seed + uint64(i)*0x9e3779b97f4a7c15
		for j := 0; j < 8; j++ {
			b[i*8+j] = byte(v >> (8 * j))
		}
	}
	return b
}
