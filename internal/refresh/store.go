package refresh

import (
	"sync"

	"github.com/dkonya/methu-forecast/internal/domain"
)

// Entry pairs a resolved settlement with its latest snapshot.
type Entry struct {
	Settlement domain.Settlement
	Snapshot   domain.ForecastSnapshot
}

// Store holds the latest snapshot per settlement code. Refreshers write,
// the HTTP API reads; nothing else is shared between them.
type Store struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewStore creates an empty snapshot store.
func NewStore() *Store {
	return &Store{entries: make(map[string]Entry)}
}

// Put replaces the snapshot for a settlement.
func (s *Store) Put(settlement domain.Settlement, snapshot domain.ForecastSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[settlement.Code] = Entry{Settlement: settlement, Snapshot: snapshot}
}

// Get returns the latest snapshot for a settlement code.
func (s *Store) Get(code string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[code]
	return e, ok
}

// Codes lists the settlement codes currently held, in no particular order.
func (s *Store) Codes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	codes := make([]string, 0, len(s.entries))
	for code := range s.entries {
		codes = append(codes, code)
	}
	return codes
}
