package aliasstore

import (
	"sync"

	"agencycore/bankimport/internal/models"
)

// MemoryStore is an in-memory Store used in tests and as the default when no
// alias file is configured. PutErr, when set, is returned from every Put to
// exercise error paths.
type MemoryStore struct {
	PutErr error

	mu      sync.Mutex
	byPair  map[string]models.Alias
	byBIN   map[string]models.Alias
	ordered []models.Alias
}

// NewMemoryStore returns an empty in-memory store seeded with the given
// aliases.
func NewMemoryStore(seed ...models.Alias) *MemoryStore {
	s := &MemoryStore{
		byPair: make(map[string]models.Alias),
		byBIN:  make(map[string]models.Alias),
	}
	for _, a := range seed {
		s.put(normalizeAlias(a))
	}
	return s
}

// Get implements Store.
func (s *MemoryStore) Get(bankName, bankBIN string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a, ok := s.byPair[aliasKey(bankName, bankBIN)]; ok {
		return a.ClientID, true
	}
	if key := binKey(bankBIN); key != "" {
		if a, ok := s.byBIN[key]; ok {
			return a.ClientID, true
		}
	}
	return "", false
}

// Put implements Store.
func (s *MemoryStore) Put(bankName, bankBIN, clientID string) error {
	if s.PutErr != nil {
		return s.PutErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.put(normalizeAlias(models.Alias{BankName: bankName, BankBIN: bankBIN, ClientID: clientID}))
	return nil
}

// All implements Store.
func (s *MemoryStore) All() []models.Alias {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Alias, len(s.ordered))
	copy(out, s.ordered)
	return out
}

func (s *MemoryStore) put(alias models.Alias) {
	key := aliasKey(alias.BankName, alias.BankBIN)
	if _, ok := s.byPair[key]; ok {
		for i := range s.ordered {
			if aliasKey(s.ordered[i].BankName, s.ordered[i].BankBIN) == key {
				s.ordered[i] = alias
				break
			}
		}
	} else {
		s.ordered = append(s.ordered, alias)
	}
	s.byPair[key] = alias
	if bkey := binKey(alias.BankBIN); bkey != "" {
		s.byBIN[bkey] = alias
	}
}
