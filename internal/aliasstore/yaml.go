package aliasstore

import (
	"os"
	"path/filepath"
	"sort"
	"sync"

	"agencycore/bankimport/internal/models"
	"agencycore/bankimport/internal/parsererror"
	"agencycore/bankimport/internal/textutils"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

var log = logrus.New()

// SetLogger allows setting a configured logger.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

type aliasFile struct {
	Aliases []models.Alias `yaml:"aliases"`
}

// YAMLStore is the file-backed Store implementation. The whole alias set is
// loaded at construction and rewritten on change; alias files stay small
// (one row per counterparty, not per transaction).
type YAMLStore struct {
	path string

	mu      sync.Mutex
	byPair  map[string]models.Alias
	byBIN   map[string]models.Alias
	ordered []models.Alias
	dirty   bool
}

// NewYAMLStore loads the alias file at path, creating an empty store when the
// file does not exist yet.
func NewYAMLStore(path string) (*YAMLStore, error) {
	s := &YAMLStore{
		path:   path,
		byPair: make(map[string]models.Alias),
		byBIN:  make(map[string]models.Alias),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.WithField("file", path).Debug("Alias file not found, starting empty")
			return s, nil
		}
		return nil, &parsererror.StoreError{Op: "load", Path: path, Err: err}
	}

	var file aliasFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, &parsererror.StoreError{Op: "load", Path: path, Err: err}
	}
	for _, a := range file.Aliases {
		s.index(normalizeAlias(a))
	}
	log.WithFields(logrus.Fields{
		"file":  path,
		"count": len(s.ordered),
	}).Debug("Loaded alias store")
	return s, nil
}

// Get implements Store.
func (s *YAMLStore) Get(bankName, bankBIN string) (string, bool) {
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

// Put implements Store. Last confirmation wins; an identical row does not
// touch the file unless a previous save failed, in which case the retry
// rewrites it.
func (s *YAMLStore) Put(bankName, bankBIN, clientID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	alias := normalizeAlias(models.Alias{BankName: bankName, BankBIN: bankBIN, ClientID: clientID})
	key := aliasKey(alias.BankName, alias.BankBIN)
	if existing, ok := s.byPair[key]; ok && existing.ClientID == alias.ClientID && !s.dirty {
		return nil
	}

	s.index(alias)
	if err := s.save(); err != nil {
		// The in-memory index is ahead of the file; keep retries writing.
		s.dirty = true
		return err
	}
	s.dirty = false
	return nil
}

// All implements Store.
func (s *YAMLStore) All() []models.Alias {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Alias, len(s.ordered))
	copy(out, s.ordered)
	return out
}

// index inserts or replaces an alias in the in-memory maps. Caller holds the
// lock (or is the constructor).
func (s *YAMLStore) index(alias models.Alias) {
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

func (s *YAMLStore) save() error {
	sorted := make([]models.Alias, len(s.ordered))
	copy(sorted, s.ordered)
	sort.Slice(sorted, func(i, j int) bool {
		return textutils.NormalizeNameKey(sorted[i].BankName) < textutils.NormalizeNameKey(sorted[j].BankName)
	})

	data, err := yaml.Marshal(aliasFile{Aliases: sorted})
	if err != nil {
		return &parsererror.StoreError{Op: "save", Path: s.path, Err: err}
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return &parsererror.StoreError{Op: "save", Path: s.path, Err: err}
		}
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return &parsererror.StoreError{Op: "save", Path: s.path, Err: err}
	}
	return nil
}
