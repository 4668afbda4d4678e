// Package matcher resolves parsed transactions to known clients through the
// prioritized identifier chain: exact BIN, learned alias, normalized name.
// An optional bounded edit-distance fallback can be enabled for statements
// with frequent typographic name variants.
package matcher

import (
	"sort"

	"agencycore/bankimport/internal/aliasstore"
	"agencycore/bankimport/internal/models"
	"agencycore/bankimport/internal/textutils"

	"github.com/agnivade/levenshtein"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger allows setting a configured logger.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Options control the optional fuzzy tier. The exact tiers are always on.
type Options struct {
	FuzzyEnabled bool
	MaxDistance  int
}

// Matcher matches transactions against a fixed client list and alias store.
// Each transaction is matched independently; no cross-transaction state.
type Matcher struct {
	aliases aliasstore.Store
	opts    Options

	byBIN  map[string]models.Client
	byName map[string][]models.Client
}

// New builds a Matcher over the caller-supplied client list. Client name and
// company fields both participate in the name tier.
func New(clients []models.Client, aliases aliasstore.Store, opts Options) *Matcher {
	m := &Matcher{
		aliases: aliases,
		opts:    opts,
		byBIN:   make(map[string]models.Client),
		byName:  make(map[string][]models.Client),
	}
	for _, c := range clients {
		if bin := textutils.NormalizeBIN(c.BIN); bin != "" {
			if _, taken := m.byBIN[bin]; !taken {
				m.byBIN[bin] = c
			}
		}
		for _, label := range []string{c.Company, c.Name} {
			key := textutils.NormalizeNameKey(label)
			if key == "" {
				continue
			}
			m.byName[key] = append(m.byName[key], c)
		}
	}
	return m
}

// Match runs the priority chain and fills MatchStatus, MatchSource and
// MatchedClientID on the transaction. First hit wins.
func (m *Matcher) Match(tx *models.ParsedTransaction) {
	if client, ok := m.byBIN[tx.ClientBIN]; ok && tx.ClientBIN != "" {
		m.set(tx, client.ID, models.MatchSourceBIN)
		return
	}

	if m.aliases != nil {
		if clientID, ok := m.aliases.Get(tx.ClientNameRaw, tx.ClientBIN); ok {
			m.set(tx, clientID, models.MatchSourceAlias)
			return
		}
	}

	key := textutils.NormalizeNameKey(tx.ClientNameRaw)
	if client, ok := m.pickByName(key, tx.ClientBIN); ok {
		m.set(tx, client.ID, models.MatchSourceName)
		return
	}

	if m.opts.FuzzyEnabled && key != "" {
		if client, ok := m.pickFuzzy(key, tx.ClientBIN); ok {
			m.set(tx, client.ID, models.MatchSourceName)
			return
		}
	}

	tx.MatchStatus = models.MatchStatusUnmatched
	tx.MatchSource = models.MatchSourceNone
	tx.MatchedClientID = ""
}

func (m *Matcher) set(tx *models.ParsedTransaction, clientID string, source models.MatchSource) {
	tx.MatchStatus = models.MatchStatusMatched
	tx.MatchSource = source
	tx.MatchedClientID = clientID
	log.WithFields(logrus.Fields{
		"counterparty": tx.ClientName,
		"client":       clientID,
		"source":       source,
	}).Debug("Matched counterparty")
}

// pickByName resolves the exact name tier. Ties prefer a client whose stored
// BIN does not contradict the transaction's BIN, then the lowest client ID
// for determinism.
func (m *Matcher) pickByName(key, txBIN string) (models.Client, bool) {
	candidates := m.byName[key]
	if len(candidates) == 0 {
		return models.Client{}, false
	}
	return pickCandidate(candidates, txBIN), true
}

// pickFuzzy scans all name keys for the closest match within MaxDistance.
// Smallest distance wins; ties resolve like the exact tier.
func (m *Matcher) pickFuzzy(key, txBIN string) (models.Client, bool) {
	best := m.opts.MaxDistance + 1
	var bestKeys []string
	for candidate := range m.byName {
		d := levenshtein.ComputeDistance(key, candidate)
		if d < best {
			best = d
			bestKeys = bestKeys[:0]
		}
		if d == best {
			bestKeys = append(bestKeys, candidate)
		}
	}
	if best > m.opts.MaxDistance || len(bestKeys) == 0 {
		return models.Client{}, false
	}
	sort.Strings(bestKeys)
	var pool []models.Client
	for _, k := range bestKeys {
		pool = append(pool, m.byName[k]...)
	}
	return pickCandidate(pool, txBIN), true
}

func pickCandidate(candidates []models.Client, txBIN string) models.Client {
	ranked := make([]models.Client, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		ci, cj := contradicts(ranked[i], txBIN), contradicts(ranked[j], txBIN)
		if ci != cj {
			return !ci
		}
		return ranked[i].ID < ranked[j].ID
	})
	return ranked[0]
}

// contradicts reports whether a client's stored BIN disagrees with the
// transaction's non-empty BIN.
func contradicts(c models.Client, txBIN string) bool {
	if txBIN == "" {
		return false
	}
	stored := textutils.NormalizeBIN(c.BIN)
	return stored != "" && stored != txBIN
}
