// Package importer orchestrates the statement import pipeline: decode,
// detect, parse, normalize, match, deduplicate and reconcile, producing an
// ImportResult for the caller to review.
package importer

import (
	"agencycore/bankimport/internal/aliasstore"
	"agencycore/bankimport/internal/dedup"
	"agencycore/bankimport/internal/fileutils"
	"agencycore/bankimport/internal/matcher"
	"agencycore/bankimport/internal/models"
	"agencycore/bankimport/internal/normalizer"
	"agencycore/bankimport/internal/parser"
	"agencycore/bankimport/internal/reconcile"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger allows setting a configured logger.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Options collects the tunables of one import run.
type Options struct {
	BaseCurrency string
	Matching     matcher.Options
	Reconcile    reconcile.Config
}

// DefaultOptions returns the engine defaults: KZT base currency, fuzzy
// matching off, production-observed reconciliation tolerances.
func DefaultOptions() Options {
	return Options{
		BaseCurrency: "KZT",
		Reconcile:    reconcile.DefaultConfig(),
	}
}

// Service runs imports against a fixed set of collaborator inputs. The
// inputs are treated as immutable; the alias store is the only collaborator
// the service ever writes to, and only on commit or backfill.
type Service struct {
	clients []models.Client
	ledger  []models.LedgerEntry
	aliases aliasstore.Store
	company *models.CompanyInfo
	opts    Options
}

// NewService builds an import service. aliases may be nil, which disables
// the alias tier and alias learning.
func NewService(clients []models.Client, ledger []models.LedgerEntry, aliases aliasstore.Store, company *models.CompanyInfo, opts Options) *Service {
	if opts.BaseCurrency == "" {
		opts.BaseCurrency = "KZT"
	}
	return &Service{
		clients: clients,
		ledger:  ledger,
		aliases: aliases,
		company: company,
		opts:    opts,
	}
}

// Import parses one statement file and classifies every record. The only
// error condition is a file matching neither grammar; per-record anomalies
// degrade into the result's classification fields and warning count.
func (s *Service) Import(fileName string, content []byte) (*models.ImportResult, error) {
	text := fileutils.DecodeStatement(content)

	format, err := parser.DetectFormat(fileName, text)
	if err != nil {
		log.WithField("file", fileName).Warn("Statement format not recognized")
		return nil, err
	}
	p, err := parser.GetParser(format)
	if err != nil {
		return nil, err
	}

	lines, warnings, err := p.Parse(text)
	if err != nil {
		return nil, err
	}

	norm := normalizer.New(s.opts.BaseCurrency, s.company)
	match := matcher.New(s.clients, s.aliases, s.opts.Matching)
	dup := dedup.New(s.ledger)
	engine := reconcile.New(s.opts.Reconcile, s.ledger)

	transactions := make([]models.ParsedTransaction, 0, len(lines))
	for _, line := range lines {
		tx, err := norm.Normalize(line)
		if err != nil {
			warnings++
			log.WithError(err).WithField("line", line.LineNo).Warn("Skipping unnormalizable record")
			continue
		}

		match.Match(&tx)

		if dup.IsDuplicate(&tx) {
			// Duplicates are excluded from reconciliation and never carry a
			// client reference in the result.
			tx.MatchStatus = models.MatchStatusDuplicate
			tx.MatchedClientID = ""
		} else if tx.MatchStatus == models.MatchStatusMatched {
			engine.Reconcile(&tx)
		}

		transactions = append(transactions, tx)
	}

	result := models.NewImportResult(fileName, format, transactions, warnings)
	log.WithFields(logrus.Fields{
		"file":          fileName,
		"format":        format,
		"transactions":  result.Summary.Total,
		"matched":       result.Summary.Matched,
		"duplicates":    result.Summary.Duplicates,
		"discrepancies": result.Summary.Discrepancies,
		"warnings":      result.Summary.ParseWarnings,
	}).Info("Statement import completed")
	return result, nil
}
