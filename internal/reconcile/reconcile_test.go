package reconcile

import (
	"testing"
	"time"

	"agencycore/bankimport/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse("02.01.2006", s)
	if err != nil {
		panic(err)
	}
	return t
}

func entry(id, clientID, dateStr string, amount int64, income bool) models.LedgerEntry {
	return models.LedgerEntry{
		ID:          id,
		ClientID:    clientID,
		Amount:      decimal.NewFromInt(amount),
		Date:        day(dateStr),
		IsIncome:    income,
		Description: "Оплата по договору",
	}
}

func matchedTx(clientID, dateStr string, amount int64, income bool) models.ParsedTransaction {
	return models.ParsedTransaction{
		MatchStatus:     models.MatchStatusMatched,
		MatchedClientID: clientID,
		Amount:          decimal.NewFromInt(amount),
		Date:            day(dateStr),
		IsIncome:        income,
	}
}

func TestReconcileVerified(t *testing.T) {
	e := New(DefaultConfig(), []models.LedgerEntry{
		entry("entry-1", "client-a", "10.03.2026", 100000, true),
	})

	tx := matchedTx("client-a", "12.03.2026", 100000, true)
	e.Reconcile(&tx)

	require.NotNil(t, tx.Reconciliation)
	assert.Equal(t, models.ReconcileVerified, tx.Reconciliation.Type)
	assert.False(t, tx.Reconciliation.AmountDiffers)
	assert.Equal(t, "entry-1", tx.Reconciliation.LedgerEntryID)
}

func TestReconcileDiscrepancy(t *testing.T) {
	e := New(DefaultConfig(), []models.LedgerEntry{
		entry("entry-1", "client-a", "10.03.2026", 9500, true),
	})

	// 9500 recorded, 10000 on the statement: within the 10% tolerance band,
	// so the pair is the same payment with a differing amount.
	tx := matchedTx("client-a", "10.03.2026", 10000, true)
	e.Reconcile(&tx)

	require.NotNil(t, tx.Reconciliation)
	assert.Equal(t, models.ReconcileDiscrepancy, tx.Reconciliation.Type)
	assert.True(t, tx.Reconciliation.AmountDiffers)
	assert.Equal(t, "entry-1", tx.Reconciliation.LedgerEntryID)
	assert.True(t, tx.Reconciliation.LedgerAmount.Equal(decimal.NewFromInt(9500)),
		"ledger amount preserved for audit")
	assert.True(t, tx.Amount.Equal(decimal.NewFromInt(10000)), "bank amount untouched")
}

func TestReconcileNew(t *testing.T) {
	e := New(DefaultConfig(), []models.LedgerEntry{
		entry("entry-1", "client-a", "10.03.2026", 5000, true),
	})

	// Outside the amount tolerance: nothing in the ledger corresponds.
	tx := matchedTx("client-a", "10.03.2026", 10000, true)
	e.Reconcile(&tx)

	require.NotNil(t, tx.Reconciliation)
	assert.Equal(t, models.ReconcileNew, tx.Reconciliation.Type)
	assert.Empty(t, tx.Reconciliation.LedgerEntryID)
}

func TestReconcileSkipsUnmatched(t *testing.T) {
	e := New(DefaultConfig(), []models.LedgerEntry{
		entry("entry-1", "client-a", "10.03.2026", 10000, true),
	})

	tx := models.ParsedTransaction{
		MatchStatus: models.MatchStatusUnmatched,
		Amount:      decimal.NewFromInt(10000),
		Date:        day("10.03.2026"),
		IsIncome:    true,
	}
	e.Reconcile(&tx)
	assert.Nil(t, tx.Reconciliation)
}

func TestReconcileDateWindow(t *testing.T) {
	e := New(DefaultConfig(), []models.LedgerEntry{
		entry("entry-1", "client-a", "28.02.2026", 10000, true),
	})

	// Different month but within the five-day spillover.
	near := matchedTx("client-a", "03.03.2026", 10000, true)
	e.Reconcile(&near)
	require.NotNil(t, near.Reconciliation)
	assert.Equal(t, models.ReconcileVerified, near.Reconciliation.Type)

	// Different month and beyond the spillover.
	far := matchedTx("client-a", "20.03.2026", 10000, true)
	e.Reconcile(&far)
	require.NotNil(t, far.Reconciliation)
	assert.Equal(t, models.ReconcileNew, far.Reconciliation.Type)
}

func TestReconcileSameMonthAlwaysQualifies(t *testing.T) {
	e := New(DefaultConfig(), []models.LedgerEntry{
		entry("entry-1", "client-a", "01.03.2026", 10000, true),
	})

	tx := matchedTx("client-a", "30.03.2026", 10000, true)
	e.Reconcile(&tx)
	require.NotNil(t, tx.Reconciliation)
	assert.Equal(t, models.ReconcileVerified, tx.Reconciliation.Type)
}

func TestReconcileDirectionMustAgree(t *testing.T) {
	e := New(DefaultConfig(), []models.LedgerEntry{
		entry("entry-1", "client-a", "10.03.2026", 10000, false),
	})

	tx := matchedTx("client-a", "10.03.2026", 10000, true)
	e.Reconcile(&tx)
	require.NotNil(t, tx.Reconciliation)
	assert.Equal(t, models.ReconcileNew, tx.Reconciliation.Type)
}

func TestReconcilePrefersSmallestAmountDiff(t *testing.T) {
	e := New(DefaultConfig(), []models.LedgerEntry{
		entry("entry-far", "client-a", "10.03.2026", 9500, true),
		entry("entry-exact", "client-a", "25.03.2026", 10000, true),
	})

	tx := matchedTx("client-a", "10.03.2026", 10000, true)
	e.Reconcile(&tx)

	require.NotNil(t, tx.Reconciliation)
	assert.Equal(t, models.ReconcileVerified, tx.Reconciliation.Type)
	assert.Equal(t, "entry-exact", tx.Reconciliation.LedgerEntryID)
}

func TestReconcileTieBreaksByClosestDate(t *testing.T) {
	e := New(DefaultConfig(), []models.LedgerEntry{
		entry("entry-far", "client-a", "25.03.2026", 10000, true),
		entry("entry-near", "client-a", "11.03.2026", 10000, true),
	})

	tx := matchedTx("client-a", "10.03.2026", 10000, true)
	e.Reconcile(&tx)

	require.NotNil(t, tx.Reconciliation)
	assert.Equal(t, "entry-near", tx.Reconciliation.LedgerEntryID)
}

func TestReconcileIgnoresImportedEntries(t *testing.T) {
	imported := models.LedgerEntry{
		ID:          "entry-1",
		ClientID:    "client-a",
		Amount:      decimal.NewFromInt(10000),
		Date:        day("10.03.2026"),
		IsIncome:    true,
		Description: "Оплата [док.№ 4501] [банк: поступление]",
	}
	e := New(DefaultConfig(), []models.LedgerEntry{imported})

	tx := matchedTx("client-a", "10.03.2026", 10000, true)
	e.Reconcile(&tx)
	require.NotNil(t, tx.Reconciliation)
	assert.Equal(t, models.ReconcileNew, tx.Reconciliation.Type,
		"entries committed by a prior import are not reconciliation candidates")
}

func TestReconcileZeroAmountRequiresExact(t *testing.T) {
	e := New(DefaultConfig(), []models.LedgerEntry{
		entry("entry-zero", "client-a", "10.03.2026", 0, true),
		entry("entry-small", "client-a", "10.03.2026", 1, true),
	})

	tx := matchedTx("client-a", "10.03.2026", 0, true)
	e.Reconcile(&tx)
	require.NotNil(t, tx.Reconciliation)
	assert.Equal(t, models.ReconcileVerified, tx.Reconciliation.Type)
	assert.Equal(t, "entry-zero", tx.Reconciliation.LedgerEntryID)
}
