package backup_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirabelle514/contractortracker.app/internal/backup"
	"github.com/mirabelle514/contractortracker.app/internal/tracker"
)

func populatedState(t *testing.T) *tracker.State {
	t.Helper()
	s := tracker.NewState()
	client, err := s.AddClient("Acme", "billing@acme.test", "", decimal.NewFromInt(100))
	require.NoError(t, err)
	id := client.ID
	entry, err := s.AddEntry(tracker.EntryInput{
		Date:        tracker.NewDate(time.Now()),
		Hours:       decimal.NewFromInt(2),
		Description: "design",
		ClientID:    &id,
	})
	require.NoError(t, err)
	require.NoError(t, s.Approve(entry.ID))
	require.Len(t, s.CreateInvoicesFromApproved(time.Now()), 1)
	return s
}

func TestExportImportRoundTrip(t *testing.T) {
	original := populatedState(t)
	original.HourlyRate = decimal.RequireFromString("75")

	data, err := backup.Export(original, time.Now())
	require.NoError(t, err)

	restored := tracker.NewState()
	require.NoError(t, backup.Import(restored, data))

	assert.Equal(t, len(original.Entries), len(restored.Entries))
	assert.Equal(t, len(original.Invoices), len(restored.Invoices))
	assert.Equal(t, len(original.Clients), len(restored.Clients))
	assert.Equal(t, original.Entries[0].ID, restored.Entries[0].ID)
	assert.True(t, restored.Entries[0].Total.Equal(decimal.NewFromInt(200)))
	assert.Equal(t, "ACME-001", restored.Invoices[0].Number)
	assert.True(t, restored.HourlyRate.Equal(decimal.RequireFromString("75")))
}

func TestImport_PartialDocument(t *testing.T) {
	s := populatedState(t)
	entriesBefore := len(s.Entries)
	invoicesBefore := len(s.Invoices)

	// Only clients present: the other collections must stay as they are.
	err := backup.Import(s, []byte(`{"clients": [], "version": "1.0"}`))
	require.NoError(t, err)

	assert.Empty(t, s.Clients, "present-but-empty list overwrites")
	assert.Len(t, s.Entries, entriesBefore)
	assert.Len(t, s.Invoices, invoicesBefore)
}

func TestImport_MalformedJSON(t *testing.T) {
	s := populatedState(t)
	entriesBefore := len(s.Entries)

	err := backup.Import(s, []byte(`{"hours": [`))
	require.Error(t, err)
	assert.Len(t, s.Entries, entriesBefore, "state unchanged on malformed input")
}

func TestFilename(t *testing.T) {
	now := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, "contractor-backup-2026-08-31.json", backup.Filename(now))
}

func TestReminderDue(t *testing.T) {
	now := time.Now()

	assert.True(t, backup.ReminderDue(time.Time{}, false, now), "never exported")
	assert.True(t, backup.ReminderDue(now.Add(-8*24*time.Hour), true, now), "older than a week")
	assert.False(t, backup.ReminderDue(now.Add(-time.Hour), true, now), "fresh backup")
}
