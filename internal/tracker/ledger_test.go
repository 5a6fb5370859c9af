package tracker_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirabelle514/contractortracker.app/internal/tracker"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func today() tracker.Date {
	return tracker.NewDate(time.Now())
}

func TestAddEntry_TotalIsHoursTimesRate(t *testing.T) {
	s := tracker.NewState()

	entry, err := s.AddEntry(tracker.EntryInput{
		Date:        today(),
		Hours:       dec("2.5"),
		Description: "api work",
		Rate:        dec("80"),
	})
	require.NoError(t, err)

	assert.True(t, entry.Total.Equal(dec("200")), "total should be 2.5 * 80")
	assert.Equal(t, tracker.StatusPending, entry.Status)
	assert.False(t, entry.Invoiced)
	assert.Nil(t, entry.ClientID)
}

func TestAddEntry_ResolvesClientRate(t *testing.T) {
	s := tracker.NewState()
	client, err := s.AddClient("Acme", "billing@acme.test", "", dec("100"))
	require.NoError(t, err)

	entry, err := s.AddEntry(tracker.EntryInput{
		Date:        today(),
		Hours:       dec("2"),
		Description: "design",
		Rate:        dec("999"), // client rate wins over manual override
		ClientID:    &client.ID,
	})
	require.NoError(t, err)

	assert.True(t, entry.Rate.Equal(dec("100")))
	assert.True(t, entry.Total.Equal(dec("200")))
}

func TestAddEntry_FallsBackToDefaultRate(t *testing.T) {
	s := tracker.NewState()

	entry, err := s.AddEntry(tracker.EntryInput{
		Date:        today(),
		Hours:       dec("1"),
		Description: "misc",
	})
	require.NoError(t, err)

	assert.True(t, entry.Rate.Equal(dec("50")), "default state rate should apply")
}

func TestAddEntry_RejectsMissingFields(t *testing.T) {
	tests := []struct {
		name  string
		hours string
		desc  string
	}{
		{"zero hours", "0", "work"},
		{"negative hours", "-1", "work"},
		{"empty description", "2", ""},
		{"blank description", "2", "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tracker.NewState()
			_, err := s.AddEntry(tracker.EntryInput{
				Date:        today(),
				Hours:       dec(tt.hours),
				Description: tt.desc,
				Rate:        dec("50"),
			})
			assert.ErrorIs(t, err, tracker.ErrMissingField)
			assert.Empty(t, s.Entries, "state should be untouched")
		})
	}
}

func TestApprove_IsIdempotent(t *testing.T) {
	s := tracker.NewState()
	entry, err := s.AddEntry(tracker.EntryInput{
		Date:        today(),
		Hours:       dec("1"),
		Description: "work",
		Rate:        dec("50"),
	})
	require.NoError(t, err)

	require.NoError(t, s.Approve(entry.ID))
	require.NoError(t, s.Approve(entry.ID))

	assert.Equal(t, tracker.StatusApproved, s.Entries[0].Status)
	assert.Len(t, s.Entries, 1, "approving never removes entries")
}

func TestApprove_UnknownEntry(t *testing.T) {
	s := tracker.NewState()
	assert.ErrorIs(t, s.Approve(12345), tracker.ErrNotFound)
}

func TestDeleteEntry(t *testing.T) {
	s := tracker.NewState()
	entry, err := s.AddEntry(tracker.EntryInput{
		Date:        today(),
		Hours:       dec("1"),
		Description: "work",
		Rate:        dec("50"),
	})
	require.NoError(t, err)

	require.NoError(t, s.DeleteEntry(entry.ID))
	assert.Empty(t, s.Entries)
}

func TestDeleteEntry_RejectsInvoicedEntry(t *testing.T) {
	s := tracker.NewState()
	entry, err := s.AddEntry(tracker.EntryInput{
		Date:        today(),
		Hours:       dec("1"),
		Description: "work",
		Rate:        dec("50"),
	})
	require.NoError(t, err)
	require.NoError(t, s.Approve(entry.ID))
	require.Len(t, s.CreateInvoicesFromApproved(time.Now()), 1)

	err = s.DeleteEntry(entry.ID)
	assert.ErrorIs(t, err, tracker.ErrEntryInvoiced)
	assert.Len(t, s.Entries, 1)

	// After removing the line the entry can be deleted.
	require.NoError(t, s.RemoveLine(s.Invoices[0].ID, entry.ID))
	assert.NoError(t, s.DeleteEntry(entry.ID))
}

func TestEntryPools(t *testing.T) {
	s := tracker.NewState()

	pending, err := s.AddEntry(tracker.EntryInput{Date: today(), Hours: dec("1"), Description: "a", Rate: dec("50")})
	require.NoError(t, err)
	approved, err := s.AddEntry(tracker.EntryInput{Date: today(), Hours: dec("2"), Description: "b", Rate: dec("50")})
	require.NoError(t, err)
	require.NoError(t, s.Approve(approved.ID))

	assert.Len(t, s.PendingEntries(), 1)
	assert.Equal(t, pending.ID, s.PendingEntries()[0].ID)
	assert.Len(t, s.ApprovedUninvoiced(), 1)
	assert.Empty(t, s.InvoicedEntries())
}
