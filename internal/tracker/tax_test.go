package tracker_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirabelle514/contractortracker.app/internal/tracker"
)

func TestQuarterBounds(t *testing.T) {
	tests := []struct {
		now   string
		start string
		end   string
	}{
		{"2026-01-01", "2026-01-01", "2026-03-31"},
		{"2026-02-15", "2026-01-01", "2026-03-31"},
		{"2026-03-31", "2026-01-01", "2026-03-31"},
		{"2026-04-01", "2026-04-01", "2026-06-30"},
		{"2026-08-31", "2026-07-01", "2026-09-30"},
		{"2026-12-31", "2026-10-01", "2026-12-31"},
	}

	for _, tt := range tests {
		t.Run(tt.now, func(t *testing.T) {
			now, err := time.Parse("2006-01-02", tt.now)
			require.NoError(t, err)
			start, end := tracker.QuarterBounds(now)
			assert.Equal(t, tt.start, start.String())
			assert.Equal(t, tt.end, end.String())
		})
	}
}

func paidInvoice(amount, paidOn string) tracker.Invoice {
	date, err := tracker.ParseDate(paidOn)
	if err != nil {
		panic(err)
	}
	return tracker.Invoice{
		TotalAmount: dec(amount),
		Status:      tracker.InvoicePaid,
		PaidDate:    &date,
	}
}

func TestQuarterlyTax(t *testing.T) {
	now := time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC) // Q3: Jul 1 – Sep 30

	invoices := []tracker.Invoice{
		paidInvoice("200", "2026-07-01"), // first day of quarter, included
		paidInvoice("300", "2026-09-30"), // last day of quarter, included
		paidInvoice("500", "2026-06-30"), // one day before quarter start
		paidInvoice("700", "2026-10-01"), // one day after quarter end
		{TotalAmount: dec("900"), Status: tracker.InvoicePending}, // unpaid
	}

	estimate := tracker.QuarterlyTax(invoices, dec("20"), now)

	assert.Equal(t, "2026-07-01", estimate.QuarterStart.String())
	assert.Equal(t, "2026-09-30", estimate.QuarterEnd.String())
	assert.True(t, estimate.TotalEarnings.Equal(dec("500")), "got %s", estimate.TotalEarnings)
	assert.True(t, estimate.Tax.Equal(dec("100")), "got %s", estimate.Tax)
}

func TestQuarterlyTax_NoPaidInvoices(t *testing.T) {
	estimate := tracker.QuarterlyTax(nil, dec("20"), time.Now())
	assert.True(t, estimate.TotalEarnings.IsZero())
	assert.True(t, estimate.Tax.IsZero())
}

// Mirrors the canonical walkthrough: client, entry, approval, invoicing,
// payment, quarterly estimate.
func TestHoursToTaxScenario(t *testing.T) {
	s := tracker.NewState()
	now := time.Now()

	acme, err := s.AddClient("Acme", "billing@acme.test", "1 Main St", dec("100"))
	require.NoError(t, err)

	id := acme.ID
	entry, err := s.AddEntry(tracker.EntryInput{
		Date:        tracker.NewDate(now),
		Hours:       dec("2"),
		Description: "design",
		ClientID:    &id,
	})
	require.NoError(t, err)
	require.True(t, entry.Total.Equal(dec("200")))

	require.NoError(t, s.Approve(entry.ID))

	created := s.CreateInvoicesFromApproved(now)
	require.Len(t, created, 1)
	invoice := created[0]
	assert.Equal(t, "Acme", invoice.ClientName)
	assert.Equal(t, "ACME-001", invoice.Number)
	assert.True(t, invoice.TotalAmount.Equal(dec("200")))
	assert.Equal(t, tracker.InvoicePending, invoice.Status)

	require.NoError(t, s.MarkPaid(invoice.ID, now))

	estimate := tracker.QuarterlyTax(s.Invoices, dec("20"), now)
	assert.True(t, estimate.TotalEarnings.Equal(dec("200")))
	assert.True(t, estimate.Tax.Equal(dec("40")))
}
