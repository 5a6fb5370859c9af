package report_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirabelle514/contractortracker.app/internal/report"
	"github.com/mirabelle514/contractortracker.app/internal/tracker"
)

func populatedState(t *testing.T) *tracker.State {
	t.Helper()
	s := tracker.NewState()
	client, err := s.AddClient("Acme", "billing@acme.test", "1 Main St", decimal.NewFromInt(100))
	require.NoError(t, err)
	id := client.ID
	for _, desc := range []string{"design", "implementation", "review"} {
		entry, err := s.AddEntry(tracker.EntryInput{
			Date:        tracker.NewDate(time.Now()),
			Hours:       decimal.NewFromInt(2),
			Description: desc,
			ClientID:    &id,
		})
		require.NoError(t, err)
		require.NoError(t, s.Approve(entry.ID))
	}
	require.Len(t, s.CreateInvoicesFromApproved(time.Now()), 1)
	return s
}

func requirePDF(t *testing.T, path string) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestWriteInvoicePDF(t *testing.T) {
	s := populatedState(t)
	path := filepath.Join(t.TempDir(), "invoice.pdf")

	client, ok := s.Client(s.Clients[0].ID)
	require.True(t, ok)
	require.NoError(t, report.WriteInvoicePDF(s.Invoices[0], client, path))
	requirePDF(t, path)
}

func TestWriteInvoicePDF_NoClient(t *testing.T) {
	s := populatedState(t)
	path := filepath.Join(t.TempDir(), "invoice.pdf")

	require.NoError(t, report.WriteInvoicePDF(s.Invoices[0], nil, path))
	requirePDF(t, path)
}

func TestWriteSummaryPDF(t *testing.T) {
	s := populatedState(t)
	path := filepath.Join(t.TempDir(), "report.pdf")

	require.NoError(t, report.WriteSummaryPDF(s, path, time.Now()))
	requirePDF(t, path)
}
