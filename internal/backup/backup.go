package backup

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mirabelle514/contractortracker.app/internal/tracker"
)

const Version = "1.0"

// StaleAfter is how old a backup may get before the reminder fires.
const StaleAfter = 7 * 24 * time.Hour

// Bundle is the export document. Collection fields are pointers so a partial
// import can tell an absent field (leave current state alone) from a present
// one, including a present-but-empty list.
type Bundle struct {
	Hours      *[]tracker.TimeEntry `json:"hours,omitempty"`
	Invoices   *[]tracker.Invoice   `json:"invoices,omitempty"`
	Clients    *[]tracker.Client    `json:"clients,omitempty"`
	HourlyRate *decimal.Decimal     `json:"hourlyRate,omitempty"`
	ExportDate time.Time            `json:"exportDate"`
	Version    string               `json:"version"`
}

// Export serializes the full state into a backup document.
func Export(state *tracker.State, now time.Time) ([]byte, error) {
	bundle := Bundle{
		Hours:      &state.Entries,
		Invoices:   &state.Invoices,
		Clients:    &state.Clients,
		HourlyRate: &state.HourlyRate,
		ExportDate: now.UTC(),
		Version:    Version,
	}

	data, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding backup: %w", err)
	}
	return data, nil
}

// Filename names the download the way the original app did.
func Filename(now time.Time) string {
	return fmt.Sprintf("contractor-backup-%s.json", now.Format("2006-01-02"))
}

// Import overwrites the collections present in the document and leaves the
// rest untouched. Malformed JSON aborts the whole import with no partial
// mutation.
func Import(state *tracker.State, data []byte) error {
	var bundle Bundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		return fmt.Errorf("parsing backup file: %w", err)
	}

	if bundle.Hours != nil {
		state.Entries = *bundle.Hours
	}
	if bundle.Invoices != nil {
		state.Invoices = *bundle.Invoices
	}
	if bundle.Clients != nil {
		state.Clients = *bundle.Clients
	}
	if bundle.HourlyRate != nil {
		state.HourlyRate = *bundle.HourlyRate
	}
	return nil
}

// ReminderDue reports whether the stale-backup warning should show. A state
// that has never been exported is always due.
func ReminderDue(last time.Time, exported bool, now time.Time) bool {
	if !exported {
		return true
	}
	return now.Sub(last) > StaleAfter
}
