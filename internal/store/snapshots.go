package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mirabelle514/contractortracker.app/internal/tracker"
)

// Storage keys, one per collection or scalar, mirroring the original
// localStorage layout.
const (
	KeyHours        = "hours"
	KeyInvoices     = "invoices"
	KeyClients      = "clients"
	KeyHourlyRate   = "hourlyRate"
	KeyAppPassword  = "appPassword"
	KeyLastBackup   = "lastBackup"
	KeyManagerEmail = "managerEmail"
)

// LoadState reads all collections into a fresh state. Absent keys leave the
// corresponding collection at its default, so a brand-new database yields an
// empty, usable state.
func (db *DB) LoadState() (*tracker.State, error) {
	state := tracker.NewState()

	if err := db.loadJSON(KeyHours, &state.Entries); err != nil {
		return nil, err
	}
	if err := db.loadJSON(KeyInvoices, &state.Invoices); err != nil {
		return nil, err
	}
	if err := db.loadJSON(KeyClients, &state.Clients); err != nil {
		return nil, err
	}

	raw, err := db.Get(KeyHourlyRate)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", KeyHourlyRate, err)
	}
	if raw != "" {
		rate, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("parsing stored hourly rate %q: %w", raw, err)
		}
		state.HourlyRate = rate
	}

	return state, nil
}

func (db *DB) loadJSON(key string, dest any) error {
	raw, err := db.Get(key)
	if err != nil {
		return fmt.Errorf("reading %s: %w", key, err)
	}
	if raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return fmt.Errorf("decoding %s: %w", key, err)
	}
	return nil
}

func (db *DB) saveJSON(key string, src any) error {
	data, err := json.Marshal(src)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := db.Set(key, string(data)); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

// Snapshot saves. Each collection writes to its own key; callers invoke the
// ones whose collections they mutated, after the mutation succeeds. Writes
// to different keys are not atomic as a group.

func (db *DB) SaveEntries(s *tracker.State) error {
	return db.saveJSON(KeyHours, s.Entries)
}

func (db *DB) SaveInvoices(s *tracker.State) error {
	return db.saveJSON(KeyInvoices, s.Invoices)
}

func (db *DB) SaveClients(s *tracker.State) error {
	return db.saveJSON(KeyClients, s.Clients)
}

func (db *DB) SaveHourlyRate(s *tracker.State) error {
	return db.Set(KeyHourlyRate, s.HourlyRate.String())
}

// SaveAll snapshots every collection, used after import.
func (db *DB) SaveAll(s *tracker.State) error {
	for _, save := range []func(*tracker.State) error{
		db.SaveEntries, db.SaveInvoices, db.SaveClients, db.SaveHourlyRate,
	} {
		if err := save(s); err != nil {
			return err
		}
	}
	return nil
}

func (db *DB) Password() (string, error) {
	return db.Get(KeyAppPassword)
}

func (db *DB) SetPassword(password string) error {
	return db.Set(KeyAppPassword, password)
}

func (db *DB) ManagerEmail() (string, error) {
	return db.Get(KeyManagerEmail)
}

func (db *DB) SetManagerEmail(email string) error {
	return db.Set(KeyManagerEmail, email)
}

// LastBackup returns the time of the most recent export, or ok=false when no
// export has happened yet.
func (db *DB) LastBackup() (time.Time, bool, error) {
	raw, err := db.Get(KeyLastBackup)
	if err != nil || raw == "" {
		return time.Time{}, false, err
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parsing last backup time %q: %w", raw, err)
	}
	return t, true, nil
}

func (db *DB) SetLastBackup(t time.Time) error {
	return db.Set(KeyLastBackup, t.UTC().Format(time.RFC3339))
}
