package tracker

import (
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// EntryInput carries the fields for a new time entry. When ClientID is set
// and resolves, the client's default rate wins; otherwise Rate is used,
// falling back to the state-wide hourly rate when Rate is not positive.
type EntryInput struct {
	Date        Date
	Hours       decimal.Decimal
	Description string
	Rate        decimal.Decimal
	ClientID    *snowflake.ID
}

// AddEntry creates a pending, uninvoiced entry with Total = Hours * Rate.
// Entries with non-positive hours or an empty description are rejected
// without touching state.
func (s *State) AddEntry(in EntryInput) (*TimeEntry, error) {
	if !in.Hours.IsPositive() || strings.TrimSpace(in.Description) == "" {
		return nil, ErrMissingField
	}

	rate := in.Rate
	clientID := in.ClientID
	if clientID != nil {
		if client, ok := s.Client(*clientID); ok {
			rate = client.HourlyRate
		} else {
			clientID = nil
		}
	}
	if !rate.IsPositive() {
		rate = s.HourlyRate
	}

	entry := TimeEntry{
		ID:          newID(),
		Date:        in.Date,
		Hours:       in.Hours,
		Description: strings.TrimSpace(in.Description),
		Rate:        rate,
		Total:       in.Hours.Mul(rate),
		Status:      StatusPending,
		ClientID:    clientID,
	}
	s.Entries = append(s.Entries, entry)
	return &s.Entries[len(s.Entries)-1], nil
}

// Approve transitions an entry from pending to approved. Approving an
// already-approved entry is a no-op.
func (s *State) Approve(id snowflake.ID) error {
	entry := s.entry(id)
	if entry == nil {
		return ErrNotFound
	}
	entry.Status = StatusApproved
	return nil
}

// DeleteEntry removes an entry from the ledger. Entries currently carried on
// an invoice cannot be deleted directly; remove the invoice line first so the
// invoice totals stay consistent.
func (s *State) DeleteEntry(id snowflake.ID) error {
	entry := s.entry(id)
	if entry == nil {
		return ErrNotFound
	}
	if entry.Invoiced {
		return ErrEntryInvoiced
	}
	s.Entries = lo.Reject(s.Entries, func(e TimeEntry, _ int) bool {
		return e.ID == id
	})
	return nil
}

// DetachFromClient nulls the client reference on every entry pointing at the
// given client. Rates and totals were resolved at creation and stay fixed.
func (s *State) DetachFromClient(clientID snowflake.ID) {
	for i := range s.Entries {
		if s.Entries[i].ClientID != nil && *s.Entries[i].ClientID == clientID {
			s.Entries[i].ClientID = nil
		}
	}
}

// PendingEntries returns entries awaiting approval.
func (s *State) PendingEntries() []TimeEntry {
	return lo.Filter(s.Entries, func(e TimeEntry, _ int) bool {
		return e.Status == StatusPending
	})
}

// ApprovedUninvoiced returns the pool eligible for the next invoice batch.
func (s *State) ApprovedUninvoiced() []TimeEntry {
	return lo.Filter(s.Entries, func(e TimeEntry, _ int) bool {
		return e.Status == StatusApproved && !e.Invoiced
	})
}

// InvoicedEntries returns entries already carried on an invoice.
func (s *State) InvoicedEntries() []TimeEntry {
	return lo.Filter(s.Entries, func(e TimeEntry, _ int) bool {
		return e.Invoiced
	})
}
