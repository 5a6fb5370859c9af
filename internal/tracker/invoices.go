package tracker

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// CreateInvoicesFromApproved batches every approved, not-yet-invoiced entry
// into one invoice per client (entries without a client form their own
// group), marks the batched entries as invoiced, and returns the new
// invoices. Returns nil when the eligible pool is empty, which also makes
// back-to-back calls idempotent.
func (s *State) CreateInvoicesFromApproved(now time.Time) []Invoice {
	pool := s.ApprovedUninvoiced()
	if len(pool) == 0 {
		return nil
	}

	// Group by client, preserving the order each client first appears in
	// the ledger.
	type group struct {
		clientID *snowflake.ID
		lines    []TimeEntry
	}
	var groups []*group
	byKey := map[int64]*group{}
	for _, e := range pool {
		var key int64
		if e.ClientID != nil {
			key = int64(*e.ClientID)
		}
		g, ok := byKey[key]
		if !ok {
			g = &group{clientID: e.ClientID}
			byKey[key] = g
			groups = append(groups, g)
		}
		g.lines = append(g.lines, e)
	}

	date := NewDate(now)
	var created []Invoice
	for _, g := range groups {
		clientName := "No Client"
		if g.clientID != nil {
			if client, ok := s.Client(*g.clientID); ok {
				clientName = client.Name
			}
		}

		invoice := Invoice{
			ID:          newID(),
			Number:      s.nextInvoiceNumber(g.clientID, clientName),
			Date:        date,
			ClientID:    g.clientID,
			ClientName:  clientName,
			Lines:       g.lines,
			TotalHours:  SumHours(g.lines),
			TotalAmount: SumAmount(g.lines),
			Status:      InvoicePending,
		}
		s.Invoices = append(s.Invoices, invoice)
		created = append(created, invoice)
	}

	batched := lo.SliceToMap(pool, func(e TimeEntry) (snowflake.ID, bool) {
		return e.ID, true
	})
	for i := range s.Entries {
		if batched[s.Entries[i].ID] {
			s.Entries[i].Invoiced = true
		}
	}

	return created
}

// nextInvoiceNumber produces {SLUG}-{seq:03d} where the sequence restarts at
// 1 per client. The no-client series uses the INV prefix and counts
// independently.
func (s *State) nextInvoiceNumber(clientID *snowflake.ID, clientName string) string {
	prior := lo.CountBy(s.Invoices, func(inv Invoice) bool {
		if clientID == nil {
			return inv.ClientID == nil
		}
		return inv.ClientID != nil && *inv.ClientID == *clientID
	})

	prefix := "INV"
	if clientID != nil {
		prefix = slugify(clientName)
	}
	return fmt.Sprintf("%s-%03d", prefix, prior+1)
}

func slugify(name string) string {
	return strings.ToUpper(strings.Join(strings.Fields(name), ""))
}

// MarkPaid transitions an invoice from pending to paid and stamps the paid
// date. Already-paid invoices are left untouched; there is no reverse
// transition.
func (s *State) MarkPaid(id snowflake.ID, now time.Time) error {
	invoice := s.invoice(id)
	if invoice == nil {
		return ErrNotFound
	}
	if invoice.Status == InvoicePaid {
		return nil
	}
	paid := NewDate(now)
	invoice.Status = InvoicePaid
	invoice.PaidDate = &paid
	return nil
}

// EditInvoice changes an invoice's number and issue date, the only mutable
// fields. The new number must not collide with any other invoice
// (case-sensitive); on collision nothing changes.
func (s *State) EditInvoice(id snowflake.ID, number string, date Date) error {
	invoice := s.invoice(id)
	if invoice == nil {
		return ErrNotFound
	}
	for i := range s.Invoices {
		if s.Invoices[i].ID != id && s.Invoices[i].Number == number {
			return ErrDuplicateInvoiceNumber
		}
	}
	invoice.Number = number
	invoice.Date = date
	return nil
}

// RemoveLine drops one entry from an invoice, re-derives the totals from the
// remaining lines, and resets the ledger entry's invoiced flag so it
// re-enters the eligible pool. An invoice emptied this way is kept as a
// zero-total invoice rather than deleted.
func (s *State) RemoveLine(invoiceID, entryID snowflake.ID) error {
	invoice := s.invoice(invoiceID)
	if invoice == nil {
		return ErrNotFound
	}

	before := len(invoice.Lines)
	invoice.Lines = lo.Reject(invoice.Lines, func(e TimeEntry, _ int) bool {
		return e.ID == entryID
	})
	if len(invoice.Lines) == before {
		return ErrNotFound
	}
	invoice.TotalHours = SumHours(invoice.Lines)
	invoice.TotalAmount = SumAmount(invoice.Lines)

	if entry := s.entry(entryID); entry != nil {
		entry.Invoiced = false
	}
	return nil
}

// SumHours totals the hours across a set of entries.
func SumHours(lines []TimeEntry) decimal.Decimal {
	return lo.Reduce(lines, func(sum decimal.Decimal, e TimeEntry, _ int) decimal.Decimal {
		return sum.Add(e.Hours)
	}, decimal.Zero)
}

// SumAmount totals the billed amounts across a set of entries.
func SumAmount(lines []TimeEntry) decimal.Decimal {
	return lo.Reduce(lines, func(sum decimal.Decimal, e TimeEntry, _ int) decimal.Decimal {
		return sum.Add(e.Total)
	}, decimal.Zero)
}
