package tracker

import (
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// Entry approval lifecycle. An entry moves pending -> approved, and once
// approved it can be picked up by invoicing. There is no way back to pending.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
)

// Invoice payment lifecycle.
const (
	InvoicePending = "pending"
	InvoicePaid    = "paid"
)

const dateLayout = "2006-01-02"

// Date is a civil date (no time-of-day, no zone) serialized as yyyy-mm-dd,
// matching the export format.
type Date struct {
	time.Time
}

func NewDate(t time.Time) Date {
	return Date{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return Date{t}, nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid date %s", s)
	}
	parsed, err := ParseDate(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Client is a billing counterparty with a default hourly rate.
type Client struct {
	ID         snowflake.ID    `json:"id"`
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	Address    string          `json:"address,omitempty"`
	HourlyRate decimal.Decimal `json:"hourlyRate"`
}

// TimeEntry is one logged unit of billable work. Rate is resolved once at
// creation (from the client or a manual override) and Total is always
// Hours * Rate. ClientID is a weak reference: deleting the client nulls it
// but leaves the entry, its rate, and its total untouched.
type TimeEntry struct {
	ID          snowflake.ID    `json:"id"`
	Date        Date            `json:"date"`
	Hours       decimal.Decimal `json:"hours"`
	Description string          `json:"description"`
	Rate        decimal.Decimal `json:"rate"`
	Total       decimal.Decimal `json:"total"`
	Status      string          `json:"status"`
	Invoiced    bool            `json:"invoiced"`
	ClientID    *snowflake.ID   `json:"clientId"`
}

// Invoice bills a batch of approved entries for one client. ClientName is a
// snapshot taken at creation so historical invoices survive client renames
// and deletions. Lines are entry snapshots; TotalHours and TotalAmount are
// always the sums over the current lines.
type Invoice struct {
	ID          snowflake.ID    `json:"id"`
	Number      string          `json:"invoiceNumber"`
	Date        Date            `json:"date"`
	ClientID    *snowflake.ID   `json:"clientId"`
	ClientName  string          `json:"clientName"`
	Lines       []TimeEntry     `json:"hours"`
	TotalHours  decimal.Decimal `json:"totalHours"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Status      string          `json:"status"`
	PaidDate    *Date           `json:"paidDate,omitempty"`
}
