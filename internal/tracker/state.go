package tracker

import (
	"errors"
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

var (
	ErrMissingField           = errors.New("required field missing")
	ErrNotFound               = errors.New("record not found")
	ErrEntryInvoiced          = errors.New("entry belongs to an invoice")
	ErrDuplicateInvoiceNumber = errors.New("invoice number already in use")
)

// State holds the four top-level collections plus the default manual rate.
// Every operation mutates the owned struct; persisting the result is the
// caller's explicit second step.
type State struct {
	Entries    []TimeEntry     `json:"hours"`
	Invoices   []Invoice       `json:"invoices"`
	Clients    []Client        `json:"clients"`
	HourlyRate decimal.Decimal `json:"hourlyRate"`
}

func NewState() *State {
	return &State{
		HourlyRate: decimal.NewFromInt(50),
	}
}

var (
	idNode     *snowflake.Node
	idNodeOnce sync.Once
)

// newID returns a unique identifier that sorts by creation order.
func newID() snowflake.ID {
	idNodeOnce.Do(func() {
		node, err := snowflake.NewNode(1)
		if err != nil {
			panic(err)
		}
		idNode = node
	})
	return idNode.Generate()
}

func (s *State) entry(id snowflake.ID) *TimeEntry {
	for i := range s.Entries {
		if s.Entries[i].ID == id {
			return &s.Entries[i]
		}
	}
	return nil
}

func (s *State) invoice(id snowflake.ID) *Invoice {
	for i := range s.Invoices {
		if s.Invoices[i].ID == id {
			return &s.Invoices[i]
		}
	}
	return nil
}

// Client looks up a client by ID.
func (s *State) Client(id snowflake.ID) (*Client, bool) {
	for i := range s.Clients {
		if s.Clients[i].ID == id {
			return &s.Clients[i], true
		}
	}
	return nil, false
}
