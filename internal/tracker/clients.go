package tracker

import (
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// AddClient registers a client. The name is required and the default rate
// must not be negative.
func (s *State) AddClient(name, email, address string, hourlyRate decimal.Decimal) (*Client, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrMissingField
	}
	if hourlyRate.IsNegative() {
		return nil, ErrMissingField
	}

	client := Client{
		ID:         newID(),
		Name:       name,
		Email:      email,
		Address:    address,
		HourlyRate: hourlyRate,
	}
	s.Clients = append(s.Clients, client)
	return &s.Clients[len(s.Clients)-1], nil
}

// DeleteClient removes the client record and detaches its entries. Invoices
// keep the client name they snapshotted at creation.
func (s *State) DeleteClient(id snowflake.ID) error {
	if _, ok := s.Client(id); !ok {
		return ErrNotFound
	}
	s.Clients = lo.Reject(s.Clients, func(c Client, _ int) bool {
		return c.ID == id
	})
	s.DetachFromClient(id)
	return nil
}

// ClientName resolves a weak client reference for display.
func (s *State) ClientName(id *snowflake.ID) string {
	if id == nil {
		return "No Client"
	}
	if client, ok := s.Client(*id); ok {
		return client.Name
	}
	return "Unknown Client"
}
