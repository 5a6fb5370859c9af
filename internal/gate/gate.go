// Package gate implements the local screen-lock password. It is a plain
// shared-secret equality check, not a security boundary.
package gate

import (
	"errors"
	"fmt"

	"github.com/mirabelle514/contractortracker.app/internal/store"
)

const minLength = 4

var (
	ErrWrongPassword = errors.New("incorrect password")
	ErrTooShort      = fmt.Errorf("password must be at least %d characters", minLength)
)

type Gate struct {
	db *store.DB
}

func New(db *store.DB) *Gate {
	return &Gate{db: db}
}

// Enabled reports whether a password has been set.
func (g *Gate) Enabled() (bool, error) {
	stored, err := g.db.Password()
	if err != nil {
		return false, fmt.Errorf("reading password: %w", err)
	}
	return stored != "", nil
}

// Check compares the input against the stored secret. An unset password
// passes any input.
func (g *Gate) Check(input string) error {
	stored, err := g.db.Password()
	if err != nil {
		return fmt.Errorf("reading password: %w", err)
	}
	if stored != "" && input != stored {
		return ErrWrongPassword
	}
	return nil
}

// Set replaces the stored secret.
func (g *Gate) Set(password string) error {
	if len(password) < minLength {
		return ErrTooShort
	}
	return g.db.SetPassword(password)
}
