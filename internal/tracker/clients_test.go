package tracker_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirabelle514/contractortracker.app/internal/tracker"
)

func TestAddClient_RejectsEmptyName(t *testing.T) {
	s := tracker.NewState()
	_, err := s.AddClient("  ", "x@test", "", dec("50"))
	assert.ErrorIs(t, err, tracker.ErrMissingField)
	assert.Empty(t, s.Clients)
}

func TestAddClient_RejectsNegativeRate(t *testing.T) {
	s := tracker.NewState()
	_, err := s.AddClient("Acme", "x@test", "", dec("-1"))
	assert.ErrorIs(t, err, tracker.ErrMissingField)
}

func TestDeleteClient_DetachesEntries(t *testing.T) {
	s := tracker.NewState()
	acme, err := s.AddClient("Acme", "acme@test", "", dec("100"))
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		id := acme.ID
		_, err := s.AddEntry(tracker.EntryInput{
			Date:        today(),
			Hours:       dec("2"),
			Description: "work",
			ClientID:    &id,
		})
		require.NoError(t, err)
	}

	require.NoError(t, s.DeleteClient(acme.ID))

	assert.Empty(t, s.Clients, "client record is gone")
	require.Len(t, s.Entries, 3, "entries survive client deletion")
	for _, e := range s.Entries {
		assert.Nil(t, e.ClientID)
		assert.True(t, e.Hours.Equal(dec("2")), "hours unchanged")
		assert.True(t, e.Rate.Equal(dec("100")), "rate fixed at creation")
		assert.True(t, e.Total.Equal(dec("200")), "total unchanged")
	}
}

func TestDeleteClient_Unknown(t *testing.T) {
	s := tracker.NewState()
	assert.ErrorIs(t, s.DeleteClient(42), tracker.ErrNotFound)
}

func TestClientName(t *testing.T) {
	s := tracker.NewState()
	acme, err := s.AddClient("Acme", "acme@test", "", dec("100"))
	require.NoError(t, err)

	assert.Equal(t, "No Client", s.ClientName(nil))
	assert.Equal(t, "Acme", s.ClientName(&acme.ID))

	ghost := acme.ID + 1
	assert.Equal(t, "Unknown Client", s.ClientName(&ghost))
}
