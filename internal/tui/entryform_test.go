package tui_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirabelle514/contractortracker.app/internal/tui"
)

func TestParseEntryDate_ISO(t *testing.T) {
	date, err := tui.ParseEntryDate("2026-08-31")
	require.NoError(t, err)
	assert.Equal(t, "2026-08-31", date.String())
}

func TestParseEntryDate_EmptyDefaultsToToday(t *testing.T) {
	date, err := tui.ParseEntryDate("")
	require.NoError(t, err)
	assert.Equal(t, time.Now().Format("2006-01-02"), date.String())
}

func TestParseEntryDate_Natural(t *testing.T) {
	date, err := tui.ParseEntryDate("yesterday")
	require.NoError(t, err)
	assert.Equal(t, time.Now().AddDate(0, 0, -1).Format("2006-01-02"), date.String())
}

func TestParseEntryDate_Garbage(t *testing.T) {
	_, err := tui.ParseEntryDate("not a date at all %%%")
	assert.Error(t, err)
}
