package report

import (
	"fmt"
	"time"

	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/samber/lo"

	"github.com/mirabelle514/contractortracker.app/internal/tracker"
)

const recentEntryLimit = 20

// WriteSummaryPDF renders the overall report: totals, a per-client
// breakdown, and the most recent entries. Read-only over the state.
func WriteSummaryPDF(state *tracker.State, path string, now time.Time) error {
	m := newDocument()

	m.AddRow(14, text.NewCol(12, "CONTRACTOR TRACKER REPORT", props.Text{
		Size:  20,
		Style: fontstyle.Bold,
		Align: align.Center,
	}))
	addLabelRow(m, fmt.Sprintf("Generated: %s", now.Format("2006-01-02 15:04")))

	m.AddRow(10, text.NewCol(12, "Summary", props.Text{
		Size:  16,
		Style: fontstyle.Bold,
		Top:   3,
	}))
	addLabelRow(m, fmt.Sprintf("Total Hours: %s", tracker.SumHours(state.Entries).StringFixed(1)))
	addLabelRow(m, fmt.Sprintf("Total Earnings: $%s", tracker.SumAmount(state.Entries).StringFixed(2)))
	addLabelRow(m, fmt.Sprintf("Total Clients: %d", len(state.Clients)))
	addLabelRow(m, fmt.Sprintf("Total Invoices: %d", len(state.Invoices)))

	m.AddRow(10, text.NewCol(12, "Client Breakdown", props.Text{
		Size:  16,
		Style: fontstyle.Bold,
		Top:   3,
	}))
	for _, client := range state.Clients {
		id := client.ID
		clientEntries := lo.Filter(state.Entries, func(e tracker.TimeEntry, _ int) bool {
			return e.ClientID != nil && *e.ClientID == id
		})
		addLabelRow(m, fmt.Sprintf("%s: %sh - $%s",
			client.Name,
			tracker.SumHours(clientEntries).StringFixed(1),
			tracker.SumAmount(clientEntries).StringFixed(2),
		))
	}

	m.AddRow(10, text.NewCol(12, "Recent Hours", props.Text{
		Size:  16,
		Style: fontstyle.Bold,
		Top:   3,
	}))
	recent := lo.Subset(state.Entries, -recentEntryLimit, recentEntryLimit)
	for i := len(recent) - 1; i >= 0; i-- {
		e := recent[i]
		addLabelRow(m, fmt.Sprintf("%s - %sh - %s - $%s",
			e.Date, e.Hours, e.Description, e.Total.StringFixed(2)))
	}

	return save(m, path)
}
