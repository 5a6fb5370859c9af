package report

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/mirabelle514/contractortracker.app/internal/tracker"
)

func newDocument() core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(20).
		WithRightMargin(20).
		WithTopMargin(10).
		Build()
	return maroto.New(cfg)
}

// WriteInvoicePDF renders one invoice as a paginated PDF document. The
// client may be nil for no-client invoices or when the client was deleted
// after invoicing; the invoice's own snapshot fields carry the rest.
func WriteInvoicePDF(invoice tracker.Invoice, client *tracker.Client, path string) error {
	m := newDocument()

	m.AddRow(14, text.NewCol(12, "INVOICE", props.Text{
		Size:  24,
		Style: fontstyle.Bold,
		Align: align.Center,
	}))

	addLabelRow(m, fmt.Sprintf("Invoice #: %s", invoice.Number))
	addLabelRow(m, fmt.Sprintf("Date: %s", invoice.Date))
	addLabelRow(m, fmt.Sprintf("Status: %s", invoice.Status))
	if invoice.Status == tracker.InvoicePaid && invoice.PaidDate != nil {
		addLabelRow(m, fmt.Sprintf("Paid: %s", invoice.PaidDate))
	}

	m.AddRow(6)
	addLabelRow(m, fmt.Sprintf("Client: %s", invoice.ClientName))
	if client != nil {
		addLabelRow(m, fmt.Sprintf("Email: %s", client.Email))
		if client.Address != "" {
			addLabelRow(m, fmt.Sprintf("Address: %s", client.Address))
		}
	}

	m.AddRow(10, text.NewCol(12, "Hours Details", props.Text{
		Size:  14,
		Style: fontstyle.Bold,
		Top:   3,
	}))
	addLineRow(m, fontstyle.Bold, "Date", "Hours", "Description", "Rate", "Amount")
	for _, line := range invoice.Lines {
		addLineRow(m, fontstyle.Normal,
			line.Date.String(),
			line.Hours.String(),
			line.Description,
			"$"+line.Rate.String(),
			"$"+line.Total.StringFixed(2),
		)
	}

	m.AddRow(8, text.NewCol(12, fmt.Sprintf("Total Hours: %s", invoice.TotalHours), props.Text{
		Size:  12,
		Style: fontstyle.Bold,
		Top:   3,
	}))
	m.AddRow(8, text.NewCol(12, fmt.Sprintf("Total Amount: $%s", invoice.TotalAmount.StringFixed(2)), props.Text{
		Size:  12,
		Style: fontstyle.Bold,
	}))

	return save(m, path)
}

func addLabelRow(m core.Maroto, label string) {
	m.AddRow(6, text.NewCol(12, label, props.Text{Size: 11}))
}

func addLineRow(m core.Maroto, style fontstyle.Type, date, hours, description, rate, amount string) {
	cell := func(size int, value string) core.Col {
		return col.New(size).Add(text.New(value, props.Text{Size: 9, Style: style}))
	}
	m.AddRows(row.New(6).Add(
		cell(2, date),
		cell(1, hours),
		cell(5, description),
		cell(2, rate),
		cell(2, amount),
	))
}

func save(m core.Maroto, path string) error {
	document, err := m.Generate()
	if err != nil {
		return fmt.Errorf("generating PDF: %w", err)
	}
	if err := document.Save(path); err != nil {
		return fmt.Errorf("writing PDF file: %w", err)
	}
	return nil
}
