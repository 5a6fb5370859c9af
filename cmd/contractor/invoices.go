package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/mirabelle514/contractortracker.app/internal/config"
	"github.com/mirabelle514/contractortracker.app/internal/report"
	"github.com/mirabelle514/contractortracker.app/internal/tracker"
	"github.com/mirabelle514/contractortracker.app/internal/tui"
)

func runInvoiceCreate(cmd *cobra.Command, args []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	created := sess.state.CreateInvoicesFromApproved(time.Now())
	if len(created) == 0 {
		fmt.Println("No approved hours to invoice.")
		return nil
	}

	// The batch touched both collections.
	if err := sess.db.SaveInvoices(sess.state); err != nil {
		return err
	}
	if err := sess.db.SaveEntries(sess.state); err != nil {
		return err
	}

	for _, inv := range created {
		fmt.Printf("Created %s  %-20s  %sh  $%s\n",
			inv.Number, inv.ClientName,
			inv.TotalHours.StringFixed(1), inv.TotalAmount.StringFixed(2))
	}
	return nil
}

func runInvoiceList(cmd *cobra.Command, args []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	paidOnly, _ := cmd.Flags().GetBool("paid")
	pendingOnly, _ := cmd.Flags().GetBool("pending")

	shown := 0
	for _, inv := range sess.state.Invoices {
		if paidOnly && inv.Status != tracker.InvoicePaid {
			continue
		}
		if pendingOnly && inv.Status != tracker.InvoicePending {
			continue
		}
		shown++

		line := fmt.Sprintf("  %s  %-12s  %s  %-20s  %sh  $%s [%s]",
			inv.ID, inv.Number, inv.Date, inv.ClientName,
			inv.TotalHours.StringFixed(1), inv.TotalAmount.StringFixed(2), inv.Status)
		if inv.PaidDate != nil {
			line += fmt.Sprintf(" paid %s", inv.PaidDate)
		}
		fmt.Println(line)
	}

	if shown == 0 {
		fmt.Println("No invoices.")
	}
	return nil
}

func runInvoicePaid(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	if err := sess.state.MarkPaid(id, time.Now()); err != nil {
		return err
	}
	if err := sess.db.SaveInvoices(sess.state); err != nil {
		return err
	}

	fmt.Println(tui.Success("Invoice marked as paid."))
	return nil
}

func runInvoiceEdit(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	invoice, ok := findInvoice(sess.state, id)
	if !ok {
		return tracker.ErrNotFound
	}

	number := invoice.Number
	if flag, _ := cmd.Flags().GetString("number"); flag != "" {
		number = flag
	}
	date := invoice.Date
	if flag, _ := cmd.Flags().GetString("date"); flag != "" {
		date, err = tracker.ParseDate(flag)
		if err != nil {
			return err
		}
	}

	err = sess.state.EditInvoice(id, number, date)
	if errors.Is(err, tracker.ErrDuplicateInvoiceNumber) {
		return fmt.Errorf("invoice number %q already exists — pick a unique number", number)
	}
	if err != nil {
		return err
	}
	if err := sess.db.SaveInvoices(sess.state); err != nil {
		return err
	}

	fmt.Println("Invoice updated.")
	return nil
}

func runInvoiceRemoveLine(cmd *cobra.Command, args []string) error {
	invoiceID, err := parseID(args[0])
	if err != nil {
		return err
	}
	entryID, err := parseID(args[1])
	if err != nil {
		return err
	}

	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	if err := sess.state.RemoveLine(invoiceID, entryID); err != nil {
		return err
	}
	if err := sess.db.SaveInvoices(sess.state); err != nil {
		return err
	}
	if err := sess.db.SaveEntries(sess.state); err != nil {
		return err
	}

	fmt.Println("Line removed; the entry is eligible for the next invoice batch.")
	return nil
}

func runInvoicePDF(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	invoice, ok := findInvoice(sess.state, id)
	if !ok {
		return tracker.ErrNotFound
	}

	var client *tracker.Client
	if invoice.ClientID != nil {
		client, _ = sess.state.Client(*invoice.ClientID)
	}

	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		out = fmt.Sprintf("invoice-%s.pdf", invoice.Number)
	}

	if err := report.WriteInvoicePDF(*invoice, client, out); err != nil {
		return err
	}

	fmt.Printf("Wrote %s\n", out)
	return nil
}

func findInvoice(state *tracker.State, id snowflake.ID) (*tracker.Invoice, bool) {
	for i := range state.Invoices {
		if state.Invoices[i].ID == id {
			return &state.Invoices[i], true
		}
	}
	return nil, false
}

func runTax(cmd *cobra.Command, args []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	ratePercent := decimal.NewFromFloat(cfg.Billing.TaxRatePercent)
	if flag, _ := cmd.Flags().GetFloat64("rate"); flag > 0 {
		ratePercent = decimal.NewFromFloat(flag)
	}

	estimate := tracker.QuarterlyTax(sess.state.Invoices, ratePercent, time.Now())

	fmt.Println(tui.Title("Quarterly Tax Estimate"))
	fmt.Printf("Quarter:        %s – %s\n", estimate.QuarterStart, estimate.QuarterEnd)
	fmt.Printf("Paid earnings:  $%s\n", estimate.TotalEarnings.StringFixed(2))
	fmt.Printf("Tax (%s%%):     $%s\n", ratePercent, estimate.Tax.StringFixed(2))
	return nil
}

func runReport(cmd *cobra.Command, args []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	now := time.Now()
	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		out = fmt.Sprintf("contractor-report-%s.pdf", now.Format("2006-01-02"))
	}

	if err := report.WriteSummaryPDF(sess.state, out, now); err != nil {
		return err
	}

	fmt.Printf("Wrote %s\n", out)
	return nil
}
