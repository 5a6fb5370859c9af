package main

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/mirabelle514/contractortracker.app/internal/notify"
	"github.com/mirabelle514/contractortracker.app/internal/tracker"
	"github.com/mirabelle514/contractortracker.app/internal/tui"
)

func runAdd(cmd *cobra.Command, args []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	maybeBackupReminder(sess.db)

	hoursFlag, _ := cmd.Flags().GetString("hours")
	descFlag, _ := cmd.Flags().GetString("desc")

	var input tracker.EntryInput
	if hoursFlag == "" && descFlag == "" {
		input, err = addViaForm(sess.state)
		if err != nil {
			return err
		}
		if input.Description == "" {
			fmt.Println(tui.Dim("Entry skipped."))
			return nil
		}
	} else {
		input, err = addViaFlags(cmd, sess.state)
		if err != nil {
			return err
		}
	}

	entry, err := sess.state.AddEntry(input)
	if errors.Is(err, tracker.ErrMissingField) {
		fmt.Println(tui.Dim("Nothing logged: hours and description are required."))
		return nil
	}
	if err != nil {
		return err
	}

	if err := sess.db.SaveEntries(sess.state); err != nil {
		return err
	}

	fmt.Printf("Logged: %s — %sh  %s  $%s [%s]\n",
		entry.Date, entry.Hours, entry.Description,
		entry.Total.StringFixed(2), entry.Status)
	return nil
}

func addViaForm(state *tracker.State) (tracker.EntryInput, error) {
	form := tui.NewEntryForm(state.Clients, state.HourlyRate)
	p := tea.NewProgram(form)

	if _, err := p.Run(); err != nil {
		return tracker.EntryInput{}, fmt.Errorf("running form: %w", err)
	}

	result := form.Result()
	if result == nil || result.Canceled {
		return tracker.EntryInput{}, nil
	}
	return result.Input, nil
}

func addViaFlags(cmd *cobra.Command, state *tracker.State) (tracker.EntryInput, error) {
	var input tracker.EntryInput

	dateFlag, _ := cmd.Flags().GetString("date")
	date, err := tui.ParseEntryDate(dateFlag)
	if err != nil {
		return input, err
	}
	input.Date = date

	hoursFlag, _ := cmd.Flags().GetString("hours")
	hours, err := decimal.NewFromString(hoursFlag)
	if err != nil {
		return input, fmt.Errorf("invalid hours %q", hoursFlag)
	}
	input.Hours = hours

	input.Description, _ = cmd.Flags().GetString("desc")

	if clientFlag, _ := cmd.Flags().GetString("client"); clientFlag != "" {
		client, err := findClientByName(state, clientFlag)
		if err != nil {
			return input, err
		}
		input.ClientID = &client.ID
	} else if rateFlag, _ := cmd.Flags().GetString("rate"); rateFlag != "" {
		rate, err := decimal.NewFromString(rateFlag)
		if err != nil {
			return input, fmt.Errorf("invalid rate %q", rateFlag)
		}
		input.Rate = rate
	}

	return input, nil
}

func findClientByName(state *tracker.State, name string) (*tracker.Client, error) {
	for i := range state.Clients {
		if strings.EqualFold(state.Clients[i].Name, name) {
			return &state.Clients[i], nil
		}
	}
	return nil, fmt.Errorf("no client named %q", name)
}

func runEntries(cmd *cobra.Command, args []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	maybeBackupReminder(sess.db)

	pending, _ := cmd.Flags().GetBool("pending")
	approved, _ := cmd.Flags().GetBool("approved")
	invoiced, _ := cmd.Flags().GetBool("invoiced")

	entries := sess.state.Entries
	switch {
	case pending:
		entries = sess.state.PendingEntries()
	case approved:
		entries = sess.state.ApprovedUninvoiced()
	case invoiced:
		entries = sess.state.InvoicedEntries()
	}

	if len(entries) == 0 {
		fmt.Println("No entries.")
		return nil
	}

	for _, e := range entries {
		status := e.Status
		if e.Invoiced {
			status = "invoiced"
		}
		fmt.Printf("  %s  %s  %5sh  %-30s  %-14s  $%s [%s]\n",
			e.ID, e.Date, e.Hours, e.Description,
			sess.state.ClientName(e.ClientID),
			e.Total.StringFixed(2), status)
	}

	fmt.Printf("\nTotal: %sh, $%s (%d entries)\n",
		tracker.SumHours(entries).StringFixed(1),
		tracker.SumAmount(entries).StringFixed(2),
		len(entries))
	return nil
}

func runApprove(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	if err := sess.state.Approve(id); err != nil {
		return err
	}
	if err := sess.db.SaveEntries(sess.state); err != nil {
		return err
	}

	fmt.Println(tui.Success("Entry approved."))
	return nil
}

func runDeleteEntry(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	err = sess.state.DeleteEntry(id)
	if errors.Is(err, tracker.ErrEntryInvoiced) {
		return fmt.Errorf("entry is on an invoice — remove the invoice line first (contractor invoice remove-line)")
	}
	if err != nil {
		return err
	}
	if err := sess.db.SaveEntries(sess.state); err != nil {
		return err
	}

	fmt.Println("Entry deleted.")
	return nil
}

func runEmail(cmd *cobra.Command, args []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	email, err := sess.db.ManagerEmail()
	if err != nil {
		return err
	}

	mailto, err := notify.ComposeApprovalMail(email, sess.state.PendingEntries())
	if errors.Is(err, notify.ErrNoManagerEmail) {
		return fmt.Errorf("set your manager email first: contractor manager <email>")
	}
	if err != nil {
		return err
	}

	fmt.Println(mailto)
	openURL(mailto)
	return nil
}
