package main

import (
	"fmt"
	"os"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mirabelle514/contractortracker.app/internal/backup"
	"github.com/mirabelle514/contractortracker.app/internal/config"
	"github.com/mirabelle514/contractortracker.app/internal/gate"
	"github.com/mirabelle514/contractortracker.app/internal/notify"
	"github.com/mirabelle514/contractortracker.app/internal/store"
	"github.com/mirabelle514/contractortracker.app/internal/tracker"
	"github.com/mirabelle514/contractortracker.app/internal/tui"
)

var rootCmd = &cobra.Command{
	Use:   "contractor",
	Short: "Track billable hours, invoices, and quarterly taxes",
	Long:  "contractor logs billable hours per client, batches approved hours into invoices, tracks payment, and estimates quarterly taxes. Everything stays on your machine.",
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a time entry (flags or interactive form)",
	RunE:  runAdd,
}

var entriesCmd = &cobra.Command{
	Use:   "entries",
	Short: "List time entries",
	RunE:  runEntries,
}

var approveCmd = &cobra.Command{
	Use:   "approve <entry-id>",
	Short: "Approve a pending entry for billing",
	Args:  cobra.ExactArgs(1),
	RunE:  runApprove,
}

var rmCmd = &cobra.Command{
	Use:   "rm <entry-id>",
	Short: "Delete a time entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runDeleteEntry,
}

var clientCmd = &cobra.Command{
	Use:   "client",
	Short: "Manage clients",
}

var clientAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a client",
	RunE:  runClientAdd,
}

var clientListCmd = &cobra.Command{
	Use:   "list",
	Short: "List clients",
	RunE:  runClientList,
}

var clientRmCmd = &cobra.Command{
	Use:   "rm <client-id>",
	Short: "Delete a client (its entries are kept and detached)",
	Args:  cobra.ExactArgs(1),
	RunE:  runClientDelete,
}

var invoiceCmd = &cobra.Command{
	Use:   "invoice",
	Short: "Manage invoices",
}

var invoiceCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Batch approved hours into one invoice per client",
	RunE:  runInvoiceCreate,
}

var invoiceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List invoices",
	RunE:  runInvoiceList,
}

var invoicePaidCmd = &cobra.Command{
	Use:   "paid <invoice-id>",
	Short: "Mark an invoice as paid",
	Args:  cobra.ExactArgs(1),
	RunE:  runInvoicePaid,
}

var invoiceEditCmd = &cobra.Command{
	Use:   "edit <invoice-id>",
	Short: "Change an invoice's number or date",
	Args:  cobra.ExactArgs(1),
	RunE:  runInvoiceEdit,
}

var invoiceRemoveLineCmd = &cobra.Command{
	Use:   "remove-line <invoice-id> <entry-id>",
	Short: "Remove an entry from an invoice so it can be re-invoiced",
	Args:  cobra.ExactArgs(2),
	RunE:  runInvoiceRemoveLine,
}

var invoicePDFCmd = &cobra.Command{
	Use:   "pdf <invoice-id>",
	Short: "Write an invoice as a PDF document",
	Args:  cobra.ExactArgs(1),
	RunE:  runInvoicePDF,
}

var taxCmd = &cobra.Command{
	Use:   "tax",
	Short: "Estimate taxes for the current quarter",
	RunE:  runTax,
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write a summary report as a PDF document",
	RunE:  runReport,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all data to a JSON backup file",
	RunE:  runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import data from a JSON backup file",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

var emailCmd = &cobra.Command{
	Use:   "email",
	Short: "Compose an approval request email for pending hours",
	RunE:  runEmail,
}

var rateCmd = &cobra.Command{
	Use:   "rate [amount]",
	Short: "Show or set the default hourly rate",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRate,
}

var managerCmd = &cobra.Command{
	Use:   "manager [email]",
	Short: "Show or set the manager email",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runManager,
}

var passwdCmd = &cobra.Command{
	Use:   "passwd",
	Short: "Set or change the app password",
	RunE:  runPasswd,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Open config file in your editor",
	RunE:  runConfig,
}

func init() {
	addCmd.Flags().String("date", "", "work date (yyyy-mm-dd or natural, e.g. 'yesterday')")
	addCmd.Flags().String("hours", "", "hours worked, e.g. 2.5")
	addCmd.Flags().String("desc", "", "description of the work")
	addCmd.Flags().String("client", "", "client name to bill (uses the client's rate)")
	addCmd.Flags().String("rate", "", "hourly rate override for entries without a client")

	entriesCmd.Flags().Bool("pending", false, "only entries awaiting approval")
	entriesCmd.Flags().Bool("approved", false, "only approved, not yet invoiced entries")
	entriesCmd.Flags().Bool("invoiced", false, "only invoiced entries")

	clientAddCmd.Flags().String("name", "", "client name (required)")
	clientAddCmd.Flags().String("email", "", "billing email")
	clientAddCmd.Flags().String("address", "", "postal address")
	clientAddCmd.Flags().String("rate", "", "default hourly rate")

	invoiceListCmd.Flags().Bool("paid", false, "only paid invoices")
	invoiceListCmd.Flags().Bool("pending", false, "only pending invoices")

	invoiceEditCmd.Flags().String("number", "", "new invoice number")
	invoiceEditCmd.Flags().String("date", "", "new issue date (yyyy-mm-dd)")

	invoicePDFCmd.Flags().String("out", "", "output path (defaults to invoice-<number>.pdf)")
	reportCmd.Flags().String("out", "", "output path (defaults to contractor-report-<date>.pdf)")
	exportCmd.Flags().String("out", "", "output path (defaults to the dated backup name)")

	taxCmd.Flags().Float64("rate", 0, "tax rate percent (defaults to the configured rate)")

	clientCmd.AddCommand(clientAddCmd, clientListCmd, clientRmCmd)
	invoiceCmd.AddCommand(invoiceCreateCmd, invoiceListCmd, invoicePaidCmd,
		invoiceEditCmd, invoiceRemoveLineCmd, invoicePDFCmd)

	rootCmd.AddCommand(addCmd, entriesCmd, approveCmd, rmCmd, clientCmd,
		invoiceCmd, taxCmd, reportCmd, exportCmd, importCmd, emailCmd,
		rateCmd, managerCmd, passwdCmd, configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// session bundles what every state-touching command needs: an unlocked
// store and the loaded state.
type session struct {
	db    *store.DB
	state *tracker.State
}

func openSession() (*session, error) {
	db, err := store.Open()
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	if err := unlock(db); err != nil {
		db.Close()
		return nil, err
	}

	state, err := db.LoadState()
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("loading state: %w", err)
	}

	return &session{db: db, state: state}, nil
}

func (s *session) Close() {
	s.db.Close()
}

// unlock prompts for the app password when one is set.
func unlock(db *store.DB) error {
	g := gate.New(db)
	enabled, err := g.Enabled()
	if err != nil {
		return err
	}
	if !enabled {
		return nil
	}

	input, err := readPassword("Password: ")
	if err != nil {
		return err
	}
	if err := g.Check(input); err != nil {
		return err
	}
	return nil
}

func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(raw), nil
}

func parseID(arg string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

// maybeBackupReminder nags when the last export is older than a week.
func maybeBackupReminder(db *store.DB) {
	cfg, err := config.Load()
	if err != nil {
		return
	}

	last, ok, err := db.LastBackup()
	if err != nil || !backup.ReminderDue(last, ok, time.Now()) {
		return
	}

	fmt.Println(tui.Warning("Backup reminder: run 'contractor export' — your data is only on this machine."))
	if cfg.Notifications.Enabled {
		_ = notify.Desktop("Contractor Tracker", "Your data hasn't been backed up in over a week.")
	}
}
