package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/mirabelle514/contractortracker.app/internal/backup"
	"github.com/mirabelle514/contractortracker.app/internal/config"
	"github.com/mirabelle514/contractortracker.app/internal/gate"
	"github.com/mirabelle514/contractortracker.app/internal/store"
	"github.com/mirabelle514/contractortracker.app/internal/tracker"
	"github.com/mirabelle514/contractortracker.app/internal/tui"
)

func runClientAdd(cmd *cobra.Command, args []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	name, _ := cmd.Flags().GetString("name")
	email, _ := cmd.Flags().GetString("email")
	address, _ := cmd.Flags().GetString("address")

	rate := sess.state.HourlyRate
	if flag, _ := cmd.Flags().GetString("rate"); flag != "" {
		rate, err = decimal.NewFromString(flag)
		if err != nil {
			return fmt.Errorf("invalid rate %q", flag)
		}
	}

	client, err := sess.state.AddClient(name, email, address, rate)
	if errors.Is(err, tracker.ErrMissingField) {
		fmt.Println(tui.Dim("Nothing added: a client name is required."))
		return nil
	}
	if err != nil {
		return err
	}
	if err := sess.db.SaveClients(sess.state); err != nil {
		return err
	}

	fmt.Printf("Added client %s (%s, $%s/h)\n", client.Name, client.ID, client.HourlyRate)
	return nil
}

func runClientList(cmd *cobra.Command, args []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	if len(sess.state.Clients) == 0 {
		fmt.Println("No clients.")
		return nil
	}

	for _, c := range sess.state.Clients {
		fmt.Printf("  %s  %-20s  %-28s  $%s/h\n", c.ID, c.Name, c.Email, c.HourlyRate)
	}
	return nil
}

func runClientDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	if err := sess.state.DeleteClient(id); err != nil {
		return err
	}
	// Deleting cascades into the ledger (detached entries).
	if err := sess.db.SaveClients(sess.state); err != nil {
		return err
	}
	if err := sess.db.SaveEntries(sess.state); err != nil {
		return err
	}

	fmt.Println("Client deleted; its entries were kept and detached.")
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	now := time.Now()
	data, err := backup.Export(sess.state, now)
	if err != nil {
		return err
	}

	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		out = backup.Filename(now)
	}
	if err := os.WriteFile(out, data, 0644); err != nil {
		return fmt.Errorf("writing backup file: %w", err)
	}
	if err := sess.db.SetLastBackup(now); err != nil {
		return err
	}

	fmt.Printf("Exported to %s\n", out)
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading backup file: %w", err)
	}

	if err := backup.Import(sess.state, data); err != nil {
		return fmt.Errorf("import aborted, nothing changed: %w", err)
	}
	if err := sess.db.SaveAll(sess.state); err != nil {
		return err
	}

	fmt.Println(tui.Success("Data imported successfully."))
	return nil
}

func runRate(cmd *cobra.Command, args []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	if len(args) == 0 {
		fmt.Printf("Default hourly rate: $%s\n", sess.state.HourlyRate)
		return nil
	}

	rate, err := decimal.NewFromString(args[0])
	if err != nil || rate.IsNegative() {
		return fmt.Errorf("invalid rate %q", args[0])
	}

	sess.state.HourlyRate = rate
	if err := sess.db.SaveHourlyRate(sess.state); err != nil {
		return err
	}

	fmt.Printf("Default hourly rate set to $%s\n", rate)
	return nil
}

func runManager(cmd *cobra.Command, args []string) error {
	db, err := store.Open()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := unlock(db); err != nil {
		return err
	}

	if len(args) == 0 {
		email, err := db.ManagerEmail()
		if err != nil {
			return err
		}
		if email == "" {
			fmt.Println("No manager email set.")
			return nil
		}
		fmt.Printf("Manager email: %s\n", email)
		return nil
	}

	if err := db.SetManagerEmail(args[0]); err != nil {
		return err
	}
	fmt.Printf("Manager email set to %s\n", args[0])
	return nil
}

func runPasswd(cmd *cobra.Command, args []string) error {
	db, err := store.Open()
	if err != nil {
		return err
	}
	defer db.Close()

	g := gate.New(db)
	enabled, err := g.Enabled()
	if err != nil {
		return err
	}

	if enabled {
		current, err := readPassword("Current password: ")
		if err != nil {
			return err
		}
		if err := g.Check(current); err != nil {
			return err
		}
	}

	next, err := readPassword("New password: ")
	if err != nil {
		return err
	}
	confirm, err := readPassword("Confirm password: ")
	if err != nil {
		return err
	}
	if next != confirm {
		return fmt.Errorf("passwords do not match")
	}

	if err := g.Set(next); err != nil {
		return err
	}
	fmt.Println(tui.Success("Password updated."))
	return nil
}

func runConfig(cmd *cobra.Command, args []string) error {
	if err := config.EnsureConfigDir(); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	configPath, err := config.ConfigPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := config.DefaultConfig()
		data := fmt.Sprintf(`[billing]
tax_rate_percent = %g

[notifications]
enabled = %t
`,
			cfg.Billing.TaxRatePercent,
			cfg.Notifications.Enabled,
		)
		if err := os.WriteFile(configPath, []byte(data), 0644); err != nil {
			return fmt.Errorf("writing default config: %w", err)
		}
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}

	fmt.Printf("Opening %s with %s...\n", configPath, editor)

	proc := os.ProcAttr{
		Files: []*os.File{os.Stdin, os.Stdout, os.Stderr},
	}
	process, err := os.StartProcess(editor, []string{editor, configPath}, &proc)
	if err != nil {
		fmt.Printf("Could not open editor. Config file is at: %s\n", configPath)
		return nil
	}
	_, err = process.Wait()
	return err
}

// openURL hands a URL to the platform opener, best effort.
func openURL(url string) {
	var opener string
	switch runtime.GOOS {
	case "darwin":
		opener = "open"
	case "windows":
		opener = "rundll32"
	default:
		opener = "xdg-open"
	}

	args := []string{url}
	if runtime.GOOS == "windows" {
		args = []string{"url.dll,FileProtocolHandler", url}
	}
	_ = exec.Command(opener, args...).Start()
}
