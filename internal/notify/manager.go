package notify

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/mirabelle514/contractortracker.app/internal/tracker"
)

var (
	ErrNoManagerEmail = errors.New("manager email not configured")
	ErrNothingPending = errors.New("no pending entries to send for approval")
)

// ComposeApprovalMail builds a mailto URL summarizing the pending entries for
// the manager. Composing is all this does; opening the URL and sending the
// mail stay on the caller's side.
func ComposeApprovalMail(email string, pending []tracker.TimeEntry) (string, error) {
	if email == "" {
		return "", ErrNoManagerEmail
	}
	if len(pending) == 0 {
		return "", ErrNothingPending
	}

	totalHours := tracker.SumHours(pending)
	totalAmount := tracker.SumAmount(pending)

	body := fmt.Sprintf(`Hi,

I have %d hours entries pending approval:

Total Hours: %sh
Total Amount: $%s

Please review and approve these hours at your convenience.

Thanks!
`, len(pending), totalHours.StringFixed(1), totalAmount.StringFixed(2))

	return "mailto:" + email +
		"?subject=" + escape("Hours Approval Request") +
		"&body=" + escape(body), nil
}

// escape percent-encodes for a mailto URL. QueryEscape would turn spaces
// into '+', which mail clients render literally.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
