package notify

import "github.com/gen2brain/beeep"

// Desktop sends a best-effort desktop notification.
func Desktop(title, message string) error {
	return beeep.Notify(title, message, "")
}
