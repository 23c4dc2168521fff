package notify

import "log"

// Notifier raises a native desktop/browser notification. Best-effort UX:
// failures are ignored, correctness never depends on it.
type Notifier interface {
	Push(title, message string) error
}

// LogNotifier is the default sink when no platform notifier is wired.
type LogNotifier struct{}

func (LogNotifier) Push(title, message string) error {
	log.Printf("desktop notification: %s: %s", title, message)
	return nil
}
