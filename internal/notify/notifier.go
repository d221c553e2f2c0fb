package notify

import "log"

// Notifier delivers a rendered notification to a user-facing channel
// (email, Telegram, SMS). Implementations must tolerate duplicate
// deliveries: the queue guarantees at-least-once, not exactly-once.
type Notifier interface {
	Notify(subject, message string) error
}

// ConsoleNotifier logs notifications to stdout. Default channel for
// development and tests.
type ConsoleNotifier struct{}

func NewConsoleNotifier() *ConsoleNotifier {
	return &ConsoleNotifier{}
}

func (n *ConsoleNotifier) Notify(subject, message string) error {
	log.Printf("[notify] %s :: %s", subject, message)
	return nil
}
