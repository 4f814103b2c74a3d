package slack

import "errors"

var (
	// ErrMissingWebhookURL is returned by New when no incoming webhook is configured
	ErrMissingWebhookURL = errors.New("slack: webhook url not configured")
	// ErrNotificationFailed wraps transport failures while posting a risk alert
	ErrNotificationFailed = errors.New("slack: posting risk alert failed")
	// ErrUnexpectedStatus is returned when the webhook answers with a non-2xx status
	ErrUnexpectedStatus = errors.New("slack: webhook rejected risk alert")
)
