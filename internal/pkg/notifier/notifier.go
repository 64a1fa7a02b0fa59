// Package notifier delivers generated reports to students over external channels.
package notifier

import (
	"context"
	"errors"
)

// ErrNotConfigured is returned by a sender whose credentials are missing
var ErrNotConfigured = errors.New("notifier: channel not configured")

// Message is one outbound notification
type Message struct {
	// To is a mobile number for whatsapp, an address for email
	To      string
	Name    string
	Subject string
	Body    string
	// LinkURL points at the report; whatsapp attaches it as media
	LinkURL string
}

// Sender delivers a Message and returns a provider reference for it
type Sender interface {
	Channel() string
	Send(ctx context.Context, msg Message) (string, error)
}
