// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

import "context"

// Mailer defines the interface for outbound email delivery. The transport is
// an external collaborator; implementations must honor the context deadline
// so one slow recipient cannot stall a whole notification pass.
type Mailer interface {
	// Send delivers a single plain-text message to one recipient.
	Send(ctx context.Context, to, subject, body string) error
}
