// Package usecases implements the number ownership lifecycle operations.
package usecases

import (
	"context"
	"time"

	"numbers/internal/domain/account"
	"numbers/internal/domain/number"
)

// Authorizer decides whether a number may move between two accounts.
type Authorizer interface {
	Verify(ctx context.Context, newOwner, currentOwner account.VendorAccountID) (bool, error)
}

// GraceChecker decides whether a reserved number may be claimed by a
// candidate owner.
type GraceChecker interface {
	IsClaimable(ctx context.Context, n *number.Number, candidate account.VendorAccountID) (bool, error)
}

// Event types emitted on lifecycle transitions.
const (
	EventNumberAssigned      = "number.assigned"
	EventNumberReassigned    = "number.reassigned"
	EventNumberDisassociated = "number.disassociated"
)

// LifecycleEvent describes a number ownership transition for downstream
// consumers (billing, provisioning).
type LifecycleEvent struct {
	Type        string            `json:"type"`
	NumberID    string            `json:"number_id"`
	PhoneNumber string            `json:"phone_number"`
	Country     string            `json:"country"`
	NumberType  string            `json:"number_type"`
	VendorID    string            `json:"vendor_id,omitempty"`
	AccountID   string            `json:"account_id,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	OccurredAt  time.Time         `json:"occurred_at"`
}

// EventPublisher delivers lifecycle events to interested systems. Publish
// failures are logged, never surfaced to the caller.
type EventPublisher interface {
	Publish(ctx context.Context, event LifecycleEvent) error
}

// TollFreeNotifier reports US toll-free verification state changes to the
// operations channel.
type TollFreeNotifier interface {
	NotifyTollFreeAssigned(ctx context.Context, phoneNumber string, owner account.VendorAccountID) error
	NotifyTollFreeStatusChanged(ctx context.Context, phoneNumber string, status *string) error
}
