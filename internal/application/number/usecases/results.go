package usecases

import (
	"time"

	"numbers/internal/domain/number"
)

// NumberResult is the read model of a number returned by the usecases.
type NumberResult struct {
	ID                string            `json:"id"`
	PhoneNumber       string            `json:"phone_number"`
	ProviderID        string            `json:"provider_id"`
	Country           string            `json:"country"`
	Type              string            `json:"type"`
	Classification    string            `json:"classification"`
	Capabilities      []string          `json:"capabilities"`
	DedicatedReceiver bool              `json:"dedicated_receiver"`
	AvailableAfter    *time.Time        `json:"available_after,omitempty"`
	Status            *string           `json:"status,omitempty"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
	Assignment        *AssignmentResult `json:"assignment,omitempty"`
}

// AssignmentResult is the read model of an active assignment.
type AssignmentResult struct {
	ID          string            `json:"id"`
	NumberID    string            `json:"number_id"`
	VendorID    string            `json:"vendor_id"`
	AccountID   string            `json:"account_id"`
	CallbackURL *string           `json:"callback_url,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	Label       *string           `json:"label,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

func newNumberResult(n *number.Number, a *number.Assignment) *NumberResult {
	var status *string
	if s := n.Status(); s != nil {
		v := string(*s)
		status = &v
	}
	result := &NumberResult{
		ID:                n.ID().String(),
		PhoneNumber:       n.PhoneNumber(),
		ProviderID:        n.ProviderID().String(),
		Country:           n.Country(),
		Type:              string(n.Type()),
		Classification:    string(n.Classification()),
		Capabilities:      n.Capabilities().Strings(),
		DedicatedReceiver: n.DedicatedReceiver(),
		AvailableAfter:    n.AvailableAfter(),
		Status:            status,
		CreatedAt:         n.CreatedAt(),
		UpdatedAt:         n.UpdatedAt(),
	}
	if a != nil {
		result.Assignment = newAssignmentResult(a)
	}
	return result
}

func newAssignmentResult(a *number.Assignment) *AssignmentResult {
	return &AssignmentResult{
		ID:          a.ID().String(),
		NumberID:    a.NumberID().String(),
		VendorID:    a.VendorID(),
		AccountID:   a.AccountID(),
		CallbackURL: a.CallbackURL(),
		Metadata:    a.Metadata(),
		Label:       a.Label(),
		CreatedAt:   a.CreatedAt(),
	}
}
