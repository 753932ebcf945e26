// Package number provides the domain model for platform-owned telephony
// numbers and their ownership assignments.
package number

import (
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"

	vo "numbers/internal/domain/number/valueobjects"
)

var countryPattern = regexp.MustCompile(`^[A-Z]{2}$`)

// Number is the number aggregate root. It never holds a live reference to
// its assignment; the assignment points back via NumberID.
type Number struct {
	id                uuid.UUID
	phoneNumber       string
	providerID        uuid.UUID
	country           string
	numberType        vo.NumberType
	classification    vo.Classification
	capabilities      vo.Capabilities
	dedicatedReceiver bool
	availableAfter    *time.Time
	status            *vo.Status
	createdAt         time.Time
	updatedAt         time.Time
}

// NewNumber registers a number into the platform pool. The number starts
// available: availableAfter equals the creation instant.
func NewNumber(
	phoneNumber string,
	providerID uuid.UUID,
	country string,
	numberType vo.NumberType,
	classification vo.Classification,
	capabilities vo.Capabilities,
	dedicatedReceiver bool,
) (*Number, error) {
	if phoneNumber == "" {
		return nil, fmt.Errorf("phone number is required")
	}
	if providerID == uuid.Nil {
		return nil, fmt.Errorf("provider id is required")
	}
	if !countryPattern.MatchString(country) {
		return nil, fmt.Errorf("invalid country code: %q", country)
	}
	if !numberType.IsValid() {
		return nil, fmt.Errorf("invalid number type: %s", numberType)
	}
	if !classification.IsValid() {
		return nil, fmt.Errorf("invalid classification: %s", classification)
	}
	if !capabilities.IsValid() {
		return nil, fmt.Errorf("at least one valid capability is required")
	}

	now := time.Now().UTC()
	availableAfter := now
	return &Number{
		id:                uuid.New(),
		phoneNumber:       phoneNumber,
		providerID:        providerID,
		country:           country,
		numberType:        numberType,
		classification:    classification,
		capabilities:      capabilities,
		dedicatedReceiver: dedicatedReceiver,
		availableAfter:    &availableAfter,
		createdAt:         now,
		updatedAt:         now,
	}, nil
}

// ReconstructNumber rebuilds a number from persistence.
func ReconstructNumber(
	id uuid.UUID,
	phoneNumber string,
	providerID uuid.UUID,
	country string,
	numberType vo.NumberType,
	classification vo.Classification,
	capabilities vo.Capabilities,
	dedicatedReceiver bool,
	availableAfter *time.Time,
	status *vo.Status,
	createdAt time.Time,
	updatedAt time.Time,
) *Number {
	return &Number{
		id:                id,
		phoneNumber:       phoneNumber,
		providerID:        providerID,
		country:           country,
		numberType:        numberType,
		classification:    classification,
		capabilities:      capabilities,
		dedicatedReceiver: dedicatedReceiver,
		availableAfter:    availableAfter,
		status:            status,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}
}

func (n *Number) ID() uuid.UUID                     { return n.id }
func (n *Number) PhoneNumber() string               { return n.phoneNumber }
func (n *Number) ProviderID() uuid.UUID             { return n.providerID }
func (n *Number) Country() string                   { return n.country }
func (n *Number) Type() vo.NumberType               { return n.numberType }
func (n *Number) Classification() vo.Classification { return n.classification }
func (n *Number) Capabilities() vo.Capabilities     { return n.capabilities }
func (n *Number) DedicatedReceiver() bool           { return n.dedicatedReceiver }
func (n *Number) AvailableAfter() *time.Time        { return n.availableAfter }
func (n *Number) Status() *vo.Status                { return n.status }
func (n *Number) CreatedAt() time.Time              { return n.createdAt }
func (n *Number) UpdatedAt() time.Time              { return n.updatedAt }

// IsUSTollFree reports whether the number is a US toll-free number, the
// only kind that carries a verification status.
func (n *Number) IsUSTollFree() bool {
	return n.country == "US" && n.numberType == vo.NumberTypeTollFree
}

// IsAvailableAt reports whether the number's reservation window has passed.
func (n *Number) IsAvailableAt(t time.Time) bool {
	return n.availableAfter != nil && !t.Before(*n.availableAfter)
}

// MarkAssigned transitions the number into the assigned state: the
// availability marker is cleared, and US toll-free numbers enter the
// UNVERIFIED status.
func (n *Number) MarkAssigned() {
	n.availableAfter = nil
	if n.IsUSTollFree() {
		status := vo.StatusUnverified
		n.status = &status
	}
	n.touch()
}

// MarkDisassociated releases the number, reserving it for the previous
// owner until the grace period elapses.
func (n *Number) MarkDisassociated(gracePeriod time.Duration) {
	availableAfter := time.Now().UTC().Add(gracePeriod)
	n.availableAfter = &availableAfter
	n.dedicatedReceiver = false
	if n.IsUSTollFree() {
		n.status = nil
	}
	n.touch()
}

// ChangeStatus applies a toll-free status change. The caller supplies
// whether the number currently has an active assignment; a non-null status
// is only legal while assigned, and vice versa.
func (n *Number) ChangeStatus(status *vo.Status, assigned bool) error {
	if !n.IsUSTollFree() {
		return ErrNotUsTollFree
	}
	if status != nil && !status.IsValid() {
		return fmt.Errorf("invalid status: %s", *status)
	}
	if (status != nil) != assigned {
		return ErrInvalidStatusTransition
	}
	if status != nil {
		n.availableAfter = nil
	}
	n.status = status
	n.touch()
	return nil
}

// ChangeAvailableAfter updates the availability marker. Assigned numbers
// may only be set to null (which they already are).
func (n *Number) ChangeAvailableAfter(availableAfter *time.Time, assigned bool) error {
	if assigned && availableAfter != nil {
		return ErrAvailableAfterLocked
	}
	n.availableAfter = availableAfter
	n.touch()
	return nil
}

// SetClassification updates the commercial tier.
func (n *Number) SetClassification(c vo.Classification) error {
	if !c.IsValid() {
		return fmt.Errorf("invalid classification: %s", c)
	}
	n.classification = c
	n.touch()
	return nil
}

// SetCapabilities replaces the capability set.
func (n *Number) SetCapabilities(caps vo.Capabilities) error {
	if !caps.IsValid() {
		return fmt.Errorf("at least one valid capability is required")
	}
	n.capabilities = caps
	n.touch()
	return nil
}

// SetDedicatedReceiver updates the dedicated receiver flag.
func (n *Number) SetDedicatedReceiver(dedicated bool) {
	n.dedicatedReceiver = dedicated
	n.touch()
}

// SetProviderID moves the number to another provider.
func (n *Number) SetProviderID(providerID uuid.UUID) error {
	if providerID == uuid.Nil {
		return fmt.Errorf("provider id is required")
	}
	n.providerID = providerID
	n.touch()
	return nil
}

func (n *Number) touch() {
	n.updatedAt = time.Now().UTC()
}
