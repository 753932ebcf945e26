package number

import (
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"

	"numbers/internal/domain/account"
)

// Assignment links a number to the vendor account that owns it. An
// assignment only exists while active; history lives in the revision log.
type Assignment struct {
	id          uuid.UUID
	numberID    uuid.UUID
	vendorID    string
	accountID   string
	callbackURL *string
	metadata    map[string]string
	label       *string
	createdAt   time.Time
}

// NewAssignment creates an assignment of a number to a vendor account.
func NewAssignment(
	numberID uuid.UUID,
	owner account.VendorAccountID,
	callbackURL *string,
	metadata map[string]string,
	label *string,
) (*Assignment, error) {
	if numberID == uuid.Nil {
		return nil, fmt.Errorf("number id is required")
	}
	if owner.VendorID == "" {
		return nil, fmt.Errorf("vendor id is required")
	}
	if owner.AccountID == "" {
		return nil, fmt.Errorf("account id is required")
	}
	if callbackURL != nil {
		if err := validateCallbackURL(*callbackURL); err != nil {
			return nil, err
		}
	}

	return &Assignment{
		id:          uuid.New(),
		numberID:    numberID,
		vendorID:    owner.VendorID,
		accountID:   owner.AccountID,
		callbackURL: callbackURL,
		metadata:    metadata,
		label:       label,
		createdAt:   time.Now().UTC(),
	}, nil
}

// ReconstructAssignment rebuilds an assignment from persistence.
func ReconstructAssignment(
	id uuid.UUID,
	numberID uuid.UUID,
	vendorID string,
	accountID string,
	callbackURL *string,
	metadata map[string]string,
	label *string,
	createdAt time.Time,
) *Assignment {
	return &Assignment{
		id:          id,
		numberID:    numberID,
		vendorID:    vendorID,
		accountID:   accountID,
		callbackURL: callbackURL,
		metadata:    metadata,
		label:       label,
		createdAt:   createdAt,
	}
}

func (a *Assignment) ID() uuid.UUID               { return a.id }
func (a *Assignment) NumberID() uuid.UUID         { return a.numberID }
func (a *Assignment) VendorID() string            { return a.vendorID }
func (a *Assignment) AccountID() string           { return a.accountID }
func (a *Assignment) CallbackURL() *string        { return a.callbackURL }
func (a *Assignment) Metadata() map[string]string { return a.metadata }
func (a *Assignment) Label() *string              { return a.label }
func (a *Assignment) CreatedAt() time.Time        { return a.createdAt }

// Owner returns the owning vendor account id.
func (a *Assignment) Owner() account.VendorAccountID {
	return account.NewVendorAccountID(a.vendorID, a.accountID)
}

// SetCallbackURL replaces the delivery callback, nil clears it.
func (a *Assignment) SetCallbackURL(callbackURL *string) error {
	if callbackURL != nil {
		if err := validateCallbackURL(*callbackURL); err != nil {
			return err
		}
	}
	a.callbackURL = callbackURL
	return nil
}

// SetMetadata replaces the metadata map, nil clears it.
func (a *Assignment) SetMetadata(metadata map[string]string) {
	a.metadata = metadata
}

// SetLabel replaces the label, nil clears it.
func (a *Assignment) SetLabel(label *string) {
	a.label = label
}

func validateCallbackURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid callback url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("callback url must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("callback url must have a host")
	}
	return nil
}
