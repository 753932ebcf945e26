// Package account provides the read-only projection of the external
// account directory used for ownership decisions.
package account

import "fmt"

// Type is the directory's account type. Only INTERNAL is meaningful to
// this service; every other value marks a billable customer account.
type Type string

const (
	TypeInternal Type = "INTERNAL"
	TypeCustomer Type = "CUSTOMER"
)

// IsInternal reports whether the account is a structural node of the
// organizational tree rather than a billable customer.
func (t Type) IsInternal() bool {
	return t == TypeInternal
}

// VendorAccountID identifies a billing account within a vendor.
type VendorAccountID struct {
	VendorID  string
	AccountID string
}

// NewVendorAccountID builds a vendor-scoped account id.
func NewVendorAccountID(vendorID, accountID string) VendorAccountID {
	return VendorAccountID{VendorID: vendorID, AccountID: accountID}
}

// String returns the canonical vendor:account form.
func (v VendorAccountID) String() string {
	return fmt.Sprintf("%s:%s", v.VendorID, v.AccountID)
}

// IsZero reports whether the id is empty.
func (v VendorAccountID) IsZero() bool {
	return v.VendorID == "" && v.AccountID == ""
}

// Account is a directory entry: a node in a vendor's organizational tree.
type Account struct {
	ID              VendorAccountID
	ParentAccountID string // empty when the account has no parent
	Type            Type
}

// HasParent reports whether the account has a parent in the tree.
func (a Account) HasParent() bool {
	return a.ParentAccountID != ""
}

// ParentID returns the vendor-scoped id of the parent account.
// Only valid when HasParent is true.
func (a Account) ParentID() VendorAccountID {
	return VendorAccountID{VendorID: a.ID.VendorID, AccountID: a.ParentAccountID}
}

// RootPredicate decides whether an account is the platform root of its
// vendor tree. The conventional rule is accountId == vendorId, but the
// check is injectable because the convention is not contractual.
type RootPredicate func(Account) bool

// DefaultRootPredicate treats accounts whose account id equals their
// vendor id as the platform root.
func DefaultRootPredicate(a Account) bool {
	return a.ID.AccountID == a.ID.VendorID
}
