package account

import "context"

// Directory is the read-only client for the external account directory.
type Directory interface {
	// GetAccount resolves a vendor-scoped account id. Returns
	// ErrAccountNotFound when the directory does not know the account,
	// and a wrapped transport error when the directory is unreachable.
	GetAccount(ctx context.Context, id VendorAccountID) (Account, error)
}
