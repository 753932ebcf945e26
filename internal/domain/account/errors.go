package account

import "errors"

var (
	// ErrAccountNotFound is returned when the directory does not know the account.
	ErrAccountNotFound = errors.New("account not found")

	// ErrDirectoryUnavailable is returned when the directory cannot be reached.
	ErrDirectoryUnavailable = errors.New("account directory unavailable")
)
