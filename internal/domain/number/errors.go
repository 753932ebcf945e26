package number

import "errors"

var (
	// ErrNumberNotFound is returned when a number id does not resolve.
	ErrNumberNotFound = errors.New("number not found")

	// ErrNumberAlreadyAssigned is returned when assigning a number that has an active assignment.
	ErrNumberAlreadyAssigned = errors.New("number already assigned")

	// ErrNumberNotAssigned is returned when an operation requires an active assignment.
	ErrNumberNotAssigned = errors.New("number not assigned")

	// ErrNumberNotAvailable is returned when a reserved number is claimed by someone
	// other than its previous owner.
	ErrNumberNotAvailable = errors.New("number not available")

	// ErrDeleteAssignedNumber is returned when deleting a number that still has an assignment.
	ErrDeleteAssignedNumber = errors.New("cannot delete an assigned number")

	// ErrEmptyNumberUpdate is returned when a number patch has no fields.
	ErrEmptyNumberUpdate = errors.New("number update request is empty")

	// ErrEmptyAssignmentUpdate is returned when an assignment patch has no fields.
	ErrEmptyAssignmentUpdate = errors.New("assignment update request is empty")

	// ErrAvailableAfterLocked is returned when availableAfter is set to a non-null
	// value on an assigned number.
	ErrAvailableAfterLocked = errors.New("availableAfter cannot change while the number is assigned")

	// ErrNotUsTollFree is returned when status is changed on anything but a US toll-free number.
	ErrNotUsTollFree = errors.New("number is not a US toll-free number")

	// ErrInvalidStatusTransition is returned when the requested status does not match
	// the assignment state.
	ErrInvalidStatusTransition = errors.New("invalid toll-free status transition")

	// ErrUnauthorizedReassignment is returned when the account hierarchy does not
	// permit taking the number from its current owner.
	ErrUnauthorizedReassignment = errors.New("account relationship does not permit reassignment")
)
