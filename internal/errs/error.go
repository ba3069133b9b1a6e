package errs

import (
	"errors"
)

var (
	ErrNotFound = errors.New("not found")

	ErrAlreadyExists   = errors.New("already exists")
	ErrAlreadyDeleted  = errors.New("already deleted")
	ErrInUse           = errors.New("in use by existing books")
	ErrSameName        = errors.New("name is unchanged")
	ErrAuthorRef       = errors.New("author does not exist")
	ErrPublisherRef    = errors.New("publisher does not exist")
	ErrAlreadyRented   = errors.New("already rented")
	ErrAlreadyReturned = errors.New("already returned")

	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// IsConflict reports whether err belongs to the business-rule conflict family
// (mapped to 409 at the HTTP boundary).
func IsConflict(err error) bool {
	for _, conflict := range []error{
		ErrAlreadyExists,
		ErrAlreadyDeleted,
		ErrInUse,
		ErrSameName,
		ErrAuthorRef,
		ErrPublisherRef,
		ErrAlreadyRented,
		ErrAlreadyReturned,
	} {
		if errors.Is(err, conflict) {
			return true
		}
	}
	return false
}
