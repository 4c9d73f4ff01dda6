// Package status defines the typed failure taxonomy shared by every
// service operation. Handlers map these onto HTTP codes; services wrap them
// with context via %w so callers can still match with errors.Is.
package status

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

var (
	ErrNotFound          = errors.New("referenced record does not exist")
	ErrNotOwner          = errors.New("caller does not own the referenced record")
	ErrForbidden         = errors.New("caller is not allowed to perform this action")
	ErrInvalidInput      = errors.New("input failed validation")
	ErrDuplicateHandle   = errors.New("handle is already taken")
	ErrAlreadyInState    = errors.New("record is already in the requested state")
	ErrIncorrectFee      = errors.New("attached payment does not match the required fee")
	ErrInsufficientFunds = errors.New("wallet balance is too low for the attached payment")
	ErrNotReady          = errors.New("required collaborator is not configured yet")
	ErrWrongKind         = errors.New("record exists but is not of the expected kind")
	ErrNothingChanged    = errors.New("no updatable field differs from the stored value")
)

func httpCode(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrNotOwner), errors.Is(err, ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, ErrDuplicateHandle), errors.Is(err, ErrAlreadyInState):
		return fiber.StatusConflict
	case errors.Is(err, ErrIncorrectFee), errors.Is(err, ErrInsufficientFunds):
		return fiber.StatusPaymentRequired
	case errors.Is(err, ErrNotReady):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusBadRequest
	}
}

// AsFiberError translates a service failure into the fiber error carrying
// the matching HTTP status.
func AsFiberError(err error) *fiber.Error {
	return fiber.NewError(httpCode(err), err.Error())
}
