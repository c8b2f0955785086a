package checkout

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyCart blocks checkout entry with nothing to order.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrCorruptCart marks a cart whose lines are missing identifying
	// fields; the user should clear it rather than attempt checkout.
	ErrCorruptCart = errors.New("cart items are missing required fields")

	// ErrSubmissionInFlight rejects a place-order call while another one
	// is running. Callers are rejected, not queued.
	ErrSubmissionInFlight = errors.New("order submission already in flight")

	// ErrPhoneRequired blocks submission before any network call when the
	// profile has no phone number; the user completes the profile first.
	ErrPhoneRequired = errors.New("phone number missing on profile")

	// ErrOrderCreation and ErrPaymentInitiation are surfaced to the user
	// as a generic retry prompt; retry is user-initiated only.
	ErrOrderCreation     = errors.New("order creation failed")
	ErrPaymentInitiation = errors.New("payment initiation failed")
)

// LoginRequiredError redirects an unauthenticated user to login while
// preserving the intended return path.
type LoginRequiredError struct {
	ReturnTo string
}

func (e *LoginRequiredError) Error() string {
	return fmt.Sprintf("login required (return to %s)", e.ReturnTo)
}

// ValidationError reports which address fields are missing.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "missing required address fields: " + strings.Join(e.Missing, ", ")
}
