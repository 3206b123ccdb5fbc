package biddingerrors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Repository-level errors
var (
	ErrAuctionNotFound      = errors.New("auction not found")
	ErrBidNotFound          = errors.New("bid not found")
	ErrMotorcycleNotFound   = errors.New("motorcycle not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrPersistence          = errors.New("persistence failure")
)

// business logic errors
var (
	ErrValidation        = errors.New("validation error")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrBidTooLow         = errors.New("bid amount too low")
	ErrAuctionNotOpen    = errors.New("auction not open for bidding")
	ErrBusy              = errors.New("auction busy, retry later")
	ErrLedgerInvariant   = errors.New("bid ledger invariant violated")
)

// TransitionError reports a state-machine guard failure
type TransitionError struct {
	Action   string
	Current  string
	Required []string
}

func (e *TransitionError) Error() string {
	if len(e.Required) == 0 {
		return fmt.Sprintf("invalid transition: cannot %s while auction is %s", e.Action, e.Current)
	}
	return fmt.Sprintf("invalid transition: cannot %s while auction is %s (requires %s)",
		e.Action, e.Current, strings.Join(e.Required, " or "))
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

// BidTooLowError carries the minimum acceptable amount for the rejected bid
type BidTooLowError struct {
	Amount  int64
	Minimum int64
}

func (e *BidTooLowError) Error() string {
	return fmt.Sprintf("bid amount too low: %d is below the minimum acceptable bid of %d", e.Amount, e.Minimum)
}

func (e *BidTooLowError) Unwrap() error { return ErrBidTooLow }

// AuctionNotOpenError carries the auction's actual status when bidding is refused
type AuctionNotOpenError struct {
	Status  string
	EndTime time.Time
}

func (e *AuctionNotOpenError) Error() string {
	if e.Status == "active" {
		return fmt.Sprintf("auction not open for bidding: bidding closed at %s", e.EndTime.UTC().Format(time.RFC3339))
	}
	return fmt.Sprintf("auction not open for bidding: auction is %s", e.Status)
}

func (e *AuctionNotOpenError) Unwrap() error { return ErrAuctionNotOpen }

// Validationf builds an ErrValidation naming the violated constraint
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Forbiddenf builds an ErrForbidden with context
func Forbiddenf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrForbidden, fmt.Sprintf(format, args...))
}
