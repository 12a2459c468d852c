package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrRecordNotFound       = errors.New("record not found")
	ErrInvalidTicketCount   = errors.New("invalid ticket count")
	ErrEditConflict         = errors.New("edit conflict")
	ErrInvalidPurchaseState = errors.New("purchase status does not allow this operation")
	ErrSeatSelectionExpired = errors.New("seat selection period has expired")
	ErrSeatCountMismatch    = errors.New("number of chosen seats does not match the ticket count")
	ErrInvalidSeatLabel     = errors.New("seat label does not exist in the hall")
	ErrDuplicateSeatLabel   = errors.New("seat label is chosen more than once")
)

// SeatConflictError reports the exact seats that were already claimed by
// another purchase when an atomic claim attempt fails. The purchase that
// observed the conflict is left untouched and may retry with different seats.
type SeatConflictError struct {
	Seats []string
}

func (e *SeatConflictError) Error() string {
	return fmt.Sprintf("seats already claimed: %s", strings.Join(e.Seats, ", "))
}
