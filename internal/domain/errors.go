package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the recoverable, user-reportable conditions. Callers
// match with errors.Is and surface the message as-is; anything else is
// treated as fatal for the request.
var (
	ErrNoSecuritiesSelected = errors.New("no securities selected: provide at least one category or isin")
	ErrNoPriceData          = errors.New("no price data available for the selected securities and window")
	ErrInsufficientData     = errors.New("insufficient price data: need at least two securities with overlapping history")
	ErrInsufficientHistory  = errors.New("insufficient historical data to replay allocation")
)

// ConstraintViolationError marks a write rejected by a database constraint
// (duplicate key, missing foreign key). It is the only write failure class
// that may be reported back to the user; everything else is fatal.
type ConstraintViolationError struct {
	Table string
	Err   error
}

func (e ConstraintViolationError) Error() string {
	return fmt.Sprintf("constraint violation on %s: %v", e.Table, e.Err)
}

func (e ConstraintViolationError) Unwrap() error {
	return e.Err
}

func IsConstraintViolation(err error) bool {
	var cv ConstraintViolationError
	return errors.As(err, &cv)
}
