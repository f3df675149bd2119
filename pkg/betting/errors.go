package betting

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidStake      = errors.New("stake must be at least 0.01")
	ErrInvalidOdds       = errors.New("odds must be a positive decimal")
	ErrInvalidSelection  = errors.New("selection is required")
	ErrOddsChanged       = errors.New("odds have changed")
	ErrInvalidStatus     = errors.New("invalid settlement status")
	ErrInvalidResult     = errors.New("invalid settlement result")
	ErrInvalidAmount     = errors.New("cashout amount must be greater than zero and not exceed potential winnings")
	ErrRequestInProgress = errors.New("a request with this idempotency key is still in progress")
	ErrEventNotFinished  = errors.New("event is neither completed nor cancelled")
	ErrMissingResult     = errors.New("completed event has no winner")
)

// OddsChangedError reports the current price of a selection whose odds moved.
type OddsChangedError struct {
	Selection string
	Requested string
	Current   string
}

func (e *OddsChangedError) Error() string {
	return fmt.Sprintf("odds for %s changed from %s to %s", e.Selection, e.Requested, e.Current)
}

func (e *OddsChangedError) Unwrap() error {
	return ErrOddsChanged
}
