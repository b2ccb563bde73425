// Package apperr defines the engine's error taxonomy. Precondition errors are
// recoverable by the caller through a different action; ErrConflict means a
// concurrent writer won a terminal transition; anything else wrapping these is
// an integrity failure surfaced to operators.
package apperr

import "errors"

var (
	// Precondition errors.
	ErrAlreadyRegistered  = errors.New("already registered for this olympiad")
	ErrFull               = errors.New("olympiad has reached its participant limit")
	ErrPaymentRequired    = errors.New("payment required before registration")
	ErrNotRegistered      = errors.New("not registered for this olympiad")
	ErrNotStarted         = errors.New("olympiad has not started yet")
	ErrFinished           = errors.New("olympiad has already finished")
	ErrAlreadySubmitted   = errors.New("attempt already submitted")
	ErrAlreadyDistributed = errors.New("rewards already distributed for this olympiad")
	ErrResultsNotOpen     = errors.New("results are not published yet")

	// ErrConflict is returned when a conditional state transition lost a race;
	// the caller should re-fetch instead of retrying the same write.
	ErrConflict = errors.New("state changed concurrently")

	ErrNotFound = errors.New("record not found")

	// ErrImmutableQuestions guards question edits after registrations exist.
	ErrImmutableQuestions = errors.New("questions are immutable once the olympiad has registrations")
)

// Precondition reports whether err belongs to the recoverable precondition
// class, for HTTP status mapping in controllers.
func Precondition(err error) bool {
	for _, e := range []error{
		ErrAlreadyRegistered, ErrFull, ErrPaymentRequired, ErrNotRegistered,
		ErrNotStarted, ErrFinished, ErrAlreadySubmitted, ErrAlreadyDistributed,
		ErrResultsNotOpen, ErrImmutableQuestions,
	} {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
