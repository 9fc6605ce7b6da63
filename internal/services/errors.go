package services

import "errors"

// Sentinel errors returned by the services. Handlers map these onto HTTP
// status codes; callers can test them with errors.Is.
var (
	// ErrAgentNotFound means an external agent code resolved to no agent.
	ErrAgentNotFound = errors.New("agent not found")

	// ErrSwapNotFound means the swap request id is unknown.
	ErrSwapNotFound = errors.New("swap request not found")

	// ErrNoShiftFound means the agent has no live schedule entry on the
	// target date, so there is nothing to swap.
	ErrNoShiftFound = errors.New("no schedule entry for agent on that date")

	// ErrAlreadyProcessed means the swap request already reached a terminal
	// state; terminal requests are never reopened or re-applied.
	ErrAlreadyProcessed = errors.New("swap request already processed")

	// ErrDuplicateMapping means the raw pattern is already in the dictionary.
	ErrDuplicateMapping = errors.New("dictionary pattern already exists")
)

// ValidationError rejects an operation before any mutation. The message is
// caller-facing.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(msg string) error {
	return &ValidationError{Message: msg}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
