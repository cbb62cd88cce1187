package question

import "fmt"

// Validator checks a decoded question before it is handed to the session.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier used in error messages and logs,
	// e.g. "structural" or "chart".
	Name() string

	// Validate returns nil if q passes, or a ValidationError describing
	// the first problem found. Validators may normalise q in place.
	Validate(q *Question) *ValidationError
}

// ValidationError describes why a question was rejected. A rejected
// question is never partially displayed.
type ValidationError struct {
	Validator string // Name of the validator that failed
	Message   string // Human-readable description of the failure
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// Validate runs validators in order and returns the first failure.
func Validate(q *Question, validators ...Validator) error {
	for _, v := range validators {
		if verr := v.Validate(q); verr != nil {
			return verr
		}
	}
	return nil
}
