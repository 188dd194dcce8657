package analyzer

import "fmt"

// InputError represents a user-correctable input problem (empty or
// malformed job description). It is surfaced immediately and never retried.
type InputError struct {
	Message string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("input error: %s", e.Message)
}

// ExtractionError represents a gateway response that failed to parse into
// JobRequirements after the retry budget was exhausted.
type ExtractionError struct {
	Message  string
	Attempts int
	Cause    error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extraction failed after %d attempts: %s: %v", e.Attempts, e.Message, e.Cause)
	}
	return fmt.Sprintf("extraction failed after %d attempts: %s", e.Attempts, e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
