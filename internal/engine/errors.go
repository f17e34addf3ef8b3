package engine

import "fmt"

// InvalidActionError rejects a logged action before any state is mutated.
// Field names the offending input so the caller can prompt the user.
type InvalidActionError struct {
	Field  string
	Reason string
}

func (e InvalidActionError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("invalid action: bad %s", e.Field)
	}
	return fmt.Sprintf("invalid action: %s", e.Reason)
}

// ErrNoActiveProfile is returned by service operations that need a profile
// when none is selected. Selecting a profile is a caller-level precondition;
// the engine never guesses one.
var ErrNoActiveProfile = InvalidActionError{Field: "profile", Reason: "no active profile selected (run 'sq profile use <name>')"}
