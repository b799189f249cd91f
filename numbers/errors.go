package numbers

import "fmt"

// OverflowError is returned when a literal is well formed but the type pinned by
// its postfix (or requested by the caller) cannot hold its value.
type OverflowError struct {
	Literal string
	Kind    Kind
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("cannot save [%s] with the given postfix type %s", e.Literal, e.Kind)
}

func overflow(literal string, kind Kind) *OverflowError {
	return &OverflowError{Literal: literal, Kind: kind}
}
