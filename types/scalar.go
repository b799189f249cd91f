package types

import (
	"errors"
	"fmt"

	"github.com/goccy/tablenum/numbers"
)

// ErrInvalidScalar is wrapped by errors for cells that are neither null, a boolean nor a number.
var ErrInvalidScalar = errors.New("invalid scalar")

// ParseScalar routes a table cell: null yields nil, true and false yield a bool and
// everything else must be a numeric literal. typ pins the kind of unsuffixed numbers.
func ParseScalar(token string, typ Type) (interface{}, error) {
	switch token {
	case "null":
		return nil, nil
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	kind, err := typ.Kind()
	if err != nil {
		return nil, err
	}
	n, ok, err := numbers.ParseAs(token, kind)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidScalar, token)
	}
	return n, nil
}
