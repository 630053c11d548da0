package nlquery

import (
	"errors"
	"fmt"
)

// ErrUnparsableQuery is the sentinel matched by every UnparsableQueryError.
var ErrUnparsableQuery = errors.New("unable to parse natural language query")

// UnparsableQueryError reports a query no translation rule recognized.
type UnparsableQueryError struct {
	Query string
}

// Error implements the error interface.
func (e *UnparsableQueryError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnparsableQuery, e.Query)
}

// Is reports whether target is ErrUnparsableQuery.
func (e *UnparsableQueryError) Is(target error) bool {
	return target == ErrUnparsableQuery
}
