package entity

import (
	"errors"
	"fmt"
)

// ErrDuplicateKey reports that another record already owns the canonical URL.
var ErrDuplicateKey = errors.New("duplicate canonical url")

// FieldCoercionError reports a value the store refused to coerce into a column.
type FieldCoercionError struct {
	Column string
	Err    error
}

func (e *FieldCoercionError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("field coercion failed: %v", e.Err)
	}
	return fmt.Sprintf("field coercion failed on %s: %v", e.Column, e.Err)
}

func (e *FieldCoercionError) Unwrap() error { return e.Err }

func IsFieldCoercion(err error) (*FieldCoercionError, bool) {
	var target *FieldCoercionError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}
