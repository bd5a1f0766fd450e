package prsparser

import (
	"errors"
	"fmt"
)

// ErrMissingField is returned by ParseRow when the identifier or the raw
// effect value is absent.
var ErrMissingField = errors.New("Missing SNP or effect value")

// CoercionError describes a reference row whose effect value is not a finite
// number. Such rows are dropped; the error is informational.
type CoercionError struct {
	Row   int
	SNP   string
	Value string
}

func (e CoercionError) Error() string {
	return fmt.Sprintf("Row %d: effect value %q for %s is not numeric", e.Row, e.Value, e.SNP)
}
