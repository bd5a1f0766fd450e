package prscalc

import "fmt"

// LoadError reports that an entire input source could not be used: it was
// missing, unreadable, unparseable, or lacked a required column. It is never
// fatal; callers keep running with an empty or unchanged dataset.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("Error loading %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// MissingColumnError is wrapped by a LoadError when a header lacks a required
// column.
type MissingColumnError struct {
	Column string
	Header []string
}

func (e MissingColumnError) Error() string {
	return fmt.Sprintf("Required column %q was not found in header %q", e.Column, e.Header)
}
