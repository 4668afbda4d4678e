// Package parsererror defines the error types surfaced by the statement
// import pipeline.
package parsererror

import "fmt"

// UnsupportedFormatError is returned when a file matches neither statement
// grammar. It is the only fatal parse condition; the caller surfaces it as
// "no transactions recognized".
type UnsupportedFormatError struct {
	FileName string
	Msg      string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("unsupported statement format in '%s': %s", e.FileName, e.Msg)
	}
	return fmt.Sprintf("unsupported statement format in '%s'", e.FileName)
}

// ParseError reports a failure to interpret one field of one record. Records
// failing minimum-field extraction are skipped and counted, never fatal.
type ParseError struct {
	Format string
	Line   int
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: line %d: failed to parse %s='%s': %v",
		e.Format, e.Line, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// StoreError reports a failure of the alias persistence layer.
type StoreError struct {
	Op   string
	Path string
	Err  error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("alias store %s failed for %s: %v", e.Op, e.Path, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
