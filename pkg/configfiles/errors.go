package configfiles

import "fmt"

// ParseError represents a malformed document.
type ParseError struct {
	Path string // file the document was read from (may be a URL for fetched data)
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying cause of the error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// SchemaMismatchError is returned when a document declares a schema whose
// type or version does not exactly match what the consumer expects.
type SchemaMismatchError struct {
	WantType    string
	WantVersion uint
	Got         SchemaInfo
}

func (e *SchemaMismatchError) Error() string {
	if e.Got.Type != e.WantType {
		return fmt.Sprintf("schema is not a %q document (got %q)", e.WantType, e.Got.Type)
	}
	return fmt.Sprintf("schema for %q must be version %d (got %d)", e.WantType, e.WantVersion, e.Got.Version)
}

// FetchError represents a failed remote refresh.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying cause of the error.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// ContractViolationError indicates a programming error: an operation reserved
// for the official authority was attempted by a non-authoritative instance.
type ContractViolationError struct {
	Path string
}

func (e *ContractViolationError) Error() string {
	return fmt.Sprintf("attempted to save non-official data to %s", e.Path)
}
