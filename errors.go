package mp4meta

import "fmt"

// NoDriverError is returned when no tag store driver is available for
// an operation.
type NoDriverError struct {
	Path string
}

func (e *NoDriverError) Error() string {
	return fmt.Sprintf("%s: no tag store driver registered", e.Path)
}

// StoreError is returned when a tag store operation fails. Op names
// the operation so callers can tell how far a save progressed: the
// engine performs no rollback, and mutations applied before the
// failing operation remain in effect.
type StoreError struct {
	Op   string
	Path string
	Err  error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Path, e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// ValidationError is returned when post-save verification finds a
// mismatch between the written file and the saved TagSet.
type ValidationError struct {
	Path  string
	Field string
	Got   string
	Want  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: validation failed: %s mismatch: got %q, want %q",
		e.Path, e.Field, e.Got, e.Want)
}

// Warning represents a non-fatal issue encountered during a load.
//
// Warnings indicate problems that don't prevent the rest of the read,
// such as a malformed custom atom payload. They are collected in
// TagSet.Warnings.
type Warning struct {
	// Stage where the warning occurred: "tags", "artwork",
	// "chapters", "items".
	Stage string

	// Warning message
	Message string
}

// String returns a human-readable warning message.
func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Stage, w.Message)
}
