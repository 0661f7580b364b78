package document

import (
	"errors"
	"fmt"
)

// ErrDocumentFormat is matched by every error Decode returns for input that
// is not a well-formed document.
var ErrDocumentFormat = errors.New("malformed document")

// FormatError describes malformed input. Line is 1-based, or 0 when the
// position is unknown.
type FormatError struct {
	Line int
	Err  error
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%v at line %d: %v", ErrDocumentFormat, e.Line, e.Err)
	}
	return fmt.Sprintf("%v: %v", ErrDocumentFormat, e.Err)
}

// Unwrap returns the underlying parser error.
func (e *FormatError) Unwrap() error { return e.Err }

// Is reports whether target is ErrDocumentFormat.
func (e *FormatError) Is(target error) bool { return target == ErrDocumentFormat }

// syntaxError converts a yaml.v3 error, which carries its position only in
// the message ("yaml: line 3: ..."), into a FormatError.
func syntaxError(err error) *FormatError {
	var line int
	if _, scanErr := fmt.Sscanf(err.Error(), "yaml: line %d:", &line); scanErr != nil {
		line = 0
	}
	return &FormatError{Line: line, Err: err}
}
