package schemas

import (
	"fmt"
	"strings"
)

// FieldError is one schema violation, addressed by its JSON field path.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every violation found in a document.
type ValidationError struct {
	Errors []FieldError
}

func (ve *ValidationError) Error() string {
	lines := make([]string, 0, len(ve.Errors)+1)
	lines = append(lines, fmt.Sprintf("validation failed with %d error(s):", len(ve.Errors)))
	for _, fe := range ve.Errors {
		lines = append(lines, "  - "+fe.Field+": "+fe.Message)
	}
	return strings.Join(lines, "\n")
}

// Fields returns the distinct field paths that failed.
func (ve *ValidationError) Fields() []string {
	seen := make(map[string]bool, len(ve.Errors))
	var fields []string
	for _, fe := range ve.Errors {
		if !seen[fe.Field] {
			seen[fe.Field] = true
			fields = append(fields, fe.Field)
		}
	}
	return fields
}

// SchemaLoadError means the schema itself, not the document, is the problem.
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	msg := "schema " + e.Path + ": " + e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}
