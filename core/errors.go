package core

import (
	"errors"
	"fmt"
)

// ErrUnrecognizedPage is returned for pages without a content region,
// such as courses that have not been published yet. Callers usually skip
// these rather than treat them as failures.
var ErrUnrecognizedPage = errors.New("unrecognized course page format")

// Field names a course record field.
type Field string

const (
	FieldID       Field = "id"
	FieldECTS     Field = "ects"
	FieldBlock    Field = "block"
	FieldSchedule Field = "schedule"
	FieldLanguage Field = "language"
	FieldDuration Field = "duration"
	FieldDegree   Field = "degree"
	FieldCapacity Field = "capacity"
)

// RequiredFields lists every field a course needs, in reporting order.
var RequiredFields = []Field{
	FieldID, FieldECTS, FieldBlock, FieldSchedule,
	FieldLanguage, FieldDuration, FieldDegree, FieldCapacity,
}

// StructuralError reports a content region whose markup is not the
// expected definition list.
type StructuralError struct {
	Stage  string
	Reason string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("malformed %s: %s", e.Stage, e.Reason)
}

// FieldError reports a value that does not match its field's format.
type FieldError struct {
	Field  Field
	Text   string
	Reason string
	Err    error
}

func (e *FieldError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parsing %s %q: %s: %v", e.Field, e.Text, e.Reason, e.Err)
	}
	return fmt.Sprintf("parsing %s %q: %s", e.Field, e.Text, e.Reason)
}

func (e *FieldError) Unwrap() error { return e.Err }

// MissingFieldError reports a required field whose label never appeared.
type MissingFieldError struct {
	Field Field
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing field %s", e.Field)
}

// ErrorKind classifies a parse failure.
type ErrorKind string

const (
	KindNone         ErrorKind = ""
	KindUnrecognized ErrorKind = "unrecognized"
	KindStructural   ErrorKind = "structural"
	KindFieldParse   ErrorKind = "field"
	KindMissingField ErrorKind = "missing"
	KindOperational  ErrorKind = "operational"
)

// KindOf returns the kind of err, looking through wrapping. Errors that
// are not parse failures (I/O, HTTP) are KindOperational.
func KindOf(err error) ErrorKind {
	var (
		structural *StructuralError
		field      *FieldError
		missing    *MissingFieldError
	)
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrUnrecognizedPage):
		return KindUnrecognized
	case errors.As(err, &structural):
		return KindStructural
	case errors.As(err, &field):
		return KindFieldParse
	case errors.As(err, &missing):
		return KindMissingField
	}
	return KindOperational
}
