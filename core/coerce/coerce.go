// Package coerce implements the Coercer interface.
// It resolves Danish and English labels to record fields, parses each
// value with the field's parser, and builds the record only when every
// field is present and valid.
package coerce

import (
	"fmt"

	"github.com/gaurav-prasanna/coursepipe/core"
	"github.com/gaurav-prasanna/coursepipe/core/fields"
)

// labels maps every accepted label to its field, one English and one
// Danish label per field.
var labels = map[string]core.Field{
	"Course code":     core.FieldID,
	"Kursuskode":      core.FieldID,
	"Credit":          core.FieldECTS,
	"Point":           core.FieldECTS,
	"Language":        core.FieldLanguage,
	"Sprog":           core.FieldLanguage,
	"Level":           core.FieldDegree,
	"Niveau":          core.FieldDegree,
	"Duration":        core.FieldDuration,
	"Varighed":        core.FieldDuration,
	"Schedule":        core.FieldSchedule,
	"Skemagruppe":     core.FieldSchedule,
	"Course capacity": core.FieldCapacity,
	"Kursuskapacitet": core.FieldCapacity,
}

// blockPrefix is shared by "Placement" and "Placering".
const blockPrefix = "Place"

// Resolve returns the field a label names.
func Resolve(label string) (core.Field, bool) {
	if f, ok := labels[label]; ok {
		return f, true
	}
	if r := []rune(label); len(r) >= len(blockPrefix) && string(r[:len(blockPrefix)]) == blockPrefix {
		return core.FieldBlock, true
	}
	return "", false
}

// Engine coerces label/value pairs into a course record.
type Engine struct{}

// New creates an Engine.
func New() *Engine {
	return &Engine{}
}

// draft accumulates parsed values. A later pair overwrites an earlier one.
type draft struct {
	fields core.CourseFields
	seen   map[core.Field]bool
}

// Coerce parses every recognized pair and returns the complete record.
// The first invalid value or missing field aborts the whole record.
func (e *Engine) Coerce(pairs []core.Pair) (core.Course, error) {
	d := draft{seen: make(map[core.Field]bool, len(core.RequiredFields))}

	for _, p := range pairs {
		field, ok := Resolve(p.Label)
		if !ok {
			continue // Unknown labels carry extra metadata we don't model.
		}
		if err := d.set(field, p.Value); err != nil {
			return core.Course{}, err
		}
	}

	for _, f := range core.RequiredFields {
		if !d.seen[f] {
			return core.Course{}, &core.MissingFieldError{Field: f}
		}
	}

	course, err := core.NewCourse(d.fields)
	if err != nil {
		return core.Course{}, fmt.Errorf("building course: %w", err)
	}
	return course, nil
}

func (d *draft) set(field core.Field, value string) error {
	var err error
	switch field {
	case core.FieldID:
		d.fields.ID, err = fields.ID(value)
	case core.FieldECTS:
		d.fields.ECTS, err = fields.ECTS(value)
	case core.FieldBlock:
		d.fields.Block, err = fields.Block(value)
	case core.FieldSchedule:
		d.fields.Schedule, err = fields.Schedule(value)
	case core.FieldLanguage:
		d.fields.Language, err = fields.Language(value)
	case core.FieldDuration:
		d.fields.Duration, err = fields.Duration(value)
	case core.FieldDegree:
		d.fields.Degree, err = fields.Degree(value)
	case core.FieldCapacity:
		d.fields.Capacity, err = fields.Capacity(value)
	default:
		return fmt.Errorf("no parser for field %s", field)
	}
	if err != nil {
		return err
	}
	d.seen[field] = true
	return nil
}
