package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"testing"
)

func validFields() CourseFields {
	return CourseFields{
		ID:       "NDAB15009U",
		ECTS:     7.5,
		Block:    []Block{BlockOne, BlockTwo},
		Schedule: []Schedule{ScheduleA},
		Language: LanguageDanish,
		Duration: DurationOneUnit,
		Degree:   []Degree{DegreeBachelor},
		Capacity: TextCapacity(UnlimitedCapacity),
	}
}

func TestNewCourse_Invalid(t *testing.T) {
	tests := map[string]func(*CourseFields){
		"empty id":      func(f *CourseFields) { f.ID = " " },
		"negative ects": func(f *CourseFields) { f.ECTS = -1 },
		"nan ects":      func(f *CourseFields) { f.ECTS = math.NaN() },
		"no block":      func(f *CourseFields) { f.Block = nil },
		"no schedule":   func(f *CourseFields) { f.Schedule = nil },
		"no degree":     func(f *CourseFields) { f.Degree = nil },
		"phd degree":    func(f *CourseFields) { f.Degree = []Degree{DegreePhD} },
		"no language":   func(f *CourseFields) { f.Language = "" },
		"no duration":   func(f *CourseFields) { f.Duration = "" },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			f := validFields()
			mutate(&f)
			if _, err := NewCourse(f); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestCourse_Immutable(t *testing.T) {
	f := validFields()
	c, err := NewCourse(f)
	if err != nil {
		t.Fatalf("NewCourse: %v", err)
	}

	// Mutating the input or an accessor result must not leak into the record.
	f.Block[0] = BlockFive
	blocks := c.Block()
	blocks[1] = BlockFour

	if got := c.Block(); got[0] != BlockOne || got[1] != BlockTwo {
		t.Errorf("record mutated: %v", got)
	}
}

func TestCourse_MarshalJSON(t *testing.T) {
	c, err := NewCourse(validFields())
	if err != nil {
		t.Fatalf("NewCourse: %v", err)
	}
	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	want := `{"id":"NDAB15009U","ects":7.5,"block":["1","2"],"schedule":["A"],"language":"danish",` +
		`"duration":"one_unit","degree":["bachelor"],"capacity":{"kind":"text","value":"ubegrænset"}}`
	if string(data) != want {
		t.Errorf("got  %s\nwant %s", data, want)
	}
}

func TestCapacity(t *testing.T) {
	n := NumberCapacity(75)
	if v, ok := n.Number(); !ok || v != 75 {
		t.Errorf("Number() = %v, %v", v, ok)
	}
	if _, ok := n.Text(); ok {
		t.Error("numeric capacity reported text")
	}
	if n.String() != "75" {
		t.Errorf("String() = %q", n.String())
	}
	data, _ := json.Marshal(n)
	if string(data) != `{"kind":"number","value":75}` {
		t.Errorf("MarshalJSON = %s", data)
	}

	txt := TextCapacity(UnlimitedCapacity)
	if _, ok := txt.Number(); ok {
		t.Error("text capacity reported number")
	}
	if txt.String() != UnlimitedCapacity {
		t.Errorf("String() = %q", txt.String())
	}
}

func TestDegreeRank(t *testing.T) {
	if !(DegreePhD.Rank() < DegreeBachelor.Rank() && DegreeBachelor.Rank() < DegreeMaster.Rank()) {
		t.Error("expected PhD < Bachelor < Master")
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		err  error
		want ErrorKind
	}{
		{nil, KindNone},
		{fmt.Errorf("locate: %w", ErrUnrecognizedPage), KindUnrecognized},
		{fmt.Errorf("extract: %w", &StructuralError{Stage: "dl", Reason: "odd"}), KindStructural},
		{fmt.Errorf("coerce: %w", &FieldError{Field: FieldECTS, Text: "x"}), KindFieldParse},
		{fmt.Errorf("coerce: %w", &MissingFieldError{Field: FieldCapacity}), KindMissingField},
		{errors.New("connection refused"), KindOperational},
	}
	for _, tt := range tests {
		if got := KindOf(tt.err); got != tt.want {
			t.Errorf("KindOf(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestErrorMessages(t *testing.T) {
	inner := errors.New("strconv failure")
	fe := &FieldError{Field: FieldECTS, Text: "x ECTS", Reason: "malformed number", Err: inner}
	if !errors.Is(fe, inner) {
		t.Error("FieldError must unwrap to its cause")
	}
	if got := fe.Error(); got != `parsing ects "x ECTS": malformed number: strconv failure` {
		t.Errorf("FieldError.Error() = %q", got)
	}
	if got := (&MissingFieldError{Field: FieldCapacity}).Error(); got != "missing field capacity" {
		t.Errorf("MissingFieldError.Error() = %q", got)
	}
}
