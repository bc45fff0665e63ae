package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Block is a teaching block a course runs in.
type Block string

const (
	BlockOne   Block = "1"
	BlockTwo   Block = "2"
	BlockThree Block = "3"
	BlockFour  Block = "4"
	BlockFive  Block = "5"
)

// Schedule is a lettered schedule group.
type Schedule string

const (
	ScheduleA Schedule = "A"
	ScheduleB Schedule = "B"
	ScheduleC Schedule = "C"
	ScheduleD Schedule = "D"
)

// Language is the teaching language.
type Language string

const (
	LanguageDanish  Language = "danish"
	LanguageEnglish Language = "english"
)

// Duration is how long a course runs. A semester counts as two blocks.
type Duration string

const (
	DurationOneUnit  Duration = "one_unit"
	DurationTwoUnits Duration = "two_units"
)

// Degree is the level a course is offered at.
type Degree string

const (
	// DegreePhD is only produced while parsing; a course marked PhD never
	// becomes a record.
	DegreePhD      Degree = "phd"
	DegreeBachelor Degree = "bachelor"
	DegreeMaster   Degree = "master"
)

// Rank orders degrees as PhD < Bachelor < Master.
func (d Degree) Rank() int {
	switch d {
	case DegreePhD:
		return 0
	case DegreeBachelor:
		return 1
	case DegreeMaster:
		return 2
	}
	return -1
}

// UnlimitedCapacity is the canonical marker for courses without a seat limit.
const UnlimitedCapacity = "ubegrænset"

// Capacity is either a seat count or a free-form marker.
type Capacity struct {
	number uint32
	text   string
	isText bool
}

// NumberCapacity returns a seat-count capacity.
func NumberCapacity(n uint32) Capacity {
	return Capacity{number: n}
}

// TextCapacity returns a free-form capacity.
func TextCapacity(text string) Capacity {
	return Capacity{text: text, isText: true}
}

// Number returns the seat count and whether the capacity is numeric.
func (c Capacity) Number() (uint32, bool) {
	return c.number, !c.isText
}

// Text returns the marker and whether the capacity is textual.
func (c Capacity) Text() (string, bool) {
	return c.text, c.isText
}

func (c Capacity) String() string {
	if c.isText {
		return c.text
	}
	return strconv.FormatUint(uint64(c.number), 10)
}

// MarshalJSON encodes the capacity as {"kind": ..., "value": ...}.
func (c Capacity) MarshalJSON() ([]byte, error) {
	if c.isText {
		return json.Marshal(struct {
			Kind  string `json:"kind"`
			Value string `json:"value"`
		}{"text", c.text})
	}
	return json.Marshal(struct {
		Kind  string `json:"kind"`
		Value uint32 `json:"value"`
	}{"number", c.number})
}

// Course is a fully validated course record. The zero value is not a
// valid course; build one with NewCourse.
type Course struct {
	id       string
	ects     float64
	block    []Block
	schedule []Schedule
	language Language
	duration Duration
	degree   []Degree
	capacity Capacity
}

// CourseFields carries the values NewCourse validates.
type CourseFields struct {
	ID       string
	ECTS     float64
	Block    []Block
	Schedule []Schedule
	Language Language
	Duration Duration
	Degree   []Degree
	Capacity Capacity
}

// NewCourse validates f and returns the record. Slices are copied.
func NewCourse(f CourseFields) (Course, error) {
	switch {
	case strings.TrimSpace(f.ID) == "":
		return Course{}, errors.New("course id is empty")
	case f.ECTS < 0 || math.IsNaN(f.ECTS) || math.IsInf(f.ECTS, 0):
		return Course{}, fmt.Errorf("invalid ects %v", f.ECTS)
	case len(f.Block) == 0:
		return Course{}, errors.New("course has no block")
	case len(f.Schedule) == 0:
		return Course{}, errors.New("course has no schedule group")
	case len(f.Degree) == 0:
		return Course{}, errors.New("course has no degree level")
	case f.Language == "":
		return Course{}, errors.New("course has no language")
	case f.Duration == "":
		return Course{}, errors.New("course has no duration")
	}
	if slices.Contains(f.Degree, DegreePhD) {
		return Course{}, errors.New("phd courses are not supported")
	}

	return Course{
		id:       f.ID,
		ects:     f.ECTS,
		block:    slices.Clone(f.Block),
		schedule: slices.Clone(f.Schedule),
		language: f.Language,
		duration: f.Duration,
		degree:   slices.Clone(f.Degree),
		capacity: f.Capacity,
	}, nil
}

// ID returns the course code.
func (c Course) ID() string { return c.id }

// ECTS returns the credit weight.
func (c Course) ECTS() float64 { return c.ects }

// Block returns the teaching blocks in source order, duplicates included.
func (c Course) Block() []Block { return slices.Clone(c.block) }

// Schedule returns the schedule groups in A, B, C, D order.
func (c Course) Schedule() []Schedule { return slices.Clone(c.schedule) }

func (c Course) Language() Language { return c.language }

func (c Course) Duration() Duration { return c.duration }

// Degree returns the degree levels, sorted and deduplicated.
func (c Course) Degree() []Degree { return slices.Clone(c.degree) }

func (c Course) Capacity() Capacity { return c.capacity }

// Fields returns a copy of the record's values.
func (c Course) Fields() CourseFields {
	return CourseFields{
		ID:       c.id,
		ECTS:     c.ects,
		Block:    c.Block(),
		Schedule: c.Schedule(),
		Language: c.language,
		Duration: c.duration,
		Degree:   c.Degree(),
		Capacity: c.capacity,
	}
}

// MarshalJSON encodes the record with stable lowercase keys.
func (c Course) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID       string     `json:"id"`
		ECTS     float64    `json:"ects"`
		Block    []Block    `json:"block"`
		Schedule []Schedule `json:"schedule"`
		Language Language   `json:"language"`
		Duration Duration   `json:"duration"`
		Degree   []Degree   `json:"degree"`
		Capacity Capacity   `json:"capacity"`
	}{c.id, c.ects, c.block, c.schedule, c.language, c.duration, c.degree, c.capacity})
}
