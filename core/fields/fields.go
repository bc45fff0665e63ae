// Package fields holds one parser per course record field. Each parser
// takes the rendered text of a <dd> and returns a typed value or a
// *core.FieldError.
package fields

import (
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/gaurav-prasanna/coursepipe/core"
)

func fail(field core.Field, text, reason string, err error) *core.FieldError {
	return &core.FieldError{Field: field, Text: text, Reason: reason, Err: err}
}

// ID returns the course code.
func ID(text string) (string, error) {
	id := strings.TrimSpace(text)
	if id == "" {
		return "", fail(core.FieldID, text, "empty course code", nil)
	}
	return id, nil
}

// Language matches the exact label text: "English" or "Dansk".
func Language(text string) (core.Language, error) {
	switch text {
	case "English":
		return core.LanguageEnglish, nil
	case "Dansk":
		return core.LanguageDanish, nil
	}
	return "", fail(core.FieldLanguage, text, "unknown language", nil)
}

// ECTS parses the leading decimal number of values like "15 ECTS" or "7.5 ECTS".
func ECTS(text string) (float64, error) {
	end, dot := 0, false
	for end < len(text) {
		c := text[end]
		if c == '.' && !dot {
			dot = true
		} else if c < '0' || c > '9' {
			break
		}
		end++
	}

	prefix := text[:end]
	if prefix == "" {
		return 0, fail(core.FieldECTS, text, "no leading number", nil)
	}
	ects, err := strconv.ParseFloat(prefix, 64)
	if err != nil {
		return 0, fail(core.FieldECTS, text, "malformed number", err)
	}
	return ects, nil
}

// degreeTokens maps the opening letters of a word to a degree level.
// "Kandidat" is the Danish word for a master's degree.
var degreeTokens = map[string]core.Degree{
	"ba": core.DegreeBachelor,
	"ma": core.DegreeMaster,
	"ka": core.DegreeMaster,
	"ph": core.DegreePhD,
}

// Degree finds degree levels in values like "Bachelor", "Kandidat" or
// "Bachelor/kandidat". Only the first two letters of each word count, so
// "Informatik" or "Graphics" never match. PhD courses are rejected.
func Degree(text string) ([]core.Degree, error) {
	var found []core.Degree

	words := strings.FieldsFunc(text, func(r rune) bool { return !unicode.IsLetter(r) })
	for _, word := range words {
		runes := []rune(strings.ToLower(word))
		if len(runes) < 2 {
			continue
		}
		if d, ok := degreeTokens[string(runes[:2])]; ok {
			found = append(found, d)
		}
	}

	if slices.Contains(found, core.DegreePhD) {
		return nil, fail(core.FieldDegree, text, "phd courses are not supported", nil)
	}

	slices.SortFunc(found, func(a, b core.Degree) int { return a.Rank() - b.Rank() })
	found = slices.Compact(found)
	if len(found) == 0 {
		return nil, fail(core.FieldDegree, text, "no degree found", nil)
	}
	return found, nil
}

// unlimitedPhrases mark courses without a seat limit.
var unlimitedPhrases = []string{"ubegrænset", "ingen begrænsning"}

// Capacity parses a leading seat count, or recognizes an unlimited marker.
func Capacity(text string) (core.Capacity, error) {
	digits := text[:leadingDigits(text)]
	if n, err := strconv.ParseUint(digits, 10, 32); err == nil {
		return core.NumberCapacity(uint32(n)), nil
	}

	lower := strings.ToLower(text)
	for _, phrase := range unlimitedPhrases {
		if strings.Contains(lower, phrase) {
			return core.TextCapacity(core.UnlimitedCapacity), nil
		}
	}
	return core.Capacity{}, fail(core.FieldCapacity, text, "neither a number nor unlimited", nil)
}

func leadingDigits(s string) int {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return i
}

// Schedule collects every schedule group letter present, in A-D order.
func Schedule(text string) ([]core.Schedule, error) {
	var groups []core.Schedule
	for _, g := range []core.Schedule{core.ScheduleA, core.ScheduleB, core.ScheduleC, core.ScheduleD} {
		if strings.Contains(text, string(g)) {
			groups = append(groups, g)
		}
	}
	if len(groups) == 0 {
		return nil, fail(core.FieldSchedule, text, "no schedule group", nil)
	}
	return groups, nil
}

// Block collects every digit 1-5 in order of appearance. Duplicates are kept.
func Block(text string) ([]core.Block, error) {
	var blocks []core.Block
	for _, r := range text {
		if r >= '1' && r <= '5' {
			blocks = append(blocks, core.Block(string(r)))
		}
	}
	if len(blocks) == 0 {
		return nil, fail(core.FieldBlock, text, "no block number", nil)
	}
	return blocks, nil
}

// durationPrefixes map the first three characters of values like
// "1 blok", "2 blokke" or "1 semester". A semester spans two blocks.
var durationPrefixes = map[string]core.Duration{
	"1 b": core.DurationOneUnit,
	"1 B": core.DurationOneUnit,
	"2 b": core.DurationTwoUnits,
	"1 s": core.DurationTwoUnits,
}

// Duration matches the three-character prefix of the value.
func Duration(text string) (core.Duration, error) {
	runes := []rune(text)
	if len(runes) >= 3 {
		if d, ok := durationPrefixes[string(runes[:3])]; ok {
			return d, nil
		}
	}
	return "", fail(core.FieldDuration, text, "unknown duration", nil)
}
