package coerce

import (
	"errors"
	"slices"
	"testing"

	"github.com/gaurav-prasanna/coursepipe/core"
)

func danishPairs() []core.Pair {
	return []core.Pair{
		{Label: "Sprog", Value: "Dansk"},
		{Label: "Kursuskode", Value: "NDAB15009U"},
		{Label: "Point", Value: "7.5 ECTS"},
		{Label: "Niveau", Value: "Bachelor/kandidat"},
		{Label: "Varighed", Value: "1 blok"},
		{Label: "Placering", Value: "Blok 1 og 2"},
		{Label: "Skemagruppe", Value: "A+B"},
		{Label: "Kursuskapacitet", Value: "75"},
		{Label: "Studienævn", Value: "Studienævnet for Datalogi"},
	}
}

func englishPairs() []core.Pair {
	return []core.Pair{
		{Label: "Language", Value: "English"},
		{Label: "Course code", Value: "NMAK16003U"},
		{Label: "Credit", Value: "15 ECTS"},
		{Label: "Level", Value: "Master"},
		{Label: "Duration", Value: "1 semester"},
		{Label: "Placement", Value: "Block 1"},
		{Label: "Schedule", Value: "C"},
		{Label: "Course capacity", Value: "Ingen begrænsning"},
	}
}

func without(pairs []core.Pair, label string) []core.Pair {
	return slices.DeleteFunc(slices.Clone(pairs), func(p core.Pair) bool { return p.Label == label })
}

func TestCoerce_Danish(t *testing.T) {
	c, err := New().Coerce(danishPairs())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if c.ID() != "NDAB15009U" {
		t.Errorf("ID = %q", c.ID())
	}
	if c.ECTS() != 7.5 {
		t.Errorf("ECTS = %v", c.ECTS())
	}
	if !slices.Equal(c.Block(), []core.Block{core.BlockOne, core.BlockTwo}) {
		t.Errorf("Block = %v", c.Block())
	}
	if !slices.Equal(c.Schedule(), []core.Schedule{core.ScheduleA, core.ScheduleB}) {
		t.Errorf("Schedule = %v", c.Schedule())
	}
	if c.Language() != core.LanguageDanish {
		t.Errorf("Language = %v", c.Language())
	}
	if c.Duration() != core.DurationOneUnit {
		t.Errorf("Duration = %v", c.Duration())
	}
	if !slices.Equal(c.Degree(), []core.Degree{core.DegreeBachelor, core.DegreeMaster}) {
		t.Errorf("Degree = %v", c.Degree())
	}
	if n, ok := c.Capacity().Number(); !ok || n != 75 {
		t.Errorf("Capacity = %v", c.Capacity())
	}
}

func TestCoerce_English(t *testing.T) {
	c, err := New().Coerce(englishPairs())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.ECTS() != 15 || c.Duration() != core.DurationTwoUnits || c.Language() != core.LanguageEnglish {
		t.Errorf("unexpected record %+v", c.Fields())
	}
	if text, ok := c.Capacity().Text(); !ok || text != core.UnlimitedCapacity {
		t.Errorf("Capacity = %v", c.Capacity())
	}
}

func TestCoerce_OrderIndependent(t *testing.T) {
	pairs := danishPairs()
	slices.Reverse(pairs)
	reversed, err := New().Coerce(pairs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	original, _ := New().Coerce(danishPairs())
	if reversed.ID() != original.ID() || !slices.Equal(reversed.Block(), original.Block()) {
		t.Errorf("field order changed the record: %+v vs %+v", reversed.Fields(), original.Fields())
	}
}

func TestCoerce_LaterValueWins(t *testing.T) {
	pairs := append(danishPairs(), core.Pair{Label: "Point", Value: "15 ECTS"})
	c, err := New().Coerce(pairs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.ECTS() != 15 {
		t.Errorf("expected overwritten ECTS 15, got %v", c.ECTS())
	}
}

func TestCoerce_MissingField(t *testing.T) {
	tests := []struct {
		label string
		field core.Field
	}{
		{"Kursuskapacitet", core.FieldCapacity},
		{"Kursuskode", core.FieldID},
		{"Placering", core.FieldBlock},
		{"Skemagruppe", core.FieldSchedule},
		{"Sprog", core.FieldLanguage},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			c, err := New().Coerce(without(danishPairs(), tt.label))
			var mfe *core.MissingFieldError
			if !errors.As(err, &mfe) {
				t.Fatalf("expected MissingFieldError, got %v", err)
			}
			if mfe.Field != tt.field {
				t.Errorf("expected missing %s, got %s", tt.field, mfe.Field)
			}
			if c.ID() != "" {
				t.Error("no record may be produced on failure")
			}
		})
	}
}

func TestCoerce_FirstMissingFieldReported(t *testing.T) {
	_, err := New().Coerce(nil)
	var mfe *core.MissingFieldError
	if !errors.As(err, &mfe) || mfe.Field != core.FieldID {
		t.Fatalf("expected missing id, got %v", err)
	}
}

func TestCoerce_InvalidValue(t *testing.T) {
	pairs := danishPairs()
	pairs[3] = core.Pair{Label: "Niveau", Value: "Ph.d."}

	_, err := New().Coerce(pairs)
	var fe *core.FieldError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FieldError, got %v", err)
	}
	if fe.Field != core.FieldDegree || fe.Text != "Ph.d." {
		t.Errorf("unexpected error %+v", fe)
	}
	if core.KindOf(err) != core.KindFieldParse {
		t.Errorf("KindOf = %s", core.KindOf(err))
	}
}

func TestCoerce_UnknownLabelsIgnored(t *testing.T) {
	pairs := append(danishPairs(),
		core.Pair{Label: "Kursusansvarlig", Value: "???"},
		core.Pair{Label: "sprog", Value: "Klingon"},
	)
	if _, err := New().Coerce(pairs); err != nil {
		t.Fatalf("unknown labels must be ignored: %v", err)
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		label string
		want  core.Field
		ok    bool
	}{
		{"Course code", core.FieldID, true},
		{"Kursuskode", core.FieldID, true},
		{"Point", core.FieldECTS, true},
		{"Placering", core.FieldBlock, true},
		{"Placement", core.FieldBlock, true},
		{"Place", core.FieldBlock, true},
		{"Plac", "", false},
		{"placering", "", false},
		{"Course Code", "", false},
	}
	for _, tt := range tests {
		got, ok := Resolve(tt.label)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Resolve(%q) = %q, %v; want %q, %v", tt.label, got, ok, tt.want, tt.ok)
		}
	}
}

func TestLabelsCoverEveryFieldInBothLanguages(t *testing.T) {
	counts := make(map[core.Field]int)
	for _, f := range labels {
		counts[f]++
	}
	for _, f := range core.RequiredFields {
		if f == core.FieldBlock {
			continue // resolved by prefix
		}
		if counts[f] != 2 {
			t.Errorf("field %s has %d labels, want 2", f, counts[f])
		}
	}
}
