package date

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		want      Date
		expectErr bool
	}{
		{"Canonical", "2024-01-02", New(2024, time.January, 2), false},
		{"Permissive single digits", "2024-1-2", New(2024, time.January, 2), false},
		{"Not a date", "yesterday", Date{}, true},
		{"Wrong separator", "2024/01/02", Date{}, true},
		{"Empty", "", Date{}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.input)
			if (err != nil) != tc.expectErr {
				t.Fatalf("Parse(%q) returned error: %v, want error: %v", tc.input, err, tc.expectErr)
			}
			if !tc.expectErr && got != tc.want {
				t.Errorf("Parse(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestNewNormalizes(t *testing.T) {
	// Overflowing days carry over into the next month like time.Date.
	got := New(2024, time.January, 32)
	want := New(2024, time.February, 1)
	if got != want {
		t.Errorf("New(2024, January, 32) = %v, want %v", got, want)
	}
}

func TestAdd(t *testing.T) {
	d := MustParse("2024-02-28")
	if got := d.Add(1); got != MustParse("2024-02-29") {
		t.Errorf("Add(1) across leap day = %v, want 2024-02-29", got)
	}
	if got := d.Add(-28); got != MustParse("2024-01-31") {
		t.Errorf("Add(-28) = %v, want 2024-01-31", got)
	}
}

func TestOrdering(t *testing.T) {
	a := MustParse("2024-01-01")
	b := MustParse("2024-01-02")

	if !a.Before(b) || b.Before(a) {
		t.Errorf("Before is inconsistent for %v and %v", a, b)
	}
	if !b.After(a) || a.After(b) {
		t.Errorf("After is inconsistent for %v and %v", a, b)
	}
	if a.Compare(b) != -1 || b.Compare(a) != 1 || a.Compare(a) != 0 {
		t.Errorf("Compare is inconsistent for %v and %v", a, b)
	}
	if !(Date{}).Before(a) {
		t.Errorf("zero date should sort before %v", a)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	d := MustParse("2024-03-09")

	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal(%v) failed: %v", d, err)
	}
	if string(b) != `"2024-03-09"` {
		t.Errorf("Marshal(%v) = %s, want %q", d, b, `"2024-03-09"`)
	}

	var got Date
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("Unmarshal(%s) failed: %v", b, err)
	}
	if got != d {
		t.Errorf("round-trip = %v, want %v", got, d)
	}
}

func TestUnmarshalRejectsGarbage(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`"not-a-date"`), &d); err == nil {
		t.Error("Unmarshal of a malformed date string should fail")
	}
	if err := json.Unmarshal([]byte(`42`), &d); err == nil {
		t.Error("Unmarshal of a number should fail")
	}
}
