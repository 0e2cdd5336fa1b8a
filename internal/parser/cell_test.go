package parser

import (
	"testing"
	"time"
)

func TestNumber(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw       string
		want      float64
		defaulted bool
	}{
		{"150", 150, false},
		{"  19.99 ", 19.99, false},
		{"$1,234.50", 1234.50, false},
		{"-3", -3, false},
		{"", 0, true},
		{"nan", 0, true},
		{"None", 0, true},
		{"sin precio", 0, true},
	}
	for _, tc := range cases {
		got, defaulted := Number(tc.raw)
		if got != tc.want || defaulted != tc.defaulted {
			t.Fatalf("Number(%q) = (%v, %v), want (%v, %v)",
				tc.raw, got, defaulted, tc.want, tc.defaulted)
		}
	}
}

func TestKey(t *testing.T) {
	t.Parallel()

	if id, ok := Key("42"); !ok || id != 42 {
		t.Fatalf("Key(42) = (%d, %v)", id, ok)
	}
	// Keys arrive as floats when the sheet stores them as numbers.
	if id, ok := Key("42.0"); !ok || id != 42 {
		t.Fatalf("Key(42.0) = (%d, %v)", id, ok)
	}
	for _, raw := range []string{"", "nan", "S/N"} {
		if _, ok := Key(raw); ok {
			t.Fatalf("Key(%q) should not resolve", raw)
		}
	}
}

func TestText(t *testing.T) {
	t.Parallel()

	if got := Text("  hola  "); got == nil || *got != "hola" {
		t.Fatalf("Text should trim, got %v", got)
	}
	for _, raw := range []string{"", "   ", "NaN", "none", "NULL"} {
		if got := Text(raw); got != nil {
			t.Fatalf("Text(%q) = %q, want nil", raw, *got)
		}
	}
	// "N/A" is a real annotation in the workbook, not a missing marker.
	if got := Text("N/A"); got == nil || *got != "N/A" {
		t.Fatalf("Text(N/A) = %v, want passthrough", got)
	}
}

func TestTextOr(t *testing.T) {
	t.Parallel()

	if got := TextOr("nan", "CLIENTE"); got != "CLIENTE" {
		t.Fatalf("TextOr fallback = %q", got)
	}
	if got := TextOr(" MAYORISTA ", "CLIENTE"); got != "MAYORISTA" {
		t.Fatalf("TextOr = %q", got)
	}
}

func TestDateText(t *testing.T) {
	t.Parallel()

	// Raw-mode reads surface date cells as Excel serials.
	if got := DateText("45000"); got == nil || *got != "2023-03-15T00:00:00" {
		t.Fatalf("DateText(45000) = %v", got)
	}
	if got := DateText("nan"); got != nil {
		t.Fatalf("DateText(nan) = %q, want nil", *got)
	}
	// Free text that is not a serial passes through untouched.
	if got := DateText("pendiente"); got == nil || *got != "pendiente" {
		t.Fatalf("DateText(pendiente) = %v", got)
	}
}

func TestDateValue(t *testing.T) {
	t.Parallel()

	got, ok := DateValue("45000")
	if !ok {
		t.Fatal("serial should resolve")
	}
	want := time.Date(2023, time.March, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("DateValue(45000) = %v, want %v", got, want)
	}

	if got, ok := DateValue("2024-06-01"); !ok || got.Year() != 2024 {
		t.Fatalf("DateValue(2024-06-01) = (%v, %v)", got, ok)
	}
	if _, ok := DateValue("proximamente"); ok {
		t.Fatal("free text must fail open, not parse")
	}
}

func TestDigits(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw  string
		want bool
	}{
		{"123", true},
		{" 45 ", true},
		{"12.5", false},
		{"JUAN PEREZ", false},
		{"", false},
		{"-1", false},
	}
	for _, tc := range cases {
		if got := Digits(tc.raw); got != tc.want {
			t.Fatalf("Digits(%q) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}
