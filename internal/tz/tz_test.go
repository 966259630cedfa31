package tz

import (
	"testing"
	"time"
)

func chicago(t *testing.T) *time.Location {
	t.Helper()
	loc, err := Load("")
	if err != nil {
		t.Fatalf("load default zone: %v", err)
	}
	return loc
}

func TestParseISONaiveUsesOperatingZone(t *testing.T) {
	loc := chicago(t)
	got, err := ParseISO("2024-06-03T09:30:00", loc)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := time.Date(2024, 6, 3, 9, 30, 0, 0, loc)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestParseISOKeepsExplicitOffset(t *testing.T) {
	loc := chicago(t)
	got, err := ParseISO("2024-06-03T14:30:00Z", loc)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	// 14:30 UTC is 09:30 CDT; the instant is preserved.
	want := time.Date(2024, 6, 3, 9, 30, 0, 0, loc)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestParseISORejectsGarbage(t *testing.T) {
	loc := chicago(t)
	if _, err := ParseISO("next tuesday", loc); err == nil {
		t.Fatalf("expected error")
	}
}

func TestCivilDateCrossesMidnight(t *testing.T) {
	loc := chicago(t)
	// 02:00 UTC on June 4 is still June 3 in Chicago.
	instant := time.Date(2024, 6, 4, 2, 0, 0, 0, time.UTC)
	if got := CivilDate(instant, loc); got != "2024-06-03" {
		t.Fatalf("got %s, want 2024-06-03", got)
	}
}

func TestParseCivilDate(t *testing.T) {
	if _, err := ParseCivilDate("2024-13-40"); err == nil {
		t.Fatalf("expected invalid date to be rejected")
	}
	got, err := ParseCivilDate("2024-07-04")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got != "2024-07-04" {
		t.Fatalf("got %s", got)
	}
}
