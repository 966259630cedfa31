package handlers

import (
	"strings"
	"testing"
	"time"

	"github.com/thrifthaul/backend/internal/models"
)

func TestAtoiOrZero(t *testing.T) {
	cases := map[string]int{
		"":     0,
		"abc":  0,
		"-3":   0,
		"0":    0,
		"9":    9,
		" 12 ": 12,
	}
	for in, want := range cases {
		if got := atoiOrZero(in); got != want {
			t.Fatalf("atoiOrZero(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestParseCheckbox(t *testing.T) {
	for _, v := range []string{"1", "true", "on", "yes", "ON", " True "} {
		if !parseCheckbox(v) {
			t.Fatalf("expected %q to be truthy", v)
		}
	}
	for _, v := range []string{"", "0", "false", "off", "no"} {
		if parseCheckbox(v) {
			t.Fatalf("expected %q to be falsy", v)
		}
	}
}

func TestExportRow(t *testing.T) {
	created := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	row := exportRow(models.Ticket{
		ID: 5, CreatedAt: created, Status: models.StatusScheduled,
		DonorName: "Pat", Categories: []string{"clothing", "books"},
		BagsCount: 9, CrewSize: 2, EstimatedMiles: 20.5, EstimatedCost: 24.33,
	})
	if len(row) != len(exportHeaders) {
		t.Fatalf("row has %d fields, headers have %d", len(row), len(exportHeaders))
	}
	if row[0] != "5" || row[2] != "scheduled" {
		t.Fatalf("unexpected leading fields %v", row[:3])
	}
	joined := strings.Join(row, ",")
	if !strings.Contains(joined, "clothing|books") {
		t.Fatalf("categories not pipe-joined: %s", joined)
	}
	if row[len(row)-1] != "24.33" {
		t.Fatalf("estimated cost = %q", row[len(row)-1])
	}
}
