package core

import (
	"reflect"
	"testing"
)

func TestDateOnly(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024-01-15 10:30:00", "2024-01-15"},
		{"2024-01-15", "2024-01-15"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := DateOnly(tt.in); got != tt.want {
			t.Errorf("DateOnly(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeDatesDoesNotMutateInput(t *testing.T) {
	in := []Transaction{txn(Income, 100, "2024-01-15 10:30:00", "")}
	out := NormalizeDates(in)

	if in[0].Date != "2024-01-15 10:30:00" {
		t.Errorf("input mutated: %q", in[0].Date)
	}
	if out[0].Date != "2024-01-15" {
		t.Errorf("output date = %q, want 2024-01-15", out[0].Date)
	}
}

func TestNormalizeDatesIdempotent(t *testing.T) {
	in := []Transaction{
		txn(Income, 100, "2024-01-15 10:30:00", ""),
		txn(Expenses, 250, "2024-02-01", "Food"),
	}
	once := NormalizeDates(in)
	twice := NormalizeDates(once)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("NormalizeDates is not idempotent: %+v vs %+v", once, twice)
	}
}
