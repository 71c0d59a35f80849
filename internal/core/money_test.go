package core

import "testing"

func TestParseDecimalToCents(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{name: "dot separator", input: "12.34", want: 1234},
		{name: "comma separator", input: "12,34", want: 1234},
		{name: "integer", input: "12", want: 1200},
		{name: "zero allowed", input: "0", want: 0},
		{name: "third decimal rounds down", input: "12.344", want: 1234},
		{name: "third decimal rounds up", input: "12.346", want: 1235},
		{name: "single decimal digit", input: "7.5", want: 750},
		{name: "leading dot", input: ".99", want: 99},
		{name: "empty", input: "", wantErr: true},
		{name: "negative rejected", input: "-5.00", wantErr: true},
		{name: "plus sign rejected", input: "+5.00", wantErr: true},
		{name: "letters rejected", input: "12a.00", wantErr: true},
		{name: "two dots rejected", input: "1.2.3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDecimalToCents(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got %d", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseDecimalToCents(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatUSD(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{0, "$0.00"},
		{5, "$0.05"},
		{123456, "$1,234.56"},
		{100000000, "$1,000,000.00"},
		{99999, "$999.99"},
		{-2500, "-$25.00"},
	}
	for _, tt := range tests {
		if got := FormatUSD(Money{Cents: tt.cents}); got != tt.want {
			t.Errorf("FormatUSD(%d) = %q, want %q", tt.cents, got, tt.want)
		}
	}
}
