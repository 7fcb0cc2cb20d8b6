package repository

import (
	"errors"
	"testing"
)

func TestQuoteTable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"plain", "waitlist_signups", `"waitlist_signups"`, false},
		{"schema qualified", "marketing.waitlist_signups", `"marketing"."waitlist_signups"`, false},
		{"empty", "", "", true},
		{"three parts", "a.b.c", "", true},
		{"injection", `signups; DROP TABLE users`, "", true},
		{"quote char", `sign"ups`, "", true},
		{"leading digit", "1signups", "", true},
		{"empty schema", ".signups", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := quoteTable(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidTable) {
					t.Errorf("quoteTable(%q) err = %v, want ErrInvalidTable", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("quoteTable(%q) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("quoteTable(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}
