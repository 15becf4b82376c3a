package formatting_test

import (
	"testing"

	"github.com/JaimeStill/longevity/pkg/formatting"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n         int64
		precision int
		want      string
	}{
		{0, 2, "0 B"},
		{512, 0, "512 B"},
		{1024, 1, "1.0 KB"},
		{1536, 2, "1.50 KB"},
		{50 * 1024 * 1024, 0, "50 MB"},
		{1024, -1, "1 KB"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := formatting.FormatBytes(tt.n, tt.precision); got != tt.want {
				t.Errorf("FormatBytes(%d, %d) = %q, want %q", tt.n, tt.precision, got, tt.want)
			}
		})
	}
}

func TestParseBytes(t *testing.T) {
	tests := []struct {
		input   string
		want    int64
		wantErr bool
	}{
		{"100", 100, false},
		{"50MB", 50 * 1024 * 1024, false},
		{"1.5 kb", 1536, false},
		{"2GB", 2 * 1024 * 1024 * 1024, false},
		{"", 0, true},
		{"ten MB", 0, true},
		{"5XB", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := formatting.ParseBytes(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseBytes(%q) expected error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseBytes(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseBytes(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}
