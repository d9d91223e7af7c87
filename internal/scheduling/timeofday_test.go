package scheduling

import (
	"errors"
	"testing"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:00", 540, false},
		{"12:30", 750, false},
		{"23:59", 1439, false},
		{"09:00:00", 540, false},
		{"", 0, true},
		{"9", 0, true},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"ab:cd", 0, true},
		{"-1:00", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseClock(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidClock) {
				t.Errorf("ParseClock(%q): expected ErrInvalidClock, got %v", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClock(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseClock(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "00:00"},
		{540, "09:00"},
		{750, "12:30"},
		{1439, "23:59"},
	}
	for _, tt := range tests {
		if got := FormatClock(tt.in); got != tt.want {
			t.Errorf("FormatClock(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestClockRoundTrip(t *testing.T) {
	for _, s := range []string{"00:00", "08:15", "13:45", "23:59"} {
		m, err := ParseClock(s)
		if err != nil {
			t.Fatalf("ParseClock(%q): %v", s, err)
		}
		if got := FormatClock(m); got != s {
			t.Errorf("round trip %q -> %d -> %q", s, m, got)
		}
	}
}
