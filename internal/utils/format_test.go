package utils

import (
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{45 * time.Millisecond, "45ms"},
		{1500 * time.Millisecond, "1.5s"},
		{2*time.Minute + 30*time.Second, "2m 30s"},
		{5 * time.Minute, "5m"},
		{time.Hour + 15*time.Minute, "1h 15m"},
		{2 * time.Hour, "2h"},
	}

	for _, c := range cases {
		if got := FormatDuration(c.d); got != c.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", c.d, got, c.want)
		}
	}
}

func TestFormatStaffedSeconds(t *testing.T) {
	if got := FormatStaffedSeconds(30960); got != "8h 36m" {
		t.Errorf("FormatStaffedSeconds(30960) = %q, want %q", got, "8h 36m")
	}
	if got := FormatStaffedSeconds(0); got != "0ms" {
		t.Errorf("FormatStaffedSeconds(0) = %q, want %q", got, "0ms")
	}
}
