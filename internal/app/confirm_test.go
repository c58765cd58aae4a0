package app

import (
	"bytes"
	"strings"
	"testing"
)

func TestConsoleConfirmer(t *testing.T) {
	cases := []struct {
		in      string
		want    bool
		retries int
	}{
		{"y\n", true, 0},
		{"Y\n", true, 0},
		{"n\n", false, 0},
		{"maybe\nyes\nN\n", false, 2},
		{"\nY", true, 1},
		{"", false, 0},
		{"what\n", false, 1},
	}
	for _, tc := range cases {
		var out bytes.Buffer
		c := NewConsoleConfirmer(strings.NewReader(tc.in), &out)
		got, err := c.Confirm("Proceed? (Y/N)")
		if err != nil {
			t.Fatalf("confirm(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("confirm(%q) = %v, want %v", tc.in, got, tc.want)
		}
		if n := strings.Count(out.String(), "Invalid input"); n != tc.retries {
			t.Fatalf("confirm(%q) retries = %d, want %d", tc.in, n, tc.retries)
		}
	}
}
