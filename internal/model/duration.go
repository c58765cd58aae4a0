package model

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var ErrInvalidFormat = errors.New("model: invalid format")

// FormatDuration renders seconds as HH:MM:SS. Hours do not wrap at 24.
func FormatDuration(seconds uint64) string {
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds/60)%60, seconds%60)
}

// FormatTimeToken renders seconds as an XXhYYm token, dropping leftover seconds.
func FormatTimeToken(seconds uint64) string {
	return fmt.Sprintf("%dh%dm", seconds/3600, (seconds/60)%60)
}

// ParseTimeToken parses "1h30m", "2h" or "45m" into seconds.
func ParseTimeToken(input string) (uint64, error) {
	hIdx := strings.IndexByte(input, 'h')
	mIdx := strings.IndexByte(input, 'm')
	if hIdx < 0 && mIdx < 0 {
		return 0, fmt.Errorf("%w: time %q needs an h or m marker", ErrInvalidFormat, input)
	}

	var hours, minutes uint64
	rest := input
	if hIdx >= 0 {
		v, err := parseSegment(input, input[:hIdx])
		if err != nil {
			return 0, err
		}
		hours = v
		rest = input[hIdx+1:]
	}
	if mIdx >= 0 {
		end := strings.IndexByte(rest, 'm')
		v, err := parseSegment(input, rest[:end])
		if err != nil {
			return 0, err
		}
		minutes = v
		rest = rest[end+1:]
	}
	if rest != "" {
		return 0, fmt.Errorf("%w: unexpected %q after time %q", ErrInvalidFormat, rest, input)
	}

	if hours > math.MaxUint64/3600 || minutes > math.MaxUint64/60 {
		return 0, fmt.Errorf("%w: time %q is too large", ErrInvalidFormat, input)
	}
	h, m := hours*3600, minutes*60
	if h > math.MaxUint64-m {
		return 0, fmt.Errorf("%w: time %q is too large", ErrInvalidFormat, input)
	}
	return h + m, nil
}

func parseSegment(input, segment string) (uint64, error) {
	v, err := strconv.ParseUint(segment, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: time %q has a bad number %q", ErrInvalidFormat, input, segment)
	}
	return v, nil
}
