package utils

import (
	"strconv"
	"strings"
	"time"
)

// ParseLeaveDuration interprets the free-text duration of a leave request.
// It accepts Go duration syntax extended with day/week suffixes ("3d",
// "2w", "12h") and simple English phrases ("1 week", "2 days"). Returns
// false when the text does not describe a positive duration.
func ParseLeaveDuration(s string) (time.Duration, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, false
	}

	if d, err := parseSuffixed(s); err == nil && d > 0 {
		return d, true
	}

	fields := strings.Fields(s)
	if len(fields) != 2 {
		return 0, false
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil || n <= 0 {
		return 0, false
	}
	switch strings.TrimSuffix(fields[1], "s") {
	case "hour":
		return time.Duration(n) * time.Hour, true
	case "day":
		return time.Duration(n) * 24 * time.Hour, true
	case "week":
		return time.Duration(n) * 7 * 24 * time.Hour, true
	case "month":
		return time.Duration(n) * 30 * 24 * time.Hour, true
	}
	return 0, false
}

// parseSuffixed extends time.ParseDuration to support days (d) and
// weeks (w).
func parseSuffixed(s string) (time.Duration, error) {
	if strings.HasSuffix(s, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
		if err != nil {
			return 0, err
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}
	if strings.HasSuffix(s, "w") {
		weeks, err := strconv.Atoi(strings.TrimSuffix(s, "w"))
		if err != nil {
			return 0, err
		}
		return time.Duration(weeks) * 7 * 24 * time.Hour, nil
	}
	return time.ParseDuration(s)
}
