package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// BuildDatetime builds a time from a "DD.MM.YYYY" date and an optional
// free-form time such as "9:00", "13.05" or "9:00 Uhr". The order of the date
// parts can be changed with dateOrder (default "DMY"). An empty date yields the
// zero time.
func BuildDatetime(date, clock, dateOrder string) (time.Time, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return time.Time{}, nil
	}
	if dateOrder == "" {
		dateOrder = "DMY"
	}
	dateOrder = strings.ToUpper(dateOrder)

	parts := strings.Split(date, ".")
	if len(parts) != 3 || len(dateOrder) != 3 {
		return time.Time{}, fmt.Errorf("malformed date %q", date)
	}

	lookup := func(field byte) (int, error) {
		idx := strings.IndexByte(dateOrder, field)
		if idx < 0 {
			return 0, fmt.Errorf("date order %q lacks %c", dateOrder, field)
		}
		return strconv.Atoi(strings.TrimSpace(parts[idx]))
	}

	year, err := lookup('Y')
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed year in %q: %w", date, err)
	}
	month, err := lookup('M')
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed month in %q: %w", date, err)
	}
	day, err := lookup('D')
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed day in %q: %w", date, err)
	}

	clockParts := make([]int, 3)
	clock = strings.TrimSpace(clock)
	if clock != "" {
		sep := "."
		if strings.Contains(clock, ":") {
			sep = ":"
		}
		for i, p := range strings.Split(clock, sep) {
			if i >= len(clockParts) {
				break
			}
			if cut := strings.IndexByte(p, ' '); cut >= 0 {
				p = p[:cut]
			}
			v, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil {
				return time.Time{}, fmt.Errorf("malformed time %q: %w", clock, err)
			}
			clockParts[i] = v
		}
	}

	return time.Date(year, time.Month(month), day, clockParts[0], clockParts[1], clockParts[2], 0, time.UTC), nil
}

// SafeSessionID concatenates the legislative period and the session number
// padded to three digits: ("19", "7") -> "19007".
func SafeSessionID(legislativePeriod, sessionNo string) string {
	for len(sessionNo) < 3 {
		sessionNo = "0" + sessionNo
	}
	return legislativePeriod + sessionNo
}
