package core

import (
	"strconv"
	"strings"
)

// ParseDate converts "DD/MM/YYYY" text into a Date. The second return value
// is false when the input is not shaped like a date (wrong part count or
// non-numeric parts); that is absence, not an error.
//
// Day and month are not range-checked: "32/01/2024" normalizes to the
// following day the way time.Date defines, matching the source exports where
// such values occasionally appear.
func ParseDate(value string) (Date, bool) {
	parts := strings.Split(strings.TrimSpace(value), "/")
	if len(parts) != 3 {
		return Date{}, false
	}
	day, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Date{}, false
	}
	month, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Date{}, false
	}
	year, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return Date{}, false
	}
	return NewDate(year, month, day), true
}
