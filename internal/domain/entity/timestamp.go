package entity

import (
	"fmt"
	"time"
)

// timestampLayouts are the ISO-8601 shapes accepted for createdAt and updatedAt.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	DateLayout,
}

// ParseTimestamp parses an ISO-8601 timestamp. A bare date is midnight UTC.
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}

// ParseLooseDate accepts a YYYY-MM-DD date or a full timestamp, keeping the
// calendar day of the timestamp in its own offset.
func ParseLooseDate(s string) (Date, error) {
	if d, err := ParseDate(s); err == nil {
		return d, nil
	}
	t, err := ParseTimestamp(s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q", s)
	}
	return DateOf(t), nil
}
