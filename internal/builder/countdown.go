// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package builder

import "time"

// Remaining is a countdown split into display units. All fields are
// non-negative; an elapsed deadline is all zeros.
type Remaining struct {
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

// Zero reports whether the countdown has elapsed.
func (r Remaining) Zero() bool {
	return r.Days == 0 && r.Hours == 0 && r.Minutes == 0 && r.Seconds == 0
}

// CountdownRemaining computes the time left until end, clamped at zero.
// It never goes negative and never wraps.
func CountdownRemaining(end, now time.Time) Remaining {
	d := end.Sub(now)
	if d <= 0 {
		return Remaining{}
	}

	secs := int(d / time.Second)
	return Remaining{
		Days:    secs / 86400,
		Hours:   secs % 86400 / 3600,
		Minutes: secs % 3600 / 60,
		Seconds: secs % 60,
	}
}

// ParseEndDate accepts the formats the editor has historically stored:
// RFC 3339, the datetime-local input format, and a bare date. Returns the
// zero time for an empty or unparseable value.
func ParseEndDate(s string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
