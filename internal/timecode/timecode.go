// Package timecode converts between an absolute minute-of-day integer
// and the 12-hour clock triple shown to the user. The conversions are
// pure functions with no dependencies; the timeline engine and the
// exporters both build on them.
package timecode

import (
	"errors"
	"fmt"
	"strconv"
)

// Periods of the 12-hour clock.
const (
	AM = "AM"
	PM = "PM"
)

// ErrInvalidInput is returned by Decode when a component is not numeric.
// Callers are expected to run user input through Repair first, which
// makes Decode infallible; the error exists so misuse fails loudly
// instead of propagating garbage into a row.
var ErrInvalidInput = errors.New("invalid time input")

// Clock is the display form of a time of day: hour 1–12, minute always
// zero-padded to two digits, period AM or PM.
type Clock struct {
	Hour   string `json:"hour"`
	Minute string `json:"minute"`
	Period string `json:"period"`
}

// Encode converts minutes past midnight to its 12-hour display triple.
// Midnight encodes as 12:00 AM and noon as 12:00 PM.
//
// Encode is total: values outside [0, 1440) still produce a
// deterministic (if unconventional) result rather than an error, because
// cascade arithmetic can transiently push row times out of range.
func Encode(totalMinutes int) Clock {
	hours := totalMinutes / 60 % 24
	minutes := totalMinutes % 60

	period := AM
	if hours >= 12 {
		period = PM
	}
	displayHour := hours % 12
	if displayHour == 0 {
		displayHour = 12
	}
	return Clock{
		Hour:   strconv.Itoa(displayHour),
		Minute: fmt.Sprintf("%02d", minutes),
		Period: period,
	}
}

// Decode converts a 12-hour triple back to minutes past midnight.
// The hour is taken mod 12, so "12" contributes zero before the PM
// offset: 12:00 AM decodes to 0 and 12:00 PM to 720.
//
// Decode performs no range validation — that is Repair's job — but
// rejects non-numeric components with ErrInvalidInput.
func Decode(hour, minute, period string) (int, error) {
	h, err := strconv.Atoi(hour)
	if err != nil {
		return 0, fmt.Errorf("%w: hour %q", ErrInvalidInput, hour)
	}
	m, err := strconv.Atoi(minute)
	if err != nil {
		return 0, fmt.Errorf("%w: minute %q", ErrInvalidInput, minute)
	}
	total := h%12*60 + m
	if period == PM {
		total += 720
	}
	return total, nil
}

// Repair coerces a user-typed clock triple into a decodable one.
// Malformed or out-of-range components are silently replaced with safe
// defaults rather than rejected:
//
//	hour not numeric or outside 1–12  → "12"
//	minute not numeric or outside 0–59 → "00"
//	period not AM/PM                   → AM
//
// This is the single place the silent-repair policy for time input
// lives; everything downstream assumes a repaired triple.
func Repair(c Clock) Clock {
	if h, err := strconv.Atoi(c.Hour); err != nil || h < 1 || h > 12 {
		c.Hour = "12"
	}
	if m, err := strconv.Atoi(c.Minute); err != nil || m < 0 || m > 59 {
		c.Minute = "00"
	}
	if c.Period != AM && c.Period != PM {
		c.Period = AM
	}
	return c
}
