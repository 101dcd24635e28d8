package xsd

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Time is a wall-clock time of day with optional millisecond precision and
// an optional UTC offset. TimezoneHourOffset carries the offset sign;
// TimezoneMinuteOffset is a magnitude.
type Time struct {
	Hour   int
	Minute int
	Second int

	Millisecond    int
	HasMillisecond bool

	TimezoneHourOffset   int
	TimezoneMinuteOffset int
	HasTimezone          bool
}

var (
	dateTimeRegexp = regexp.MustCompile(`^(-?\d{4,})-(\d{2})-(\d{2})T(\d{2}):(\d{2}):(\d{2})(\.\d+)?(Z|[+-]\d{2}:\d{2})?$`)
	dateRegexp     = regexp.MustCompile(`^(-?\d{4,})-(\d{2})-(\d{2})(Z|[+-]\d{2}:\d{2})?$`)
	timeRegexp     = regexp.MustCompile(`^(\d{2}):(\d{2}):(\d{2})(\.\d+)?(Z|[+-]\d{2}:\d{2})?$`)
)

// SerializeDateTime renders an instant as an ISO-8601-compatible UTC string
// with millisecond precision. The year is rendered with at least four digits
// and an explicit leading '-' for BCE years, independent of any platform
// formatting quirks.
func SerializeDateTime(value time.Time) string {
	u := value.UTC()
	return fmt.Sprintf("%s-%02d-%02dT%02d:%02d:%02d.%03dZ",
		formatYear(u.Year()), int(u.Month()), u.Day(),
		u.Hour(), u.Minute(), u.Second(), u.Nanosecond()/int(time.Millisecond))
}

// DeserializeDateTime parses the full XSD dateTime lexical grammar: optional
// leading '-', four-or-more-digit year, date, time, optional fractional
// seconds and an optional 'Z' or signed offset. The offset is subtracted to
// normalise the instant to UTC. Out-of-range components such as hour 24 or
// minute 90 roll over into the next unit. Sub-millisecond precision is
// truncated. Malformed input yields no value.
func DeserializeDateTime(value string) (time.Time, bool) {
	match := dateTimeRegexp.FindStringSubmatch(strings.TrimSpace(value))
	if match == nil {
		return time.Time{}, false
	}

	year, err := strconv.Atoi(match[1])
	if err != nil {
		// Year magnitude beyond the representable range.
		return time.Time{}, false
	}
	month := mustAtoi(match[2])
	day := mustAtoi(match[3])
	hour := mustAtoi(match[4])
	minute := mustAtoi(match[5])
	second := mustAtoi(match[6])
	millisecond := parseFraction(match[7])

	// Years 0-99 must be taken literally; time.Date does exactly that, so
	// no century correction is applied here.
	t := time.Date(year, time.Month(month), day, hour, minute, second, millisecond*int(time.Millisecond), time.UTC)

	offset, ok := parseOffsetMinutes(match[8])
	if !ok {
		return time.Time{}, false
	}
	if offset != 0 {
		t = t.Add(-time.Duration(offset) * time.Minute)
	}
	return t, true
}

// SerializeDate renders the year, month and day of the value as observed in
// its own location, reattaching the UTC offset that location implies ("Z"
// when the offset is zero).
func SerializeDate(value time.Time) string {
	year, month, day := value.Date()
	_, offsetSeconds := value.Zone()
	return fmt.Sprintf("%s-%02d-%02d%s", formatYear(year), int(month), day, formatOffset(offsetSeconds))
}

// DeserializeDate parses the XSD date grammar (the dateTime grammar without
// the time component). The result is pinned to hour 12 UTC so that timezone
// conversions in surrounding code cannot shift the calendar day. Malformed
// input yields no value.
func DeserializeDate(value string) (time.Time, bool) {
	match := dateRegexp.FindStringSubmatch(strings.TrimSpace(value))
	if match == nil {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(match[1])
	if err != nil {
		return time.Time{}, false
	}
	if _, ok := parseOffsetMinutes(match[4]); !ok {
		return time.Time{}, false
	}
	month := mustAtoi(match[2])
	day := mustAtoi(match[3])
	return time.Date(year, time.Month(month), day, 12, 0, 0, 0, time.UTC), true
}

// SerializeTime renders a wall-clock time, zero-padding every field. The
// offset is always rendered with an explicit sign, and the minute offset is
// always present when an hour offset is ("+02:00", not "+02").
func SerializeTime(value Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%02d:%02d:%02d", value.Hour, value.Minute, value.Second)
	if value.HasMillisecond {
		fmt.Fprintf(&b, ".%03d", value.Millisecond)
	}
	if value.HasTimezone {
		sign := "+"
		hourOffset := value.TimezoneHourOffset
		if hourOffset < 0 {
			sign = "-"
			hourOffset = -hourOffset
		}
		fmt.Fprintf(&b, "%s%02d:%02d", sign, hourOffset, value.TimezoneMinuteOffset)
	}
	return b.String()
}

// DeserializeTime parses the XSD time grammar. A minute field of 60 or more
// carries into the hour. An offset whose minute component is 60 or more, or
// whose hour component is above 24, yields no value, as does any other
// malformed input.
func DeserializeTime(value string) (Time, bool) {
	match := timeRegexp.FindStringSubmatch(strings.TrimSpace(value))
	if match == nil {
		return Time{}, false
	}

	result := Time{
		Hour:   mustAtoi(match[1]),
		Minute: mustAtoi(match[2]),
		Second: mustAtoi(match[3]),
	}
	if result.Minute >= 60 {
		result.Hour += result.Minute / 60
		result.Minute %= 60
	}
	if match[4] != "" {
		result.Millisecond = parseFraction(match[4])
		result.HasMillisecond = true
	}
	if match[5] != "" {
		result.HasTimezone = true
		if match[5] != "Z" {
			sign := 1
			if match[5][0] == '-' {
				sign = -1
			}
			hourOffset := mustAtoi(match[5][1:3])
			minuteOffset := mustAtoi(match[5][4:6])
			if hourOffset > 24 || minuteOffset >= 60 {
				return Time{}, false
			}
			result.TimezoneHourOffset = sign * hourOffset
			result.TimezoneMinuteOffset = minuteOffset
		}
	}
	return result, true
}

// formatYear renders a year with at least four digits, preserving the sign.
func formatYear(year int) string {
	sign := ""
	if year < 0 {
		sign = "-"
		year = -year
	}
	return fmt.Sprintf("%s%04d", sign, year)
}

// parseFraction converts a ".ddd..." fractional-second capture to whole
// milliseconds, truncating anything finer.
func parseFraction(fraction string) int {
	if fraction == "" {
		return 0
	}
	digits := fraction[1:]
	if len(digits) > 3 {
		digits = digits[:3]
	}
	for len(digits) < 3 {
		digits += "0"
	}
	return mustAtoi(digits)
}

// parseOffsetMinutes converts an offset capture ("", "Z" or "±HH:MM") to
// signed minutes east of UTC.
func parseOffsetMinutes(offset string) (int, bool) {
	if offset == "" || offset == "Z" {
		return 0, true
	}
	sign := 1
	if offset[0] == '-' {
		sign = -1
	}
	hours := mustAtoi(offset[1:3])
	minutes := mustAtoi(offset[4:6])
	if hours > 24 || minutes >= 60 {
		return 0, false
	}
	return sign * (hours*60 + minutes), true
}

// formatOffset renders a seconds-east-of-UTC offset as "Z" or "±HH:MM".
func formatOffset(seconds int) string {
	if seconds == 0 {
		return "Z"
	}
	sign := "+"
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	return fmt.Sprintf("%s%02d:%02d", sign, seconds/3600, (seconds%3600)/60)
}

// mustAtoi parses digits already vetted by a regexp capture.
func mustAtoi(digits string) int {
	n, err := strconv.Atoi(digits)
	if err != nil {
		panic("xsd: non-numeric capture: " + digits)
	}
	return n
}
