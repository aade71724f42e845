// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package schemaorg

import (
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"go.uber.org/zap"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "3:04 PM"
)

// clockPattern detects text that carries a time of day. Date-only values
// ("2026-01-30") parse to midnight, which is not a real clock reading.
var clockPattern = regexp.MustCompile(`(?i)\d{1,2}:\d{2}|\d\s*[ap]\.?m\b`)

// timeOnlyLayouts cover values such as checkinTime "15:00" that carry no
// calendar date.
var timeOnlyLayouts = []string{
	"15:04",
	"15:04:05",
	"3:04 PM",
	"3:04PM",
	"3 PM",
	"3PM",
}

// ParseDate returns the calendar date of a date/time value as YYYY-MM-DD,
// keeping the value's own UTC offset. It returns "" when the value does
// not parse.
func ParseDate(n Node) string {
	t, ok := parseDateTime(n.Text())
	if !ok || t.Year() == 0 {
		return ""
	}
	return FormatDate(t)
}

// ParseClockTime returns the time of day of a date/time value in 12-hour
// form ("2:00 PM"). It returns "" when the value does not parse or carries
// no time of day.
func ParseClockTime(n Node) string {
	s := n.Text()
	if s == "" || !clockPattern.MatchString(s) {
		return ""
	}
	upper := strings.ToUpper(s)
	for _, layout := range timeOnlyLayouts {
		if t, err := time.Parse(layout, upper); err == nil {
			return FormatClock(t)
		}
	}
	if t, ok := parseDateTime(s); ok {
		return FormatClock(t)
	}
	zap.L().Named("schemaorg").Debug("unparseable time", zap.String("value", s))
	return ""
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// FormatClock renders t as "3:04 PM".
func FormatClock(t time.Time) string {
	return t.Format(clockLayout)
}

// SplitDateTime resolves the date and clock parts of one value.
func SplitDateTime(n Node) (date, clock string) {
	return ParseDate(n), ParseClockTime(n)
}

func parseDateTime(s string) (t time.Time, ok bool) {
	if s == "" {
		return time.Time{}, false
	}
	// dateparse has panicked on malformed input in the past.
	defer func() {
		if r := recover(); r != nil {
			zap.L().Named("schemaorg").Debug("date parser panic", zap.String("value", s), zap.Any("panic", r))
			t, ok = time.Time{}, false
		}
	}()
	t, err := dateparse.ParseAny(s, dateparse.RetryAmbiguousDateWithSwap(true))
	if err != nil {
		zap.L().Named("schemaorg").Debug("unparseable date", zap.String("value", s), zap.Error(err))
		return time.Time{}, false
	}
	return t, true
}
