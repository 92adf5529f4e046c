package utils

import (
	"fmt"
	"strings"
	"time"
)

// Iso8601 formats t as an RFC 3339 UTC instant, e.g. 2025-10-19T19:02:00Z
func Iso8601(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// isoOffsetLayout writes UTC as +00:00 instead of Z.
const isoOffsetLayout = "2006-01-02T15:04:05-07:00"

// IsoFormat formats t as a second-precision UTC instant with a numeric
// offset, e.g. 2025-10-19T19:02:00+00:00. Sensor states use this form.
func IsoFormat(t time.Time) string {
	return t.UTC().Format(isoOffsetLayout)
}

// Iso8601FromUnixSeconds converts Unix timestamp to ISO8601 format
func Iso8601FromUnixSeconds(sec int64) string {
	return time.Unix(sec, 0).UTC().Format(time.RFC3339)
}

// Iso8601DateFromUnixSeconds returns just the date portion in YYYY-MM-DD format
func Iso8601DateFromUnixSeconds(sec int64) string {
	return time.Unix(sec, 0).UTC().Format("2006-01-02")
}

// ValidUntilFrom calculates the valid until timestamp
func ValidUntilFrom(baseEpoch int64, intervalMS int) string {
	if baseEpoch <= 0 || intervalMS <= 0 {
		return ""
	}
	return Iso8601FromUnixSeconds(baseEpoch + int64(intervalMS/1000))
}

// FormatDelayAsISO8601Duration renders a signed delay like -PT2M15S.
func FormatDelayAsISO8601Duration(delaySeconds int64) string {
	if delaySeconds == 0 {
		return "PT0S"
	}
	sign := ""
	if delaySeconds < 0 {
		sign = "-"
		delaySeconds = -delaySeconds
	}
	h := delaySeconds / 3600
	m := (delaySeconds % 3600) / 60
	s := delaySeconds % 60

	var b strings.Builder
	b.WriteString(sign)
	b.WriteString("PT")
	if h > 0 {
		fmt.Fprintf(&b, "%dH", h)
	}
	if m > 0 {
		fmt.Fprintf(&b, "%dM", m)
	}
	if s > 0 {
		fmt.Fprintf(&b, "%dS", s)
	}
	return b.String()
}
