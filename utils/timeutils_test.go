package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIso8601(t *testing.T) {
	berlin := time.FixedZone("CEST", 2*60*60)
	tests := []struct {
		name     string
		input    time.Time
		expected string
	}{
		{name: "utc", input: time.Date(2025, 10, 19, 19, 2, 0, 0, time.UTC), expected: "2025-10-19T19:02:00Z"},
		{name: "offset converted to utc", input: time.Date(2025, 10, 19, 21, 2, 0, 0, berlin), expected: "2025-10-19T19:02:00Z"},
		{name: "sub-second dropped", input: time.Date(2025, 10, 19, 19, 2, 0, 999_000_000, time.UTC), expected: "2025-10-19T19:02:00Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Iso8601(tt.input))
		})
	}
}

func TestIsoFormat(t *testing.T) {
	berlin := time.FixedZone("CEST", 2*60*60)
	tests := []struct {
		name     string
		input    time.Time
		expected string
	}{
		{name: "utc", input: time.Date(2025, 10, 19, 19, 2, 0, 0, time.UTC), expected: "2025-10-19T19:02:00+00:00"},
		{name: "offset converted to utc", input: time.Date(2025, 10, 19, 21, 2, 0, 0, berlin), expected: "2025-10-19T19:02:00+00:00"},
		{name: "sub-second dropped", input: time.Date(2025, 10, 19, 19, 2, 0, 999_000_000, time.UTC), expected: "2025-10-19T19:02:00+00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsoFormat(tt.input))
		})
	}
}

func TestIso8601FromUnixSeconds(t *testing.T) {
	tests := []struct {
		name     string
		input    int64
		expected string
	}{
		{name: "epoch", input: 0, expected: "1970-01-01T00:00:00Z"},
		{name: "specific timestamp", input: 1696320000, expected: "2023-10-03T08:00:00Z"},
		{name: "negative timestamp", input: -86400, expected: "1969-12-31T00:00:00Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Iso8601FromUnixSeconds(tt.input))
		})
	}
}

func TestIso8601DateFromUnixSeconds(t *testing.T) {
	assert.Equal(t, "1970-01-01", Iso8601DateFromUnixSeconds(0))
	assert.Equal(t, "2023-10-03", Iso8601DateFromUnixSeconds(1696320000))
}

func TestValidUntilFrom(t *testing.T) {
	tests := []struct {
		name       string
		baseEpoch  int64
		intervalMS int
		expected   string
	}{
		{name: "valid calculation", baseEpoch: 1696320000, intervalMS: 30000, expected: "2023-10-03T08:00:30Z"},
		{name: "zero base epoch", baseEpoch: 0, intervalMS: 30000, expected: ""},
		{name: "negative interval", baseEpoch: 1696320000, intervalMS: -30000, expected: ""},
		{name: "zero interval", baseEpoch: 1696320000, intervalMS: 0, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidUntilFrom(tt.baseEpoch, tt.intervalMS))
		})
	}
}

func TestFormatDelayAsISO8601Duration(t *testing.T) {
	tests := []struct {
		name         string
		delaySeconds int64
		expected     string
	}{
		{name: "zero delay", delaySeconds: 0, expected: "PT0S"},
		{name: "positive seconds only", delaySeconds: 45, expected: "PT45S"},
		{name: "positive minutes and seconds", delaySeconds: 330, expected: "PT5M30S"},
		{name: "positive minutes only", delaySeconds: 300, expected: "PT5M"},
		{name: "positive hours, minutes, seconds", delaySeconds: 7545, expected: "PT2H5M45S"},
		{name: "positive hours only", delaySeconds: 7200, expected: "PT2H"},
		{name: "negative seconds", delaySeconds: -30, expected: "-PT30S"},
		{name: "negative minutes", delaySeconds: -135, expected: "-PT2M15S"},
		{name: "negative hours", delaySeconds: -3665, expected: "-PT1H1M5S"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatDelayAsISO8601Duration(tt.delaySeconds))
		})
	}
}
