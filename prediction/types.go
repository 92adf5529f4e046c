package prediction

import (
	"fmt"
	"strings"
	"time"
)

// Prediction is a normalized departure.
type Prediction struct {
	Line        string
	Destination string
	TripID      string
	Track       string
	// Departure is the predicted (actual) departure, UTC, whole seconds.
	Departure time.Time
	// Planned is the scheduled departure, UTC, whole seconds.
	Planned time.Time
	// Delay in minutes, negative when early.
	Delay int
}

// Mode selects the DisplayState variant.
type Mode int

const (
	ModeSingle Mode = iota + 1
	ModeList
)

func (m Mode) String() string {
	switch m {
	case ModeSingle:
		return "single"
	case ModeList:
		return "list"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode accepts "single" and "list", case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "single":
		return ModeSingle, nil
	case "list":
		return ModeList, nil
	}
	return 0, fmt.Errorf("unknown mode %q (expected single or list)", s)
}

// Options controls Select.
type Options struct {
	// Track keeps only predictions on this track. Empty keeps all.
	Track string
	Mode  Mode
	// MaxPredictions bounds list mode. Zero or negative means unbounded.
	MaxPredictions int
}
