package prediction

import (
	"github.com/theoremus-urban-solutions/aseag-nextbus/aseag"
	"github.com/theoremus-urban-solutions/aseag-nextbus/utils"
)

// Attribute keys shared by both display modes.
const (
	AttrDeparture   = "departure"
	AttrDelay       = "delay"
	AttrLine        = "line"
	AttrDestination = "destination"
	AttrPredictions = "predictions"
)

// DisplayState is either Single or List. The set is closed; switch on the
// concrete type to handle both.
type DisplayState interface {
	Mode() Mode
	// State is the scalar value shown for the sensor: an ISO-8601 instant
	// string (+00:00 offset) or nil for Single, the number of predictions for List.
	State() any
	// Attributes returns a fresh map on every call.
	Attributes() map[string]any
	displayState()
}

// Single shows the next departure only. Next is nil when nothing matched.
type Single struct {
	Next *Prediction
}

func (Single) Mode() Mode    { return ModeSingle }
func (Single) displayState() {}

func (s Single) State() any {
	if s.Next == nil {
		return nil
	}
	return utils.IsoFormat(s.Next.Departure)
}

func (s Single) Attributes() map[string]any {
	if s.Next == nil {
		return map[string]any{}
	}
	return map[string]any{
		AttrDelay:       s.Next.Delay,
		AttrLine:        s.Next.Line,
		AttrDestination: s.Next.Destination,
	}
}

// List shows the upcoming departures, earliest first.
type List struct {
	Predictions []Prediction
}

func (List) Mode() Mode    { return ModeList }
func (List) displayState() {}

func (l List) State() any {
	return len(l.Predictions)
}

func (l List) Attributes() map[string]any {
	items := make([]map[string]any, 0, len(l.Predictions))
	for _, p := range l.Predictions {
		items = append(items, map[string]any{
			AttrDeparture:   utils.IsoFormat(p.Departure),
			AttrDelay:       p.Delay,
			AttrLine:        p.Line,
			AttrDestination: p.Destination,
		})
	}
	return map[string]any{AttrPredictions: items}
}

// Predictions returns the predictions a DisplayState shows, earliest first.
func Predictions(ds DisplayState) []Prediction {
	switch v := ds.(type) {
	case Single:
		if v.Next == nil {
			return nil
		}
		return []Prediction{*v.Next}
	case List:
		return v.Predictions
	}
	return nil
}

// Select normalizes, filters and sorts raw, then builds the DisplayState for
// opts.Mode. Any mode other than ModeList selects Single.
func Select(raw []aseag.RawPrediction, opts Options) DisplayState {
	predictions := FilterTrack(NormalizeAll(raw), opts.Track)
	SortByDeparture(predictions)

	if opts.Mode == ModeList {
		if opts.MaxPredictions > 0 && len(predictions) > opts.MaxPredictions {
			predictions = predictions[:opts.MaxPredictions]
		}
		return List{Predictions: predictions}
	}

	if len(predictions) == 0 {
		return Single{}
	}
	next := predictions[0]
	return Single{Next: &next}
}
