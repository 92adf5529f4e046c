// Package testfixtures builds ASEAG broker payloads for tests.
package testfixtures

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"
)

const (
	DefaultLineName        = "Some Line Name"
	DefaultDestinationText = "Some Destination Text"
	DefaultTrack           = "H.1"
)

// Prediction is one stopPrediction entry. Change fields directly before
// calling Entry.
type Prediction struct {
	LineName        string
	DestinationText string
	TripID          string
	PlannedTime     int64
	ActualTime      int64
	Track           string
}

// NewPrediction returns a prediction on track H.1 departing on time ten
// minutes after now.
func NewPrediction(now time.Time) Prediction {
	return Prediction{
		LineName:        DefaultLineName,
		DestinationText: DefaultDestinationText,
		TripID:          RandomTripID(),
		PlannedTime:     Timestamp(now, 10),
		ActualTime:      Timestamp(now, 10),
		Track:           DefaultTrack,
	}
}

// At returns p with planned and actual time set relative to now.
func (p Prediction) At(now time.Time, plannedMinutes, actualMinutes int) Prediction {
	p.PlannedTime = Timestamp(now, plannedMinutes)
	p.ActualTime = Timestamp(now, actualMinutes)
	return p
}

// Entry wraps p the way the broker does.
func (p Prediction) Entry() map[string]any {
	return map[string]any{
		"stopPrediction": map[string]any{
			"lineName":        p.LineName,
			"destinationText": p.DestinationText,
			"tripId":          p.TripID,
			"plannedTime":     p.PlannedTime,
			"actualTime":      p.ActualTime,
			"track":           p.Track,
		},
	}
}

// APIResponse renders a full area information body.
func APIResponse(predictions ...Prediction) []byte {
	entries := make([]map[string]any, 0, len(predictions))
	for _, p := range predictions {
		entries = append(entries, p.Entry())
	}
	body, err := json.Marshal(map[string]any{
		"departures": map[string]any{"departures": entries},
	})
	if err != nil {
		panic("testfixtures: " + err.Error())
	}
	return body
}

// Timestamp returns now (whole seconds) plus minutes, as epoch milliseconds.
func Timestamp(now time.Time, minutes int) int64 {
	return now.Truncate(time.Second).Add(time.Duration(minutes) * time.Minute).UnixMilli()
}

// RandomTripID mimics the base64 encoded trip ids of the broker.
func RandomTripID() string {
	raw := fmt.Sprintf("1|%d|0|%d|%d", 100000+rand.Intn(900000), 10+rand.Intn(90), 10000000+rand.Intn(90000000))
	return base64.StdEncoding.EncodeToString([]byte(raw))
}

// NewBroker starts a server answering area information requests for stopID
// with body. Every other path returns 404.
func NewBroker(stopID string, body []byte) *httptest.Server {
	path := "/mbroker/rest/areainformation/" + stopID
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || !strings.EqualFold(r.URL.Path, path) {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}))
}
