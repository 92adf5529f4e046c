package sensor_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theoremus-urban-solutions/aseag-nextbus/aseag"
	"github.com/theoremus-urban-solutions/aseag-nextbus/internal/testfixtures"
	"github.com/theoremus-urban-solutions/aseag-nextbus/prediction"
	"github.com/theoremus-urban-solutions/aseag-nextbus/sensor"
)

// scriptedFetcher returns its responses in order and repeats the last one.
type scriptedFetcher struct {
	mu        sync.Mutex
	responses []fetchResponse
	calls     int
}

type fetchResponse struct {
	predictions []aseag.RawPrediction
	err         error
}

func (f *scriptedFetcher) Fetch(_ context.Context, _ string) ([]aseag.RawPrediction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.responses) == 0 {
		f.calls++
		return nil, nil
	}
	i := f.calls
	if i >= len(f.responses) {
		i = len(f.responses) - 1
	}
	f.calls++
	return f.responses[i].predictions, f.responses[i].err
}

func newSensor(t *testing.T, mode prediction.Mode, fetcher sensor.Fetcher, opts ...sensor.Option) *sensor.Sensor {
	t.Helper()
	opts = append([]sensor.Option{sensor.WithLogger(zerolog.Nop())}, opts...)
	return sensor.New("Sensor", "12345", prediction.Options{Track: "H.1", Mode: mode}, fetcher, opts...)
}

// expectedInstant renders now+minutes the way sensor states are compared by
// consumers: second precision with a +00:00 offset.
func expectedInstant(now time.Time, minutes int) string {
	return now.UTC().Truncate(time.Second).Add(time.Duration(minutes)*time.Minute).Format("2006-01-02T15:04:05") + "+00:00"
}

func TestSensor_SingleMode(t *testing.T) {
	now := time.Now()
	p := testfixtures.NewPrediction(now).At(now, 3, 3)
	p.LineName = "1"
	p.DestinationText = "One"

	broker := testfixtures.NewBroker("12345", testfixtures.APIResponse(p))
	defer broker.Close()

	s := newSensor(t, prediction.ModeSingle, aseag.NewClient(aseag.WithBaseURL(broker.URL)))
	require.NoError(t, s.Update(context.Background()))

	assert.Equal(t, "Sensor 12345 H.1", s.Name())
	assert.Equal(t, "mdi:bus", s.Icon())
	assert.Equal(t, "timestamp", s.DeviceClass())
	assert.Equal(t, expectedInstant(now, 3), s.State())

	attrs := s.Attributes()
	assert.Equal(t, 0, attrs["delay"])
	assert.Equal(t, "1", attrs["line"])
	assert.Equal(t, "One", attrs["destination"])
	assert.Equal(t, "Data provided by ASEAG", attrs["attribution"])
}

func TestSensor_StateUsesNumericUTCOffset(t *testing.T) {
	now := time.Now()
	p := testfixtures.NewPrediction(now).At(now, 3, 3)

	broker := testfixtures.NewBroker("12345", testfixtures.APIResponse(p))
	defer broker.Close()

	s := newSensor(t, prediction.ModeSingle, aseag.NewClient(aseag.WithBaseURL(broker.URL)))
	require.NoError(t, s.Update(context.Background()))

	state, ok := s.State().(string)
	require.True(t, ok)
	assert.Equal(t, expectedInstant(now, 3), state)
	assert.True(t, strings.HasSuffix(state, "+00:00"), state)
	assert.False(t, strings.HasSuffix(state, "Z"), state)
}

func TestSensor_ListMode(t *testing.T) {
	now := time.Now()
	one := testfixtures.NewPrediction(now).At(now, 5, 5)
	one.LineName = "1"
	one.DestinationText = "One"
	two := testfixtures.NewPrediction(now).At(now, 10, 10)
	two.LineName = "2"
	two.DestinationText = "Two"

	broker := testfixtures.NewBroker("12345", testfixtures.APIResponse(two, one))
	defer broker.Close()

	s := newSensor(t, prediction.ModeList, aseag.NewClient(aseag.WithBaseURL(broker.URL)))
	require.NoError(t, s.Update(context.Background()))

	assert.Equal(t, "Sensor 12345 H.1", s.Name())
	assert.Equal(t, "mdi:bus", s.Icon())
	assert.Equal(t, "", s.DeviceClass())
	assert.Equal(t, 2, s.State())

	attrs := s.Attributes()
	assert.Equal(t, "Data provided by ASEAG", attrs["attribution"])
	items, ok := attrs["predictions"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, items, 2)

	assert.Equal(t, expectedInstant(now, 5), items[0]["departure"])
	assert.Equal(t, 0, items[0]["delay"])
	assert.Equal(t, "1", items[0]["line"])
	assert.Equal(t, "One", items[0]["destination"])

	assert.Equal(t, expectedInstant(now, 10), items[1]["departure"])
	assert.Equal(t, 0, items[1]["delay"])
	assert.Equal(t, "2", items[1]["line"])
	assert.Equal(t, "Two", items[1]["destination"])
}

func TestSensor_BeforeFirstUpdate(t *testing.T) {
	s := newSensor(t, prediction.ModeSingle, &scriptedFetcher{})

	assert.Nil(t, s.State())
	assert.Nil(t, s.Display())
	assert.Equal(t, map[string]any{"attribution": "Data provided by ASEAG"}, s.Attributes())
	assert.True(t, s.LastUpdated().IsZero())

	snap := s.Snapshot()
	assert.Nil(t, snap.Display)
	assert.Nil(t, snap.State)
	assert.Empty(t, snap.Predictions())
}

func TestSensor_NoMatchingPredictions(t *testing.T) {
	now := time.Now()
	p := testfixtures.NewPrediction(now)
	p.Track = "H.2"
	broker := testfixtures.NewBroker("12345", testfixtures.APIResponse(p))
	defer broker.Close()

	s := newSensor(t, prediction.ModeSingle, aseag.NewClient(aseag.WithBaseURL(broker.URL)))
	require.NoError(t, s.Update(context.Background()))

	assert.Nil(t, s.State())
	assert.NotNil(t, s.Display())
	assert.Equal(t, map[string]any{"attribution": "Data provided by ASEAG"}, s.Attributes())
}

func TestSensor_FailedUpdateKeepsState(t *testing.T) {
	base := time.Date(2025, 10, 19, 18, 0, 0, 0, time.UTC)
	clock := base
	good := []aseag.RawPrediction{{
		LineName:        "33",
		DestinationText: "Vaals",
		PlannedTime:     base.Add(5 * time.Minute).UnixMilli(),
		ActualTime:      base.Add(7 * time.Minute).UnixMilli(),
		Track:           "H.1",
	}}
	transportErr := &aseag.FetchError{Kind: aseag.KindTransport, StopID: "12345", StatusCode: 503}
	fetcher := &scriptedFetcher{responses: []fetchResponse{
		{predictions: good},
		{err: transportErr},
		{predictions: nil},
	}}

	s := newSensor(t, prediction.ModeSingle, fetcher, sensor.WithClock(func() time.Time { return clock }))

	require.NoError(t, s.Update(context.Background()))
	before := s.Snapshot()
	assert.Equal(t, "2025-10-19T18:07:00+00:00", before.State)

	clock = base.Add(time.Minute)
	err := s.Update(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, aseag.ErrTransport)

	after := s.Snapshot()
	assert.Equal(t, before.State, after.State)
	assert.Equal(t, before.Attributes, after.Attributes)
	assert.Equal(t, base, after.LastUpdated)
	assert.Equal(t, base.Add(time.Minute), after.LastAttempt)
	assert.Contains(t, after.LastError, "HTTP 503")
	assert.True(t, errors.Is(s.LastError(), aseag.ErrTransport))

	clock = base.Add(2 * time.Minute)
	require.NoError(t, s.Update(context.Background()))
	assert.Nil(t, s.State())
	assert.NoError(t, s.LastError())
	assert.Equal(t, base.Add(2*time.Minute), s.LastUpdated())
}

func TestSensor_FailedFirstUpdate(t *testing.T) {
	fetcher := &scriptedFetcher{responses: []fetchResponse{
		{err: &aseag.FetchError{Kind: aseag.KindMalformedPayload, StopID: "12345", Err: errors.New("not json")}},
	}}
	s := newSensor(t, prediction.ModeList, fetcher)

	err := s.Update(context.Background())
	assert.ErrorIs(t, err, aseag.ErrMalformedPayload)
	assert.Nil(t, s.State())
	assert.Nil(t, s.Display())
}

func TestSensor_NameWithoutTrack(t *testing.T) {
	s := sensor.New("Bus", "12345", prediction.Options{Mode: prediction.ModeList}, &scriptedFetcher{}, sensor.WithLogger(zerolog.Nop()))
	assert.Equal(t, "Bus 12345", s.Name())
	assert.Equal(t, "Bus", s.Key())
	assert.Equal(t, "12345", s.StopID())
}

func TestSensor_ConcurrentReads(t *testing.T) {
	now := time.Now()
	fetcher := &scriptedFetcher{responses: []fetchResponse{{predictions: []aseag.RawPrediction{{
		LineName:    "1",
		PlannedTime: testfixtures.Timestamp(now, 1),
		ActualTime:  testfixtures.Timestamp(now, 1),
		Track:       "H.1",
	}}}}}
	s := newSensor(t, prediction.ModeList, fetcher)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = s.Update(context.Background())
		}()
		go func() {
			defer wg.Done()
			_ = s.Snapshot()
			_ = s.Attributes()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, s.State())
	assert.Equal(t, 4, fetcher.calls)
}
