package formatter

import (
	"fmt"
	"time"

	"github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"

	"github.com/theoremus-urban-solutions/aseag-nextbus/sensor"
)

const gtfsrtVersion = "2.0"

// BuildTripUpdatesFeed builds a full-dataset GTFS-Realtime feed with one
// TripUpdate per displayed prediction of each snapshot.
func BuildTripUpdatesFeed(now time.Time, snaps ...sensor.Snapshot) *gtfs.FeedMessage {
	incrementality := gtfs.FeedHeader_FULL_DATASET
	feed := &gtfs.FeedMessage{
		Header: &gtfs.FeedHeader{
			GtfsRealtimeVersion: proto.String(gtfsrtVersion),
			Incrementality:      &incrementality,
			Timestamp:           proto.Uint64(uint64(now.Unix())),
		},
		Entity: []*gtfs.FeedEntity{},
	}

	for _, snap := range snaps {
		for i, p := range snap.Predictions() {
			delaySeconds := int32(p.Delay * 60)
			tripID := p.TripID
			if tripID == "" {
				tripID = fmt.Sprintf("%s-%d", snap.Key, i)
			}
			update := &gtfs.TripUpdate{
				Trip: &gtfs.TripDescriptor{
					TripId:  proto.String(tripID),
					RouteId: proto.String(p.Line),
				},
				StopTimeUpdate: []*gtfs.TripUpdate_StopTimeUpdate{{
					StopId: proto.String(snap.StopID),
					Departure: &gtfs.TripUpdate_StopTimeEvent{
						Delay: proto.Int32(delaySeconds),
						Time:  proto.Int64(p.Departure.Unix()),
					},
				}},
				Delay: proto.Int32(delaySeconds),
			}
			if !snap.LastUpdated.IsZero() {
				update.Timestamp = proto.Uint64(uint64(snap.LastUpdated.Unix()))
			}
			feed.Entity = append(feed.Entity, &gtfs.FeedEntity{
				// trip ids are not unique across sensors or even within one
				Id:         proto.String(fmt.Sprintf("%s:%d:%s", snap.Key, i, tripID)),
				TripUpdate: update,
			})
		}
	}
	return feed
}

// MarshalTripUpdatesFeed encodes a feed as protobuf bytes.
func MarshalTripUpdatesFeed(feed *gtfs.FeedMessage) ([]byte, error) {
	data, err := proto.Marshal(feed)
	if err != nil {
		return nil, fmt.Errorf("marshal GTFS-RT feed: %w", err)
	}
	return data, nil
}
