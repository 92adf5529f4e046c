package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/theoremus-urban-solutions/aseag-nextbus/formatter"
	"github.com/theoremus-urban-solutions/aseag-nextbus/sensor"
	"github.com/theoremus-urban-solutions/aseag-nextbus/utils"
)

// ErrorResponse is the body of every non-2xx JSON reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

type healthResponse struct {
	Status      string `json:"status"`
	Sensors     int    `json:"sensors"`
	Failing     int    `json:"failing"`
	LastUpdated string `json:"last_updated,omitempty"`
}

// handleHealth reports "degraded" while any sensor's latest cycle failed.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok"}
	var latest time.Time
	for _, sn := range s.registry.All() {
		snap := sn.Snapshot()
		resp.Sensors++
		if snap.LastError != "" {
			resp.Failing++
		}
		if snap.LastUpdated.After(latest) {
			latest = snap.LastUpdated
		}
	}
	if resp.Failing > 0 {
		resp.Status = "degraded"
	}
	if !latest.IsZero() {
		resp.LastUpdated = utils.Iso8601(latest)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSensors(w http.ResponseWriter, r *http.Request) {
	docs := make([]formatter.SensorDocument, 0, s.registry.Len())
	for _, sn := range s.registry.All() {
		docs = append(docs, formatter.BuildSensorDocument(sn.Snapshot()))
	}
	writeJSON(w, http.StatusOK, docs)
}

func (s *Server) handleSensor(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, formatter.BuildSensorDocument(snap))
}

func (s *Server) handleStopMonitoringJSON(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.lookup(w, r)
	if !ok {
		return
	}
	res := formatter.BuildStopMonitoring(snap, s.now(), s.stopMonitoringOptions())
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(s.builder.BuildJSON(res))
}

func (s *Server) handleStopMonitoringXML(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.lookup(w, r)
	if !ok {
		return
	}
	res := formatter.BuildStopMonitoring(snap, s.now(), s.stopMonitoringOptions())
	w.Header().Set("Content-Type", "application/xml")
	_, _ = w.Write(s.builder.BuildXML(res))
}

func (s *Server) handleTripUpdates(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.lookup(w, r)
	if !ok {
		return
	}
	s.writeFeed(w, snap)
}

func (s *Server) handleAllTripUpdates(w http.ResponseWriter, r *http.Request) {
	all := s.registry.All()
	snaps := make([]sensor.Snapshot, 0, len(all))
	for _, sn := range all {
		snaps = append(snaps, sn.Snapshot())
	}
	s.writeFeed(w, snaps...)
}

func (s *Server) writeFeed(w http.ResponseWriter, snaps ...sensor.Snapshot) {
	data, err := formatter.MarshalTripUpdatesFeed(formatter.BuildTripUpdatesFeed(s.now(), snaps...))
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to encode trip updates")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/x-protobuf")
	_, _ = w.Write(data)
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (sensor.Snapshot, bool) {
	name := chi.URLParam(r, "name")
	sn, ok := s.registry.Get(name)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown sensor: "+name)
		return sensor.Snapshot{}, false
	}
	return sn.Snapshot(), true
}

func (s *Server) stopMonitoringOptions() formatter.StopMonitoringOptions {
	return formatter.StopMonitoringOptions{
		ProducerRef: s.cfg.ProducerRef,
		ValidFor:    s.validFor,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}
