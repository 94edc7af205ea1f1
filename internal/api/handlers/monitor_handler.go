package handlers

import (
	"net/http"

	"github.com/akumar-dev/tweetpulse-be/internal/models"
)

// Snapshotter provides the latest monitor snapshot.
type Snapshotter interface {
	Snapshot() models.MonitorSnapshot
}

// MonitorHandler exposes upstream reachability and process stats.
type MonitorHandler struct {
	prober Snapshotter
}

// NewMonitorHandler creates a new MonitorHandler.
func NewMonitorHandler(prober Snapshotter) *MonitorHandler {
	return &MonitorHandler{prober: prober}
}

// Stats returns the current monitor snapshot.
func (h *MonitorHandler) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.prober.Snapshot())
}
