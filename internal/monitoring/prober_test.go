package monitoring

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akumar-dev/tweetpulse-be/internal/models"
	"github.com/akumar-dev/tweetpulse-be/internal/upstream"
)

type recordingEvents struct {
	mu     sync.Mutex
	events []models.Event
}

func (r *recordingEvents) CreateEvent(eventType, level, message string, username *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, models.Event{Type: eventType, Level: level, Message: message})
	return nil
}

func (r *recordingEvents) GetRecentEvents(limit int) ([]models.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events, nil
}

func (r *recordingEvents) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	types := make([]string, len(r.events))
	for i, e := range r.events {
		types[i] = e.Type
	}
	return types
}

func TestNewProberRejectsBadExpression(t *testing.T) {
	_, err := NewProber(nil, nil, "not a cron spec")
	assert.Error(t, err)
}

func TestProbeRecordsReachableUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	events := &recordingEvents{}
	prober, err := NewProber(upstream.New(srv.URL, 2*time.Second), events, "* * * * *")
	require.NoError(t, err)

	prober.probe()

	snap := prober.Snapshot()
	assert.True(t, snap.Upstream.Reachable)
	assert.False(t, snap.Upstream.CheckedAt.IsZero())
	assert.Empty(t, snap.Upstream.LastError)

	// The first probe is always a transition.
	assert.Equal(t, []string{"upstream.up"}, events.types())
}

func TestProbeRecordsTransitions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))

	events := &recordingEvents{}
	prober, err := NewProber(upstream.New(srv.URL, 500*time.Millisecond), events, "* * * * *")
	require.NoError(t, err)

	prober.probe() // up
	firstChange := prober.Snapshot().Upstream.LastChange

	prober.probe() // still up, no event
	assert.Equal(t, firstChange, prober.Snapshot().Upstream.LastChange)

	srv.Close()
	prober.probe() // down

	snap := prober.Snapshot()
	assert.False(t, snap.Upstream.Reachable)
	assert.NotEmpty(t, snap.Upstream.LastError)
	assert.True(t, snap.Upstream.LastChange.After(firstChange))

	assert.Equal(t, []string{"upstream.up", "upstream.down"}, events.types())
}
