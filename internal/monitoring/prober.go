package monitoring

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/akumar-dev/tweetpulse-be/internal/models"
	"github.com/akumar-dev/tweetpulse-be/internal/services"
	"github.com/akumar-dev/tweetpulse-be/internal/upstream"
)

// Prober periodically pings the analysis service and keeps the latest
// reachability and resource snapshot for the monitor endpoint. Probe
// timing follows a standard cron expression from configuration.
type Prober struct {
	client   *upstream.Client
	eventSvc services.EventServiceProvider
	schedule cron.Schedule
	proc     *process.Process

	mu       sync.RWMutex
	snapshot models.MonitorSnapshot

	done chan bool
}

// NewProber creates a prober. The expression must be a standard 5-field
// cron spec.
func NewProber(client *upstream.Client, eventSvc services.EventServiceProvider, expression string) (*Prober, error) {
	schedule, err := cron.ParseStandard(expression)
	if err != nil {
		return nil, err
	}

	// Process handle for self-inspection; stats are best-effort.
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		proc = nil
	}

	return &Prober{
		client:   client,
		eventSvc: eventSvc,
		schedule: schedule,
		proc:     proc,
		done:     make(chan bool),
	}, nil
}

// Run starts the probe loop. Call from a goroutine.
func (p *Prober) Run() {
	log.Info().Msg("Starting upstream prober...")

	// Probe once immediately on start.
	p.probe()

	for {
		next := p.schedule.Next(time.Now())
		timer := time.NewTimer(time.Until(next))
		select {
		case <-p.done:
			timer.Stop()
			log.Info().Msg("Stopping upstream prober.")
			return
		case <-timer.C:
			p.probe()
		}
	}
}

// Stop halts the probe loop.
func (p *Prober) Stop() {
	p.done <- true
}

// Snapshot returns the latest probe result and process stats.
func (p *Prober) Snapshot() models.MonitorSnapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snapshot
}

func (p *Prober) probe() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	started := time.Now()
	err := p.client.Ping(ctx)
	latency := time.Since(started)

	p.mu.Lock()
	prev := p.snapshot.Upstream
	status := models.UpstreamStatus{
		Reachable:  err == nil,
		LatencyMS:  latency.Milliseconds(),
		CheckedAt:  time.Now().UTC(),
		LastChange: prev.LastChange,
	}
	if err != nil {
		status.LastError = err.Error()
	}
	changed := prev.Reachable != status.Reachable || prev.CheckedAt.IsZero()
	if changed {
		status.LastChange = status.CheckedAt
	}
	p.snapshot.Upstream = status
	p.snapshot.Process = p.processStats()
	p.mu.Unlock()

	if changed {
		p.recordTransition(status)
	}
}

func (p *Prober) processStats() models.ProcessStats {
	var stats models.ProcessStats
	if p.proc == nil {
		return stats
	}
	if cpu, err := p.proc.CPUPercent(); err == nil {
		stats.CPUPercent = cpu
	}
	if mem, err := p.proc.MemoryInfo(); err == nil && mem != nil {
		stats.RSSBytes = mem.RSS
	}
	return stats
}

func (p *Prober) recordTransition(status models.UpstreamStatus) {
	if status.Reachable {
		log.Info().Int64("latency_ms", status.LatencyMS).Msg("Upstream analysis service reachable")
		if err := p.eventSvc.CreateEvent("upstream.up", "info", "Analysis service is reachable", nil); err != nil {
			log.Error().Err(err).Msg("Failed to record upstream event")
		}
		return
	}
	log.Warn().Str("error", status.LastError).Msg("Upstream analysis service unreachable")
	if err := p.eventSvc.CreateEvent("upstream.down", "warn", "Analysis service is unreachable", nil); err != nil {
		log.Error().Err(err).Msg("Failed to record upstream event")
	}
}
