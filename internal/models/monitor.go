package models

import "time"

// UpstreamStatus is the latest result of probing the analysis service.
type UpstreamStatus struct {
	Reachable  bool      `json:"reachable"`
	LatencyMS  int64     `json:"latencyMs"`
	CheckedAt  time.Time `json:"checkedAt"`
	LastError  string    `json:"lastError,omitempty"`
	LastChange time.Time `json:"lastChange"`
}

// ProcessStats is a snapshot of the proxy's own resource usage.
type ProcessStats struct {
	CPUPercent float64 `json:"cpuPercent"`
	RSSBytes   uint64  `json:"rssBytes"`
}

// MonitorSnapshot is what the monitor endpoint returns.
type MonitorSnapshot struct {
	Upstream UpstreamStatus `json:"upstream"`
	Process  ProcessStats   `json:"process"`
}
