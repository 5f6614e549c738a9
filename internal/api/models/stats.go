package models

import "time"

// ServerStatsResponse contains server runtime statistics.
type ServerStatsResponse struct {
	Uptime        string                `json:"uptime"`
	UptimeSeconds int64                 `json:"uptime_seconds"`
	StartTime     time.Time             `json:"start_time"`
	GoRoutines    int                   `json:"goroutines"`
	MemoryAllocMB float64               `json:"memory_alloc_mb"`
	NumCPU        int                   `json:"num_cpu"`
	Process       *ProcessStats         `json:"process,omitempty"`
	Upstream      UpstreamStatsResponse `json:"upstream"`
}

// ProcessStats is the operating-system view of the server process.
type ProcessStats struct {
	PID        int32   `json:"pid"`
	RSSMB      float64 `json:"rss_mb"`
	CPUPercent float64 `json:"cpu_percent"`
	NumThreads int32   `json:"num_threads"`
}

// UpstreamStatsResponse contains counters of calls made to the upstream API.
type UpstreamStatsResponse struct {
	Requests     uint64  `json:"requests_total"`
	Failures     uint64  `json:"failures_total"`
	Degraded     uint64  `json:"degraded_total"`
	AvgLatencyMs float64 `json:"avg_latency_ms"`
}
