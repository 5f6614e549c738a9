package handlers

import (
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jroosing/nextdash/internal/api/models"
	"github.com/shirou/gopsutil/v3/process"
)

// Health godoc
// @Summary Health check
// @Description Returns server health status
// @Tags system
// @Produce json
// @Success 200 {object} models.StatusResponse
// @Router /health [get]
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, models.StatusResponse{Status: "ok"})
}

// Stats godoc
// @Summary Server statistics
// @Description Returns runtime statistics including memory, goroutines, process usage and upstream call counters
// @Tags system
// @Produce json
// @Success 200 {object} models.ServerStatsResponse
// @Security ApiKeyAuth
// @Router /stats [get]
func (h *Handler) Stats(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	uptime := time.Since(h.startTime)

	resp := models.ServerStatsResponse{
		Uptime:        uptime.Round(time.Second).String(),
		UptimeSeconds: int64(uptime.Seconds()),
		StartTime:     h.startTime,
		GoRoutines:    runtime.NumGoroutine(),
		MemoryAllocMB: float64(m.Alloc) / 1024 / 1024,
		NumCPU:        runtime.NumCPU(),
		Process:       h.processStats(),
	}

	if h.client != nil {
		s := h.client.Stats()
		resp.Upstream = models.UpstreamStatsResponse{
			Requests:     s.Requests,
			Failures:     s.Failures,
			Degraded:     s.Degraded,
			AvgLatencyMs: s.AvgLatencyMs,
		}
	}

	c.JSON(http.StatusOK, resp)
}

// processStats returns nil when the platform does not expose process metrics.
func (h *Handler) processStats() *models.ProcessStats {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		h.logger.Debug("process stats unavailable", "err", err)
		return nil
	}

	stats := &models.ProcessStats{PID: proc.Pid}
	if mem, err := proc.MemoryInfo(); err == nil {
		stats.RSSMB = float64(mem.RSS) / 1024 / 1024
	}
	if cpu, err := proc.CPUPercent(); err == nil {
		stats.CPUPercent = cpu
	}
	if threads, err := proc.NumThreads(); err == nil {
		stats.NumThreads = threads
	}
	return stats
}
