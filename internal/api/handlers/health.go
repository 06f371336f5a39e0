package handlers

import (
	"context"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jroosing/dyndns/internal/api/models"
	"github.com/jroosing/dyndns/internal/helpers"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

const bytesPerMB = 1024 * 1024

// Health godoc
// @Summary Health check
// @Description Returns ok when the store answers
// @Tags system
// @Produce json
// @Success 200 {object} models.StatusResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /api/v1/health [get]
func (h *Handler) Health(c *gin.Context) {
	if h.db != nil {
		if err := h.db.Health(c.Request.Context()); err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: "database unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, models.StatusResponse{Status: "ok"})
}

// Stats godoc
// @Summary Server statistics
// @Description Returns uptime, goroutines, process memory and host CPU/memory usage
// @Tags system
// @Produce json
// @Success 200 {object} models.ServerStatsResponse
// @Security ApiKeyAuth
// @Router /api/v1/stats [get]
func (h *Handler) Stats(c *gin.Context) {
	ctx := c.Request.Context()

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	uptime := time.Since(h.startTime)

	resp := models.ServerStatsResponse{
		Uptime:        uptime.Round(time.Second).String(),
		UptimeSeconds: int64(uptime.Seconds()),
		StartTime:     h.startTime,
		GoRoutines:    runtime.NumGoroutine(),
		MemoryAllocMB: float64(m.Alloc) / bytesPerMB,
		CPU:           h.cpuStats(ctx),
		Memory:        h.memoryStats(ctx),
	}
	if p, err := process.NewProcessWithContext(ctx, int32(os.Getpid())); err == nil { //nolint:gosec // pid fits int32
		if info, err := p.MemoryInfoWithContext(ctx); err == nil {
			resp.ProcessRSSMB = float64(helpers.ClampUint64ToInt64(info.RSS)) / bytesPerMB
		}
	}
	if h.db != nil {
		if v, err := h.db.SchemaVersion(ctx); err == nil {
			resp.SchemaVersion = v
		}
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) cpuStats(ctx context.Context) models.CPUStats {
	stats := models.CPUStats{NumCPU: runtime.NumCPU()}
	if pct, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(pct) > 0 {
		stats.UsedPercent = pct[0]
		stats.IdlePercent = 100 - pct[0]
	} else if err != nil && h.logger != nil {
		h.logger.Debug("cpu stats unavailable", "err", err)
	}
	return stats
}

func (h *Handler) memoryStats(ctx context.Context) models.MemoryStats {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		if h.logger != nil {
			h.logger.Debug("memory stats unavailable", "err", err)
		}
		return models.MemoryStats{}
	}
	return models.MemoryStats{
		TotalMB:     float64(vm.Total) / bytesPerMB,
		FreeMB:      float64(vm.Available) / bytesPerMB,
		UsedMB:      float64(vm.Used) / bytesPerMB,
		UsedPercent: vm.UsedPercent,
	}
}
