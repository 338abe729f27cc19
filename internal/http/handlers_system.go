package http

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"retiresaveup/internal/cache"
	"retiresaveup/internal/log"
	"retiresaveup/internal/middleware/ratelimit"
	"retiresaveup/internal/middleware/security"
	"retiresaveup/internal/middleware/trace"
)

// PerformanceReport is the process diagnostics snapshot.
type PerformanceReport struct {
	Time    string `json:"time"`
	Memory  string `json:"memory"`
	Threads int    `json:"threads"`
}

// MetricsReport aggregates the counters of the middleware and caches.
type MetricsReport struct {
	Requests   trace.Metrics             `json:"requests"`
	RateLimit  ratelimit.Metrics         `json:"rateLimit"`
	Security   security.DetectionMetrics `json:"security"`
	ReturnsLRU cache.Stats               `json:"returnsCache"`
}

const readyTimeout = 2 * time.Second

func handleHealth(w http.ResponseWriter, r *http.Request) {
	NewJSONResponse().Body(map[string]string{"status": "ok"}).Write(w)
}

// handleReady reports ready only while the history store answers.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	if err := s.history.Ping(ctx); err != nil {
		s.logger.WarnContext(ctx, "Readiness check failed", log.FieldError, err.Error())
		ErrorResponse(http.StatusServiceUnavailable, "history store unavailable").Write(w)
		return
	}
	NewJSONResponse().Body(map[string]string{"status": "ready"}).Write(w)
}

// handlePerformance reports uptime, memory obtained from the OS and the
// number of goroutines.
func (s *Server) handlePerformance(w http.ResponseWriter, r *http.Request) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	NewJSONResponse().Body(PerformanceReport{
		Time:    formatUptime(time.Since(s.startedAt)),
		Memory:  formatMegabytes(mem.Sys),
		Threads: runtime.NumGoroutine(),
	}).Write(w)
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	NewJSONResponse().Body(MetricsReport{
		Requests:   s.tracer.GetMetrics(),
		RateLimit:  s.limiter.GetMetrics(),
		Security:   s.detector.GetMetrics(),
		ReturnsLRU: s.returnsCache.Stats(),
	}).Write(w)
}
