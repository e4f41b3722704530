// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"fmt"
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/olegiv/folio-admin/internal/entity"
	"github.com/olegiv/folio-admin/internal/middleware"
	"github.com/olegiv/folio-admin/internal/store"
	"github.com/olegiv/folio-admin/internal/version"
)

// Check statuses.
const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	db        *sql.DB
	stores    *entity.Stores
	version   version.Info
	startTime time.Time
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(db *sql.DB, stores *entity.Stores, info version.Info) *HealthHandler {
	return &HealthHandler{
		db:        db,
		stores:    stores,
		version:   info,
		startTime: time.Now(),
	}
}

// HealthStatusPublic is the minimal health response for unauthenticated callers.
type HealthStatusPublic struct {
	Status string `json:"status"`
}

// HealthStatus represents the overall health status (authenticated callers only).
type HealthStatus struct {
	Status      string                `json:"status"`
	Timestamp   time.Time             `json:"timestamp"`
	Uptime      string                `json:"uptime"`
	Version     string                `json:"version"`
	Checks      map[string]Check      `json:"checks"`
	Collections map[string]Collection `json:"collections,omitempty"`
	System      *SystemInfo           `json:"system,omitempty"`
}

// Check represents a single health check result.
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// Collection reports the cache state of one entity store.
type Collection struct {
	Status string `json:"status"`
	Items  int    `json:"items"`
	Error  string `json:"error,omitempty"`
}

// SystemInfo contains system-level information.
type SystemInfo struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutines"`
	NumCPU       int    `json:"num_cpus"`
	MemAlloc     string `json:"mem_alloc"`
	MemSys       string `json:"mem_sys"`
}

// Health handles GET /health requests.
// Returns minimal status for unauthenticated callers, full details for signed-in ones.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	dbCheck := h.checkDatabase()

	overallStatus := statusHealthy
	code := http.StatusOK
	if dbCheck.Status != statusHealthy {
		overallStatus = "degraded"
		code = http.StatusServiceUnavailable
	}

	if !middleware.GetAuth(r).IsAuthenticated() {
		writeJSON(w, code, HealthStatusPublic{Status: overallStatus})
		return
	}

	status := HealthStatus{
		Status:    overallStatus,
		Timestamp: time.Now().UTC(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Version:   h.version.Label(),
		Checks: map[string]Check{
			"database":   dbCheck,
			"migrations": h.checkMigrations(),
			"sessions":   h.checkSessions(),
		},
		Collections: h.collections(),
	}

	if r.URL.Query().Get("verbose") == "true" {
		status.System = h.getSystemInfo()
	}

	writeJSON(w, code, status)
}

// Liveness handles GET /health/live - simple liveness check.
func (h *HealthHandler) Liveness(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// Readiness handles GET /health/ready - checks if the service is ready to accept traffic.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	dbCheck := h.checkDatabase()
	if dbCheck.Status == statusHealthy {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
		return
	}

	resp := map[string]string{"status": "not_ready"}
	// Only include error details for signed-in callers
	if middleware.GetAuth(r).IsAuthenticated() {
		resp["message"] = dbCheck.Message
	}
	writeJSON(w, http.StatusServiceUnavailable, resp)
}

// checkDatabase verifies database connectivity.
func (h *HealthHandler) checkDatabase() Check {
	start := time.Now()

	err := h.db.Ping()
	latency := time.Since(start)

	if err != nil {
		return Check{
			Status:  statusUnhealthy,
			Message: err.Error(),
			Latency: latency.String(),
		}
	}

	return Check{
		Status:  statusHealthy,
		Message: "Connected",
		Latency: latency.String(),
	}
}

// checkMigrations reports the applied schema version.
func (h *HealthHandler) checkMigrations() Check {
	v, err := store.Version(h.db)
	if err != nil {
		return Check{Status: statusUnhealthy, Message: err.Error()}
	}
	return Check{Status: statusHealthy, Message: "version " + strconv.FormatInt(v, 10)}
}

// checkSessions reports the number of live sessions.
func (h *HealthHandler) checkSessions() Check {
	n, err := store.CountSessions(h.db, time.Now())
	if err != nil {
		return Check{Status: statusUnhealthy, Message: err.Error()}
	}
	return Check{Status: statusHealthy, Message: fmt.Sprintf("%d active", n)}
}

// collections reports the cache state of every entity store.
func (h *HealthHandler) collections() map[string]Collection {
	if h.stores == nil {
		return nil
	}
	out := make(map[string]Collection)
	for _, s := range h.stores.All() {
		st := s.State()
		out[s.Name()] = Collection{
			Status: string(st.Fetch.Status),
			Items:  len(st.Items),
			Error:  st.Fetch.Error,
		}
	}
	return out
}

// getSystemInfo returns system-level metrics.
func (h *HealthHandler) getSystemInfo() *SystemInfo {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return &SystemInfo{
		GoVersion:    runtime.Version(),
		NumGoroutine: runtime.NumGoroutine(),
		NumCPU:       runtime.NumCPU(),
		MemAlloc:     formatBytes(m.Alloc),
		MemSys:       formatBytes(m.Sys),
	}
}

// formatBytes converts bytes to a human-readable string.
func formatBytes(bytes uint64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.2f GB", float64(bytes)/GB)
	case bytes >= MB:
		return fmt.Sprintf("%.2f MB", float64(bytes)/MB)
	case bytes >= KB:
		return fmt.Sprintf("%.2f KB", float64(bytes)/KB)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
