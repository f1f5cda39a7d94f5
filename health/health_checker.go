// Package health provides health checking functionality for the medinfo API.
package health

import (
	"context"
	"math"
	"net/http"
	"time"

	"github.com/medinfo/medinfo-api/interfaces"
)

// CatalogCounter exposes the catalog size check the health report needs.
type CatalogCounter interface {
	CountMedicines(ctx context.Context) (int, error)
}

// HealthCheckerImpl implements the interfaces.HealthChecker interface
type HealthCheckerImpl struct {
	dataStore interfaces.DataStore
	catalog   CatalogCounter
}

// NewHealthChecker creates a new health checker with injected dependencies
func NewHealthChecker(dataStore interfaces.DataStore, catalog CatalogCounter) interfaces.HealthChecker {
	return &HealthCheckerImpl{
		dataStore: dataStore,
		catalog:   catalog,
	}
}

// HealthCheck returns HTTP-specific health data with stricter thresholds
// Used by /health HTTP endpoint
func (h *HealthCheckerImpl) HealthCheck(ctx context.Context) (status string, data map[string]any, httpStatus int) {
	kendraList := h.dataStore.GetKendras()
	lastUpdate := h.dataStore.GetLastUpdated()
	isUpdating := h.dataStore.IsUpdating()
	uptime := time.Since(h.dataStore.GetServerStartTime())

	catalogSize := 0
	catalogOK := true
	if h.catalog != nil {
		n, err := h.catalog.CountMedicines(ctx)
		if err != nil {
			catalogOK = false
		} else {
			catalogSize = n
		}
	}

	dataAge := time.Since(lastUpdate)

	switch {
	case len(kendraList) == 0 || !catalogOK:
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable

	case dataAge > 48*time.Hour:
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable

	case dataAge > 24*time.Hour:
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable

	case isUpdating && dataAge > 6*time.Hour:
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable

	default:
		status = "healthy"
		httpStatus = http.StatusOK
	}

	data = map[string]any{
		"last_update":    lastUpdate.Format(time.RFC3339),
		"data_age_hours": math.Round(dataAge.Hours()*10) / 10,
		"kendras":        len(kendraList),
		"catalog_size":   catalogSize,
		"is_updating":    isUpdating,
		"uptime_hours":   math.Round(uptime.Hours()*10) / 10,
	}

	return status, data, httpStatus
}
