// Package interfaces defines core abstractions for the medinfo API to
// improve testability and separation of concerns.
package interfaces

import (
	"context"
	"time"

	"github.com/medinfo/medinfo-api/kendras"
	"github.com/medinfo/medinfo-api/synthesis"
	"github.com/medinfo/medinfo-api/websearch"
)

// Searcher is the contract of the web Search Gateway.
type Searcher interface {
	// Search returns up to resultCount normalized results for the query.
	Search(ctx context.Context, query string, resultCount int) ([]websearch.SearchResult, error)
}

// ImageFinder performs a best-effort product image lookup.
type ImageFinder interface {
	// FindImage returns an image URL or "" when none is available.
	FindImage(ctx context.Context, medicineName string) string
}

// Synthesizer is the contract of the LLM completion boundary.
type Synthesizer interface {
	// SynthesizeJSON requests a strict-JSON completion and returns a
	// discriminated result; it never panics on provider failure.
	SynthesizeJSON(ctx context.Context, systemPrompt, userPrompt string) synthesis.Result

	// Chat requests a free-form completion.
	Chat(ctx context.Context, systemPrompt, userMessage string) (string, error)
}

// DataStore is the contract for the kendra directory storage with
// zero-downtime reloads.
type DataStore interface {
	GetKendras() []kendras.Kendra
	GetLastUpdated() time.Time
	GetServerStartTime() time.Time
	IsUpdating() bool

	UpdateKendras(list []kendras.Kendra)
	BeginUpdate() bool
	EndUpdate()
}

// Scheduler manages background dataset reloads and health monitoring.
type Scheduler interface {
	Start() error
	Stop()
}

// HealthChecker reports service health for the /health endpoint.
type HealthChecker interface {
	HealthCheck(ctx context.Context) (status string, data map[string]any, httpStatus int)
}
