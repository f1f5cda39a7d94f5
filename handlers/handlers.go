package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/medinfo/medinfo-api/interfaces"
	"github.com/medinfo/medinfo-api/pipeline"
	"github.com/medinfo/medinfo-api/store"
	"github.com/medinfo/medinfo-api/synthesis"
	"github.com/medinfo/medinfo-api/validation"
	"github.com/medinfo/medinfo-api/websearch"
)

// Handler carries the injected collaborators for every endpoint.
type Handler struct {
	reporter     *pipeline.Reporter
	prices       *pipeline.PriceComparer
	alternatives *pipeline.AlternativeFinder
	synth        interfaces.Synthesizer
	dataStore    interfaces.DataStore
	store        *store.Store
	health       interfaces.HealthChecker
}

// New creates the handler set with injected dependencies.
func New(deps pipeline.Deps, dataStore interfaces.DataStore, st *store.Store, hc interfaces.HealthChecker) *Handler {
	return &Handler{
		reporter:     pipeline.NewReporter(deps),
		prices:       pipeline.NewPriceComparer(deps),
		alternatives: pipeline.NewAlternativeFinder(deps),
		synth:        deps.Synth,
		dataStore:    dataStore,
		store:        st,
		health:       hc,
	}
}

// medicineRequest is the shared body of the three pipeline endpoints.
type medicineRequest struct {
	MedicineName string `json:"medicine_name"`
}

// readMedicineName decodes and validates the medicine_name body field,
// writing the error response itself on failure.
func readMedicineName(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req medicineRequest
	if !decodeJSONBody(w, r, &req) {
		return "", false
	}

	name := strings.TrimSpace(req.MedicineName)
	if name == "" {
		RespondWithError(w, http.StatusBadRequest, "Please enter a medicine name.")
		return "", false
	}

	if err := validation.ValidateMedicineName(name); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Please enter a valid medicine name.")
		return "", false
	}

	return name, true
}

// writePipelineError maps a pipeline failure class to its HTTP response.
func writePipelineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, pipeline.ErrNotFound):
		RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, websearch.ErrNotConfigured), errors.Is(err, synthesis.ErrNotConfigured):
		RespondWithError(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, synthesis.ErrSynthesis):
		RespondWithError(w, http.StatusInternalServerError, "The AI service encountered an error during processing.")
	case errors.Is(err, websearch.ErrProvider):
		RespondWithError(w, http.StatusInternalServerError, err.Error())
	case errors.Is(err, websearch.ErrNetwork):
		RespondWithError(w, http.StatusInternalServerError, err.Error())
	default:
		RespondWithError(w, http.StatusInternalServerError, "An unexpected server error occurred.")
	}
}
