package handlers

import "net/http"

// Search runs the full drug report pipeline for a medicine name.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	name, ok := readMedicineName(w, r)
	if !ok {
		return
	}

	report, err := h.reporter.Run(r.Context(), name)
	if err != nil {
		writePipelineError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, report)
}

// PriceComparison runs the price comparison pipeline.
func (h *Handler) PriceComparison(w http.ResponseWriter, r *http.Request) {
	name, ok := readMedicineName(w, r)
	if !ok {
		return
	}

	comparison, err := h.prices.Run(r.Context(), name)
	if err != nil {
		writePipelineError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, comparison)
}

// AlternativeMedicine runs the alternative-finder pipeline.
func (h *Handler) AlternativeMedicine(w http.ResponseWriter, r *http.Request) {
	name, ok := readMedicineName(w, r)
	if !ok {
		return
	}

	report, err := h.alternatives.Run(r.Context(), name)
	if err != nil {
		writePipelineError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, report)
}
