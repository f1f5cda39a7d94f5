package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/medinfo/medinfo-api/logging"
	"github.com/medinfo/medinfo-api/store"
)

// EssentialCategories lists the curated household medicine categories.
func (h *Handler) EssentialCategories(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, map[string]any{"categories": store.EssentialCategories()})
}

// EssentialsByCategory returns the catalog entries for one category.
func (h *Handler) EssentialsByCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")

	medicines, err := h.store.EssentialsByCategory(r.Context(), category)
	if err != nil {
		logging.Error("Failed to list essentials", "category", category, "error", err)
		RespondWithError(w, http.StatusInternalServerError, "An unexpected server error occurred.")
		return
	}

	RespondWithJSON(w, http.StatusOK, map[string]any{
		"category":  category,
		"medicines": medicines,
	})
}
