package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/medinfo/medinfo-api/logging"
	"github.com/medinfo/medinfo-api/store"
	"github.com/medinfo/medinfo-api/validation"
)

// SearchCatalog searches the local medicine catalog by name.
func (h *Handler) SearchCatalog(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		RespondWithError(w, http.StatusBadRequest, "Please enter a medicine name.")
		return
	}
	if err := validation.ValidateMedicineName(q); err != nil {
		RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	medicines, err := h.store.SearchMedicines(r.Context(), q)
	if err != nil {
		logging.Error("Catalog search failed", "query", q, "error", err)
		RespondWithError(w, http.StatusInternalServerError, "An unexpected server error occurred.")
		return
	}

	RespondWithJSON(w, http.StatusOK, map[string]any{
		"query":     q,
		"medicines": medicines,
	})
}

// FindGeneric resolves a brand name to its generic and every brand that
// shares it, cheapest first.
func (h *Handler) FindGeneric(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		RespondWithError(w, http.StatusBadRequest, "Please enter a medicine name.")
		return
	}
	if err := validation.ValidateMedicineName(name); err != nil {
		RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	generic, brands, err := h.store.FindGeneric(r.Context(), name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			RespondWithError(w, http.StatusNotFound, "Could not find information for this medicine. Please check the spelling.")
			return
		}
		logging.Error("Generic lookup failed", "medicine", name, "error", err)
		RespondWithError(w, http.StatusInternalServerError, "An unexpected server error occurred.")
		return
	}

	RespondWithJSON(w, http.StatusOK, map[string]any{
		"generic": generic,
		"brands":  brands,
	})
}
