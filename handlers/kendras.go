package handlers

import (
	"errors"
	"net/http"

	"github.com/medinfo/medinfo-api/kendras"
)

// topKendras is how many ranked kendras the finder returns.
const topKendras = 10

type kendraRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ListKendras serves the full kendra directory.
func (h *Handler) ListKendras(w http.ResponseWriter, r *http.Request) {
	list := h.dataStore.GetKendras()
	RespondWithJSON(w, http.StatusOK, map[string]any{
		"kendras": list,
		"count":   len(list),
	})
}

// NearestKendras ranks the directory by distance from the caller's
// coordinate and returns the top entries plus the single nearest.
func (h *Handler) NearestKendras(w http.ResponseWriter, r *http.Request) {
	var req kendraRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	ranked, nearest, err := kendras.Nearest(req.Lat, req.Lng, h.dataStore.GetKendras(), topKendras)
	if err != nil {
		if errors.Is(err, kendras.ErrInvalidCoordinates) {
			RespondWithError(w, http.StatusBadRequest, "Invalid coordinates. Please provide your location.")
			return
		}
		RespondWithError(w, http.StatusInternalServerError, "An unexpected server error occurred.")
		return
	}

	RespondWithJSON(w, http.StatusOK, map[string]any{
		"kendras": ranked,
		"nearest": nearest,
	})
}
