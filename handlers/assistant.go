package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/medinfo/medinfo-api/pipeline"
	"github.com/medinfo/medinfo-api/synthesis"
	"github.com/medinfo/medinfo-api/validation"
)

type assistantRequest struct {
	Message string `json:"message"`
}

type assistantResponse struct {
	Reply string `json:"reply"`
}

// Assistant forwards a free-form chat message to the completion endpoint.
// The reply is markdown; the medical disclaimer is part of the prompt
// contract.
func (h *Handler) Assistant(w http.ResponseWriter, r *http.Request) {
	var req assistantRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		RespondWithError(w, http.StatusBadRequest, "Please enter a message.")
		return
	}
	if err := validation.ValidateMessage(message); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Please enter a shorter message.")
		return
	}

	reply, err := h.synth.Chat(r.Context(), pipeline.AssistantSystemPrompt(), message)
	if err != nil {
		if errors.Is(err, synthesis.ErrNotConfigured) {
			RespondWithError(w, http.StatusServiceUnavailable, "AI service is not available.")
			return
		}
		RespondWithError(w, http.StatusInternalServerError, "Sorry, there was an error processing your request.")
		return
	}

	RespondWithJSON(w, http.StatusOK, assistantResponse{Reply: strings.TrimSpace(reply)})
}
