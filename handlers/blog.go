package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/medinfo/medinfo-api/logging"
)

type createPostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// BlogPosts returns every published blog post, newest first.
func (h *Handler) BlogPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.store.ListPosts(r.Context())
	if err != nil {
		logging.Error("Failed to list blog posts", "error", err)
		RespondWithError(w, http.StatusInternalServerError, "An unexpected server error occurred.")
		return
	}

	RespondWithJSON(w, http.StatusOK, map[string]any{"posts": posts})
}

// CreateBlogPost publishes a new post.
func (h *Handler) CreateBlogPost(w http.ResponseWriter, r *http.Request) {
	var req createPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Content = strings.TrimSpace(req.Content)
	if req.Title == "" || req.Content == "" {
		RespondWithError(w, http.StatusBadRequest, "Title and content are required.")
		return
	}

	id, err := h.store.CreatePost(r.Context(), req.Title, req.Content)
	if err != nil {
		logging.Error("Failed to create blog post", "title", req.Title, "error", err)
		RespondWithError(w, http.StatusInternalServerError, "An unexpected server error occurred.")
		return
	}

	RespondWithJSON(w, http.StatusCreated, map[string]any{
		"id":      id,
		"message": "Post published successfully.",
	})
}
