package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/medinfo/medinfo-api/logging"
	"github.com/medinfo/medinfo-api/store"
	"github.com/medinfo/medinfo-api/validation"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type saveMedicineRequest struct {
	Username   string `json:"username"`
	MedicineID int64  `json:"medicine_id"`
}

// RegisterUser creates an account, storing only a bcrypt hash.
func (h *Handler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	username := strings.TrimSpace(req.Username)
	if err := validation.ValidateUsername(username); err != nil {
		RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.Password) < 8 {
		RespondWithError(w, http.StatusBadRequest, "Password must be at least 8 characters.")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logging.Error("Failed to hash password", "error", err)
		RespondWithError(w, http.StatusInternalServerError, "An unexpected server error occurred.")
		return
	}

	if _, err := h.store.CreateUser(r.Context(), username, string(hash)); err != nil {
		if errors.Is(err, store.ErrUsernameTaken) {
			RespondWithError(w, http.StatusBadRequest, "Username already exists.")
			return
		}
		logging.Error("Failed to create user", "error", err)
		RespondWithError(w, http.StatusInternalServerError, "An unexpected server error occurred.")
		return
	}

	RespondWithJSON(w, http.StatusCreated, map[string]string{"message": "User registered successfully"})
}

// LoginUser verifies credentials against the stored hash.
func (h *Handler) LoginUser(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	user, err := h.store.GetUserByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			RespondWithError(w, http.StatusUnauthorized, "Invalid credentials.")
			return
		}
		logging.Error("Failed to look up user", "error", err)
		RespondWithError(w, http.StatusInternalServerError, "An unexpected server error occurred.")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password)) != nil {
		RespondWithError(w, http.StatusUnauthorized, "Invalid credentials.")
		return
	}

	RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Login successful"})
}

// SaveMedicine records a medicine in the user's saved list.
func (h *Handler) SaveMedicine(w http.ResponseWriter, r *http.Request) {
	var req saveMedicineRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	user, err := h.store.GetUserByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			RespondWithError(w, http.StatusUnauthorized, "User not found.")
			return
		}
		logging.Error("Failed to look up user", "error", err)
		RespondWithError(w, http.StatusInternalServerError, "An unexpected server error occurred.")
		return
	}

	if _, err := h.store.GetMedicineByID(r.Context(), req.MedicineID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			RespondWithError(w, http.StatusNotFound, "Medicine not found.")
			return
		}
		logging.Error("Failed to look up medicine", "error", err)
		RespondWithError(w, http.StatusInternalServerError, "An unexpected server error occurred.")
		return
	}

	if err := h.store.SaveMedicine(r.Context(), user.ID, req.MedicineID); err != nil {
		logging.Error("Failed to save medicine", "error", err)
		RespondWithError(w, http.StatusInternalServerError, "An unexpected server error occurred.")
		return
	}

	RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Medicine saved"})
}

// SavedMedicines lists a user's saved medicines.
func (h *Handler) SavedMedicines(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	user, err := h.store.GetUserByUsername(r.Context(), username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			RespondWithError(w, http.StatusUnauthorized, "User not found.")
			return
		}
		logging.Error("Failed to look up user", "error", err)
		RespondWithError(w, http.StatusInternalServerError, "An unexpected server error occurred.")
		return
	}

	saved, err := h.store.GetSavedMedicines(r.Context(), user.ID)
	if err != nil {
		logging.Error("Failed to list saved medicines", "error", err)
		RespondWithError(w, http.StatusInternalServerError, "An unexpected server error occurred.")
		return
	}

	RespondWithJSON(w, http.StatusOK, map[string]any{"saved": saved})
}
