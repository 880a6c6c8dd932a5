package handlers

import (
	"encoding/json"
	"net/http"

	"sunescape/internal/models"
	"sunescape/internal/repository"
	"sunescape/internal/service"
)

// PushHandler serves the JSON endpoints the service worker talks to
type PushHandler struct {
	push  *service.PushService
	users *repository.UserRepository
}

// NewPushHandler creates a new push handler
func NewPushHandler(push *service.PushService, users *repository.UserRepository) *PushHandler {
	return &PushHandler{push: push, users: users}
}

// VAPIDKey hands the browser the server's public key
func (h *PushHandler) VAPIDKey(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"enabled":   h.push.IsEnabled(),
		"publicKey": h.push.PublicKey(),
	})
}

type pushSubscribeRequest struct {
	Endpoint string `json:"endpoint"`
	Keys     struct {
		P256dh string `json:"p256dh"`
		Auth   string `json:"auth"`
	} `json:"keys"`
}

// Subscribe stores a browser push subscription for the member
func (h *PushHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	var req pushSubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid subscription", "", err)
		return
	}
	if req.Endpoint == "" || req.Keys.P256dh == "" || req.Keys.Auth == "" {
		respondWithError(w, http.StatusBadRequest, "Invalid subscription", "", nil)
		return
	}

	sub := &models.PushSubscription{
		UserID:   user.ID,
		Endpoint: req.Endpoint,
		P256dh:   req.Keys.P256dh,
		Auth:     req.Keys.Auth,
	}
	if err := h.users.SavePushSubscription(sub); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Something went wrong", "failed to save push subscription", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]bool{"subscribed": true})
}

// Unsubscribe drops a browser push subscription
func (h *PushHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Endpoint string `json:"endpoint"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Endpoint == "" {
		respondWithError(w, http.StatusBadRequest, "Invalid subscription", "", err)
		return
	}
	if err := h.users.DeletePushSubscription(req.Endpoint); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Something went wrong", "failed to delete push subscription", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]bool{"subscribed": false})
}
