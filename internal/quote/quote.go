package quote

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"Ferrex/internal/auth"
	"Ferrex/internal/repo"

	"github.com/gorilla/mux"
)

type Handler struct {
	Repo repo.Repository
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok || userID == 0 {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var draft repo.QuoteDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if draft.Name == "" || len(draft.Items) == 0 {
		http.Error(w, "Quote name and at least one item required", http.StatusBadRequest)
		return
	}

	id, err := h.Repo.CreateQuote(r.Context(), userID, draft)
	if err != nil {
		log.Printf("CreateQuote error: %v", err)
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]int{"id": id})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok || userID == 0 {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	quotes, err := h.Repo.ListQuotes(r.Context(), userID)
	if err != nil {
		log.Printf("ListQuotes error: %v", err)
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(quotes)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok || userID == 0 {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid quote id", http.StatusBadRequest)
		return
	}

	q, err := h.Repo.GetQuote(r.Context(), userID, id)
	if err != nil {
		http.Error(w, "Quote not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(q)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok || userID == 0 {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid quote id", http.StatusBadRequest)
		return
	}

	if err := h.Repo.DeleteQuote(r.Context(), userID, id); err != nil {
		log.Printf("DeleteQuote error: %v", err)
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type saveConfigRequest struct {
	Name    string          `json:"name"`
	Payload json.RawMessage `json:"payload"`
}

// SaveConfig stores a named calculator input snapshot for later reuse.
// The payload is opaque to the server.
func (h *Handler) SaveConfig(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok || userID == 0 {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req saveConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if req.Name == "" || len(req.Payload) == 0 {
		http.Error(w, "Name and payload required", http.StatusBadRequest)
		return
	}

	id, err := h.Repo.SaveConfig(r.Context(), userID, req.Name, req.Payload)
	if err != nil {
		log.Printf("SaveConfig error: %v", err)
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]int{"id": id})
}

func (h *Handler) ListConfigs(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok || userID == 0 {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	configs, err := h.Repo.ListConfigs(r.Context(), userID)
	if err != nil {
		log.Printf("ListConfigs error: %v", err)
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(configs)
}

func (h *Handler) GetConfig(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok || userID == 0 {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid config id", http.StatusBadRequest)
		return
	}

	c, err := h.Repo.GetConfig(r.Context(), userID, id)
	if err != nil {
		http.Error(w, "Configuration not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(c)
}
