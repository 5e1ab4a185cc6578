package selection

import (
	"encoding/json"
	"log"
	"net/http"

	"Ferrex/internal/repo"
)

type Handler struct {
	Repo repo.Repository
}

func (h *Handler) Select(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	rows, err := h.Repo.ListCatalog(r.Context())
	if err != nil {
		log.Printf("ListCatalog error: %v", err)
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	res, err := Score(rows, input)
	if err != nil {
		http.Error(w, "Calculation error", http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
