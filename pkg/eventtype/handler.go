package eventtype

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/labhive/labhive/pkg/member"
)

type Handler struct {
	repo Repository
}

type EventTypeDTO struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	labId, err := member.CurrentLabID(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}

	types, err := h.repo.List(r.Context(), labId)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]EventTypeDTO, 0, len(types))
	for _, et := range types {
		dtos = append(dtos, EventTypeDTO{ID: et.ID, Name: et.Name, Color: et.Color})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	labId, err := member.CurrentLabID(r.Context())
	if err != nil {
		if errors.Is(err, member.ErrNoMember) {
			http.Error(w, err.Error(), http.StatusForbidden)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var dto EventTypeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if dto.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	created, err := h.repo.Store(r.Context(), labId, EventType{Name: dto.Name, Color: dto.Color})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(EventTypeDTO{ID: created.ID, Name: created.Name, Color: created.Color}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
