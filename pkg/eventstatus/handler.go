package eventstatus

import (
	"encoding/json"
	"net/http"

	"github.com/labhive/labhive/pkg/member"
)

type Handler struct {
	repo Repository
}

type EventStatusDTO struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Color       string `json:"color"`
	Description string `json:"description,omitempty"`
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

	statuses, err := h.repo.List(r.Context(), labId)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]EventStatusDTO, 0, len(statuses))
	for _, st := range statuses {
		dtos = append(dtos, statusToDTO(st))
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
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}

	var dto EventStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if dto.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	created, err := h.repo.Store(r.Context(), labId, EventStatus{
		Name:        dto.Name,
		Color:       dto.Color,
		Description: dto.Description,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(statusToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func statusToDTO(st EventStatus) EventStatusDTO {
	return EventStatusDTO{
		ID:          st.ID,
		Name:        st.Name,
		Color:       st.Color,
		Description: st.Description,
	}
}
