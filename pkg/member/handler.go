package member

import (
	"encoding/json"
	"errors"
	"net/http"
)

type Handler struct {
	service Service
}

type MemberDTO struct {
	ID          int    `json:"id"`
	UID         string `json:"uid"`
	DisplayName string `json:"displayName"`
	LabID       int    `json:"labId"`
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) CurrentMember(w http.ResponseWriter, r *http.Request) {
	m, err := Current(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(memberToDTO(m)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) ListLabMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.service.ListLabMembers(r.Context())
	if err != nil {
		if errors.Is(err, ErrNoMember) {
			http.Error(w, err.Error(), http.StatusForbidden)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]MemberDTO, 0, len(members))
	for _, m := range members {
		dtos = append(dtos, memberToDTO(m))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func memberToDTO(m Member) MemberDTO {
	return MemberDTO{
		ID:          m.ID,
		UID:         m.UID,
		DisplayName: m.DisplayName,
		LabID:       m.LabID,
	}
}
