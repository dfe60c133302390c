package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"lawfirm-cms/internal/model"
	"lawfirm-cms/internal/service"
)

type TeamHandler struct {
	team *service.TeamService
}

func NewTeamHandler(team *service.TeamService) *TeamHandler {
	return &TeamHandler{team: team}
}

func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	members, err := h.team.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, members)
}

func (h *TeamHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	member, err := h.team.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, member)
}

func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input model.TeamMemberInput
	if err := decodeBody(w, r, &input); err != nil {
		writeError(w, err)
		return
	}

	member, err := h.team.Create(r.Context(), input, actorFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, member)
}

func (h *TeamHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input model.TeamMemberInput
	if err := decodeBody(w, r, &input); err != nil {
		writeError(w, err)
		return
	}

	member, err := h.team.Update(r.Context(), chi.URLParam(r, "id"), input, actorFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, member)
}

func (h *TeamHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.team.Delete(r.Context(), chi.URLParam(r, "id"), actorFrom(r)); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]string{"message": "team member deleted"})
}
