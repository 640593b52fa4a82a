package handlers

import (
	"net/http"

	"github.com/Dosada05/tournament-admin/auditlog"
	"github.com/Dosada05/tournament-admin/services"
	"github.com/rs/zerolog"
)

type CompetitionHandler struct {
	competitionService services.CompetitionService
	responder
}

func NewCompetitionHandler(cs services.CompetitionService, audit auditlog.Sink, logger zerolog.Logger) *CompetitionHandler {
	return &CompetitionHandler{competitionService: cs, responder: newResponder(audit, logger, "competition_handler")}
}

// AddCompetition godoc
// @Summary Создать соревнование
// @Description Дата окончания должна быть позже даты начала.
// @Tags competitions
// @Accept json
// @Produce json
// @Param body body services.CreateCompetitionInput true "Данные соревнования"
// @Success 201 {object} envelope
// @Failure 400 {object} envelope
// @Failure 500 {object} envelope
// @Router /competitions/addCompetition [post]
func (h *CompetitionHandler) AddCompetition(w http.ResponseWriter, r *http.Request) {
	var input services.CreateCompetitionInput
	if err := readJSON(w, r, &input); err != nil {
		h.badRequest(w, r, err)
		return
	}

	c, err := h.competitionService.CreateCompetition(r.Context(), input)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, "Competition", "CreateCompetition", err, input)
		return
	}
	h.created(w, r, "competition created successfully", c)
}

// GetAllCompetitions godoc
// @Summary Все соревнования
// @Tags competitions
// @Produce json
// @Success 200 {object} envelope
// @Router /competitions/getAll [get]
func (h *CompetitionHandler) GetAllCompetitions(w http.ResponseWriter, r *http.Request) {
	list, err := h.competitionService.GetAllCompetitions(r.Context())
	if err != nil {
		h.serverError(w, r, "Competition", "GetAllCompetitions", err, nil)
		return
	}
	writeList(h.responder, w, r, "competitions", list)
}

// GetCompetitionByID godoc
// @Summary Соревнование по ID
// @Tags competitions
// @Produce json
// @Param id path string true "Competition ID"
// @Success 200 {object} envelope
// @Router /competitions/{id} [get]
func (h *CompetitionHandler) GetCompetitionByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	c, err := h.competitionService.GetCompetitionByID(r.Context(), id)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, "Competition", "GetCompetitionByID", err, id)
		return
	}
	h.ok(w, r, "competition retrieved successfully", c)
}

// UpdateCompetition godoc
// @Summary Обновить соревнование
// @Tags competitions
// @Accept json
// @Produce json
// @Param id path string true "Competition ID"
// @Param body body services.UpdateCompetitionInput true "Изменяемые поля"
// @Success 200 {object} envelope
// @Failure 400 {object} envelope
// @Router /competitions/updateCompetition/{id} [put]
func (h *CompetitionHandler) UpdateCompetition(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	var input services.UpdateCompetitionInput
	if err := readJSON(w, r, &input); err != nil {
		h.badRequest(w, r, err)
		return
	}

	c, err := h.competitionService.UpdateCompetition(r.Context(), id, input)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, "Competition", "UpdateCompetition", err, input)
		return
	}
	h.ok(w, r, "competition updated successfully", c)
}

// DeleteCompetition godoc
// @Summary Удалить соревнование
// @Tags competitions
// @Produce json
// @Param id path string true "Competition ID"
// @Success 200 {object} envelope
// @Router /competitions/deleteCompetition/{id} [delete]
func (h *CompetitionHandler) DeleteCompetition(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.competitionService.DeleteCompetition(r.Context(), id); err != nil {
		h.mapServiceErrorToHTTP(w, r, "Competition", "DeleteCompetition", err, id)
		return
	}
	h.ok(w, r, "competition deleted successfully", id)
}
