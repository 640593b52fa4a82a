package handlers

import (
	"net/http"

	"github.com/Dosada05/tournament-admin/auditlog"
	"github.com/Dosada05/tournament-admin/services"
	"github.com/rs/zerolog"
)

type MatchHandler struct {
	matchService services.MatchService
	responder
}

func NewMatchHandler(ms services.MatchService, audit auditlog.Sink, logger zerolog.Logger) *MatchHandler {
	return &MatchHandler{matchService: ms, responder: newResponder(audit, logger, "match_handler")}
}

// AddMatch godoc
// @Summary Создать матч
// @Description В одной транзакции создаются матч, расписание в состоянии "Pendiente" и результат 0:0.
// @Description Ссылки проверяются по порядку: раунд, состояние, поле, хозяева, гости, соревнование.
// @Tags matches
// @Accept json
// @Produce json
// @Param body body services.CreateMatchInput true "Данные матча"
// @Success 201 {object} envelope "Матч создан"
// @Failure 400 {object} envelope "Ошибка валидации или ссылка не найдена"
// @Failure 500 {object} envelope "Внутренняя ошибка сервера"
// @Router /matches/addMatch [post]
func (h *MatchHandler) AddMatch(w http.ResponseWriter, r *http.Request) {
	var input services.CreateMatchInput
	if err := readJSON(w, r, &input); err != nil {
		h.badRequest(w, r, err)
		return
	}

	match, err := h.matchService.CreateMatch(r.Context(), input)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, "Match", "CreateMatch", err, input)
		return
	}
	h.created(w, r, "match created successfully", match)
}

// AddMultipleMatches godoc
// @Summary Создать несколько матчей
// @Description Все матчи создаются в одной транзакции; ошибка в любом откатывает всю пачку.
// @Tags matches
// @Accept json
// @Produce json
// @Param body body []services.CreateMatchInput true "Матчи"
// @Success 201 {object} envelope
// @Failure 400 {object} envelope
// @Failure 500 {object} envelope
// @Router /matches/addMultipleMatches [post]
func (h *MatchHandler) AddMultipleMatches(w http.ResponseWriter, r *http.Request) {
	var inputs []services.CreateMatchInput
	if err := readJSON(w, r, &inputs); err != nil {
		h.badRequest(w, r, err)
		return
	}

	matches, err := h.matchService.CreateMatches(r.Context(), inputs)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, "Match", "CreateMatches", err, inputs)
		return
	}
	h.created(w, r, "matches created successfully", matches)
}

// GetAllMatches godoc
// @Summary Все матчи
// @Tags matches
// @Produce json
// @Success 200 {object} envelope
// @Router /matches/getAll [get]
func (h *MatchHandler) GetAllMatches(w http.ResponseWriter, r *http.Request) {
	matches, err := h.matchService.GetAllMatches(r.Context())
	if err != nil {
		h.serverError(w, r, "Match", "GetAllMatches", err, nil)
		return
	}
	writeList(h.responder, w, r, "matches", matches)
}

// GetMatchByID godoc
// @Summary Матч с расписанием и результатом
// @Tags matches
// @Produce json
// @Param id path string true "Match ID"
// @Success 200 {object} envelope
// @Router /matches/{id} [get]
func (h *MatchHandler) GetMatchByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	match, err := h.matchService.GetMatchByID(r.Context(), id)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, "Match", "GetMatchByID", err, id)
		return
	}
	h.ok(w, r, "match retrieved successfully", match)
}

// GetMatchesByCompetition godoc
// @Summary Матчи соревнования
// @Tags matches
// @Produce json
// @Param id path string true "Competition ID"
// @Success 200 {object} envelope
// @Router /matches/competition/{id} [get]
func (h *MatchHandler) GetMatchesByCompetition(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	matches, err := h.matchService.GetMatchesByCompetition(r.Context(), id)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, "Match", "GetMatchesByCompetition", err, id)
		return
	}
	writeList(h.responder, w, r, "matches", matches)
}

// UpdateResult godoc
// @Summary Обновить счёт матча
// @Description Подписчики /ws/matches/{id} получают RESULT_UPDATED.
// @Tags matches
// @Accept json
// @Produce json
// @Param id path string true "Match ID"
// @Param body body services.UpdateResultInput true "Счёт"
// @Success 200 {object} envelope
// @Failure 400 {object} envelope
// @Router /matches/updateResult/{id} [put]
func (h *MatchHandler) UpdateResult(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	var input services.UpdateResultInput
	if err := readJSON(w, r, &input); err != nil {
		h.badRequest(w, r, err)
		return
	}

	result, err := h.matchService.UpdateResult(r.Context(), id, input)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, "Result", "UpdateResult", err, input)
		return
	}
	h.ok(w, r, "result updated successfully", result)
}

// UpdateSchedule godoc
// @Summary Обновить расписание матча
// @Description Состояние и поле передаются по имени.
// @Tags matches
// @Accept json
// @Produce json
// @Param id path string true "Match ID"
// @Param body body services.UpdateScheduleInput true "Расписание"
// @Success 200 {object} envelope
// @Failure 400 {object} envelope
// @Router /matches/updateSchedule/{id} [put]
func (h *MatchHandler) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	var input services.UpdateScheduleInput
	if err := readJSON(w, r, &input); err != nil {
		h.badRequest(w, r, err)
		return
	}

	schedule, err := h.matchService.UpdateSchedule(r.Context(), id, input)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, "Schedule", "UpdateSchedule", err, input)
		return
	}
	h.ok(w, r, "schedule updated successfully", schedule)
}

// DeleteMatch godoc
// @Summary Удалить матч
// @Description Расписание, результат, голы и санкции матча удаляются каскадно.
// @Tags matches
// @Produce json
// @Param id path string true "Match ID"
// @Success 200 {object} envelope
// @Router /matches/deleteMatch/{id} [delete]
func (h *MatchHandler) DeleteMatch(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.matchService.DeleteMatch(r.Context(), id); err != nil {
		h.mapServiceErrorToHTTP(w, r, "Match", "DeleteMatch", err, id)
		return
	}
	h.ok(w, r, "match deleted successfully", id)
}
