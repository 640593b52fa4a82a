package handlers

import (
	"net/http"

	"github.com/Dosada05/tournament-admin/auditlog"
	"github.com/Dosada05/tournament-admin/services"
	"github.com/rs/zerolog"
)

type TeamHandler struct {
	teamService services.TeamService
	responder
}

func NewTeamHandler(ts services.TeamService, audit auditlog.Sink, logger zerolog.Logger) *TeamHandler {
	return &TeamHandler{teamService: ts, responder: newResponder(audit, logger, "team_handler")}
}

// AddTeam godoc
// @Summary Создать команду
// @Description Если логотип не передан, берётся один из логотипов по умолчанию.
// @Tags teams
// @Accept json
// @Produce json
// @Param body body services.CreateTeamInput true "Данные команды"
// @Success 201 {object} envelope "Команда создана"
// @Failure 400 {object} envelope "Ошибка валидации"
// @Failure 500 {object} envelope "Внутренняя ошибка сервера"
// @Router /teams/addTeam [post]
func (h *TeamHandler) AddTeam(w http.ResponseWriter, r *http.Request) {
	var input services.CreateTeamInput
	if err := readJSON(w, r, &input); err != nil {
		h.badRequest(w, r, err)
		return
	}

	team, err := h.teamService.CreateTeam(r.Context(), input)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, "Team", "CreateTeam", err, input)
		return
	}
	h.created(w, r, "team created successfully", team)
}

// AddMultipleTeams godoc
// @Summary Создать несколько команд
// @Tags teams
// @Accept json
// @Produce json
// @Param body body []services.CreateTeamInput true "Список команд"
// @Success 201 {object} envelope
// @Failure 400 {object} envelope
// @Failure 500 {object} envelope
// @Router /teams/addMultipleTeams [post]
func (h *TeamHandler) AddMultipleTeams(w http.ResponseWriter, r *http.Request) {
	var inputs []services.CreateTeamInput
	if err := readJSON(w, r, &inputs); err != nil {
		h.badRequest(w, r, err)
		return
	}

	teams, err := h.teamService.CreateTeams(r.Context(), inputs)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, "Team", "CreateTeams", err, inputs)
		return
	}
	h.created(w, r, "teams created successfully", teams)
}

// GetAllTeams godoc
// @Summary Все команды
// @Tags teams
// @Produce json
// @Success 200 {object} envelope
// @Failure 500 {object} envelope
// @Router /teams/getAll [get]
func (h *TeamHandler) GetAllTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.teamService.GetAllTeams(r.Context())
	if err != nil {
		h.serverError(w, r, "Team", "GetAllTeams", err, nil)
		return
	}
	writeList(h.responder, w, r, "teams", teams)
}

// GetTeamByID godoc
// @Summary Команда по ID
// @Description Если команды нет, возвращается 200 с data: null.
// @Tags teams
// @Produce json
// @Param id path string true "Team ID"
// @Success 200 {object} envelope
// @Failure 400 {object} envelope "Некорректный ID"
// @Router /teams/{id} [get]
func (h *TeamHandler) GetTeamByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	team, err := h.teamService.GetTeamByID(r.Context(), id)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, "Team", "GetTeamByID", err, id)
		return
	}
	h.ok(w, r, "team retrieved successfully", team)
}

// GetTeamPlayers godoc
// @Summary Команда вместе с игроками
// @Description Игроки отсортированы по номеру как по числу.
// @Tags teams
// @Produce json
// @Param id path string true "Team ID"
// @Success 200 {object} envelope
// @Router /teams/{id}/players [get]
func (h *TeamHandler) GetTeamPlayers(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	team, err := h.teamService.GetTeamWithPlayers(r.Context(), id)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, "Team", "GetTeamWithPlayers", err, id)
		return
	}
	h.ok(w, r, "team retrieved successfully", team)
}

// UpdateTeam godoc
// @Summary Обновить команду
// @Tags teams
// @Accept json
// @Produce json
// @Param id path string true "Team ID"
// @Param body body services.UpdateTeamInput true "Изменяемые поля"
// @Success 200 {object} envelope
// @Failure 400 {object} envelope
// @Failure 500 {object} envelope
// @Router /teams/updateTeam/{id} [put]
func (h *TeamHandler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	var input services.UpdateTeamInput
	if err := readJSON(w, r, &input); err != nil {
		h.badRequest(w, r, err)
		return
	}

	team, err := h.teamService.UpdateTeam(r.Context(), id, input)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, "Team", "UpdateTeam", err, input)
		return
	}
	h.ok(w, r, "team updated successfully", team)
}

// DeleteTeam godoc
// @Summary Удалить команду
// @Description Игроки и матчи команды удаляются каскадно.
// @Tags teams
// @Produce json
// @Param id path string true "Team ID"
// @Success 200 {object} envelope
// @Failure 500 {object} envelope
// @Router /teams/deleteTeam/{id} [delete]
func (h *TeamHandler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.teamService.DeleteTeam(r.Context(), id); err != nil {
		h.mapServiceErrorToHTTP(w, r, "Team", "DeleteTeam", err, id)
		return
	}
	h.ok(w, r, "team deleted successfully", id)
}
