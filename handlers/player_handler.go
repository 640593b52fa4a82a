package handlers

import (
	"net/http"

	"github.com/Dosada05/tournament-admin/auditlog"
	"github.com/Dosada05/tournament-admin/services"
	"github.com/rs/zerolog"
)

type PlayerHandler struct {
	playerService services.PlayerService
	responder
}

func NewPlayerHandler(ps services.PlayerService, audit auditlog.Sink, logger zerolog.Logger) *PlayerHandler {
	return &PlayerHandler{playerService: ps, responder: newResponder(audit, logger, "player_handler")}
}

// AddPlayer godoc
// @Summary Создать игрока
// @Description Без фото игрок получает фото по умолчанию.
// @Tags players
// @Accept json
// @Produce json
// @Param body body services.CreatePlayerInput true "Данные игрока"
// @Success 201 {object} envelope
// @Failure 400 {object} envelope "Ошибка валидации или команда не найдена"
// @Failure 500 {object} envelope
// @Router /players/addPlayer [post]
func (h *PlayerHandler) AddPlayer(w http.ResponseWriter, r *http.Request) {
	var input services.CreatePlayerInput
	if err := readJSON(w, r, &input); err != nil {
		h.badRequest(w, r, err)
		return
	}

	player, err := h.playerService.CreatePlayer(r.Context(), input)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, "Player", "CreatePlayer", err, input)
		return
	}
	h.created(w, r, "player created successfully", player)
}

// AddMultiplePlayers godoc
// @Summary Создать игроков пачкой
// @Description Команда указывается по имени. Если хотя бы одно имя не найдено, ничего не вставляется.
// @Tags players
// @Accept json
// @Produce json
// @Param body body []services.BulkPlayerInput true "Список игроков"
// @Success 201 {object} envelope
// @Failure 400 {object} envelope "item <i>: team not found: <name>"
// @Failure 500 {object} envelope
// @Router /players/addMultiplePlayers [post]
func (h *PlayerHandler) AddMultiplePlayers(w http.ResponseWriter, r *http.Request) {
	var inputs []services.BulkPlayerInput
	if err := readJSON(w, r, &inputs); err != nil {
		h.badRequest(w, r, err)
		return
	}

	players, err := h.playerService.CreatePlayers(r.Context(), inputs)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, "Player", "CreatePlayers", err, inputs)
		return
	}
	h.created(w, r, "players created successfully", players)
}

// GetAllPlayers godoc
// @Summary Все игроки
// @Tags players
// @Produce json
// @Success 200 {object} envelope
// @Router /players/getAll [get]
func (h *PlayerHandler) GetAllPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := h.playerService.GetAllPlayers(r.Context())
	if err != nil {
		h.serverError(w, r, "Player", "GetAllPlayers", err, nil)
		return
	}
	writeList(h.responder, w, r, "players", players)
}

// GetPlayerByID godoc
// @Summary Игрок по ID
// @Tags players
// @Produce json
// @Param id path string true "Player ID"
// @Success 200 {object} envelope
// @Router /players/{id} [get]
func (h *PlayerHandler) GetPlayerByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	player, err := h.playerService.GetPlayerByID(r.Context(), id)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, "Player", "GetPlayerByID", err, id)
		return
	}
	h.ok(w, r, "player retrieved successfully", player)
}

// GetPlayersByTeam godoc
// @Summary Игроки команды
// @Tags players
// @Produce json
// @Param teamId path string true "Team ID"
// @Success 200 {object} envelope
// @Router /players/team/{teamId} [get]
func (h *PlayerHandler) GetPlayersByTeam(w http.ResponseWriter, r *http.Request) {
	teamID, err := uuidParam(r, "teamId")
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	players, err := h.playerService.GetPlayersByTeam(r.Context(), teamID)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, "Player", "GetPlayersByTeam", err, teamID)
		return
	}
	writeList(h.responder, w, r, "players", players)
}

// UpdatePlayer godoc
// @Summary Обновить игрока
// @Tags players
// @Accept json
// @Produce json
// @Param id path string true "Player ID"
// @Param body body services.UpdatePlayerInput true "Изменяемые поля"
// @Success 200 {object} envelope
// @Failure 400 {object} envelope
// @Router /players/updatePlayer/{id} [put]
func (h *PlayerHandler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	var input services.UpdatePlayerInput
	if err := readJSON(w, r, &input); err != nil {
		h.badRequest(w, r, err)
		return
	}

	player, err := h.playerService.UpdatePlayer(r.Context(), id, input)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, "Player", "UpdatePlayer", err, input)
		return
	}
	h.ok(w, r, "player updated successfully", player)
}

// DeletePlayer godoc
// @Summary Удалить игрока
// @Tags players
// @Produce json
// @Param id path string true "Player ID"
// @Success 200 {object} envelope
// @Router /players/deletePlayer/{id} [delete]
func (h *PlayerHandler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.playerService.DeletePlayer(r.Context(), id); err != nil {
		h.mapServiceErrorToHTTP(w, r, "Player", "DeletePlayer", err, id)
		return
	}
	h.ok(w, r, "player deleted successfully", id)
}
