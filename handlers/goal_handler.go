package handlers

import (
	"net/http"
	"strconv"

	"github.com/Dosada05/tournament-admin/auditlog"
	"github.com/Dosada05/tournament-admin/models"
	"github.com/Dosada05/tournament-admin/services"
	"github.com/rs/zerolog"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type GoalHandler struct {
	goalService        services.GoalService
	leaderboardService services.LeaderboardService
	responder
}

func NewGoalHandler(gs services.GoalService, ls services.LeaderboardService, audit auditlog.Sink, logger zerolog.Logger) *GoalHandler {
	return &GoalHandler{goalService: gs, leaderboardService: ls, responder: newResponder(audit, logger, "goal_handler")}
}

// AddGoal godoc
// @Summary Записать гол
// @Description Один вызов - один гол. Подписчики матча получают GOAL_ADDED.
// @Tags goals
// @Accept json
// @Produce json
// @Param body body services.GoalInput true "Гол"
// @Success 201 {object} envelope
// @Failure 400 {object} envelope
// @Router /goals/addGoal [post]
func (h *GoalHandler) AddGoal(w http.ResponseWriter, r *http.Request) {
	var input services.GoalInput
	if err := readJSON(w, r, &input); err != nil {
		h.badRequest(w, r, err)
		return
	}

	goal, err := h.goalService.CreateGoal(r.Context(), input)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, "Goal", "CreateGoal", err, input)
		return
	}
	h.created(w, r, "goal created successfully", goal)
}

// AddMultipleGoals godoc
// @Summary Записать несколько голов
// @Tags goals
// @Accept json
// @Produce json
// @Param body body []services.GoalInput true "Голы"
// @Success 201 {object} envelope
// @Failure 400 {object} envelope
// @Router /goals/addMultipleGoals [post]
func (h *GoalHandler) AddMultipleGoals(w http.ResponseWriter, r *http.Request) {
	var inputs []services.GoalInput
	if err := readJSON(w, r, &inputs); err != nil {
		h.badRequest(w, r, err)
		return
	}

	goals, err := h.goalService.CreateGoals(r.Context(), inputs)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, "Goal", "CreateGoals", err, inputs)
		return
	}
	h.created(w, r, "goals created successfully", goals)
}

// GetAllGoals godoc
// @Summary Все голы
// @Tags goals
// @Produce json
// @Success 200 {object} envelope
// @Router /goals/getAll [get]
func (h *GoalHandler) GetAllGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := h.goalService.GetAllGoals(r.Context())
	if err != nil {
		h.serverError(w, r, "Goal", "GetAllGoals", err, nil)
		return
	}
	writeList(h.responder, w, r, "goals", goals)
}

// GetGoalByID godoc
// @Summary Гол по ID
// @Tags goals
// @Produce json
// @Param id path string true "Goal ID"
// @Success 200 {object} envelope
// @Router /goals/{id} [get]
func (h *GoalHandler) GetGoalByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	goal, err := h.goalService.GetGoalByID(r.Context(), id)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, "Goal", "GetGoalByID", err, id)
		return
	}
	h.ok(w, r, "goal retrieved successfully", goal)
}

// GetGoalsByMatch godoc
// @Summary Голы матча
// @Tags goals
// @Produce json
// @Param id path string true "Match ID"
// @Success 200 {object} envelope
// @Router /goals/match/{id} [get]
func (h *GoalHandler) GetGoalsByMatch(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	goals, err := h.goalService.GetGoalsByMatch(r.Context(), id)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, "Goal", "GetGoalsByMatch", err, id)
		return
	}
	writeList(h.responder, w, r, "goals", goals)
}

// DeleteGoal godoc
// @Summary Удалить гол
// @Tags goals
// @Produce json
// @Param id path string true "Goal ID"
// @Success 200 {object} envelope
// @Router /goals/deleteGoal/{id} [delete]
func (h *GoalHandler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.goalService.DeleteGoal(r.Context(), id); err != nil {
		h.mapServiceErrorToHTTP(w, r, "Goal", "DeleteGoal", err, id)
		return
	}
	h.ok(w, r, "goal deleted successfully", id)
}

func (h *GoalHandler) writeScorers(w http.ResponseWriter, r *http.Request, method string, entries []models.ScorerEntry, err error, payload interface{}) {
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, "Goal", method, err, payload)
		return
	}
	if len(entries) == 0 {
		h.ok(w, r, "no goals recorded yet", nil)
		return
	}
	h.ok(w, r, "top scorers retrieved successfully", entries)
}

// TopScorers godoc
// @Summary Бомбардиры
// @Description Голы сгруппированы по игроку, по убыванию. Без голов - 200 и data: null.
// @Tags goals
// @Produce json
// @Success 200 {object} envelope
// @Router /goals/topScorers [get]
func (h *GoalHandler) TopScorers(w http.ResponseWriter, r *http.Request) {
	entries, err := h.leaderboardService.TopScorers(r.Context())
	h.writeScorers(w, r, "TopScorers", entries, err, nil)
}

// TopFiveScorers godoc
// @Summary Пять лучших бомбардиров
// @Tags goals
// @Produce json
// @Success 200 {object} envelope
// @Router /goals/topFiveScorers [get]
func (h *GoalHandler) TopFiveScorers(w http.ResponseWriter, r *http.Request) {
	entries, err := h.leaderboardService.TopFiveScorers(r.Context())
	h.writeScorers(w, r, "TopFiveScorers", entries, err, nil)
}

// TopScorersByMatch godoc
// @Summary Бомбардиры матча
// @Tags goals
// @Produce json
// @Param id path string true "Match ID"
// @Success 200 {object} envelope
// @Router /goals/topScorers/match/{id} [get]
func (h *GoalHandler) TopScorersByMatch(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	entries, err := h.leaderboardService.TopScorersByMatch(r.Context(), id)
	h.writeScorers(w, r, "TopScorersByMatch", entries, err, id)
}

// TopScorersByTeam godoc
// @Summary Бомбардиры команды
// @Tags goals
// @Produce json
// @Param id path string true "Team ID"
// @Success 200 {object} envelope
// @Router /goals/topScorers/team/{id} [get]
func (h *GoalHandler) TopScorersByTeam(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	entries, err := h.leaderboardService.TopScorersByTeam(r.Context(), id)
	h.writeScorers(w, r, "TopScorersByTeam", entries, err, id)
}

// ExportTopScorers godoc
// @Summary Таблица бомбардиров в xlsx
// @Tags goals
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Failure 500 {object} envelope
// @Router /goals/topScorers/export [get]
func (h *GoalHandler) ExportTopScorers(w http.ResponseWriter, r *http.Request) {
	data, err := h.leaderboardService.ExportTopScorers(r.Context())
	if err != nil {
		h.serverError(w, r, "Goal", "ExportTopScorers", err, nil)
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="top_scorers.xlsx"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.log.Error().Err(err).Msg("failed to write xlsx export")
	}
}
