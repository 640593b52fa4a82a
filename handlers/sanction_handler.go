package handlers

import (
	"net/http"

	"github.com/Dosada05/tournament-admin/auditlog"
	"github.com/Dosada05/tournament-admin/models"
	"github.com/Dosada05/tournament-admin/services"
	"github.com/rs/zerolog"
)

type SanctionHandler struct {
	sanctionService     services.SanctionService
	sanctionTypeService services.SanctionTypeService
	leaderboardService  services.LeaderboardService
	responder
}

func NewSanctionHandler(
	ss services.SanctionService,
	sts services.SanctionTypeService,
	ls services.LeaderboardService,
	audit auditlog.Sink,
	logger zerolog.Logger,
) *SanctionHandler {
	return &SanctionHandler{
		sanctionService:     ss,
		sanctionTypeService: sts,
		leaderboardService:  ls,
		responder:           newResponder(audit, logger, "sanction_handler"),
	}
}

// AddSanction godoc
// @Summary Записать санкцию
// @Tags sanctions
// @Accept json
// @Produce json
// @Param body body services.SanctionInput true "Санкция"
// @Success 201 {object} envelope
// @Failure 400 {object} envelope
// @Router /sanctions/addSanction [post]
func (h *SanctionHandler) AddSanction(w http.ResponseWriter, r *http.Request) {
	var input services.SanctionInput
	if err := readJSON(w, r, &input); err != nil {
		h.badRequest(w, r, err)
		return
	}

	sanction, err := h.sanctionService.CreateSanction(r.Context(), input)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, "Sanction", "CreateSanction", err, input)
		return
	}
	h.created(w, r, "sanction created successfully", sanction)
}

// GetAllSanctions godoc
// @Summary Все санкции
// @Tags sanctions
// @Produce json
// @Success 200 {object} envelope
// @Router /sanctions/getAll [get]
func (h *SanctionHandler) GetAllSanctions(w http.ResponseWriter, r *http.Request) {
	list, err := h.sanctionService.GetAllSanctions(r.Context())
	if err != nil {
		h.serverError(w, r, "Sanction", "GetAllSanctions", err, nil)
		return
	}
	writeList(h.responder, w, r, "sanctions", list)
}

// GetSanctionByID godoc
// @Summary Санкция по ID
// @Tags sanctions
// @Produce json
// @Param id path string true "Sanction ID"
// @Success 200 {object} envelope
// @Router /sanctions/{id} [get]
func (h *SanctionHandler) GetSanctionByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	sanction, err := h.sanctionService.GetSanctionByID(r.Context(), id)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, "Sanction", "GetSanctionByID", err, id)
		return
	}
	h.ok(w, r, "sanction retrieved successfully", sanction)
}

// UpdateSanction godoc
// @Summary Обновить санкцию
// @Tags sanctions
// @Accept json
// @Produce json
// @Param id path string true "Sanction ID"
// @Param body body services.UpdateSanctionInput true "Изменяемые поля"
// @Success 200 {object} envelope
// @Failure 400 {object} envelope
// @Router /sanctions/updateSanction/{id} [put]
func (h *SanctionHandler) UpdateSanction(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	var input services.UpdateSanctionInput
	if err := readJSON(w, r, &input); err != nil {
		h.badRequest(w, r, err)
		return
	}

	sanction, err := h.sanctionService.UpdateSanction(r.Context(), id, input)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, "Sanction", "UpdateSanction", err, input)
		return
	}
	h.ok(w, r, "sanction updated successfully", sanction)
}

// DeleteSanction godoc
// @Summary Удалить санкцию
// @Tags sanctions
// @Produce json
// @Param id path string true "Sanction ID"
// @Success 200 {object} envelope
// @Router /sanctions/deleteSanction/{id} [delete]
func (h *SanctionHandler) DeleteSanction(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.sanctionService.DeleteSanction(r.Context(), id); err != nil {
		h.mapServiceErrorToHTTP(w, r, "Sanction", "DeleteSanction", err, id)
		return
	}
	h.ok(w, r, "sanction deleted successfully", id)
}

// writeSanctioned: отсутствующий тип/команда/матч и пустой результат - 200 с data: null.
func (h *SanctionHandler) writeSanctioned(w http.ResponseWriter, r *http.Request, method string, entries []models.SanctionEntry, err error, payload interface{}) {
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, "Sanction", method, err, payload)
		return
	}
	if len(entries) == 0 {
		h.ok(w, r, "no sanctions of this type found", nil)
		return
	}
	h.ok(w, r, "sanctioned players retrieved successfully", entries)
}

// SanctionsByType godoc
// @Summary Наказанные игроки по типу санкции
// @Description Санкции сгруппированы по игроку: количество и список матчей.
// @Tags sanctions
// @Produce json
// @Param typeId path string true "Sanction type ID"
// @Success 200 {object} envelope
// @Router /sanctions/type/{typeId} [get]
func (h *SanctionHandler) SanctionsByType(w http.ResponseWriter, r *http.Request) {
	typeID, err := uuidParam(r, "typeId")
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	entries, err := h.leaderboardService.SanctionsByType(r.Context(), typeID)
	h.writeSanctioned(w, r, "SanctionsByType", entries, err, typeID)
}

// SanctionsByTypeAndTeam godoc
// @Summary Наказанные игроки команды по типу санкции
// @Tags sanctions
// @Produce json
// @Param typeId path string true "Sanction type ID"
// @Param teamId path string true "Team ID"
// @Success 200 {object} envelope
// @Router /sanctions/type/{typeId}/team/{teamId} [get]
func (h *SanctionHandler) SanctionsByTypeAndTeam(w http.ResponseWriter, r *http.Request) {
	typeID, err := uuidParam(r, "typeId")
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	teamID, err := uuidParam(r, "teamId")
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	entries, err := h.leaderboardService.SanctionsByTypeAndTeam(r.Context(), typeID, teamID)
	h.writeSanctioned(w, r, "SanctionsByTypeAndTeam", entries, err, map[string]interface{}{"type_id": typeID, "team_id": teamID})
}

// SanctionsByTypeAndMatch godoc
// @Summary Наказанные игроки матча по типу санкции
// @Tags sanctions
// @Produce json
// @Param typeId path string true "Sanction type ID"
// @Param matchId path string true "Match ID"
// @Success 200 {object} envelope
// @Router /sanctions/type/{typeId}/match/{matchId} [get]
func (h *SanctionHandler) SanctionsByTypeAndMatch(w http.ResponseWriter, r *http.Request) {
	typeID, err := uuidParam(r, "typeId")
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	matchID, err := uuidParam(r, "matchId")
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	entries, err := h.leaderboardService.SanctionsByTypeAndMatch(r.Context(), typeID, matchID)
	h.writeSanctioned(w, r, "SanctionsByTypeAndMatch", entries, err, map[string]interface{}{"type_id": typeID, "match_id": matchID})
}

// TopFiveSanctioned godoc
// @Summary Пять самых наказанных игроков по типу санкции
// @Tags sanctions
// @Produce json
// @Param typeId path string true "Sanction type ID"
// @Success 200 {object} envelope
// @Router /sanctions/type/{typeId}/top [get]
func (h *SanctionHandler) TopFiveSanctioned(w http.ResponseWriter, r *http.Request) {
	typeID, err := uuidParam(r, "typeId")
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	entries, err := h.leaderboardService.TopFiveSanctionedByType(r.Context(), typeID)
	h.writeSanctioned(w, r, "TopFiveSanctionedByType", entries, err, typeID)
}

// ---- sanction types ----

// AddSanctionType godoc
// @Summary Создать тип санкции
// @Tags sanctiontypes
// @Accept json
// @Produce json
// @Param body body services.SanctionTypeInput true "Тип санкции"
// @Success 201 {object} envelope
// @Router /sanctiontypes/addSanctionType [post]
func (h *SanctionHandler) AddSanctionType(w http.ResponseWriter, r *http.Request) {
	var input services.SanctionTypeInput
	if err := readJSON(w, r, &input); err != nil {
		h.badRequest(w, r, err)
		return
	}
	st, err := h.sanctionTypeService.CreateSanctionType(r.Context(), input)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, "SanctionType", "CreateSanctionType", err, input)
		return
	}
	h.created(w, r, "sanction type created successfully", st)
}

// AddMultipleSanctionTypes godoc
// @Summary Создать несколько типов санкций
// @Tags sanctiontypes
// @Accept json
// @Produce json
// @Param body body []services.SanctionTypeInput true "Типы санкций"
// @Success 201 {object} envelope
// @Router /sanctiontypes/addMultipleSanctionTypes [post]
func (h *SanctionHandler) AddMultipleSanctionTypes(w http.ResponseWriter, r *http.Request) {
	var inputs []services.SanctionTypeInput
	if err := readJSON(w, r, &inputs); err != nil {
		h.badRequest(w, r, err)
		return
	}
	list, err := h.sanctionTypeService.CreateSanctionTypes(r.Context(), inputs)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, "SanctionType", "CreateSanctionTypes", err, inputs)
		return
	}
	h.created(w, r, "sanction types created successfully", list)
}

// GetAllSanctionTypes godoc
// @Summary Все типы санкций
// @Tags sanctiontypes
// @Produce json
// @Success 200 {object} envelope
// @Router /sanctiontypes/getAll [get]
func (h *SanctionHandler) GetAllSanctionTypes(w http.ResponseWriter, r *http.Request) {
	list, err := h.sanctionTypeService.GetAllSanctionTypes(r.Context())
	if err != nil {
		h.serverError(w, r, "SanctionType", "GetAllSanctionTypes", err, nil)
		return
	}
	writeList(h.responder, w, r, "sanction types", list)
}

// GetSanctionTypeByID godoc
// @Summary Тип санкции по ID
// @Tags sanctiontypes
// @Produce json
// @Param id path string true "Sanction type ID"
// @Success 200 {object} envelope
// @Router /sanctiontypes/{id} [get]
func (h *SanctionHandler) GetSanctionTypeByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	st, err := h.sanctionTypeService.GetSanctionTypeByID(r.Context(), id)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, "SanctionType", "GetSanctionTypeByID", err, id)
		return
	}
	h.ok(w, r, "sanction type retrieved successfully", st)
}

// UpdateSanctionType godoc
// @Summary Обновить тип санкции
// @Tags sanctiontypes
// @Accept json
// @Produce json
// @Param id path string true "Sanction type ID"
// @Param body body services.UpdateSanctionTypeInput true "Изменяемые поля"
// @Success 200 {object} envelope
// @Router /sanctiontypes/updateSanctionType/{id} [put]
func (h *SanctionHandler) UpdateSanctionType(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	var input services.UpdateSanctionTypeInput
	if err := readJSON(w, r, &input); err != nil {
		h.badRequest(w, r, err)
		return
	}
	st, err := h.sanctionTypeService.UpdateSanctionType(r.Context(), id, input)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, "SanctionType", "UpdateSanctionType", err, input)
		return
	}
	h.ok(w, r, "sanction type updated successfully", st)
}

// DeleteSanctionType godoc
// @Summary Удалить тип санкции
// @Tags sanctiontypes
// @Produce json
// @Param id path string true "Sanction type ID"
// @Success 200 {object} envelope
// @Router /sanctiontypes/deleteSanctionType/{id} [delete]
func (h *SanctionHandler) DeleteSanctionType(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.sanctionTypeService.DeleteSanctionType(r.Context(), id); err != nil {
		h.mapServiceErrorToHTTP(w, r, "SanctionType", "DeleteSanctionType", err, id)
		return
	}
	h.ok(w, r, "sanction type deleted successfully", id)
}
