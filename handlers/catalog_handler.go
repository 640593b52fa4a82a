package handlers

import (
	"errors"
	"net/http"

	"github.com/Dosada05/tournament-admin/auditlog"
	"github.com/Dosada05/tournament-admin/services"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Справочники: раунды, поля и состояния. Промах поиска по id, коду или имени здесь даёт 404.

type CatalogHandler struct {
	rounds services.RoundService
	fields services.FieldService
	states services.StateService
	responder
}

func NewCatalogHandler(
	rounds services.RoundService,
	fields services.FieldService,
	states services.StateService,
	audit auditlog.Sink,
	logger zerolog.Logger,
) *CatalogHandler {
	return &CatalogHandler{
		rounds:    rounds,
		fields:    fields,
		states:    states,
		responder: newResponder(audit, logger, "catalog_handler"),
	}
}

func (h *CatalogHandler) lookupError(w http.ResponseWriter, r *http.Request, entity, method string, err error, payload interface{}) {
	if errors.Is(err, services.ErrNotFound) {
		h.notFound(w, r, err)
		return
	}
	h.mapServiceErrorToHTTP(w, r, entity, method, err, payload)
}

// ---- rounds ----

// AddRound godoc
// @Summary Создать раунд
// @Tags rounds
// @Accept json
// @Produce json
// @Param body body services.RoundInput true "Раунд"
// @Success 201 {object} envelope
// @Failure 400 {object} envelope
// @Router /rounds/addRound [post]
func (h *CatalogHandler) AddRound(w http.ResponseWriter, r *http.Request) {
	var input services.RoundInput
	if err := readJSON(w, r, &input); err != nil {
		h.badRequest(w, r, err)
		return
	}
	round, err := h.rounds.CreateRound(r.Context(), input)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, "Round", "CreateRound", err, input)
		return
	}
	h.created(w, r, "round created successfully", round)
}

// AddMultipleRounds godoc
// @Summary Создать несколько раундов
// @Tags rounds
// @Accept json
// @Produce json
// @Param body body []services.RoundInput true "Раунды"
// @Success 201 {object} envelope
// @Router /rounds/addMultipleRounds [post]
func (h *CatalogHandler) AddMultipleRounds(w http.ResponseWriter, r *http.Request) {
	var inputs []services.RoundInput
	if err := readJSON(w, r, &inputs); err != nil {
		h.badRequest(w, r, err)
		return
	}
	rounds, err := h.rounds.CreateRounds(r.Context(), inputs)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, "Round", "CreateRounds", err, inputs)
		return
	}
	h.created(w, r, "rounds created successfully", rounds)
}

// GetAllRounds godoc
// @Summary Все раунды
// @Tags rounds
// @Produce json
// @Success 200 {object} envelope
// @Router /rounds/getAll [get]
func (h *CatalogHandler) GetAllRounds(w http.ResponseWriter, r *http.Request) {
	rounds, err := h.rounds.GetAllRounds(r.Context())
	if err != nil {
		h.serverError(w, r, "Round", "GetAllRounds", err, nil)
		return
	}
	writeList(h.responder, w, r, "rounds", rounds)
}

// GetRoundByID godoc
// @Summary Раунд по ID
// @Tags rounds
// @Produce json
// @Param id path string true "Round ID"
// @Success 200 {object} envelope
// @Failure 404 {object} envelope
// @Router /rounds/{id} [get]
func (h *CatalogHandler) GetRoundByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	round, err := h.rounds.GetRoundByID(r.Context(), id)
	if err != nil {
		h.lookupError(w, r, "Round", "GetRoundByID", err, id)
		return
	}
	h.ok(w, r, "round retrieved successfully", round)
}

// GetRoundByCode godoc
// @Summary Раунд по коду
// @Tags rounds
// @Produce json
// @Param code path string true "Round code"
// @Success 200 {object} envelope
// @Failure 404 {object} envelope
// @Router /rounds/code/{code} [get]
func (h *CatalogHandler) GetRoundByCode(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	round, err := h.rounds.GetRoundByCode(r.Context(), code)
	if err != nil {
		h.lookupError(w, r, "Round", "GetRoundByCode", err, code)
		return
	}
	h.ok(w, r, "round retrieved successfully", round)
}

// UpdateRound godoc
// @Summary Обновить раунд
// @Tags rounds
// @Accept json
// @Produce json
// @Param id path string true "Round ID"
// @Param body body services.UpdateRoundInput true "Изменяемые поля"
// @Success 200 {object} envelope
// @Failure 404 {object} envelope
// @Router /rounds/updateRound/{id} [put]
func (h *CatalogHandler) UpdateRound(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	var input services.UpdateRoundInput
	if err := readJSON(w, r, &input); err != nil {
		h.badRequest(w, r, err)
		return
	}
	round, err := h.rounds.UpdateRound(r.Context(), id, input)
	if err != nil {
		h.lookupError(w, r, "Round", "UpdateRound", err, input)
		return
	}
	h.ok(w, r, "round updated successfully", round)
}

// DeleteRound godoc
// @Summary Удалить раунд
// @Description У матчей раунда round_id становится null.
// @Tags rounds
// @Produce json
// @Param id path string true "Round ID"
// @Success 200 {object} envelope
// @Failure 404 {object} envelope
// @Router /rounds/deleteRound/{id} [delete]
func (h *CatalogHandler) DeleteRound(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.rounds.DeleteRound(r.Context(), id); err != nil {
		h.lookupError(w, r, "Round", "DeleteRound", err, id)
		return
	}
	h.ok(w, r, "round deleted successfully", id)
}

// ---- fields ----

// AddField godoc
// @Summary Создать поле
// @Tags fields
// @Accept json
// @Produce json
// @Param body body services.FieldInput true "Поле"
// @Success 201 {object} envelope
// @Router /fields/addField [post]
func (h *CatalogHandler) AddField(w http.ResponseWriter, r *http.Request) {
	var input services.FieldInput
	if err := readJSON(w, r, &input); err != nil {
		h.badRequest(w, r, err)
		return
	}
	field, err := h.fields.CreateField(r.Context(), input)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, "Field", "CreateField", err, input)
		return
	}
	h.created(w, r, "field created successfully", field)
}

// AddMultipleFields godoc
// @Summary Создать несколько полей
// @Tags fields
// @Accept json
// @Produce json
// @Param body body []services.FieldInput true "Поля"
// @Success 201 {object} envelope
// @Router /fields/addMultipleFields [post]
func (h *CatalogHandler) AddMultipleFields(w http.ResponseWriter, r *http.Request) {
	var inputs []services.FieldInput
	if err := readJSON(w, r, &inputs); err != nil {
		h.badRequest(w, r, err)
		return
	}
	fields, err := h.fields.CreateFields(r.Context(), inputs)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, "Field", "CreateFields", err, inputs)
		return
	}
	h.created(w, r, "fields created successfully", fields)
}

// GetAllFields godoc
// @Summary Все поля
// @Tags fields
// @Produce json
// @Success 200 {object} envelope
// @Router /fields/getAll [get]
func (h *CatalogHandler) GetAllFields(w http.ResponseWriter, r *http.Request) {
	fields, err := h.fields.GetAllFields(r.Context())
	if err != nil {
		h.serverError(w, r, "Field", "GetAllFields", err, nil)
		return
	}
	writeList(h.responder, w, r, "fields", fields)
}

// GetFieldByID godoc
// @Summary Поле по ID
// @Tags fields
// @Produce json
// @Param id path string true "Field ID"
// @Success 200 {object} envelope
// @Failure 404 {object} envelope
// @Router /fields/{id} [get]
func (h *CatalogHandler) GetFieldByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	field, err := h.fields.GetFieldByID(r.Context(), id)
	if err != nil {
		h.lookupError(w, r, "Field", "GetFieldByID", err, id)
		return
	}
	h.ok(w, r, "field retrieved successfully", field)
}

// GetFieldByName godoc
// @Summary Поле по имени
// @Tags fields
// @Produce json
// @Param name path string true "Field name"
// @Success 200 {object} envelope
// @Failure 404 {object} envelope
// @Router /fields/name/{name} [get]
func (h *CatalogHandler) GetFieldByName(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	field, err := h.fields.GetFieldByName(r.Context(), name)
	if err != nil {
		h.lookupError(w, r, "Field", "GetFieldByName", err, name)
		return
	}
	h.ok(w, r, "field retrieved successfully", field)
}

// UpdateField godoc
// @Summary Обновить поле
// @Tags fields
// @Accept json
// @Produce json
// @Param id path string true "Field ID"
// @Param body body services.UpdateFieldInput true "Изменяемые поля"
// @Success 200 {object} envelope
// @Failure 404 {object} envelope
// @Router /fields/updateField/{id} [put]
func (h *CatalogHandler) UpdateField(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	var input services.UpdateFieldInput
	if err := readJSON(w, r, &input); err != nil {
		h.badRequest(w, r, err)
		return
	}
	field, err := h.fields.UpdateField(r.Context(), id, input)
	if err != nil {
		h.lookupError(w, r, "Field", "UpdateField", err, input)
		return
	}
	h.ok(w, r, "field updated successfully", field)
}

// DeleteField godoc
// @Summary Удалить поле
// @Description У расписаний на этом поле field_id становится null.
// @Tags fields
// @Produce json
// @Param id path string true "Field ID"
// @Success 200 {object} envelope
// @Failure 404 {object} envelope
// @Router /fields/deleteField/{id} [delete]
func (h *CatalogHandler) DeleteField(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.fields.DeleteField(r.Context(), id); err != nil {
		h.lookupError(w, r, "Field", "DeleteField", err, id)
		return
	}
	h.ok(w, r, "field deleted successfully", id)
}

// ---- states ----

// AddState godoc
// @Summary Создать состояние матча
// @Tags states
// @Accept json
// @Produce json
// @Param body body services.StateInput true "Состояние"
// @Success 201 {object} envelope
// @Router /states/addState [post]
func (h *CatalogHandler) AddState(w http.ResponseWriter, r *http.Request) {
	var input services.StateInput
	if err := readJSON(w, r, &input); err != nil {
		h.badRequest(w, r, err)
		return
	}
	state, err := h.states.CreateState(r.Context(), input)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, "State", "CreateState", err, input)
		return
	}
	h.created(w, r, "state created successfully", state)
}

// GetAllStates godoc
// @Summary Все состояния
// @Tags states
// @Produce json
// @Success 200 {object} envelope
// @Router /states/getAll [get]
func (h *CatalogHandler) GetAllStates(w http.ResponseWriter, r *http.Request) {
	states, err := h.states.GetAllStates(r.Context())
	if err != nil {
		h.serverError(w, r, "State", "GetAllStates", err, nil)
		return
	}
	writeList(h.responder, w, r, "states", states)
}

// GetStateByID godoc
// @Summary Состояние по ID
// @Tags states
// @Produce json
// @Param id path string true "State ID"
// @Success 200 {object} envelope
// @Failure 404 {object} envelope
// @Router /states/{id} [get]
func (h *CatalogHandler) GetStateByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	state, err := h.states.GetStateByID(r.Context(), id)
	if err != nil {
		h.lookupError(w, r, "State", "GetStateByID", err, id)
		return
	}
	h.ok(w, r, "state retrieved successfully", state)
}

// GetStateByName godoc
// @Summary Состояние по имени
// @Tags states
// @Produce json
// @Param name path string true "State name"
// @Success 200 {object} envelope
// @Failure 404 {object} envelope
// @Router /states/name/{name} [get]
func (h *CatalogHandler) GetStateByName(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	state, err := h.states.GetStateByName(r.Context(), name)
	if err != nil {
		h.lookupError(w, r, "State", "GetStateByName", err, name)
		return
	}
	h.ok(w, r, "state retrieved successfully", state)
}

// UpdateState godoc
// @Summary Обновить состояние
// @Tags states
// @Accept json
// @Produce json
// @Param id path string true "State ID"
// @Param body body services.UpdateStateInput true "Изменяемые поля"
// @Success 200 {object} envelope
// @Failure 404 {object} envelope
// @Router /states/updateState/{id} [put]
func (h *CatalogHandler) UpdateState(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	var input services.UpdateStateInput
	if err := readJSON(w, r, &input); err != nil {
		h.badRequest(w, r, err)
		return
	}
	state, err := h.states.UpdateState(r.Context(), id, input)
	if err != nil {
		h.lookupError(w, r, "State", "UpdateState", err, input)
		return
	}
	h.ok(w, r, "state updated successfully", state)
}

// DeleteState godoc
// @Summary Удалить состояние
// @Description Состояние, на которое ссылаются расписания, удалить нельзя.
// @Tags states
// @Produce json
// @Param id path string true "State ID"
// @Success 200 {object} envelope
// @Failure 404 {object} envelope
// @Failure 500 {object} envelope
// @Router /states/deleteState/{id} [delete]
func (h *CatalogHandler) DeleteState(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.states.DeleteState(r.Context(), id); err != nil {
		h.lookupError(w, r, "State", "DeleteState", err, id)
		return
	}
	h.ok(w, r, "state deleted successfully", id)
}
