package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Dosada05/tournament-admin/auditlog"
	"github.com/Dosada05/tournament-admin/services"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// maxBodyBytes - логотипы и фото приходят base64 внутри JSON.
const maxBodyBytes = 10 << 20

// envelope - единый формат ответа.
type envelope struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

func readJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var invalidUnmarshalError *json.InvalidUnmarshalError
		var maxBytesError *http.MaxBytesError

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")
		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
			}
			return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)
		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			return fmt.Errorf("body contains unknown key %s", fieldName)
		case errors.As(err, &maxBytesError):
			return fmt.Errorf("body must not be larger than %d bytes", maxBytesError.Limit)
		case errors.As(err, &invalidUnmarshalError):
			panic(err) // ошибка программиста: передан не указатель
		default:
			return err
		}
	}

	err = dec.Decode(&struct{}{})
	if !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single JSON value")
	}

	return nil
}

func writeJSON(w http.ResponseWriter, status int, data interface{}, headers http.Header) error {
	js, err := json.Marshal(data)
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(js)
	return err
}

func uuidParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s parameter %q", name, raw)
	}
	return id, nil
}

// responder общий для всех хендлеров: ответы в конверте и аудит серверных ошибок.
type responder struct {
	audit auditlog.Sink
	log   zerolog.Logger
}

func newResponder(audit auditlog.Sink, logger zerolog.Logger, component string) responder {
	return responder{audit: audit, log: logger.With().Str("component", component).Logger()}
}

func (rs responder) respond(w http.ResponseWriter, r *http.Request, status int, message string, data interface{}) {
	if err := writeJSON(w, status, envelope{Message: message, Data: data}, nil); err != nil {
		rs.log.Error().Err(err).Str("path", r.URL.Path).Msg("failed to write response")
	}
}

func (rs responder) ok(w http.ResponseWriter, r *http.Request, message string, data interface{}) {
	rs.respond(w, r, http.StatusOK, message, data)
}

func (rs responder) created(w http.ResponseWriter, r *http.Request, message string, data interface{}) {
	rs.respond(w, r, http.StatusCreated, message, data)
}

func (rs responder) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	var data interface{}
	if fields := services.FieldErrors(err); fields != nil {
		data = fields
	}
	rs.respond(w, r, http.StatusBadRequest, err.Error(), data)
}

// missing - "не найдено" на чтении: 200 и data: null.
func (rs responder) missing(w http.ResponseWriter, r *http.Request, err error) {
	rs.ok(w, r, err.Error(), nil)
}

func (rs responder) notFound(w http.ResponseWriter, r *http.Request, err error) {
	rs.respond(w, r, http.StatusNotFound, err.Error(), nil)
}

// serverError пишет запись аудита и отвечает 500 с исходным текстом ошибки в data.
func (rs responder) serverError(w http.ResponseWriter, r *http.Request, entity, method string, err error, payload interface{}) {
	rs.log.Error().Err(err).
		Str("entity", entity).
		Str("method", method).
		Str("request_id", requestID(r)).
		Msg("request failed")
	rs.audit.Record(auditlog.NewEntry(entity, method, err, payload))
	rs.respond(w, r, http.StatusInternalServerError, method+": "+err.Error(), err.Error())
}

// mapServiceErrorToHTTP преобразует ошибки сервисного слоя в HTTP-ответы.
// Отсутствующая сущность на чтении - 200 с data: null; хендлеры, которым нужен 404,
// проверяют services.ErrNotFound сами до вызова.
func (rs responder) mapServiceErrorToHTTP(w http.ResponseWriter, r *http.Request, entity, method string, err error, payload interface{}) {
	switch {
	case errors.Is(err, services.ErrValidationFailed),
		errors.Is(err, services.ErrReferenceNotFound),
		errors.Is(err, services.ErrInvalidDateRange),
		errors.Is(err, services.ErrEmptyBatch),
		errors.Is(err, services.ErrInvalidCredentials):
		rs.badRequest(w, r, err)

	case errors.Is(err, services.ErrNotFound):
		rs.missing(w, r, err)

	default:
		rs.serverError(w, r, entity, method, err, payload)
	}
}

// writeList - пустой список отдаётся как data: null с пояснением.
func writeList[T any](rs responder, w http.ResponseWriter, r *http.Request, name string, items []T) {
	if len(items) == 0 {
		rs.ok(w, r, "no "+name+" found", nil)
		return
	}
	rs.ok(w, r, name+" retrieved successfully", items)
}

func requestID(r *http.Request) string {
	return chimw.GetReqID(r.Context())
}
