package handlers

import (
	"net/http"

	"github.com/Dosada05/tournament-admin/auditlog"
	"github.com/Dosada05/tournament-admin/services"
	"github.com/rs/zerolog"
)

type UserHandler struct {
	userService services.UserService
	logService  services.LogService
	responder
}

func NewUserHandler(us services.UserService, ls services.LogService, audit auditlog.Sink, logger zerolog.Logger) *UserHandler {
	return &UserHandler{userService: us, logService: ls, responder: newResponder(audit, logger, "user_handler")}
}

// AddUser godoc
// @Summary Создать пользователя
// @Tags users
// @Accept json
// @Produce json
// @Param body body services.CreateUserInput true "Пользователь"
// @Success 201 {object} envelope
// @Failure 400 {object} envelope
// @Router /user/addUser [post]
func (h *UserHandler) AddUser(w http.ResponseWriter, r *http.Request) {
	var input services.CreateUserInput
	if err := readJSON(w, r, &input); err != nil {
		h.badRequest(w, r, err)
		return
	}
	user, err := h.userService.CreateUser(r.Context(), input)
	if err != nil {
		// пароль в журнал не пишем
		input.Password = ""
		h.mapServiceErrorToHTTP(w, r, "User", "CreateUser", err, input)
		return
	}
	h.created(w, r, "user created successfully", user)
}

// GetAllUsers godoc
// @Summary Все пользователи
// @Tags users
// @Produce json
// @Success 200 {object} envelope
// @Router /user/getAll [get]
func (h *UserHandler) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.GetAllUsers(r.Context())
	if err != nil {
		h.serverError(w, r, "User", "GetAllUsers", err, nil)
		return
	}
	writeList(h.responder, w, r, "users", users)
}

// Login godoc
// @Summary Вход
// @Description Проверяет логин и пароль и возвращает пользователя. Токены не выдаются.
// @Tags users
// @Accept json
// @Produce json
// @Param body body services.LoginInput true "Учётные данные"
// @Success 200 {object} envelope
// @Failure 400 {object} envelope "Неверные учётные данные"
// @Router /user/login [post]
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input services.LoginInput
	if err := readJSON(w, r, &input); err != nil {
		h.badRequest(w, r, err)
		return
	}
	user, err := h.userService.Login(r.Context(), input)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, "User", "Login", err, map[string]string{"username": input.Username})
		return
	}
	h.ok(w, r, "login successful", user)
}

// AddRole godoc
// @Summary Создать роль
// @Tags users
// @Accept json
// @Produce json
// @Param body body services.CreateRoleInput true "Роль"
// @Success 201 {object} envelope
// @Router /user/roles/addRole [post]
func (h *UserHandler) AddRole(w http.ResponseWriter, r *http.Request) {
	var input services.CreateRoleInput
	if err := readJSON(w, r, &input); err != nil {
		h.badRequest(w, r, err)
		return
	}
	role, err := h.userService.CreateRole(r.Context(), input)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, "Role", "CreateRole", err, input)
		return
	}
	h.created(w, r, "role created successfully", role)
}

// GetAllRoles godoc
// @Summary Все роли
// @Tags users
// @Produce json
// @Success 200 {object} envelope
// @Router /user/roles/getAll [get]
func (h *UserHandler) GetAllRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.userService.GetAllRoles(r.Context())
	if err != nil {
		h.serverError(w, r, "Role", "GetAllRoles", err, nil)
		return
	}
	writeList(h.responder, w, r, "roles", roles)
}

// GetAllLogs godoc
// @Summary Журнал ошибок
// @Description Записи аудита, новые первыми.
// @Tags logs
// @Produce json
// @Success 200 {object} envelope
// @Router /log/getAll [get]
func (h *UserHandler) GetAllLogs(w http.ResponseWriter, r *http.Request) {
	logs, err := h.logService.GetAllLogs(r.Context())
	if err != nil {
		h.serverError(w, r, "Log", "GetAllLogs", err, nil)
		return
	}
	writeList(h.responder, w, r, "logs", logs)
}
