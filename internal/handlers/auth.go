package handlers

import (
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"Devnovate/internal/middleware"
	"Devnovate/internal/models"
)

// HandleLogin: вход. Учётка администратора проверяется по bcrypt-хэшу из
// конфига; любая другая пара email/пароль входит с ролью user.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		jsonError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	var user models.User
	switch {
	case strings.EqualFold(email, h.admin.Email):
		if h.admin.PasswordHash == "" ||
			bcrypt.CompareHashAndPassword([]byte(h.admin.PasswordHash), []byte(req.Password)) != nil {
			jsonError(w, http.StatusUnauthorized, "invalid admin credentials")
			return
		}
		user = models.User{
			Email:  h.admin.Email,
			Name:   h.admin.Name,
			Avatar: h.admin.Avatar,
			Role:   models.RoleAdmin,
		}
	case req.AsAdmin:
		jsonError(w, http.StatusUnauthorized, "invalid admin credentials")
		return
	default:
		name := strings.TrimSpace(req.Name)
		if name == "" {
			name, _, _ = strings.Cut(email, "@")
		}
		user = models.User{
			Email:  email,
			Name:   name,
			Avatar: strings.TrimSpace(req.Avatar),
			Role:   models.RoleUser,
		}
		if user.Avatar == "" {
			user.Avatar = h.content.DefaultAvatar
		}
	}

	if err := h.sessions.SetUser(w, r, user); err != nil {
		h.logger.Error("session save failed", "error", err)
		jsonError(w, http.StatusInternalServerError, "session error")
		return
	}
	h.logger.Info("login", "email", user.Email, "role", user.Role)
	writeJSON(w, http.StatusOK, user)
}

// HandleLogout удаляет сессию.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Clear(w, r); err != nil {
		jsonError(w, http.StatusInternalServerError, "logout failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Me: текущий пользователь.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		jsonError(w, http.StatusUnauthorized, "not logged in")
		return
	}
	writeJSON(w, http.StatusOK, user)
}
