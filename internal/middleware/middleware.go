package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"Devnovate/internal/models"
	"Devnovate/internal/sessions"
)

type ctxKey struct{}

// Viewer кладёт пользователя из сессии (если он есть) в контекст запроса.
// Ставится на весь роутер до остальных проверок.
func Viewer(sm *sessions.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if user, ok := sm.GetUser(r); ok {
				r = r.WithContext(context.WithValue(r.Context(), ctxKey{}, user))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// UserFrom возвращает пользователя, положенного мидлварью Viewer.
func UserFrom(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(ctxKey{}).(models.User)
	return user, ok
}

// ViewerKey возвращает ключ зрителя для лайков: email или пустую строку для анонима.
func ViewerKey(ctx context.Context) string {
	if user, ok := UserFrom(ctx); ok {
		return user.Email
	}
	return ""
}

// RequireUser пропускает только вошедших пользователей.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserFrom(r.Context()); !ok {
			deny(w, http.StatusUnauthorized, "login required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// AdminOnly: chi-совместимая мидлварь, g.Use(middleware.AdminOnly).
// Роль проверяется только здесь; хранилище о ролях не знает.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFrom(r.Context())
		if !ok {
			deny(w, http.StatusUnauthorized, "login required")
			return
		}
		if !user.IsAdmin() {
			deny(w, http.StatusForbidden, "admin role required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func deny(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]any{"error": msg})
}
