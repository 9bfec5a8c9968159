package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	mw "Devnovate/internal/middleware"
)

// Routes собирает роутер со всеми маршрутами API.
func (h *Handler) Routes(requestTimeout time.Duration) http.Handler {
	r := chi.NewRouter()

	// базовые middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	if requestTimeout > 0 {
		r.Use(chimw.Timeout(requestTimeout))
	}
	r.Use(chimw.RedirectSlashes) // /path/ -> /path
	r.Use(mw.Viewer(h.sessions))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	// ---------- Аутентификация ----------
	r.Post("/api/login", h.HandleLogin)
	r.Post("/api/logout", h.HandleLogout)
	r.Get("/api/me", h.Me)

	// ---------- Публичное API статей ----------
	r.Route("/api/articles", func(r chi.Router) {
		r.Get("/", h.ListArticles)
		r.Get("/trending", h.Trending)
		r.Get("/{id}", h.GetArticle)
		r.Get("/{id}/comments", h.GetComments)
		r.Post("/{id}/views", h.IncrementViews)
		r.Post("/{id}/like", h.ToggleLike)

		// авторские действия: только с сессией
		r.Group(func(g chi.Router) {
			g.Use(mw.RequireUser)
			g.Post("/", h.CreateArticle)
			g.Patch("/{id}", h.UpdateArticle)
			g.Post("/{id}/submit", h.SubmitArticle)
			g.Post("/{id}/comments", h.AddComment)
		})
	})
	r.With(mw.RequireUser).Get("/api/me/articles", h.MyArticles)

	// ---------- Админ API ----------
	r.Route("/admin", func(r chi.Router) {
		r.Use(mw.AdminOnly)

		r.Get("/articles", h.AdminListArticles)
		r.Get("/articles/pending", h.PendingArticles)
		r.Get("/articles/published", h.PublishedArticles)
		r.Get("/articles/hidden", h.HiddenArticles)
		r.Post("/articles/{id}/approve", h.ApproveArticle)
		r.Post("/articles/{id}/reject", h.RejectArticle)
		r.Post("/articles/{id}/hide", h.HideArticle)
		r.Delete("/articles/{id}", h.DeleteArticle)

		r.Get("/stats", h.Stats)
		r.Get("/tags", h.Tags)
		r.Get("/top", h.TopArticles)
		r.Get("/consistency", h.Consistency)
	})

	return r
}
