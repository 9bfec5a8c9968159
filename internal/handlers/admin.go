package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"Devnovate/internal/middleware"
	"Devnovate/internal/models"
)

// AdminListArticles: все статьи, ?status= фильтрует по статусу.
func (h *Handler) AdminListArticles(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.ViewerKey(r.Context())
	raw := r.URL.Query().Get("status")
	if raw == "" {
		writeJSON(w, http.StatusOK, h.store.MarkLiked(viewer, h.store.Articles()))
		return
	}

	status := models.Status(raw)
	if !status.Valid() {
		jsonError(w, http.StatusBadRequest, "unknown status")
		return
	}
	writeJSON(w, http.StatusOK, h.store.ListByStatus(status, viewer))
}

// PendingArticles: очередь модерации.
func (h *Handler) PendingArticles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.MarkLiked(middleware.ViewerKey(r.Context()), h.store.GetPendingArticles()))
}

// PublishedArticles: одобренные статьи.
func (h *Handler) PublishedArticles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.MarkLiked(middleware.ViewerKey(r.Context()), h.store.GetPublishedArticles()))
}

// HiddenArticles: скрытые статьи.
func (h *Handler) HiddenArticles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.MarkLiked(middleware.ViewerKey(r.Context()), h.store.GetHiddenArticles()))
}

// ApproveArticle одобряет статью от имени текущего админа.
func (h *Handler) ApproveArticle(w http.ResponseWriter, r *http.Request) {
	admin, _ := middleware.UserFrom(r.Context())
	id := chi.URLParam(r, "id")

	if err := h.store.ApproveArticle(id, admin.Name); err != nil {
		h.storeError(w, err)
		return
	}
	h.logger.Info("article approved", "article_id", id, "reviewed_by", admin.Name)
	h.writeArticle(w, r, id)
}

// RejectArticle отклоняет статью. Причина обязательна на этом уровне;
// хранилище принимает любую.
func (h *Handler) RejectArticle(w http.ResponseWriter, r *http.Request) {
	admin, _ := middleware.UserFrom(r.Context())
	id := chi.URLParam(r, "id")

	var req models.RejectRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Reason) == "" {
		jsonError(w, http.StatusBadRequest, "rejection reason is required")
		return
	}

	if err := h.store.RejectArticle(id, admin.Name, req.Reason); err != nil {
		h.storeError(w, err)
		return
	}
	h.logger.Info("article rejected", "article_id", id, "reviewed_by", admin.Name)
	h.writeArticle(w, r, id)
}

// HideArticle снимает статью с публикации.
func (h *Handler) HideArticle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.store.HideArticle(id); err != nil {
		h.storeError(w, err)
		return
	}
	h.logger.Info("article hidden", "article_id", id)
	h.writeArticle(w, r, id)
}

// DeleteArticle удаляет статью вместе с комментариями.
func (h *Handler) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.store.DeleteArticle(id); err != nil {
		h.storeError(w, err)
		return
	}
	h.logger.Info("article deleted", "article_id", id)
	w.WriteHeader(http.StatusNoContent)
}

// Stats: сводка для дашборда.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Stats())
}

// Tags: распределение тегов, ?limit= (по умолчанию 6).
func (h *Handler) Tags(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryLimit(r, 0)
	if !ok {
		jsonError(w, http.StatusBadRequest, "limit must be a non-negative integer")
		return
	}
	writeJSON(w, http.StatusOK, h.store.TagDistribution(limit))
}

// TopArticles: рейтинг по просмотрам, ?limit= (по умолчанию 5).
func (h *Handler) TopArticles(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryLimit(r, 0)
	if !ok {
		jsonError(w, http.StatusBadRequest, "limit must be a non-negative integer")
		return
	}
	writeJSON(w, http.StatusOK, h.store.TopArticles(limit))
}

// Consistency: расхождения счётчиков комментариев. Пустой список значит, что всё сходится.
func (h *Handler) Consistency(w http.ResponseWriter, r *http.Request) {
	mismatches := h.store.CheckConsistency()
	if mismatches == nil {
		mismatches = []models.Mismatch{}
	}
	writeJSON(w, http.StatusOK, mismatches)
}

func (h *Handler) writeArticle(w http.ResponseWriter, r *http.Request, id string) {
	article, ok := h.store.GetArticleFor(id, middleware.ViewerKey(r.Context()))
	if !ok {
		jsonError(w, http.StatusNotFound, "article not found")
		return
	}
	writeJSON(w, http.StatusOK, article)
}
