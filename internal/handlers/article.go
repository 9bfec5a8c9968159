package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"Devnovate/internal/content"
	"Devnovate/internal/middleware"
	"Devnovate/internal/models"
)

// ListArticles: опубликованные статьи, ?q= включает поиск.
func (h *Handler) ListArticles(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.ViewerKey(r.Context())
	writeJSON(w, http.StatusOK, h.store.Search(r.URL.Query().Get("q"), viewer))
}

// Trending: опубликованные статьи по убыванию trending score.
func (h *Handler) Trending(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryLimit(r, h.content.TrendingLimit)
	if !ok {
		jsonError(w, http.StatusBadRequest, "limit must be a non-negative integer")
		return
	}
	writeJSON(w, http.StatusOK, h.store.Trending(limit, middleware.ViewerKey(r.Context())))
}

// GetArticle отдаёт статью. Неопубликованные видят только автор и админ.
func (h *Handler) GetArticle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	article, ok := h.store.GetArticleFor(id, middleware.ViewerKey(r.Context()))
	if !ok || !h.canSee(r, article) {
		jsonError(w, http.StatusNotFound, "article not found")
		return
	}
	writeJSON(w, http.StatusOK, article)
}

// GetComments: комментарии статьи, новые сверху.
func (h *Handler) GetComments(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	article, ok := h.store.GetArticleByID(id)
	if !ok || !h.canSee(r, article) {
		jsonError(w, http.StatusNotFound, "article not found")
		return
	}
	writeJSON(w, http.StatusOK, h.store.GetComments(id))
}

// IncrementViews засчитывает просмотр. Дедупликация: забота клиента.
func (h *Handler) IncrementViews(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !h.visible(w, r, id) {
		return
	}
	if err := h.store.IncrementViews(id); err != nil {
		h.storeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ToggleLike переключает лайк текущего зрителя.
func (h *Handler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !h.visible(w, r, id) {
		return
	}
	article, err := h.store.ToggleLike(id, middleware.ViewerKey(r.Context()))
	if err != nil {
		h.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, article)
}

// AddComment добавляет комментарий от имени вошедшего пользователя.
func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFrom(r.Context())
	id := chi.URLParam(r, "id")

	var req models.CommentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	text := strings.TrimSpace(req.Content)
	if text == "" {
		jsonError(w, http.StatusBadRequest, "please write a comment first")
		return
	}
	if !h.visible(w, r, id) {
		return
	}

	comment := h.store.AddComment(id, text, user.Name, h.avatarOf(user))
	writeJSON(w, http.StatusCreated, comment)
}

// CreateArticle сохраняет черновик; submit=true сразу отправляет на модерацию.
func (h *Handler) CreateArticle(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFrom(r.Context())

	var req models.ArticleRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	req.Content = strings.TrimSpace(req.Content)

	tags, msg := normalizeTags(req.Tags, h.content.MaxTags)
	if msg != "" {
		jsonError(w, http.StatusBadRequest, msg)
		return
	}
	if req.Title == "" {
		jsonError(w, http.StatusBadRequest, "please add a title")
		return
	}
	if req.Submit {
		if req.Description == "" || req.Content == "" {
			jsonError(w, http.StatusBadRequest, "please fill in all required fields")
			return
		}
		if len(tags) == 0 {
			jsonError(w, http.StatusBadRequest, "please add at least one tag")
			return
		}
	}

	image := strings.TrimSpace(req.Image)
	if image == "" {
		image = h.content.DefaultImage
	}
	body := req.Content

	created := h.store.AddArticle(models.NewArticle{
		Title:       req.Title,
		Description: req.Description,
		Content:     &body,
		Image:       image,
		Tags:        tags,
		Author:      models.Author{Name: user.Name, Avatar: h.avatarOf(user), Email: user.Email},
		PublishDate: content.PublishDate(h.now()),
		ReadTime:    content.ReadTime(body, h.content.WordsPerMinute),
	})

	if req.Submit {
		if err := h.store.SubmitArticleForReview(created.ID); err != nil {
			h.storeError(w, err)
			return
		}
		created, _ = h.store.GetArticleFor(created.ID, user.Email)
	}

	h.logger.Info("article created", "article_id", created.ID, "author", user.Email, "status", created.Status)
	writeJSON(w, http.StatusCreated, created)
}

// UpdateArticle: частичное обновление статьи автором или админом.
func (h *Handler) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	current, ok := h.authorize(w, r, id)
	if !ok {
		return
	}

	var patch models.ArticlePatch
	if !decodeJSON(w, r, &patch) {
		return
	}
	if user, _ := middleware.UserFrom(r.Context()); !user.IsAdmin() && touchesReview(patch) {
		jsonError(w, http.StatusForbidden, "moderation fields are changed by admins only")
		return
	}
	if patch.Author != nil {
		// владелец не меняется через patch
		patch.Author.Email = current.Author.Email
	}
	if patch.Tags != nil {
		tags, msg := normalizeTags(patch.Tags, h.content.MaxTags)
		if msg != "" {
			jsonError(w, http.StatusBadRequest, msg)
			return
		}
		patch.Tags = tags
	}
	if patch.Content != nil && patch.ReadTime == nil {
		rt := content.ReadTime(*patch.Content, h.content.WordsPerMinute)
		patch.ReadTime = &rt
	}

	if err := h.store.UpdateArticle(id, patch); err != nil {
		h.storeError(w, err)
		return
	}
	article, _ := h.store.GetArticleFor(id, middleware.ViewerKey(r.Context()))
	writeJSON(w, http.StatusOK, article)
}

// SubmitArticle отправляет черновик (или отклонённую статью) на модерацию.
func (h *Handler) SubmitArticle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.authorize(w, r, id); !ok {
		return
	}
	if err := h.store.SubmitArticleForReview(id); err != nil {
		h.storeError(w, err)
		return
	}
	article, _ := h.store.GetArticleFor(id, middleware.ViewerKey(r.Context()))
	writeJSON(w, http.StatusOK, article)
}

// MyArticles: статьи текущего пользователя в любом статусе.
func (h *Handler) MyArticles(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFrom(r.Context())
	writeJSON(w, http.StatusOK, h.store.ListByOwner(user.Email, user.Email))
}

// authorize: менять статью могут её автор и админ. Автор определяется
// по email сессии, а не по отображаемому имени.
func (h *Handler) authorize(w http.ResponseWriter, r *http.Request, id string) (models.Article, bool) {
	user, _ := middleware.UserFrom(r.Context())
	article, ok := h.store.GetArticleByID(id)
	if !ok {
		jsonError(w, http.StatusNotFound, "article not found")
		return models.Article{}, false
	}
	if !user.IsAdmin() && !article.Author.OwnedBy(user.Email) {
		jsonError(w, http.StatusForbidden, "only the author can change this article")
		return models.Article{}, false
	}
	return article, true
}

// visible отвечает 404, если статьи нет или зрителю её не видно.
func (h *Handler) visible(w http.ResponseWriter, r *http.Request, id string) bool {
	article, ok := h.store.GetArticleByID(id)
	if !ok || !h.canSee(r, article) {
		jsonError(w, http.StatusNotFound, "article not found")
		return false
	}
	return true
}

// touchesReview: автор может только отправить статью на модерацию,
// остальные статусы и поля ревью ставит админ.
func touchesReview(p models.ArticlePatch) bool {
	if p.ReviewedAt != nil || p.ReviewedBy != nil || p.RejectionReason != nil {
		return true
	}
	return p.Status != nil && *p.Status != models.StatusPending
}

func (h *Handler) canSee(r *http.Request, article models.Article) bool {
	if article.Status == models.StatusApproved {
		return true
	}
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		return false
	}
	return user.IsAdmin() || article.Author.OwnedBy(user.Email)
}

func (h *Handler) avatarOf(user models.User) string {
	if user.Avatar != "" {
		return user.Avatar
	}
	return h.content.DefaultAvatar
}

// normalizeTags обрезает пробелы, убирает пустые и повторы, проверяет лимит.
func normalizeTags(raw []string, limit int) ([]string, string) {
	tags := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, tag := range raw {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	if limit > 0 && len(tags) > limit {
		return nil, "too many tags"
	}
	return tags, ""
}
