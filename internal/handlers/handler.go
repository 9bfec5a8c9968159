package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"Devnovate/internal/config"
	"Devnovate/internal/sessions"
	"Devnovate/internal/store"
)

// maxBodySize ограничивает JSON-тела запросов.
const maxBodySize int64 = 1 << 20

// Handler: HTTP-слой поверх хранилища. Хранилище передаётся явно,
// глобального состояния нет.
type Handler struct {
	store    *store.Store
	sessions *sessions.Manager
	admin    config.AdminConfig
	content  config.ContentConfig
	logger   *slog.Logger
	now      func() time.Time
}

// New собирает обработчики.
func New(st *store.Store, sm *sessions.Manager, cfg config.Config, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		store:    st,
		sessions: sm,
		admin:    cfg.Admin,
		content:  cfg.Content,
		logger:   logger,
		now:      time.Now,
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{
		"error": msg,
	})
}

// decodeJSON читает тело запроса в dst; ошибка уже отправлена клиенту, если false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

// storeError переводит ошибки хранилища в HTTP-ответ.
func (h *Handler) storeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrArticleNotFound):
		jsonError(w, http.StatusNotFound, "article not found")
	case errors.Is(err, store.ErrInvalidTransition):
		jsonError(w, http.StatusConflict, err.Error())
	default:
		h.logger.Error("store operation failed", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
	}
}

// queryLimit читает ?limit=, без параметра возвращает def.
func queryLimit(r *http.Request, def int) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
