// Package store хранит статьи и комментарии в памяти.
//
// Store единолично владеет состоянием: чтения отдают копии, а изменения идут
// только через его методы. Каждый метод выполняется под блокировкой
// хранилища, поэтому изменение атомарно относительно любых других вызовов.
package store

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"Devnovate/internal/models"
)

var (
	// ErrArticleNotFound: изменение адресовано неизвестному id.
	// Хранилище не меняется.
	ErrArticleNotFound = errors.New("store: article not found")
	// ErrInvalidTransition: смена статуса не разрешена циклом модерации.
	// Статья не меняется.
	ErrInvalidTransition = errors.New("store: invalid status transition")
)

// AnonymousViewer: общий ключ зрителя для всех без сессии.
const AnonymousViewer = ""

const commentJustNow = "just now"

// Option настраивает хранилище.
type Option func(*Store)

// WithLogger задаёт логгер.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock подменяет time.Now для отметок отправки и ревью.
func WithClock(clock func() time.Time) Option {
	return func(s *Store) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithIDGenerator подменяет генератор UUID для новых статей и комментариев.
func WithIDGenerator(next func() string) Option {
	return func(s *Store) {
		if next != nil {
			s.newID = next
		}
	}
}

// Store: хранилище контента.
type Store struct {
	logger *slog.Logger
	clock  func() time.Time
	newID  func() string

	mu       sync.RWMutex
	articles []*record // новые в начале
	index    map[string]*record
	comments []models.Comment // новые в начале
}

type record struct {
	article models.Article
	likedBy map[string]struct{}
	// commentOffset: часть article.Comments, за которой нет строк комментариев.
	commentOffset int
}

// New создаёт пустое хранилище.
func New(options ...Option) *Store {
	s := &Store{
		logger: slog.Default(),
		clock:  time.Now,
		newID:  uuid.NewString,
		index:  make(map[string]*record),
	}
	for _, option := range options {
		option(s)
	}

	return s
}

// Seed заменяет всю коллекцию переданными статьями и комментариями.
// id, статусы, счётчики и порядок сохраняются как есть,
// таблица переходов не проверяется.
func (s *Store) Seed(articles []models.Article, comments []models.Comment) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := make(map[string]int, len(articles))
	for _, c := range comments {
		rows[c.ArticleID]++
	}

	s.articles = make([]*record, 0, len(articles))
	s.index = make(map[string]*record, len(articles))
	for _, a := range articles {
		rec := &record{
			article:       a.Clone(),
			likedBy:       make(map[string]struct{}),
			commentOffset: a.Comments - rows[a.ID],
		}
		rec.article.IsLiked = false
		s.articles = append(s.articles, rec)
		s.index[a.ID] = rec
	}

	s.comments = make([]models.Comment, len(comments))
	copy(s.comments, comments)

	s.logger.Debug("store seeded", "articles", len(s.articles), "comments", len(s.comments))
}

// AddArticle сохраняет новый черновик с новым id и нулевыми счётчиками.
// Входные данные не валидируются.
func (s *Store) AddArticle(data models.NewArticle) models.Article {
	s.mu.Lock()
	defer s.mu.Unlock()

	article := models.Article{
		ID:              s.newID(),
		Title:           data.Title,
		Description:     data.Description,
		Content:         data.Content,
		Image:           data.Image,
		Tags:            data.Tags,
		Author:          data.Author,
		PublishDate:     data.PublishDate,
		ReadTime:        data.ReadTime,
		Status:          models.StatusDraft,
		SubmittedAt:     data.SubmittedAt,
		ReviewedAt:      data.ReviewedAt,
		ReviewedBy:      data.ReviewedBy,
		RejectionReason: data.RejectionReason,
	}
	rec := &record{article: article.Clone(), likedBy: make(map[string]struct{})}

	s.articles = append([]*record{rec}, s.articles...)
	s.index[article.ID] = rec

	s.logger.Debug("article added", "article_id", article.ID)
	return rec.article.Clone()
}

// UpdateArticle применяет patch к статье. Статус в patch должен быть
// допустимым переходом, иначе не применяется ничего.
func (s *Store) UpdateArticle(id string, patch models.ArticlePatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.lookup("update", id)
	if err != nil {
		return err
	}
	if patch.Status != nil && *patch.Status != rec.article.Status {
		if err := checkTransition(rec.article.Status, *patch.Status); err != nil {
			return err
		}
	}

	a := &rec.article
	if patch.Title != nil {
		a.Title = *patch.Title
	}
	if patch.Description != nil {
		a.Description = *patch.Description
	}
	if patch.Content != nil {
		a.Content = stringPtr(*patch.Content)
	}
	if patch.Image != nil {
		a.Image = *patch.Image
	}
	if patch.Tags != nil {
		a.Tags = append([]string(nil), patch.Tags...)
	}
	if patch.Author != nil {
		a.Author = *patch.Author
	}
	if patch.PublishDate != nil {
		a.PublishDate = *patch.PublishDate
	}
	if patch.ReadTime != nil {
		a.ReadTime = *patch.ReadTime
	}
	if patch.Status != nil {
		a.Status = *patch.Status
	}
	if patch.SubmittedAt != nil {
		a.SubmittedAt = timePtr(*patch.SubmittedAt)
	}
	if patch.ReviewedAt != nil {
		a.ReviewedAt = timePtr(*patch.ReviewedAt)
	}
	if patch.ReviewedBy != nil {
		a.ReviewedBy = stringPtr(*patch.ReviewedBy)
	}
	if patch.RejectionReason != nil {
		a.RejectionReason = stringPtr(*patch.RejectionReason)
	}

	s.logger.Debug("article updated", "article_id", id)
	return nil
}

// ToggleLike переключает лайк зрителя и в том же шаге сдвигает счётчик на
// единицу. Возвращает статью так, как её видит viewer.
func (s *Store) ToggleLike(id, viewer string) (models.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.lookup("toggle like", id)
	if err != nil {
		return models.Article{}, err
	}

	if _, liked := rec.likedBy[viewer]; liked {
		delete(rec.likedBy, viewer)
		rec.article.Likes--
	} else {
		rec.likedBy[viewer] = struct{}{}
		rec.article.Likes++
	}

	s.logger.Debug("like toggled", "article_id", id, "likes", rec.article.Likes)
	return rec.view(viewer), nil
}

// AddComment добавляет комментарий в начало и увеличивает счётчик статьи.
// Для неизвестного articleID комментарий всё равно сохраняется (сиротой).
func (s *Store) AddComment(articleID, content, author, avatar string) models.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()

	comment := models.Comment{
		ID:        s.newID(),
		ArticleID: articleID,
		Author:    author,
		Content:   content,
		Timestamp: commentJustNow,
		Avatar:    avatar,
		CreatedAt: s.clock(),
	}
	s.comments = append([]models.Comment{comment}, s.comments...)

	if rec, ok := s.index[articleID]; ok {
		rec.article.Comments++
	} else {
		s.logger.Debug("orphan comment stored", "article_id", articleID, "comment_id", comment.ID)
	}

	return comment
}

// GetComments возвращает комментарии статьи, новые сверху.
func (s *Store) GetComments(articleID string) []models.Comment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Comment, 0)
	for _, c := range s.comments {
		if c.ArticleID == articleID {
			out = append(out, c)
		}
	}
	return out
}

// Comments возвращает все комментарии, новые сверху.
func (s *Store) Comments() []models.Comment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Comment, len(s.comments))
	copy(out, s.comments)
	return out
}

// IncrementViews добавляет один просмотр. Дедупликация на вызывающей стороне.
func (s *Store) IncrementViews(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.lookup("increment views", id)
	if err != nil {
		return err
	}
	rec.article.Views++
	return nil
}

// GetArticleByID возвращает статью глазами анонимного зрителя.
func (s *Store) GetArticleByID(id string) (models.Article, bool) {
	return s.GetArticleFor(id, AnonymousViewer)
}

// GetArticleFor возвращает статью с IsLiked для viewer.
func (s *Store) GetArticleFor(id, viewer string) (models.Article, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.index[id]
	if !ok {
		return models.Article{}, false
	}
	return rec.view(viewer), true
}

// ApproveArticle переводит статью в approved и ставит отметку ревью.
func (s *Store) ApproveArticle(id, reviewedBy string) error {
	return s.review("approve", id, models.StatusApproved, reviewedBy, nil)
}

// RejectArticle переводит статью в rejected, ставит отметку ревью и
// сохраняет причину как есть, даже пустую.
func (s *Store) RejectArticle(id, reviewedBy, reason string) error {
	return s.review("reject", id, models.StatusRejected, reviewedBy, &reason)
}

func (s *Store) review(op, id string, to models.Status, reviewedBy string, reason *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.lookup(op, id)
	if err != nil {
		return err
	}
	if err := checkTransition(rec.article.Status, to); err != nil {
		return err
	}

	now := s.clock()
	rec.article.Status = to
	rec.article.ReviewedAt = &now
	rec.article.ReviewedBy = stringPtr(reviewedBy)
	if reason != nil {
		rec.article.RejectionReason = stringPtr(*reason)
	}

	s.logger.Debug("article reviewed", "article_id", id, "status", to, "reviewed_by", reviewedBy)
	return nil
}

// HideArticle скрывает статью, не трогая данные ревью.
func (s *Store) HideArticle(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.lookup("hide", id)
	if err != nil {
		return err
	}
	if err := checkTransition(rec.article.Status, models.StatusHidden); err != nil {
		return err
	}
	rec.article.Status = models.StatusHidden

	s.logger.Debug("article hidden", "article_id", id)
	return nil
}

// SubmitArticleForReview переводит статью в pending и ставит submittedAt.
func (s *Store) SubmitArticleForReview(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.lookup("submit", id)
	if err != nil {
		return err
	}
	if err := checkTransition(rec.article.Status, models.StatusPending); err != nil {
		return err
	}

	now := s.clock()
	rec.article.Status = models.StatusPending
	rec.article.SubmittedAt = &now

	s.logger.Debug("article submitted", "article_id", id)
	return nil
}

// DeleteArticle удаляет статью вместе со всеми её комментариями.
func (s *Store) DeleteArticle(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.lookup("delete", id); err != nil {
		return err
	}

	kept := s.articles[:0]
	for _, rec := range s.articles {
		if rec.article.ID != id {
			kept = append(kept, rec)
		}
	}
	for i := len(kept); i < len(s.articles); i++ {
		s.articles[i] = nil
	}
	s.articles = kept
	delete(s.index, id)

	comments := make([]models.Comment, 0, len(s.comments))
	removed := 0
	for _, c := range s.comments {
		if c.ArticleID == id {
			removed++
			continue
		}
		comments = append(comments, c)
	}
	s.comments = comments

	s.logger.Debug("article deleted", "article_id", id, "comments_removed", removed)
	return nil
}

// Articles возвращает все статьи в порядке хранилища глазами анонима.
func (s *Store) Articles() []models.Article {
	return s.filter(AnonymousViewer, func(models.Article) bool { return true })
}

// GetPendingArticles: статьи, ждущие модерации.
func (s *Store) GetPendingArticles() []models.Article {
	return s.ListByStatus(models.StatusPending, AnonymousViewer)
}

// GetPublishedArticles: одобренные статьи.
func (s *Store) GetPublishedArticles() []models.Article {
	return s.ListByStatus(models.StatusApproved, AnonymousViewer)
}

// GetHiddenArticles: скрытые статьи.
func (s *Store) GetHiddenArticles() []models.Article {
	return s.ListByStatus(models.StatusHidden, AnonymousViewer)
}

// ListByStatus возвращает статьи в статусе status, порядок сохраняется.
func (s *Store) ListByStatus(status models.Status, viewer string) []models.Article {
	return s.filter(viewer, func(a models.Article) bool { return a.Status == status })
}

// ListByAuthor возвращает статьи с подписью name в любом статусе.
func (s *Store) ListByAuthor(name, viewer string) []models.Article {
	return s.filter(viewer, func(a models.Article) bool { return a.Author.Name == name })
}

// ListByOwner возвращает статьи, созданные пользователем с email, в любом статусе.
func (s *Store) ListByOwner(email, viewer string) []models.Article {
	return s.filter(viewer, func(a models.Article) bool { return a.Author.OwnedBy(email) })
}

// MarkLiked проставляет IsLiked для viewer прямо в переданном срезе и возвращает его.
func (s *Store) MarkLiked(viewer string, articles []models.Article) []models.Article {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range articles {
		rec, ok := s.index[articles[i].ID]
		if !ok {
			articles[i].IsLiked = false
			continue
		}
		_, articles[i].IsLiked = rec.likedBy[viewer]
	}
	return articles
}

func (s *Store) filter(viewer string, keep func(models.Article) bool) []models.Article {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Article, 0)
	for _, rec := range s.articles {
		if keep(rec.article) {
			out = append(out, rec.view(viewer))
		}
	}
	return out
}

// lookup вызывается под s.mu.
func (s *Store) lookup(op, id string) (*record, error) {
	rec, ok := s.index[id]
	if !ok {
		s.logger.Debug("article not found", "op", op, "article_id", id)
		return nil, ErrArticleNotFound
	}
	return rec, nil
}

func (r *record) view(viewer string) models.Article {
	out := r.article.Clone()
	_, out.IsLiked = r.likedBy[viewer]
	return out
}

func stringPtr(v string) *string {
	return &v
}

func timePtr(v time.Time) *time.Time {
	return &v
}
