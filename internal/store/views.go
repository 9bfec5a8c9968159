package store

import (
	"math"
	"sort"
	"strings"
	"time"

	"Devnovate/internal/content"
	"Devnovate/internal/models"
)

const (
	defaultTagLimit = 6
	defaultTopLimit = 5
)

// Search возвращает одобренные статьи, у которых заголовок, описание, теги,
// автор или текст содержат query без учёта регистра. Пустой query
// возвращает все одобренные статьи.
func (s *Store) Search(query, viewer string) []models.Article {
	q := strings.ToLower(strings.TrimSpace(query))
	return s.filter(viewer, func(a models.Article) bool {
		if a.Status != models.StatusApproved {
			return false
		}
		return q == "" || matches(a, q)
	})
}

func matches(a models.Article, q string) bool {
	if strings.Contains(strings.ToLower(a.Title), q) ||
		strings.Contains(strings.ToLower(a.Description), q) ||
		strings.Contains(strings.ToLower(a.Author.Name), q) {
		return true
	}
	for _, tag := range a.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	if a.Content != nil {
		return strings.Contains(strings.ToLower(content.PlainText(*a.Content)), q)
	}
	return false
}

// TrendingScore = (likes + 2*comments + 0.1*views) / max(часов с отправки, 1).
// Статьи без submittedAt считаются часовой давности.
func TrendingScore(a models.Article, now time.Time) float64 {
	engagement := float64(a.Likes) + float64(a.Comments)*2 + float64(a.Views)*0.1
	hours := 1.0
	if a.SubmittedAt != nil {
		hours = math.Max(now.Sub(*a.SubmittedAt).Hours(), 1)
	}
	return engagement / hours
}

// Trending возвращает одобренные статьи по убыванию trending score.
// limit <= 0 означает все.
func (s *Store) Trending(limit int, viewer string) []models.Article {
	published := s.ListByStatus(models.StatusApproved, viewer)
	now := s.clock()

	scores := make(map[string]float64, len(published))
	for _, a := range published {
		scores[a.ID] = TrendingScore(a, now)
	}
	sort.SliceStable(published, func(i, j int) bool {
		return scores[published[i].ID] > scores[published[j].ID]
	})

	if limit > 0 && len(published) > limit {
		published = published[:limit]
	}
	return published
}

// Stats собирает сводку для админ-дашборда.
func (s *Store) Stats() models.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := models.Stats{
		TotalArticles: len(s.articles),
		TotalComments: len(s.comments),
	}
	for _, rec := range s.articles {
		a := rec.article
		stats.TotalViews += a.Views
		stats.TotalLikes += a.Likes
		switch a.Status {
		case models.StatusDraft:
			stats.DraftArticles++
		case models.StatusPending:
			stats.PendingArticles++
		case models.StatusApproved:
			stats.ApprovedArticles++
		case models.StatusRejected:
			stats.RejectedArticles++
		case models.StatusHidden:
			stats.HiddenArticles++
		}
	}
	return stats
}

// TagDistribution считает статьи по тегам: сначала частые, при равенстве по имени.
func (s *Store) TagDistribution(limit int) []models.TagCount {
	if limit <= 0 {
		limit = defaultTagLimit
	}

	s.mu.RLock()
	counts := make(map[string]int)
	for _, rec := range s.articles {
		for _, tag := range rec.article.Tags {
			counts[tag]++
		}
	}
	s.mu.RUnlock()

	out := make([]models.TagCount, 0, len(counts))
	for tag, n := range counts {
		out = append(out, models.TagCount{Tag: tag, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Tag < out[j].Tag
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// TopArticles ранжирует статьи любого статуса по просмотрам.
func (s *Store) TopArticles(limit int) []models.TopArticle {
	if limit <= 0 {
		limit = defaultTopLimit
	}

	all := s.Articles()
	sort.SliceStable(all, func(i, j int) bool { return all[i].Views > all[j].Views })
	if len(all) > limit {
		all = all[:limit]
	}

	out := make([]models.TopArticle, 0, len(all))
	for _, a := range all {
		out = append(out, models.TopArticle{
			ID:         a.ID,
			Title:      a.Title,
			Views:      a.Views,
			Likes:      a.Likes,
			Comments:   a.Comments,
			Engagement: a.Likes + a.Comments*2,
		})
	}
	return out
}

// CheckConsistency сверяет счётчик комментариев каждой статьи с числом строк
// плюс смещение, записанное при сиде. Пустой результат значит, что расхождений нет.
func (s *Store) CheckConsistency() []models.Mismatch {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make(map[string]int, len(s.articles))
	for _, c := range s.comments {
		rows[c.ArticleID]++
	}

	var out []models.Mismatch
	for _, rec := range s.articles {
		expected := rec.commentOffset + rows[rec.article.ID]
		if rec.article.Comments != expected {
			out = append(out, models.Mismatch{
				ArticleID: rec.article.ID,
				Counter:   rec.article.Comments,
				Expected:  expected,
			})
		}
	}
	return out
}
