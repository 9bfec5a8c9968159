package store

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"Devnovate/internal/models"
)

func TestSearch(t *testing.T) {
	t.Parallel()

	body := "<p>Deep dive into <em>goroutines</em></p>"
	byTag := article("tag", models.StatusApproved)
	byTag.Tags = []string{"Kubernetes"}
	byBody := article("body", models.StatusApproved)
	byBody.Content = &body
	byAuthor := article("author", models.StatusApproved)
	byAuthor.Author.Name = "Sarah Chen"
	draft := article("draft", models.StatusDraft)
	draft.Title = "Kubernetes draft"

	s := newTestStore(t)
	s.Seed([]models.Article{byTag, byBody, byAuthor, draft}, nil)

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "tag match is case-insensitive", query: "kubernetes", want: []string{"tag"}},
		{name: "content markup is ignored", query: "into goroutines", want: []string{"body"}},
		{name: "author name", query: "CHEN", want: []string{"author"}},
		{name: "title", query: "title body", want: []string{"body"}},
		{name: "empty query lists published", query: "  ", want: []string{"tag", "body", "author"}},
		{name: "no match", query: "rust", want: []string{}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if diff := cmp.Diff(tc.want, ids(s.Search(tc.query, AnonymousViewer))); diff != "" {
				t.Fatalf("Search(%q) (-want +got):\n%s", tc.query, diff)
			}
		})
	}
}

func TestTrending(t *testing.T) {
	t.Parallel()

	hoursAgo := func(h int) *time.Time {
		v := fixedNow.Add(-time.Duration(h) * time.Hour)
		return &v
	}

	old := article("old", models.StatusApproved)
	old.Likes, old.Views = 500, 5000
	old.SubmittedAt = hoursAgo(1000)

	fresh := article("fresh", models.StatusApproved)
	fresh.Likes = 20
	fresh.SubmittedAt = hoursAgo(2)

	chatty := article("chatty", models.StatusApproved)
	chatty.Comments = 10
	chatty.SubmittedAt = hoursAgo(2)

	pending := article("pending", models.StatusPending)
	pending.Likes = 10000

	s := newTestStore(t)
	s.Seed([]models.Article{old, fresh, chatty, pending}, nil)

	// old: (500 + 500) / 1000 = 1, fresh: 20 / 2 = 10, chatty: 20 / 2 = 10
	if diff := cmp.Diff([]string{"fresh", "chatty", "old"}, ids(s.Trending(0, AnonymousViewer))); diff != "" {
		t.Fatalf("Trending(0) (-want +got):\n%s", diff)
	}

	got := ids(s.Trending(2, AnonymousViewer))
	if diff := cmp.Diff([]string{"fresh", "chatty"}, got); diff != "" {
		t.Fatalf("Trending(2) (-want +got):\n%s", diff)
	}
}

func TestTrendingScore(t *testing.T) {
	t.Parallel()

	a := article("a", models.StatusApproved)
	a.Likes, a.Comments, a.Views = 10, 5, 100

	if got := TrendingScore(a, fixedNow); got != 30 {
		t.Fatalf("never-submitted score = %v, want 30", got)
	}

	submitted := fixedNow.Add(-30 * time.Minute)
	a.SubmittedAt = &submitted
	if got := TrendingScore(a, fixedNow); got != 30 {
		t.Fatalf("age below one hour should count as one hour, got %v", got)
	}

	submitted = fixedNow.Add(-10 * time.Hour)
	if got := TrendingScore(a, fixedNow); got != 3 {
		t.Fatalf("10h score = %v, want 3", got)
	}
}

func TestStats(t *testing.T) {
	t.Parallel()

	a := article("a", models.StatusApproved)
	a.Views, a.Likes = 10, 3
	b := article("b", models.StatusPending)
	b.Views, b.Likes = 5, 1

	s := newTestStore(t)
	s.Seed([]models.Article{
		a, b,
		article("c", models.StatusRejected),
		article("d", models.StatusHidden),
		article("e", models.StatusDraft),
	}, []models.Comment{{ID: "c1", ArticleID: "a"}})

	want := models.Stats{
		TotalArticles:    5,
		DraftArticles:    1,
		PendingArticles:  1,
		ApprovedArticles: 1,
		RejectedArticles: 1,
		HiddenArticles:   1,
		TotalComments:    1,
		TotalViews:       15,
		TotalLikes:       4,
	}
	if diff := cmp.Diff(want, s.Stats()); diff != "" {
		t.Fatalf("Stats (-want +got):\n%s", diff)
	}
}

func TestTagDistribution(t *testing.T) {
	t.Parallel()

	a := article("a", models.StatusApproved)
	a.Tags = []string{"React", "JavaScript"}
	b := article("b", models.StatusPending)
	b.Tags = []string{"React", "CSS"}
	c := article("c", models.StatusDraft)
	c.Tags = []string{"JavaScript", "React", "Go"}

	s := newTestStore(t)
	s.Seed([]models.Article{a, b, c}, nil)

	want := []models.TagCount{
		{Tag: "React", Count: 3},
		{Tag: "JavaScript", Count: 2},
		{Tag: "CSS", Count: 1},
	}
	if diff := cmp.Diff(want, s.TagDistribution(3)); diff != "" {
		t.Fatalf("TagDistribution (-want +got):\n%s", diff)
	}
	if got := len(s.TagDistribution(0)); got != 4 {
		t.Fatalf("default limit should keep all 4 tags, got %d", got)
	}
}

func TestTopArticles(t *testing.T) {
	t.Parallel()

	low := article("low", models.StatusApproved)
	low.Views = 10
	high := article("high", models.StatusPending)
	high.Views, high.Likes, high.Comments = 100, 4, 3

	s := newTestStore(t)
	s.Seed([]models.Article{low, high}, nil)

	top := s.TopArticles(1)
	want := []models.TopArticle{{ID: "high", Title: "Title high", Views: 100, Likes: 4, Comments: 3, Engagement: 10}}
	if diff := cmp.Diff(want, top); diff != "" {
		t.Fatalf("TopArticles (-want +got):\n%s", diff)
	}
}

func TestListByAuthor(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	s.Seed([]models.Article{article("a", models.StatusApproved), article("b", models.StatusDraft)}, nil)
	mine := s.AddArticle(models.NewArticle{Title: "Mine", Author: models.Author{Name: "Author b"}})

	if diff := cmp.Diff([]string{mine.ID, "b"}, ids(s.ListByAuthor("Author b", AnonymousViewer))); diff != "" {
		t.Fatalf("ListByAuthor (-want +got):\n%s", diff)
	}
}

func TestListByOwnerIgnoresDisplayName(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	s.Seed([]models.Article{article("seeded", models.StatusApproved)}, nil)
	mine := s.AddArticle(models.NewArticle{Title: "Mine", Author: models.Author{Name: "Author seeded", Email: "ann@example.com"}})
	s.AddArticle(models.NewArticle{Title: "Impostor", Author: models.Author{Name: "Author seeded", Email: "eve@example.com"}})

	if diff := cmp.Diff([]string{mine.ID}, ids(s.ListByOwner("ANN@example.com", AnonymousViewer))); diff != "" {
		t.Fatalf("ListByOwner (-want +got):\n%s", diff)
	}
	if got := s.ListByOwner("", AnonymousViewer); len(got) != 0 {
		t.Fatalf("empty email must own nothing, got %v", ids(got))
	}
}

func TestMarkLikedWritesInPlace(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	s.Seed([]models.Article{article("a", models.StatusApproved), article("b", models.StatusApproved)}, nil)
	if _, err := s.ToggleLike("b", "ann"); err != nil {
		t.Fatalf("ToggleLike returned error: %v", err)
	}

	list := s.Articles()
	got := s.MarkLiked("ann", list)
	if !list[1].IsLiked || list[0].IsLiked {
		t.Fatalf("MarkLiked should update the given slice: %+v", list)
	}
	if &got[0] != &list[0] {
		t.Fatal("MarkLiked should return the same slice")
	}
}

func TestCheckConsistencyReportsDrift(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	s.Seed([]models.Article{article("a", models.StatusApproved)}, nil)

	s.mu.Lock()
	s.index["a"].article.Comments = 7
	s.mu.Unlock()

	want := []models.Mismatch{{ArticleID: "a", Counter: 7, Expected: 0}}
	if diff := cmp.Diff(want, s.CheckConsistency()); diff != "" {
		t.Fatalf("CheckConsistency (-want +got):\n%s", diff)
	}
}

func TestCanTransition(t *testing.T) {
	t.Parallel()

	allowed := map[[2]models.Status]bool{
		{models.StatusDraft, models.StatusPending}:    true,
		{models.StatusPending, models.StatusApproved}: true,
		{models.StatusPending, models.StatusRejected}: true,
		{models.StatusRejected, models.StatusPending}: true,
		{models.StatusApproved, models.StatusHidden}:  true,
		{models.StatusHidden, models.StatusApproved}:  true,
	}
	all := []models.Status{
		models.StatusDraft, models.StatusPending, models.StatusApproved, models.StatusRejected, models.StatusHidden,
	}

	for _, from := range all {
		for _, to := range all {
			if got := CanTransition(from, to); got != allowed[[2]models.Status{from, to}] {
				t.Fatalf("CanTransition(%s, %s) = %v", from, to, got)
			}
		}
	}
}
