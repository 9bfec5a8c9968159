package content

import (
	"strings"
	"testing"
	"time"
)

func TestPlainText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "  hello   world \n again ", want: "hello world again"},
		{name: "html", in: "<p>Hello <b>bold</b></p><p>world</p>", want: "Hello boldworld"},
		{name: "drops scripts", in: "<div>text<script>alert(1)</script></div>", want: "text"},
		{name: "empty", in: "", want: ""},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := PlainText(tc.in); got != tc.want {
				t.Fatalf("PlainText(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestEstimateMinutes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		words int
		wpm   int
		want  int
	}{
		{name: "empty body is one minute", words: 0, wpm: 200, want: 1},
		{name: "exact", words: 400, wpm: 200, want: 2},
		{name: "rounds up", words: 401, wpm: 200, want: 3},
		{name: "default speed", words: 201, wpm: 0, want: 2},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			body := strings.TrimSpace(strings.Repeat("word ", tc.words))
			if got := EstimateMinutes(body, tc.wpm); got != tc.want {
				t.Fatalf("EstimateMinutes(%d words, %d) = %d, want %d", tc.words, tc.wpm, got, tc.want)
			}
		})
	}
}

func TestReadTimeIgnoresMarkup(t *testing.T) {
	t.Parallel()

	body := "<article>" + strings.Repeat("<span>word</span> ", 450) + "</article>"
	if got := ReadTime(body, 200); got != "3 min read" {
		t.Fatalf("unexpected read time: %s", got)
	}
}

func TestPublishDate(t *testing.T) {
	t.Parallel()

	day := time.Date(2024, time.January, 5, 13, 0, 0, 0, time.UTC)
	if got := PublishDate(day); got != "Jan 5, 2024" {
		t.Fatalf("unexpected publish date: %s", got)
	}
}
