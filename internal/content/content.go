// Package content вычисляет отображаемые значения из текста статьи.
package content

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	// DefaultWordsPerMinute: скорость чтения, если в конфиге не задана.
	DefaultWordsPerMinute = 200
	publishDateLayout     = "Jan 2, 2006"
)

// PlainText убирает разметку и схлопывает пробелы.
// Текст без тегов только схлопывается.
func PlainText(body string) string {
	if !strings.ContainsRune(body, '<') {
		return strings.Join(strings.Fields(body), " ")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return strings.Join(strings.Fields(body), " ")
	}
	doc.Find("script, style").Remove()

	return strings.Join(strings.Fields(doc.Text()), " ")
}

// WordCount считает слова в тексте без разметки.
func WordCount(body string) int {
	return len(strings.Fields(PlainText(body)))
}

// EstimateMinutes возвращает max(1, ceil(words/wpm)).
func EstimateMinutes(body string, wpm int) int {
	if wpm <= 0 {
		wpm = DefaultWordsPerMinute
	}
	words := WordCount(body)
	minutes := (words + wpm - 1) / wpm
	if minutes < 1 {
		return 1
	}
	return minutes
}

// ReadTime форматирует оценку так, как её показывает карточка статьи.
func ReadTime(body string, wpm int) string {
	return fmt.Sprintf("%d min read", EstimateMinutes(body, wpm))
}

// PublishDate форматирует t как "Jan 2, 2006".
func PublishDate(t time.Time) string {
	return t.Format(publishDateLayout)
}
