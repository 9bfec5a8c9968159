package models

import "time"

// Comment: ответ к ровно одной статье. После создания не меняется.
type Comment struct {
	ID        string    `json:"id" yaml:"id"`
	ArticleID string    `json:"articleId" yaml:"articleId"`
	Author    string    `json:"author" yaml:"author"`
	Content   string    `json:"content" yaml:"content"`
	Timestamp string    `json:"timestamp" yaml:"timestamp"` // строка для отображения ("just now")
	Avatar    string    `json:"avatar" yaml:"avatar"`
	CreatedAt time.Time `json:"createdAt" yaml:"-"`
}

// CommentRequest: тело POST /api/articles/{id}/comments.
type CommentRequest struct {
	Content string `json:"content"`
}
