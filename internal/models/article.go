package models

import (
	"strings"
	"time"
)

// Status: стадия модерации статьи.
type Status string

const (
	StatusDraft    Status = "draft"
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusHidden   Status = "hidden"
)

// Valid сообщает, известен ли статус.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusPending, StatusApproved, StatusRejected, StatusHidden:
		return true
	}
	return false
}

// Author: подпись автора на карточке статьи.
// Email из сессии определяет владельца статьи и наружу не отдаётся.
type Author struct {
	Name   string `json:"name" yaml:"name"`
	Avatar string `json:"avatar" yaml:"avatar"`
	Email  string `json:"-" yaml:"email,omitempty"`
}

// OwnedBy сообщает, принадлежит ли подпись пользователю с этим email.
// Подпись без email (например, из сида) не принадлежит никому.
func (a Author) OwnedBy(email string) bool {
	return a.Email != "" && strings.EqualFold(a.Email, email)
}

// Article: статья с жизненным циклом модерации.
// PublishDate и ReadTime: строки для отображения, не даты.
type Article struct {
	ID              string     `json:"id" yaml:"id"`
	Title           string     `json:"title" yaml:"title"`
	Description     string     `json:"description" yaml:"description"`
	Content         *string    `json:"content,omitempty" yaml:"content,omitempty"`
	Image           string     `json:"image" yaml:"image"`
	Tags            []string   `json:"tags" yaml:"tags"`
	Author          Author     `json:"author" yaml:"author"`
	PublishDate     string     `json:"publishDate" yaml:"publishDate"`
	ReadTime        string     `json:"readTime" yaml:"readTime"`
	Likes           int        `json:"likes" yaml:"likes"`
	Comments        int        `json:"comments" yaml:"comments"`
	Views           int        `json:"views" yaml:"views"`
	IsLiked         bool       `json:"isLiked" yaml:"-"`
	Status          Status     `json:"status" yaml:"status"`
	SubmittedAt     *time.Time `json:"submittedAt,omitempty" yaml:"submittedAt,omitempty"`
	ReviewedAt      *time.Time `json:"reviewedAt,omitempty" yaml:"reviewedAt,omitempty"`
	ReviewedBy      *string    `json:"reviewedBy,omitempty" yaml:"reviewedBy,omitempty"`
	RejectionReason *string    `json:"rejectionReason,omitempty" yaml:"rejectionReason,omitempty"`
}

// Clone возвращает глубокую копию: срезы и указатели не делятся с хранилищем.
func (a Article) Clone() Article {
	out := a
	if a.Tags != nil {
		out.Tags = append([]string(nil), a.Tags...)
	}
	out.Content = cloneString(a.Content)
	out.ReviewedBy = cloneString(a.ReviewedBy)
	out.RejectionReason = cloneString(a.RejectionReason)
	out.SubmittedAt = cloneTime(a.SubmittedAt)
	out.ReviewedAt = cloneTime(a.ReviewedAt)
	return out
}

// NewArticle: поля, которые автор задаёт при создании статьи.
// id, счётчики, isLiked и статус назначает хранилище.
type NewArticle struct {
	Title           string
	Description     string
	Content         *string
	Image           string
	Tags            []string
	Author          Author
	PublishDate     string
	ReadTime        string
	SubmittedAt     *time.Time
	ReviewedAt      *time.Time
	ReviewedBy      *string
	RejectionReason *string
}

// ArticlePatch: частичное обновление, nil означает «не трогать».
type ArticlePatch struct {
	Title           *string    `json:"title,omitempty"`
	Description     *string    `json:"description,omitempty"`
	Content         *string    `json:"content,omitempty"`
	Image           *string    `json:"image,omitempty"`
	Tags            []string   `json:"tags,omitempty"`
	Author          *Author    `json:"author,omitempty"`
	PublishDate     *string    `json:"publishDate,omitempty"`
	ReadTime        *string    `json:"readTime,omitempty"`
	Status          *Status    `json:"status,omitempty"`
	SubmittedAt     *time.Time `json:"submittedAt,omitempty"`
	ReviewedAt      *time.Time `json:"reviewedAt,omitempty"`
	ReviewedBy      *string    `json:"reviewedBy,omitempty"`
	RejectionReason *string    `json:"rejectionReason,omitempty"`
}

// ArticleRequest: тело POST /api/articles.
type ArticleRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Content     string   `json:"content"`
	Image       string   `json:"image"`
	Tags        []string `json:"tags"`
	// Submit сразу отправляет статью на модерацию после создания.
	Submit bool `json:"submit"`
}

// RejectRequest: тело POST /admin/articles/{id}/reject.
type RejectRequest struct {
	Reason string `json:"reason"`
}

func cloneString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneTime(p *time.Time) *time.Time {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
