package models

// Role: роль зрителя. Проверка роли целиком на стороне вызывающего кода;
// хранилище о ролях не знает.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User: личность, сохранённая в сессии.
type User struct {
	Email  string `json:"email"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	Role   Role   `json:"role"`
}

// IsAdmin сообщает, есть ли у пользователя доступ к админ-панели.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// LoginRequest: тело POST /api/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
	// AsAdmin: пользователь выбрал вход администратора на форме.
	AsAdmin bool `json:"asAdmin,omitempty"`
}

// Stats: сводка для админ-дашборда.
type Stats struct {
	TotalArticles    int `json:"totalArticles"`
	DraftArticles    int `json:"draftArticles"`
	PendingArticles  int `json:"pendingArticles"`
	ApprovedArticles int `json:"approvedArticles"`
	RejectedArticles int `json:"rejectedArticles"`
	HiddenArticles   int `json:"hiddenArticles"`
	TotalComments    int `json:"totalComments"`
	TotalViews       int `json:"totalViews"`
	TotalLikes       int `json:"totalLikes"`
}

// TagCount: строка распределения тегов.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// TopArticle: строка рейтинга статей по просмотрам.
type TopArticle struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Views      int    `json:"views"`
	Likes      int    `json:"likes"`
	Comments   int    `json:"comments"`
	Engagement int    `json:"engagement"`
}

// Mismatch: расхождение счётчика комментариев с фактическими строками.
type Mismatch struct {
	ArticleID string `json:"articleId"`
	Counter   int    `json:"counter"`
	Expected  int    `json:"expected"`
}
