package sessions

import (
	"crypto/sha256"
	"net/http"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"

	"Devnovate/internal/models"
)

const sessionName = "devnovate_session"

const (
	keyEmail  = "email"
	keyName   = "name"
	keyAvatar = "avatar"
	keyRole   = "role"
)

// Manager хранит личность зрителя в подписанной и зашифрованной куке.
type Manager struct {
	store *sessions.CookieStore
}

// New собирает cookie store. При пустом secret ключи случайные, и
// сессии не переживут перезапуск процесса.
func New(secret string, maxAge int, secure bool) *Manager {
	var authKey, encKey []byte
	if secret == "" {
		authKey = securecookie.GenerateRandomKey(32)
		encKey = securecookie.GenerateRandomKey(32)
	} else {
		// 2 ключа: подпись + шифрование (устойчивее, чем только подпись).
		h := sha256.Sum256([]byte("auth:" + secret))
		e := sha256.Sum256([]byte("enc:" + secret))
		authKey, encKey = h[:], e[:]
	}

	store := sessions.NewCookieStore(authKey, encKey)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
	}
	return &Manager{store: store}
}

func (m *Manager) get(r *http.Request) (*sessions.Session, error) {
	return m.store.Get(r, sessionName)
}

// SetUser сохраняет пользователя в сессии и выставляет Set-Cookie.
func (m *Manager) SetUser(w http.ResponseWriter, r *http.Request, user models.User) error {
	s, err := m.get(r)
	if err != nil && s == nil {
		return err
	}
	s.Values[keyEmail] = user.Email
	s.Values[keyName] = user.Name
	s.Values[keyAvatar] = user.Avatar
	s.Values[keyRole] = string(user.Role)
	return s.Save(r, w)
}

// GetUser возвращает пользователя из сессии; false: анонимный зритель.
func (m *Manager) GetUser(r *http.Request) (models.User, bool) {
	s, err := m.get(r)
	if err != nil {
		return models.User{}, false
	}
	email, ok := s.Values[keyEmail].(string)
	if !ok || email == "" {
		return models.User{}, false
	}
	name, _ := s.Values[keyName].(string)
	avatar, _ := s.Values[keyAvatar].(string)
	role, _ := s.Values[keyRole].(string)

	return models.User{
		Email:  email,
		Name:   name,
		Avatar: avatar,
		Role:   models.Role(role),
	}, true
}

// Clear удаляет личность из сессии.
func (m *Manager) Clear(w http.ResponseWriter, r *http.Request) error {
	s, err := m.get(r)
	if err != nil && s == nil {
		return err
	}
	for _, key := range []string{keyEmail, keyName, keyAvatar, keyRole} {
		delete(s.Values, key)
	}
	s.Options.MaxAge = -1
	return s.Save(r, w)
}
