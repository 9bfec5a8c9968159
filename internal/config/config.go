package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

const (
	configPathEnv    = "DEVNOVATE_CONFIG"
	hostEnv          = "HOST"
	portEnv          = "PORT"
	logLevelEnv      = "LOG_LEVEL"
	sessionSecretEnv = "SESSION_SECRET"
	httpsEnv         = "APP_HTTPS"
	adminEmailEnv    = "ADMIN_EMAIL"
	adminPasswordEnv = "ADMIN_PASSWORD"
	seedPathEnv      = "DEVNOVATE_SEED"

	insecureSessionSecret = "dev-insecure-secret-change-me-now"
)

// Config: настройки приложения верхнего уровня.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
	Session SessionConfig `yaml:"session"`
	Admin   AdminConfig   `yaml:"admin"`
	Content ContentConfig `yaml:"content"`
}

// ServerConfig: параметры HTTP-сервера.
type ServerConfig struct {
	Host            string        `yaml:"host"`
	Port            string        `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"readTimeout"`
	WriteTimeout    time.Duration `yaml:"writeTimeout"`
	RequestTimeout  time.Duration `yaml:"requestTimeout"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
}

// Addr склеивает host и port.
func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

// LoggingConfig: уровень slog.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// SessionConfig: кука сессии зрителя.
type SessionConfig struct {
	Secret        string `yaml:"secret"`
	MaxAgeSeconds int    `yaml:"maxAgeSeconds"`
	Secure        bool   `yaml:"secure"`
}

// AdminConfig: единственная учётка администратора для формы входа.
// Password при загрузке хэшируется в PasswordHash и очищается.
type AdminConfig struct {
	Email        string `yaml:"email"`
	Name         string `yaml:"name"`
	Avatar       string `yaml:"avatar"`
	Password     string `yaml:"password"`
	PasswordHash string `yaml:"passwordHash"`
}

// ContentConfig: умолчания для авторов и производных представлений.
type ContentConfig struct {
	SeedPath       string `yaml:"seedPath"`
	DefaultImage   string `yaml:"defaultImage"`
	DefaultAvatar  string `yaml:"defaultAvatar"`
	TrendingLimit  int    `yaml:"trendingLimit"`
	WordsPerMinute int    `yaml:"wordsPerMinute"`
	MaxTags        int    `yaml:"maxTags"`
}

// Load читает YAML-конфиг (если есть) и применяет переменные окружения.
func Load() Config {
	return LoadFile(os.Getenv(configPathEnv))
}

// LoadFile: Load с явным путём. Пустой путь означает умолчания.
func LoadFile(path string) Config {
	cfg := defaultConfig()

	if path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	cfg.hashAdminPassword()

	if cfg.Session.Secret == insecureSessionSecret {
		log.Printf("config: %s is not set, using an insecure development secret", sessionSecretEnv)
	}

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(hostEnv); v != "" {
		c.Server.Host = v
	}
	if v := os.Getenv(portEnv); v != "" {
		c.Server.Port = v
	}
	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(sessionSecretEnv); v != "" {
		c.Session.Secret = v
	}
	if v := os.Getenv(httpsEnv); v != "" {
		secure, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("config: %s=%q is not a boolean, ignoring", httpsEnv, v)
		} else {
			c.Session.Secure = secure
		}
	}
	if v := os.Getenv(adminEmailEnv); v != "" {
		c.Admin.Email = v
	}
	if v := os.Getenv(adminPasswordEnv); v != "" {
		c.Admin.Password = v
		c.Admin.PasswordHash = ""
	}
	if v := os.Getenv(seedPathEnv); v != "" {
		c.Content.SeedPath = v
	}
}

func (c *Config) hashAdminPassword() {
	if c.Admin.PasswordHash != "" || c.Admin.Password == "" {
		c.Admin.Password = ""
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(c.Admin.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("config: cannot hash admin password: %v (admin login disabled)", err)
	} else {
		c.Admin.PasswordHash = string(hash)
	}
	c.Admin.Password = ""
}

func mergeConfig(base, override Config) Config {
	if override.Server.Host != "" {
		base.Server.Host = override.Server.Host
	}
	if override.Server.Port != "" {
		base.Server.Port = override.Server.Port
	}
	if override.Server.ReadTimeout > 0 {
		base.Server.ReadTimeout = override.Server.ReadTimeout
	}
	if override.Server.WriteTimeout > 0 {
		base.Server.WriteTimeout = override.Server.WriteTimeout
	}
	if override.Server.RequestTimeout > 0 {
		base.Server.RequestTimeout = override.Server.RequestTimeout
	}
	if override.Server.ShutdownTimeout > 0 {
		base.Server.ShutdownTimeout = override.Server.ShutdownTimeout
	}

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	if override.Session.Secret != "" {
		base.Session.Secret = override.Session.Secret
	}
	if override.Session.MaxAgeSeconds > 0 {
		base.Session.MaxAgeSeconds = override.Session.MaxAgeSeconds
	}
	if override.Session.Secure {
		base.Session.Secure = true
	}

	if override.Admin.Email != "" {
		base.Admin.Email = override.Admin.Email
	}
	if override.Admin.Name != "" {
		base.Admin.Name = override.Admin.Name
	}
	if override.Admin.Avatar != "" {
		base.Admin.Avatar = override.Admin.Avatar
	}
	if override.Admin.PasswordHash != "" {
		base.Admin.PasswordHash = override.Admin.PasswordHash
		base.Admin.Password = ""
	} else if override.Admin.Password != "" {
		base.Admin.Password = override.Admin.Password
		base.Admin.PasswordHash = ""
	}

	if override.Content.SeedPath != "" {
		base.Content.SeedPath = override.Content.SeedPath
	}
	if override.Content.DefaultImage != "" {
		base.Content.DefaultImage = override.Content.DefaultImage
	}
	if override.Content.DefaultAvatar != "" {
		base.Content.DefaultAvatar = override.Content.DefaultAvatar
	}
	if override.Content.TrendingLimit > 0 {
		base.Content.TrendingLimit = override.Content.TrendingLimit
	}
	if override.Content.WordsPerMinute > 0 {
		base.Content.WordsPerMinute = override.Content.WordsPerMinute
	}
	if override.Content.MaxTags > 0 {
		base.Content.MaxTags = override.Content.MaxTags
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Host:            "127.0.0.1",
			Port:            "8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			RequestTimeout:  30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Logging: LoggingConfig{Level: "info"},
		Session: SessionConfig{
			Secret:        insecureSessionSecret,
			MaxAgeSeconds: 7 * 24 * 60 * 60,
		},
		Admin: AdminConfig{
			Email:    "admin@devnovate.com",
			Name:     "Admin User",
			Avatar:   "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=40&h=40&fit=crop&crop=face",
			Password: "admin123",
		},
		Content: ContentConfig{
			DefaultImage:   "https://images.unsplash.com/photo-1486312338219-ce68d2c6f44d?w=400&h=300&fit=crop",
			DefaultAvatar:  "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=40&h=40&fit=crop&crop=face",
			TrendingLimit:  6,
			WordsPerMinute: 200,
			MaxTags:        5,
		},
	}
}
