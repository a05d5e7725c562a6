package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config содержит конфигурацию сервера генерации историй.
// Все значения читаются один раз при старте процесса.
type Config struct {
	// Настройки HTTP сервера
	ServerPort string `envconfig:"SERVER_PORT" default:"8080"`
	Env        string `envconfig:"ENV" default:"production"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info"`

	// CORS
	CORSAllowedOrigins string `envconfig:"CORS_ALLOWED_ORIGINS" default:""`

	// Настройки PostgreSQL
	DBHost        string        `envconfig:"DB_HOST" default:"localhost"`
	DBPort        string        `envconfig:"DB_PORT" default:"5432"`
	DBUser        string        `envconfig:"DB_USER" default:"postgres"`
	DBPassword    string        `envconfig:"DB_PASSWORD" default:"postgres"`
	DBName        string        `envconfig:"DB_NAME" default:"genstory_db"`
	DBSSLMode     string        `envconfig:"DB_SSL_MODE" default:"disable"`
	DBMaxConns    int           `envconfig:"DB_MAX_CONNECTIONS" default:"10"`
	DBIdleTimeout time.Duration `envconfig:"DB_MAX_IDLE_MINUTES" default:"5m"`

	// Настройки Redis (кэш лога сессий)
	RedisAddr       string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword   string        `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB         int           `envconfig:"REDIS_DB" default:"0"`
	SessionCacheTTL time.Duration `envconfig:"SESSION_CACHE_TTL" default:"1h"`

	// Архивация закрытых сессий
	SessionArchiveAfter    time.Duration `envconfig:"SESSION_ARCHIVE_AFTER" default:"720h"`
	SessionArchiveInterval time.Duration `envconfig:"SESSION_ARCHIVE_INTERVAL" default:"24h"`

	// Настройки AI (OpenAI-совместимый провайдер)
	AIBaseURL string        `envconfig:"AI_BASE_URL" default:"https://openrouter.ai/api/v1"`
	AIModel   string        `envconfig:"AI_MODEL" default:"deepseek/deepseek-chat"`
	AITimeout time.Duration `envconfig:"AI_TIMEOUT" default:"120s"`
	AIAPIKey  string        `envconfig:"AI_API_KEY"`

	// Настройки JWT
	JWTSecret      string        `envconfig:"JWT_SECRET" default:"change-me"`
	JWTExpiry      time.Duration `envconfig:"JWT_EXPIRY" default:"30m"`
	PasswordPepper string        `envconfig:"PASSWORD_PEPPER" default:""`

	// Верификация email
	VerificationTokenTTL time.Duration `envconfig:"VERIFICATION_TOKEN_TTL" default:"24h"`
	FrontendURL          string        `envconfig:"FRONTEND_URL" default:"http://localhost:3000"`

	// Настройки SMTP
	SMTPHost     string `envconfig:"SMTP_HOST" default:"localhost"`
	SMTPPort     string `envconfig:"SMTP_PORT" default:"587"`
	SMTPUsername string `envconfig:"SMTP_USERNAME" default:""`
	SMTPPassword string `envconfig:"SMTP_PASSWORD" default:""`
	SMTPFrom     string `envconfig:"SMTP_FROM" default:"noreply@genstory.local"`
	// MailSimulate отключает реальную отправку, письма только логируются
	MailSimulate bool `envconfig:"MAIL_SIMULATE" default:"false"`
}

// LoadConfig загружает конфигурацию из переменных окружения.
// Отсутствие ключа AI API - фатальная ошибка старта.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}

	if cfg.AIAPIKey == "" {
		return nil, fmt.Errorf("AI_API_KEY is required but not set")
	}

	return &cfg, nil
}

// GetDSN возвращает строку подключения (DSN) для PostgreSQL.
func (c *Config) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// GetMaskedDSN возвращает DSN с замаскированным паролем для логирования.
func (c *Config) GetMaskedDSN() string {
	dsn := c.GetDSN()
	parts := strings.Split(dsn, "@")
	if len(parts) != 2 {
		return "[invalid dsn format]"
	}
	userInfo := strings.Split(parts[0], ":")
	if len(userInfo) >= 2 {
		userInfo[len(userInfo)-1] = "********"
	}
	return strings.Join(userInfo, ":") + "@" + parts[1]
}

// GetAllowedOrigins возвращает список разрешенных CORS origin'ов.
func (c *Config) GetAllowedOrigins() []string {
	if strings.TrimSpace(c.CORSAllowedOrigins) == "" {
		return nil
	}
	raw := strings.Split(c.CORSAllowedOrigins, ",")
	origins := make([]string, 0, len(raw))
	for _, o := range raw {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
