// Package config loads the service configuration from the environment,
// optionally seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"db"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Mail     MailConfig     `mapstructure:"mail"`
	Draft    DraftConfig    `mapstructure:"draft"`
	Log      LogConfig      `mapstructure:"log"`

	// SiteURL is the public address of the website, used in emailed links.
	SiteURL string `mapstructure:"site_url"`
}

type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	Port     string `mapstructure:"port"`
	SSLMode  string `mapstructure:"sslmode"`
	TimeZone string `mapstructure:"timezone"`
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s "+
			"application_name=vrajamarii TimeZone=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode, c.TimeZone,
	)
}

type RedisConfig struct {
	URL string `mapstructure:"url"`
}

type AuthConfig struct {
	// JWTSecret verifies the HS256 access tokens issued by the identity provider.
	JWTSecret string `mapstructure:"jwt_secret"`
	// WebhookSecret is the shared key the booking system sends in x-api-key.
	WebhookSecret string `mapstructure:"webhook_secret"`
}

type MailConfig struct {
	Provider      string `mapstructure:"provider"`
	From          string `mapstructure:"from"`
	ResendAPIKey  string `mapstructure:"resend_api_key"`
	ResendBaseURL string `mapstructure:"resend_base_url"`
	SMTPHost      string `mapstructure:"smtp_host"`
	SMTPPort      string `mapstructure:"smtp_port"`
	SMTPUser      string `mapstructure:"smtp_user"`
	SMTPPassword  string `mapstructure:"smtp_password"`
}

type DraftConfig struct {
	TTL        time.Duration `mapstructure:"ttl"`
	SubmitLock time.Duration `mapstructure:"submit_lock"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// env maps configuration keys to the environment variables that set them.
var env = map[string]string{
	"server.port":             "PORT",
	"server.read_timeout":     "SERVER_READ_TIMEOUT",
	"server.write_timeout":    "SERVER_WRITE_TIMEOUT",
	"server.shutdown_timeout": "SERVER_SHUTDOWN_TIMEOUT",
	"db.host":                 "DB_HOST",
	"db.user":                 "DB_USER",
	"db.password":             "DB_PASSWORD",
	"db.name":                 "DB_NAME",
	"db.port":                 "DB_PORT",
	"db.sslmode":              "DB_SSLMODE",
	"db.timezone":             "DB_TIMEZONE",
	"redis.url":               "REDIS_URL",
	"auth.jwt_secret":         "JWT_SECRET",
	"auth.webhook_secret":     "BITMANAGER_WEBHOOK_SECRET",
	"mail.provider":           "MAIL_PROVIDER",
	"mail.from":               "RESEND_FROM_EMAIL",
	"mail.resend_api_key":     "RESEND_API_KEY",
	"mail.resend_base_url":    "RESEND_BASE_URL",
	"mail.smtp_host":          "SMTP_HOST",
	"mail.smtp_port":          "SMTP_PORT",
	"mail.smtp_user":          "SMTP_USER",
	"mail.smtp_password":      "SMTP_PASSWORD",
	"draft.ttl":               "DRAFT_TTL",
	"draft.submit_lock":       "DRAFT_SUBMIT_LOCK",
	"log.level":               "LOG_LEVEL",
	"log.format":              "LOG_FORMAT",
	"site_url":                "NEXT_PUBLIC_SITE_URL",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.timezone", "Europe/Bucharest")

	v.SetDefault("redis.url", "redis://localhost:6379/0")

	v.SetDefault("mail.provider", "resend")
	v.SetDefault("mail.from", "Vraja Marii <noreply@vrajamarii.ro>")
	v.SetDefault("mail.resend_base_url", "https://api.resend.com")
	v.SetDefault("mail.smtp_port", "587")

	v.SetDefault("draft.ttl", 7*24*time.Hour)
	v.SetDefault("draft.submit_lock", 30*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("site_url", "https://vrajamarii.ro")
}

// Load reads envFiles (missing ones are skipped) into the process
// environment, then builds the configuration from it.
func Load(envFiles ...string) (*Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	v := viper.New()
	setDefaults(v)
	for key, name := range env {
		if err := v.BindEnv(key, name); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Mail.Provider = strings.ToLower(cfg.Mail.Provider)
	cfg.SiteURL = strings.TrimRight(cfg.SiteURL, "/")

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	var missing []string
	if c.Auth.JWTSecret == "" {
		missing = append(missing, env["auth.jwt_secret"])
	}
	if c.Auth.WebhookSecret == "" {
		missing = append(missing, env["auth.webhook_secret"])
	}
	switch c.Mail.Provider {
	case "resend":
		if c.Mail.ResendAPIKey == "" {
			missing = append(missing, env["mail.resend_api_key"])
		}
	case "smtp":
		if c.Mail.SMTPHost == "" {
			missing = append(missing, env["mail.smtp_host"])
		}
	default:
		return fmt.Errorf("unknown mail provider %q", c.Mail.Provider)
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing %s", strings.Join(missing, ", "))
	}
	return nil
}
