package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host string
	Port int
}

type DBConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime string
}

type AuthConfig struct {
	AccessSecret string
}

type NLUConfig struct {
	BaseURL string
}

type NotifyConfig struct {
	BotURL string
	ChatID string
}

type StorageConfig struct {
	Bucket    string
	Region    string
	Endpoint  string
	PathStyle bool
}

type QuotesConfig struct {
	IVAPercent float64
}

type Config struct {
	Environment string
	HTTP        HTTPConfig
	DB          DBConfig
	Auth        AuthConfig
	NLU         NLUConfig
	Notify      NotifyConfig
	Storage     StorageConfig
	Quotes      QuotesConfig
	CORSOrigins []string
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AddConfigPath("./internal/config")
	v.AutomaticEnv()

	_ = v.ReadInConfig()

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),
		},
		DB: DBConfig{
			DSN:             v.GetString("DB_DSN"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetString("DB_CONN_MAX_LIFETIME"),
		},
		Auth: AuthConfig{
			AccessSecret: v.GetString("JWT_ACCESS_SECRET"),
		},
		NLU: NLUConfig{
			BaseURL: v.GetString("NLU_BASE_URL"),
		},
		Notify: NotifyConfig{
			BotURL: v.GetString("NOTIFY_BOT_URL"),
			ChatID: v.GetString("NOTIFY_CHAT_ID"),
		},
		Storage: StorageConfig{
			Bucket:    v.GetString("STORAGE_S3_BUCKET"),
			Region:    v.GetString("STORAGE_S3_REGION"),
			Endpoint:  v.GetString("STORAGE_S3_ENDPOINT"),
			PathStyle: v.GetBool("STORAGE_S3_PATH_STYLE"),
		},
		Quotes: QuotesConfig{
			IVAPercent: v.GetFloat64("QUOTES_IVA_PERCENT"),
		},
		CORSOrigins: parseList(v.GetString("CORS_ORIGINS")),
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "0.0.0.0"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 7090
	}
	if cfg.Storage.Region == "" {
		cfg.Storage.Region = "us-east-1"
	}
	if cfg.Quotes.IVAPercent == 0 {
		cfg.Quotes.IVAPercent = 19
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.DB.DSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}
	if cfg.Auth.AccessSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if cfg.NLU.BaseURL == "" {
		return fmt.Errorf("NLU_BASE_URL is required")
	}
	return nil
}

func parseList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	items := strings.Split(raw, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}
