package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// legacyEnv keeps the flat variable names used by existing deployments working.
var legacyEnv = map[string][]string{
	"app.port":               {"PORT"},
	"database.postgres.url":  {"POSTGRES_URL"},
	"database.redis.address": {"REDIS_ADDR"},
	"auth.jwt_secret":        {"JWT_SECRET"},
	"ai.provider":            {"EMBEDDING_PROVIDER"},
	"ai.gemini_api_key":      {"GEMINI_API_KEY"},
	"ai.openai_api_key":      {"OPENAI_API_KEY"},
}

// Load reads config.yaml (optional), config.<env>.yaml (optional), .env and
// the process environment, in increasing order of precedence.
func Load() (*Config, error) {
	loadEnvFile()
	return LoadWithPaths("./configs", ".")
}

// LoadWithPaths is Load without the .env lookup, searching only the given directories.
func LoadWithPaths(paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	for key, names := range legacyEnv {
		envKey := strings.ToUpper(strings.NewReplacer(".", "_").Replace(key))
		if err := v.BindEnv(append([]string{key, envKey}, names...)...); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	env := v.GetString("app.environment")
	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "foody-buddy")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.port", "8080")

	v.SetDefault("database.postgres.url", "")
	v.SetDefault("database.postgres.max_open_conns", 20)
	v.SetDefault("database.postgres.max_idle_conns", 5)
	v.SetDefault("database.postgres.conn_max_lifetime", 30*time.Minute)
	v.SetDefault("database.postgres.auto_migrate", true)
	v.SetDefault("database.redis.address", "")
	v.SetDefault("database.redis.password", "")
	v.SetDefault("database.redis.db", 0)

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl", 24*time.Hour)
	v.SetDefault("auth.bcrypt_cost", 12)

	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("ai.gemini_api_key", "")
	v.SetDefault("ai.openai_api_key", "")
	v.SetDefault("ai.chat_model", "")
	v.SetDefault("ai.embedding_model", "")
	v.SetDefault("ai.embedding_dimensions", 768)
	v.SetDefault("ai.request_timeout", 30*time.Second)
	v.SetDefault("ai.breaker.max_requests", 1)
	v.SetDefault("ai.breaker.interval", time.Minute)
	v.SetDefault("ai.breaker.timeout", 30*time.Second)
	v.SetDefault("ai.breaker.failure_threshold", 5)

	v.SetDefault("suggestion.default_limit", 10)
	v.SetDefault("suggestion.default_temperature", 30.0)
	v.SetDefault("suggestion.max_expanded_dishes", 10)
	v.SetDefault("suggestion.expansion_cache_ttl", time.Hour)

	v.SetDefault("rate_limit.login_per_second", 1.0)
	v.SetDefault("rate_limit.login_burst", 5)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

func validateConfig(cfg *Config) error {
	switch strings.ToLower(cfg.AI.Provider) {
	case "gemini", "openai":
	default:
		return fmt.Errorf("unsupported ai.provider %q, use 'gemini' or 'openai'", cfg.AI.Provider)
	}

	if cfg.Suggestion.DefaultLimit < 1 || cfg.Suggestion.DefaultLimit > 100 {
		return errors.New("suggestion.default_limit must be between 1 and 100")
	}

	if cfg.App.Environment == "test" {
		return nil
	}
	if cfg.Database.Postgres.URL == "" {
		return errors.New("database.postgres.url is required")
	}
	if cfg.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret is required")
	}
	return nil
}

func loadEnvFile() {
	possiblePaths := []string{".env", "../.env", "../../.env"}
	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
