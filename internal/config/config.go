package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultListenAddr       = ":8090"
	defaultAPIBaseURL       = "http://localhost:8080"
	defaultSocketURL        = "ws://localhost:8080/ws"
	defaultCacheDSN         = "merchantdesk.db"
	defaultSecretKey        = "change-me-secret-key"
	defaultSignInURL        = "/sign-in"
	defaultTypingIdle       = "2s"
	defaultReconnectBase    = "1s"
	defaultMaxReconnects    = "5"
	defaultUnreadPollPeriod = "30s"
)

type Config struct {
	AppEnv string

	// Upstream marketplace API.
	APIBaseURL string
	APIKey     string
	SocketURL  string

	// Local dashboard surface.
	ListenAddr string
	SignInURL  string

	// Token storage. TokenFile is checked first, CookieFile second.
	SecretKey  string
	TokenFile  string
	CookieFile string

	// Local notification cache (sqlite path or postgres DSN).
	CacheDSN string

	TypingIdle       time.Duration
	ReconnectBase    time.Duration
	MaxReconnects    int
	UnreadPollPeriod time.Duration
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.APIBaseURL = strings.TrimRight(getEnv("API_BASE_URL", defaultAPIBaseURL), "/")
	cfg.APIKey = strings.TrimSpace(os.Getenv("API_KEY"))
	cfg.SocketURL = getEnv("SOCKET_URL", defaultSocketURL)
	cfg.ListenAddr = getEnv("LISTEN_ADDR", defaultListenAddr)
	cfg.SignInURL = getEnv("SIGN_IN_URL", defaultSignInURL)
	cfg.SecretKey = strings.TrimSpace(getEnv("SECRET_KEY", defaultSecretKey))
	cfg.CacheDSN = getEnv("CACHE_DSN", defaultCacheDSN)

	home, _ := os.UserHomeDir()
	cfg.TokenFile = getEnv("TOKEN_FILE", filepath.Join(home, ".merchantdesk", "token"))
	cfg.CookieFile = getEnv("COOKIE_FILE", filepath.Join(home, ".merchantdesk", "cookies"))

	var err error
	cfg.TypingIdle, err = parseDurationEnv("TYPING_IDLE", defaultTypingIdle)
	if err != nil {
		return nil, err
	}
	cfg.ReconnectBase, err = parseDurationEnv("RECONNECT_BASE", defaultReconnectBase)
	if err != nil {
		return nil, err
	}
	cfg.UnreadPollPeriod, err = parseDurationEnv("UNREAD_POLL_PERIOD", defaultUnreadPollPeriod)
	if err != nil {
		return nil, err
	}
	cfg.MaxReconnects, err = parseIntEnv("MAX_RECONNECTS", defaultMaxReconnects)
	if err != nil {
		return nil, err
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	log.Printf("config: api=%s socket=%s listen=%s env=%s", cfg.APIBaseURL, cfg.SocketURL, cfg.ListenAddr, cfg.AppEnv)

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.APIBaseURL == "" {
		return fmt.Errorf("API_BASE_URL must not be empty")
	}
	if cfg.SocketURL == "" {
		return fmt.Errorf("SOCKET_URL must not be empty")
	}
	if cfg.TypingIdle <= 0 {
		return fmt.Errorf("TYPING_IDLE must be > 0")
	}
	if cfg.ReconnectBase <= 0 {
		return fmt.Errorf("RECONNECT_BASE must be > 0")
	}
	if cfg.MaxReconnects <= 0 {
		return fmt.Errorf("MAX_RECONNECTS must be > 0")
	}
	if cfg.UnreadPollPeriod <= 0 {
		return fmt.Errorf("UNREAD_POLL_PERIOD must be > 0")
	}

	if isProdLike(cfg.AppEnv) {
		if cfg.APIKey == "" {
			return fmt.Errorf("in prod/release API_KEY must be set")
		}
		if isEmptyOrDefault(cfg.SecretKey, defaultSecretKey) {
			return fmt.Errorf("in prod/release SECRET_KEY must be set and not default")
		}
	}

	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseIntEnv(name, fallback string) (int, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	var n int
	if _, err := fmt.Sscanf(value, "%d", &n); err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return n, nil
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
