package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultIPLookupURL     = "https://api.ipify.org?format=json"
	DefaultRefreshInterval = 30 * time.Second
	DefaultIPLookupTimeout = 1500 * time.Millisecond
)

type Config struct {
	Port             string
	SheetURL         string
	IPLookupURL      string
	IPLookupTimeout  time.Duration
	HTTPTimeout      time.Duration
	RefreshInterval  time.Duration
	DatasetPath      string
	ProgressBackend  string
	ProgressDir      string
	RedisAddr        string
	InsightsPassword string
	CORSOrigins      []string
}

// Load reads .env (if present) and the process environment.
func Load() Config {
	_ = godotenv.Load() // loads .env
	return FromEnv()
}

func FromEnv() Config {
	return Config{
		Port:             envOr("PORT", "8080"),
		SheetURL:         os.Getenv("SHEET_URL"),
		IPLookupURL:      envOr("IP_LOOKUP_URL", DefaultIPLookupURL),
		IPLookupTimeout:  durationOr("IP_LOOKUP_TIMEOUT", DefaultIPLookupTimeout),
		HTTPTimeout:      durationOr("HTTP_TIMEOUT", 15*time.Second),
		RefreshInterval:  durationOr("REFRESH_INTERVAL", DefaultRefreshInterval),
		DatasetPath:      os.Getenv("DATASET_PATH"),
		ProgressBackend:  envOr("PROGRESS_BACKEND", "memory"),
		ProgressDir:      envOr("PROGRESS_DIR", ".progress"),
		RedisAddr:        os.Getenv("REDIS_ADDR"),
		InsightsPassword: os.Getenv("INSIGHTS_PASSWORD"),
		CORSOrigins:      splitList(envOr("CORS_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000")),
	}
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func durationOr(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
