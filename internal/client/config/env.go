package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/dmitrijs2005/fittrack/internal/flagx"
	"github.com/joho/godotenv"
)

const envPrefix = "FITTRACK_"

// loadDotEnv reads the file named by -env, or ./.env when present. Variables
// already set in the process environment win.
func loadDotEnv() {
	if file := flagx.EnvFileFlag(); file != "" {
		if err := godotenv.Load(file); err != nil {
			panic(err)
		}
		return
	}
	_ = godotenv.Load()
}

func envString(name string, dst *string) {
	if v, ok := os.LookupEnv(envPrefix + name); ok {
		*dst = v
	}
}

func envBool(name string, dst *bool) {
	if v, ok := os.LookupEnv(envPrefix + name); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			panic(fmt.Errorf("%s%s: %w", envPrefix, name, err))
		}
		*dst = b
	}
}

func envInt(name string, dst *int) {
	if v, ok := os.LookupEnv(envPrefix + name); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			panic(fmt.Errorf("%s%s: %w", envPrefix, name, err))
		}
		*dst = n
	}
}

func envDuration(name string, dst *time.Duration) {
	if v, ok := os.LookupEnv(envPrefix + name); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(fmt.Errorf("%s%s: %w", envPrefix, name, err))
		}
		*dst = d
	}
}

// parseEnv overlays Config with FITTRACK_* variables. Malformed values
// panic, like the other loaders.
func parseEnv(cfg *Config) {
	loadDotEnv()

	envString("REMOTE_STORE_ADDR", &cfg.RemoteStoreAddr)
	envString("API_KEY", &cfg.APIKey)
	envBool("REMOTE_STORE_TLS", &cfg.RemoteStoreTLS)
	envString("DATABASE_PATH", &cfg.DatabasePath)
	envString("RESET_REDIRECT_URL", &cfg.ResetRedirectURL)
	envDuration("REQUEST_TIMEOUT", &cfg.RequestTimeout)
	envDuration("CLOCK_SKEW", &cfg.ClockSkew)
	envInt("DEFAULT_LIST_LIMIT", &cfg.DefaultListLimit)
	envInt("ADMIN_LIST_LIMIT", &cfg.AdminListLimit)
	envString("METRICS_ADDR", &cfg.MetricsAddr)
	envString("S3_ENDPOINT", &cfg.S3Endpoint)
	envString("S3_REGION", &cfg.S3Region)
	envString("S3_BUCKET", &cfg.S3Bucket)
	envString("S3_ACCESS_KEY", &cfg.S3AccessKey)
	envString("S3_SECRET_KEY", &cfg.S3SecretKey)
	envString("AVATAR_BASE_URL", &cfg.AvatarBaseURL)
	envString("LOG_LEVEL", &cfg.LogLevel)
}
