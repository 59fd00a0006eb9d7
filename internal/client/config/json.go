package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/fittrack/internal/flagx"
	"github.com/dmitrijs2005/fittrack/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "15s" or as integer nanoseconds. Pointer fields distinguish
// "absent" from zero so that only keys present in the file override.
type JsonConfig struct {
	RemoteStoreAddr  *string         `json:"remote_store_addr"`
	APIKey           *string         `json:"api_key"`
	RemoteStoreTLS   *bool           `json:"remote_store_tls"`
	DatabasePath     *string         `json:"database_path"`
	ResetRedirectURL *string         `json:"reset_redirect_url"`
	RequestTimeout   *timex.Duration `json:"request_timeout"`
	ClockSkew        *timex.Duration `json:"clock_skew"`
	DefaultListLimit *int            `json:"default_list_limit"`
	AdminListLimit   *int            `json:"admin_list_limit"`
	MetricsAddr      *string         `json:"metrics_addr"`
	S3Endpoint       *string         `json:"s3_endpoint"`
	S3Region         *string         `json:"s3_region"`
	S3Bucket         *string         `json:"s3_bucket"`
	S3AccessKey      *string         `json:"s3_access_key"`
	S3SecretKey      *string         `json:"s3_secret_key"`
	AvatarBaseURL    *string         `json:"avatar_base_url"`
	LogLevel         *string         `json:"log_level"`
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, v *timex.Duration) {
	if v != nil {
		*dst = time.Duration(v.Duration)
	}
}

// parseJson overlays Config with values loaded from a JSON file.
//
// The file path comes from -c or -config (flagx.JsonConfigFlags). Without
// it nothing is loaded. Read or unmarshal errors panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	set(&cfg.RemoteStoreAddr, jc.RemoteStoreAddr)
	set(&cfg.APIKey, jc.APIKey)
	set(&cfg.RemoteStoreTLS, jc.RemoteStoreTLS)
	set(&cfg.DatabasePath, jc.DatabasePath)
	set(&cfg.ResetRedirectURL, jc.ResetRedirectURL)
	setDuration(&cfg.RequestTimeout, jc.RequestTimeout)
	setDuration(&cfg.ClockSkew, jc.ClockSkew)
	set(&cfg.DefaultListLimit, jc.DefaultListLimit)
	set(&cfg.AdminListLimit, jc.AdminListLimit)
	set(&cfg.MetricsAddr, jc.MetricsAddr)
	set(&cfg.S3Endpoint, jc.S3Endpoint)
	set(&cfg.S3Region, jc.S3Region)
	set(&cfg.S3Bucket, jc.S3Bucket)
	set(&cfg.S3AccessKey, jc.S3AccessKey)
	set(&cfg.S3SecretKey, jc.S3SecretKey)
	set(&cfg.AvatarBaseURL, jc.AvatarBaseURL)
	set(&cfg.LogLevel, jc.LogLevel)
}
