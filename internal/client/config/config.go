package config

import "time"

// Config holds runtime settings for the fittrack CLI.
//
// Fields:
//   - RemoteStoreAddr / APIKey / RemoteStoreTLS: gRPC endpoint of the hosted
//     backend and the project key sent with every call.
//   - DatabasePath: SQLite file holding the stored session and preferences.
//   - ResetRedirectURL: target embedded in password recovery emails.
//   - RequestTimeout: upper bound of a single remote call.
//   - ClockSkew: how far in the future a workout time may lie.
//   - DefaultListLimit / AdminListLimit: page sizes of user and admin lists.
//   - MetricsAddr: optional host:port for the Prometheus endpoint.
//   - S3*: avatar bucket on an S3-compatible store; AvatarBaseURL is the
//     public prefix of stored avatars.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	RemoteStoreAddr  string
	APIKey           string
	RemoteStoreTLS   bool
	DatabasePath     string
	ResetRedirectURL string
	RequestTimeout   time.Duration
	ClockSkew        time.Duration
	DefaultListLimit int
	AdminListLimit   int
	MetricsAddr      string
	S3Endpoint       string
	S3Region         string
	S3Bucket         string
	S3AccessKey      string
	S3SecretKey      string
	AvatarBaseURL    string
	LogLevel         string
}

// LoadDefaults populates c with development defaults.
func (c *Config) LoadDefaults() {
	c.RemoteStoreAddr = "127.0.0.1:50051"
	c.DatabasePath = "fittrack.db"
	c.ResetRedirectURL = "fittrack://reset-password"
	c.RequestTimeout = 15 * time.Second
	c.ClockSkew = 5 * time.Minute
	c.DefaultListLimit = 50
	c.AdminListLimit = 100
	c.S3Region = "us-east-1"
	c.S3Bucket = "avatars"
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment (and .env), JSON (if present) and command-line flags (if
// present). Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
