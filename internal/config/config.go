// Package config holds the runtime configuration of the archivist CLI.
//
// Values come from .archivist.yaml, ARCHIVIST_* environment variables and
// command flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/dmitrymomot/archivist/pkg/i18n"
	"github.com/dmitrymomot/archivist/pkg/logger"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

// LocalesConfig locates the locale catalog and resources.
type LocalesConfig struct {
	Dir     string        `mapstructure:"dir"`
	Catalog string        `mapstructure:"catalog"`
	Default string        `mapstructure:"default"`
	S3      i18n.S3Config `mapstructure:"s3"`
}

// ServerConfig configures the preview server.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	RedisURL        string        `mapstructure:"redis_url"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	Watch           bool          `mapstructure:"watch"`
	SecureCookies   bool          `mapstructure:"secure_cookies"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string              `mapstructure:"level"`
	Format string              `mapstructure:"format"`
	Sentry logger.SentryConfig `mapstructure:"sentry"`
}

// Config is the full CLI configuration.
type Config struct {
	Site    string        `mapstructure:"site"`
	Locales LocalesConfig `mapstructure:"locales"`
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
}

// SetDefaults registers the built-in defaults on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("site", "_config.yml")
	v.SetDefault("locales.dir", "locales")
	v.SetDefault("locales.catalog", "locales/catalog.yml")
	v.SetDefault("locales.default", i18n.DefaultLocale)
	v.SetDefault("locales.s3.bucket", "")
	v.SetDefault("locales.s3.prefix", "locales")
	v.SetDefault("locales.s3.region", "us-east-1")
	v.SetDefault("locales.s3.endpoint", "")
	v.SetDefault("locales.s3.access_key", "")
	v.SetDefault("locales.s3.secret_key", "")
	v.SetDefault("locales.s3.path_style", false)
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.redis_url", "")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.watch", false)
	v.SetDefault("server.secure_cookies", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", string(logger.FormatText))
	v.SetDefault("log.sentry.dsn", "")
	v.SetDefault("log.sentry.environment", "")
}

// Load applies the defaults to v and decodes it.
func Load(v *viper.Viper) (Config, error) {
	SetDefaults(v)

	var cfg Config
	err := v.Unmarshal(&cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.TextUnmarshallerHookFunc(),
	)))
	if err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports settings that cannot work together.
func (c Config) Validate() error {
	var errs []error
	if c.Site == "" {
		errs = append(errs, fmt.Errorf("%w: site is required", ErrInvalidConfig))
	}
	if c.Locales.Catalog == "" {
		errs = append(errs, fmt.Errorf("%w: locales.catalog is required", ErrInvalidConfig))
	}
	if c.Locales.Dir == "" && c.Locales.S3.Bucket == "" {
		errs = append(errs, fmt.Errorf("%w: locales.dir or locales.s3.bucket is required", ErrInvalidConfig))
	}
	if c.Server.Watch && c.Locales.S3.Bucket != "" {
		errs = append(errs, fmt.Errorf("%w: server.watch needs a local locales.dir", ErrInvalidConfig))
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("%w: %v", ErrInvalidConfig, err))
	}
	switch logger.Format(c.Log.Format) {
	case logger.FormatText, logger.FormatJSON:
	default:
		errs = append(errs, fmt.Errorf("%w: unknown log format %q", ErrInvalidConfig, c.Log.Format))
	}
	return errors.Join(errs...)
}
