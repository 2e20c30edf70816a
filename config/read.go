package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/melbooking/melbooking_backend/pkg/constants"
)

func ReadConfig(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(constants.ConfigName)
	v.SetConfigType(constants.ConfigFormat)
	v.AddConfigPath(configPath)
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/melbooking")

	setDefaults(v)

	// Allow env vars to override config values.
	// e.g. MELBOOKING_DATABASE_HOST overrides database.host
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read the config file (optional in Docker environments)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if os.Getenv(constants.EnvPrefix+"_DATABASE_HOST") == "" {
				return nil, fmt.Errorf("error reading config file: %v", err)
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %v", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

func MustReadConfig(path string) *Config {
	config, err := ReadConfig(path)
	if err != nil {
		panic(err)
	}
	return config
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.timeout_seconds", 30)
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.databases", []string{"melbooking", "melbooking_casbin"})
	v.SetDefault("server.rate_limit.enabled", true)
	v.SetDefault("server.rate_limit.requests_per_minute", 20)

	for _, db := range []string{"database", "casbin_database"} {
		v.SetDefault(db+".host", "localhost")
		v.SetDefault(db+".port", 5432)
		v.SetDefault(db+".user", "postgres")
		v.SetDefault(db+".sslmode", "disable")
		v.SetDefault(db+".pool.max_open_conns", 20)
		v.SetDefault(db+".pool.max_idle_conns", 5)
		v.SetDefault(db+".pool.conn_max_lifetime_minutes", 30)
	}
	v.SetDefault("database.dbname", "melbooking")
	v.SetDefault("casbin_database.dbname", "melbooking_casbin")
	v.SetDefault("database.migrations.safe_mode", true)

	v.SetDefault("redis.addr", "localhost:6379")

	v.SetDefault("authentication.session_ttl_minutes", 720)
	v.SetDefault("authentication.paseto.mode", "local")
	v.SetDefault("authentication.paseto.issuer", "melbooking")
	v.SetDefault("authentication.paseto.audience", "melbooking-console")
	v.SetDefault("authentication.paseto.access_ttl_minutes", 720)

	v.SetDefault("authorization.casbin_model_path", "casbin_model.conf")
	v.SetDefault("authorization.enable_audit", true)

	v.SetDefault("booking.timezone", constants.BookingTimeZone)
	v.SetDefault("booking.default_open", "10:00")
	v.SetDefault("booking.default_close", "20:00")
	v.SetDefault("booking.public_booking_url", "http://localhost:8501")

	v.SetDefault("worker.concurrency", 2)
	v.SetDefault("worker.archive_cron", "5 0 * * *")
	v.SetDefault("worker.queue", "default")

	v.SetDefault("email.smtp.port", 587)
	v.SetDefault("email.smtp.use_tls", true)
	v.SetDefault("email.smtp.timeout_seconds", 10)

	v.SetDefault("sms.default_region", "AU")

	v.SetDefault("observability.service_name", "melbooking")
	v.SetDefault("observability.metrics.path", "/metrics")
	v.SetDefault("observability.tracing.sampling_rate", 1.0)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.output.stdout", true)
	v.SetDefault("logging.output.file.path", "logs/app.log")
	v.SetDefault("logging.output.file.max_size_mb", 50)
	v.SetDefault("logging.output.file.max_backups", 5)
	v.SetDefault("logging.output.file.max_age_days", 14)
}
