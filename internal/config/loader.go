package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads the YAML file at path, layers APP_* environment variables on top
// and validates the result. A .env file in the working directory is loaded first
// if present; variables already set in the environment win.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(path)
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()

	var config Config
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config file not found: %w", err)
	}
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Every key needs a default, otherwise AutomaticEnv cannot override keys
// that are absent from the file.
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "users-service")
	v.SetDefault("app.version", "0.1.0")
	v.SetDefault("app.env", "dev")
	v.SetDefault("app.port", 3000)
	v.SetDefault("app.shutdown_timeout", 10)

	v.SetDefault("logger.level", "")
	v.SetDefault("logger.env", "")
	v.SetDefault("logger.format", "")
	v.SetDefault("logger.service_name", "")
	v.SetDefault("logger.service_version", "")

	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.user", "")
	v.SetDefault("postgres.password", "")
	v.SetDefault("postgres.dbname", "")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.max_conns", 10)
	v.SetDefault("postgres.min_conns", 1)
	v.SetDefault("postgres.max_conn_lifetime", 3600)
	v.SetDefault("postgres.max_conn_idle_time", 300)
	v.SetDefault("postgres.health_check_period", 30)

	v.SetDefault("storage.driver", DriverPostgres)
	v.SetDefault("storage.migrate_on_start", true)

	v.SetDefault("cors.allow_origins", []string{"*"})
}

// Validate checks static constraints and, for the postgres driver, that the
// secrets normally supplied through the environment are present.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation error: %w", err)
	}
	if c.Storage.Driver != DriverPostgres {
		return nil
	}
	var missing []string
	if c.Postgres.User == "" {
		missing = append(missing, "APP_POSTGRES_USER")
	}
	if c.Postgres.Password == "" {
		missing = append(missing, "APP_POSTGRES_PASSWORD")
	}
	if c.Postgres.DBName == "" {
		missing = append(missing, "APP_POSTGRES_DBNAME")
	}
	if len(missing) > 0 {
		return errors.New("missing required postgres settings: " + strings.Join(missing, ", "))
	}
	return nil
}
