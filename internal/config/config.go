package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/azunt/technician/internal/types"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Configuration struct {
	Database DatabaseConfig `validate:"required"`
	Logging  LoggingConfig  `validate:"required"`
}

type DatabaseConfig struct {
	// Driver selects the repository backend (postgres or sqlite)
	Driver types.DatabaseDriver `validate:"required,oneof=postgres sqlite"`
	// DSN is the application database the repository operates on
	DSN string `validate:"required"`
	// MasterDSN is the administrative database carrying the Tenants
	// registry. Falls back to DSN when unset.
	MasterDSN string

	MaxOpenConns           int
	MaxIdleConns           int
	ConnMaxLifetimeMinutes int
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

func NewConfig() (*Configuration, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/technician")

	// Set up environment variables support
	v.SetEnvPrefix("TECHNICIAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	// Read config file if exists
	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if config.Database.MasterDSN == "" {
		config.Database.MasterDSN = config.Database.DSN
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c Configuration) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// GetDefaultConfig returns a default configuration for local development
// This is useful for running scripts or other non-web applications
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Database: DatabaseConfig{
			Driver: types.DriverSQLite,
			DSN:    "file:technician.db?mode=memory&cache=shared",
		},
		Logging: LoggingConfig{Level: types.LogLevelDebug},
	}
}

// GetMasterDSN returns the administrative DSN, falling back to the
// application DSN
func (c DatabaseConfig) GetMasterDSN() string {
	if c.MasterDSN != "" {
		return c.MasterDSN
	}
	return c.DSN
}

// DriverName returns the database/sql driver name registered for the
// configured backend
func (c DatabaseConfig) DriverName() string {
	switch c.Driver {
	case types.DriverSQLite:
		return "sqlite"
	default:
		return "postgres"
	}
}

func (c DatabaseConfig) String() string {
	return fmt.Sprintf("driver=%s", c.Driver)
}
