package config

import (
	"math"
	"os"
	"strconv"

	"probcalc/internal/errors"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	UI       UIConfig
	Database DatabaseConfig
	Engine   EngineConfig
	Logging  LoggingConfig
}

// ServerConfig holds JSON API server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// UIConfig holds form page server settings
type UIConfig struct {
	Port    string
	Enabled bool
}

// DatabaseConfig holds the optional history database connection
type DatabaseConfig struct {
	URL string
}

// Enabled reports whether evaluation history is persisted to PostgreSQL
func (d DatabaseConfig) Enabled() bool {
	return d.URL != ""
}

// EngineConfig holds evaluation defaults shared by every shell
type EngineConfig struct {
	ShowStepsDefault bool
	HistoryLimit     int
	// MaxCount caps binomial n, hypergeometric N and the Poisson outcome
	MaxCount  int
	MaxLambda float64
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string
}

// ConfigFileEnv names the variable pointing at an optional config file
const ConfigFileEnv = "PROBCALC_CONFIG"

// Load reads configuration from the environment, and from the file named by
// PROBCALC_CONFIG when set, then validates it
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if path := os.Getenv(ConfigFileEnv); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", path)
		}
	}

	config := &Config{
		Server: ServerConfig{
			Port:    v.GetString("PORT"),
			GinMode: v.GetString("GIN_MODE"),
		},
		UI: UIConfig{
			Port:    v.GetString("UI_PORT"),
			Enabled: v.GetBool("UI_ENABLED"),
		},
		Database: DatabaseConfig{
			URL: v.GetString("DATABASE_URL"),
		},
		Engine: EngineConfig{
			ShowStepsDefault: v.GetBool("SHOW_STEPS_DEFAULT"),
			HistoryLimit:     v.GetInt("HISTORY_LIMIT"),
			MaxCount:         v.GetInt("MAX_COUNT"),
			MaxLambda:        v.GetFloat64("MAX_LAMBDA"),
		},
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("UI_PORT", "8081")
	v.SetDefault("UI_ENABLED", true)
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("SHOW_STEPS_DEFAULT", false)
	v.SetDefault("HISTORY_LIMIT", 50)
	v.SetDefault("MAX_COUNT", 10000)
	v.SetDefault("MAX_LAMBDA", 10000.0)
	v.SetDefault("LOG_LEVEL", "INFO")
}

func validateConfig(config *Config) error {
	if err := validatePort("PORT", config.Server.Port); err != nil {
		return err
	}
	if config.UI.Enabled {
		if err := validatePort("UI_PORT", config.UI.Port); err != nil {
			return err
		}
		if config.UI.Port == config.Server.Port {
			return errors.ConfigInvalid("UI_PORT must differ from PORT")
		}
	}
	switch config.Server.GinMode {
	case "debug", "release", "test":
	default:
		return errors.ConfigInvalid("GIN_MODE must be debug, release or test")
	}
	if config.Engine.HistoryLimit < 1 {
		return errors.ConfigInvalid("HISTORY_LIMIT must be positive")
	}
	if config.Engine.MaxCount < 1 || config.Engine.MaxCount > math.MaxInt32 {
		return errors.ConfigInvalid("MAX_COUNT must be between 1 and 2147483647")
	}
	if !(config.Engine.MaxLambda > 0) || math.IsInf(config.Engine.MaxLambda, 0) {
		return errors.ConfigInvalid("MAX_LAMBDA must be a positive number")
	}
	return nil
}

func validatePort(key, value string) error {
	port, err := strconv.Atoi(value)
	if err != nil || port < 1 || port > 65535 {
		return errors.ConfigInvalid(key + " must be a TCP port number")
	}
	return nil
}
