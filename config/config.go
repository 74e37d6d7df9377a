package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Ollama   OllamaConfig
	Matching MatchingConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// OllamaConfig holds vision model configuration
type OllamaConfig struct {
	Endpoint string        `mapstructure:"endpoint"`
	Model    string        `mapstructure:"model"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// MatchingConfig holds inventory matching configuration
type MatchingConfig struct {
	FuzzyThreshold     float64 `mapstructure:"fuzzy_threshold"`
	EnableDebugLogging bool    `mapstructure:"enable_debug_logging"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/visionscan/")

	// Environment variable settings
	v.SetEnvPrefix("VISIONSCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:5173", "http://localhost:3000"})

	// Ollama defaults
	v.SetDefault("ollama.endpoint", "http://localhost:11434")
	v.SetDefault("ollama.model", "llava-phi3")
	v.SetDefault("ollama.timeout", "30s")

	// Matching defaults
	v.SetDefault("matching.fuzzy_threshold", 0.6)
	v.SetDefault("matching.enable_debug_logging", false)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Ollama.Endpoint == "" {
		return fmt.Errorf("ollama endpoint is required (set VISIONSCAN_OLLAMA_ENDPOINT)")
	}

	if config.Ollama.Model == "" {
		return fmt.Errorf("ollama model is required (set VISIONSCAN_OLLAMA_MODEL)")
	}

	if config.Ollama.Timeout <= 0 {
		return fmt.Errorf("ollama timeout must be positive, got: %s", config.Ollama.Timeout)
	}

	if config.Matching.FuzzyThreshold <= 0 || config.Matching.FuzzyThreshold > 1 {
		return fmt.Errorf("fuzzy threshold must be in (0, 1], got: %f", config.Matching.FuzzyThreshold)
	}

	return nil
}
