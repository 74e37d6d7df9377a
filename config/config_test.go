package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Server.Port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Server.Environment != "development" {
		t.Errorf("Server.Environment = %q, want development", cfg.Server.Environment)
	}
	if cfg.Ollama.Endpoint != "http://localhost:11434" {
		t.Errorf("Ollama.Endpoint = %q, want http://localhost:11434", cfg.Ollama.Endpoint)
	}
	if cfg.Ollama.Model != "llava-phi3" {
		t.Errorf("Ollama.Model = %q, want llava-phi3", cfg.Ollama.Model)
	}
	if cfg.Ollama.Timeout != 30*time.Second {
		t.Errorf("Ollama.Timeout = %s, want 30s", cfg.Ollama.Timeout)
	}
	if cfg.Matching.FuzzyThreshold != 0.6 {
		t.Errorf("Matching.FuzzyThreshold = %v, want 0.6", cfg.Matching.FuzzyThreshold)
	}
	if cfg.Matching.EnableDebugLogging {
		t.Error("Matching.EnableDebugLogging = true, want false by default")
	}
	if len(cfg.Server.AllowedOrigins) == 0 {
		t.Error("Server.AllowedOrigins is empty, want defaults")
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("VISIONSCAN_SERVER_PORT", "9090")
	t.Setenv("VISIONSCAN_SERVER_ENVIRONMENT", "production")
	t.Setenv("VISIONSCAN_OLLAMA_ENDPOINT", "http://ollama.internal:11434")
	t.Setenv("VISIONSCAN_OLLAMA_MODEL", "llava:13b")
	t.Setenv("VISIONSCAN_OLLAMA_TIMEOUT", "45s")
	t.Setenv("VISIONSCAN_MATCHING_FUZZY_THRESHOLD", "0.75")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("Server.Port = %q, want 9090", cfg.Server.Port)
	}
	if cfg.Server.Environment != "production" {
		t.Errorf("Server.Environment = %q, want production", cfg.Server.Environment)
	}
	if cfg.Ollama.Endpoint != "http://ollama.internal:11434" {
		t.Errorf("Ollama.Endpoint = %q", cfg.Ollama.Endpoint)
	}
	if cfg.Ollama.Model != "llava:13b" {
		t.Errorf("Ollama.Model = %q, want llava:13b", cfg.Ollama.Model)
	}
	if cfg.Ollama.Timeout != 45*time.Second {
		t.Errorf("Ollama.Timeout = %s, want 45s", cfg.Ollama.Timeout)
	}
	if cfg.Matching.FuzzyThreshold != 0.75 {
		t.Errorf("Matching.FuzzyThreshold = %v, want 0.75", cfg.Matching.FuzzyThreshold)
	}
}

func TestLoad_Validation(t *testing.T) {
	t.Run("rejects zero threshold", func(t *testing.T) {
		t.Setenv("VISIONSCAN_MATCHING_FUZZY_THRESHOLD", "0")
		if _, err := Load(); err == nil {
			t.Error("Load() error = nil, want validation error")
		}
	})

	t.Run("rejects threshold above one", func(t *testing.T) {
		t.Setenv("VISIONSCAN_MATCHING_FUZZY_THRESHOLD", "1.5")
		if _, err := Load(); err == nil {
			t.Error("Load() error = nil, want validation error")
		}
	})

	t.Run("rejects non-positive timeout", func(t *testing.T) {
		t.Setenv("VISIONSCAN_OLLAMA_TIMEOUT", "0s")
		if _, err := Load(); err == nil {
			t.Error("Load() error = nil, want validation error")
		}
	})

	t.Run("rejects empty model", func(t *testing.T) {
		cfg := &Config{
			Server:   ServerConfig{Port: "8080"},
			Ollama:   OllamaConfig{Endpoint: "http://localhost:11434", Timeout: time.Second},
			Matching: MatchingConfig{FuzzyThreshold: 0.6},
		}
		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want error for empty model")
		}
	})

	t.Run("rejects empty endpoint", func(t *testing.T) {
		cfg := &Config{
			Server:   ServerConfig{Port: "8080"},
			Ollama:   OllamaConfig{Model: "llava-phi3", Timeout: time.Second},
			Matching: MatchingConfig{FuzzyThreshold: 0.6},
		}
		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want error for empty endpoint")
		}
	})
}
