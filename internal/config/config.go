package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config aggregates every configuration section of the service.
type Config struct {
	Server ServerConfig
	AI     AIConfig
	Shapes ShapeLibraryConfig
	Upload UploadConfig
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	ai, err := loadAIConfig()
	if err != nil {
		return nil, err
	}

	upload, err := loadUploadConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server: server,
		AI:     ai,
		Shapes: loadShapeLibraryConfig(),
		Upload: upload,
	}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// Accept ":8080" or "127.0.0.1:8080" as-is.
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// AIConfig describes the LLM defaults. Provider and model resolve per
// request; these are the fallbacks when the request leaves them blank.
type AIConfig struct {
	DefaultProvider string
	DefaultModel    string
	Temperature     *float64
	MaxTokens       *int
	MaxToolRounds   int
	StreamResponse  bool
}

func loadAIConfig() (AIConfig, error) {
	temperature, err := parseOptionalFloatEnv("ARCGEN_TEMPERATURE")
	if err != nil {
		return AIConfig{}, err
	}

	maxTokens, err := parseOptionalIntEnv("ARCGEN_MAX_TOKENS")
	if err != nil {
		return AIConfig{}, err
	}

	stream, err := parseBoolEnv("ARCGEN_STREAM", true)
	if err != nil {
		return AIConfig{}, err
	}

	toolRounds := 6
	if roundsOverride, err := parseOptionalIntEnv("ARCGEN_MAX_TOOL_ROUNDS"); err != nil {
		return AIConfig{}, err
	} else if roundsOverride != nil {
		if *roundsOverride < 1 {
			toolRounds = 1
		} else {
			toolRounds = *roundsOverride
		}
	}

	return AIConfig{
		DefaultProvider: strings.ToLower(strings.TrimSpace(os.Getenv("ARCGEN_LLM_PROVIDER"))),
		DefaultModel:    strings.TrimSpace(os.Getenv("ARCGEN_LLM_MODEL")),
		Temperature:     temperature,
		MaxTokens:       maxTokens,
		MaxToolRounds:   toolRounds,
		StreamResponse:  stream,
	}, nil
}

// ShapeLibraryConfig points at an optional directory of markdown docs that
// override the built-in shape library catalog.
type ShapeLibraryConfig struct {
	DocsDir string
}

func loadShapeLibraryConfig() ShapeLibraryConfig {
	return ShapeLibraryConfig{
		DocsDir: strings.TrimSpace(os.Getenv("ARCGEN_SHAPE_LIBRARY_DIR")),
	}
}

// UploadConfig bounds file uploads.
type UploadConfig struct {
	MaxBytes int64
}

func loadUploadConfig() (UploadConfig, error) {
	maxBytes := int64(10 << 20)
	if override, err := parseOptionalIntEnv("ARCGEN_MAX_UPLOAD_BYTES"); err != nil {
		return UploadConfig{}, err
	} else if override != nil {
		if *override < 1 {
			return UploadConfig{}, fmt.Errorf("invalid ARCGEN_MAX_UPLOAD_BYTES value %d: must be positive", *override)
		}
		maxBytes = int64(*override)
	}
	return UploadConfig{MaxBytes: maxBytes}, nil
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseOptionalFloatEnv(key string) (*float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
