package core

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator"
	"gopkg.in/yaml.v3"

	"github.com/jo-hoe/mipmapgen/internal/codec"
	_ "github.com/jo-hoe/mipmapgen/internal/commands"
	"github.com/jo-hoe/mipmapgen/internal/commandstructure"
	"github.com/jo-hoe/mipmapgen/internal/resample"
)

// ConfigPathEnv names the environment variable consulted when no --config flag is given
const ConfigPathEnv = "MIPMAP_CONFIG_PATH"

// Config controls how source icons are decoded, preprocessed, resampled and encoded
type Config struct {
	Filter          string                           `yaml:"filter" validate:"omitempty,oneof=lanczos3 catmullrom bilinear approxbilinear nearest"`
	Parallel        bool                             `yaml:"parallel"`
	JPEGQuality     int                              `yaml:"jpegQuality" validate:"omitempty,min=1,max=100"`
	SVGFallbackSize int                              `yaml:"svgFallbackSize" validate:"omitempty,min=1,max=8192"`
	Commands        []commandstructure.CommandConfig `yaml:"commands" validate:"dive"`
}

// DefaultConfig returns the configuration used when no file is given
func DefaultConfig() *Config {
	return &Config{
		Filter:          resample.Default,
		JPEGQuality:     codec.DefaultJPEGQuality,
		SVGFallbackSize: codec.DefaultSVGFallbackSize,
	}
}

// ResolveConfigPath picks the config file path: flagValue first, then the
// MIPMAP_CONFIG_PATH environment variable. An empty result means no file.
func ResolveConfigPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv(ConfigPathEnv)
}

// LoadConfig loads configuration from the specified YAML file. An empty path
// returns DefaultConfig.
func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	var config Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
	}

	return &config, nil
}

// Validate checks field constraints and the command list
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}
	if err := validateCommands(c.Commands); err != nil {
		return fmt.Errorf("invalid command configuration: %w", err)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Filter == "" {
		c.Filter = resample.Default
	}
	if c.JPEGQuality == 0 {
		c.JPEGQuality = codec.DefaultJPEGQuality
	}
	if c.SVGFallbackSize == 0 {
		c.SVGFallbackSize = codec.DefaultSVGFallbackSize
	}
}

// validateCommands ensures all command configurations name a registered,
// not yet used command
func validateCommands(commands []commandstructure.CommandConfig) error {
	seenNames := make(map[string]bool)

	for i, cmd := range commands {
		if cmd.Name == "" {
			return fmt.Errorf("command at index %d has empty name", i)
		}
		if seenNames[cmd.Name] {
			return fmt.Errorf("duplicate command name: %s", cmd.Name)
		}
		seenNames[cmd.Name] = true

		if !commandstructure.DefaultRegistry.IsRegistered(cmd.Name) {
			return fmt.Errorf("unknown command at index %d: %s (available: %v)",
				i, cmd.Name, commandstructure.DefaultRegistry.GetRegisteredNames())
		}
	}

	return nil
}
