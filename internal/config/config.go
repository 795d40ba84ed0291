package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds user preferences
type Config struct {
	Storage       string `yaml:"storage" json:"storage"`               // Slot backend: sqlite or file
	BoardSlot     string `yaml:"board_slot" json:"board_slot"`         // Slot holding the board projects
	ChecklistSlot string `yaml:"checklist_slot" json:"checklist_slot"` // Slot holding the checklist projects
	IDScheme      string `yaml:"id_scheme" json:"id_scheme"`           // uuid or counter
	SeedDemo      bool   `yaml:"seed_demo" json:"seed_demo"`           // Demo project on first start
	ConfirmDelete bool   `yaml:"confirm_delete" json:"confirm_delete"` // Require confirmation for delete

	// Logging configuration
	LogLevel   string `yaml:"log_level" json:"log_level"`     // Log level: DEBUG, INFO, WARN, ERROR
	LogFile    string `yaml:"log_file" json:"log_file"`       // Path to log file
	LogConsole bool   `yaml:"log_console" json:"log_console"` // Enable console logging

	dir string
}

// Dir returns the data directory: $PROJECTBOARD_HOME or ~/.projectboard
func Dir() (string, error) {
	if dir := os.Getenv("PROJECTBOARD_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".projectboard"), nil
}

// DefaultConfig returns default settings rooted at dir
func DefaultConfig(dir string) *Config {
	return &Config{
		Storage:       "sqlite",
		BoardSlot:     "projects",
		ChecklistSlot: "checklist",
		IDScheme:      "uuid",
		SeedDemo:      true,
		ConfirmDelete: false,
		LogLevel:      getEnv("PROJECTBOARD_LOG_LEVEL", "INFO"),
		LogFile:       getEnv("PROJECTBOARD_LOG_FILE", filepath.Join(dir, "logs", "projectboard.log")),
		LogConsole:    getEnv("PROJECTBOARD_LOG_CONSOLE", "false") == "true",
		dir:           dir,
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Load loads config.yaml from the data directory
func Load() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	return LoadFrom(dir)
}

// LoadFrom loads <dir>/config.yaml, returning defaults if it does not exist
func LoadFrom(dir string) (*Config, error) {
	cfg := DefaultConfig(dir)

	data, err := os.ReadFile(cfg.Path())
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.fillBlanks()

	return cfg, nil
}

// fillBlanks restores defaults for keys a config file set to empty
func (c *Config) fillBlanks() {
	def := DefaultConfig(c.dir)
	if c.Storage == "" {
		c.Storage = def.Storage
	}
	if c.BoardSlot == "" {
		c.BoardSlot = def.BoardSlot
	}
	if c.ChecklistSlot == "" {
		c.ChecklistSlot = def.ChecklistSlot
	}
	if c.IDScheme == "" {
		c.IDScheme = def.IDScheme
	}
}

// DataDir returns the directory this config was loaded from
func (c *Config) DataDir() string {
	return c.dir
}

// Path returns the location of config.yaml
func (c *Config) Path() string {
	return filepath.Join(c.dir, "config.yaml")
}

// Save writes the config to <data dir>/config.yaml
func (c *Config) Save() error {
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(c.Path(), data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
