package config

import (
	"errors"
	"os"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

const defaultBaseURL = "http://127.0.0.1:8000/api"
const defaultPageSize = 50
const defaultRequestTimeoutSeconds = 10

type Config struct {
	API     APIConfig     `toml:"api"`
	Logging LoggingConfig `toml:"logging"`
	UI      UIConfig      `toml:"ui"`
}

type APIConfig struct {
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

type LoggingConfig struct {
	Level string `toml:"level"`
}

type UIConfig struct {
	PageSize     int    `toml:"page_size"`
	DownloadsDir string `toml:"downloads_dir"`
}

func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			BaseURL:        defaultBaseURL,
			TimeoutSeconds: defaultRequestTimeoutSeconds,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		UI: UIConfig{
			PageSize: defaultPageSize,
		},
	}
}

func Load() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	return loadFromPath(path)
}

func (c Config) BaseURL() string {
	url := strings.TrimSpace(c.API.BaseURL)
	if url == "" {
		return defaultBaseURL
	}
	return strings.TrimRight(url, "/")
}

func (c Config) RequestTimeoutSeconds() int {
	if c.API.TimeoutSeconds <= 0 {
		return defaultRequestTimeoutSeconds
	}
	return c.API.TimeoutSeconds
}

func (c Config) LogLevel() string {
	level := strings.TrimSpace(c.Logging.Level)
	if level == "" {
		return "info"
	}
	return level
}

func (c Config) PageSize() int {
	if c.UI.PageSize <= 0 {
		return defaultPageSize
	}
	return c.UI.PageSize
}

func (c Config) DownloadsDir() (string, error) {
	dir := strings.TrimSpace(c.UI.DownloadsDir)
	if dir != "" {
		return dir, nil
	}
	return DefaultDownloadsDir()
}

func loadFromPath(path string) (Config, error) {
	cfg := DefaultConfig()
	if err := readTOML(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func readTOML(path string, out any) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if len(data) == 0 {
		return nil
	}
	return toml.Unmarshal(data, out)
}
