package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Credentials CredentialsConfig `toml:"credentials"`
	Media       MediaConfig       `toml:"media"`
	Library     LibraryConfig     `toml:"library"`
	Upload      UploadConfig      `toml:"upload"`
	Database    DatabaseConfig    `toml:"database"`
	Server      ServerConfig      `toml:"server"`
}

// CredentialsConfig contains YouTube Data API credentials.
type CredentialsConfig struct {
	APIKey           string `toml:"api_key"`
	ClientSecretPath string `toml:"client_secret_path"`
	TokenPath        string `toml:"token_path"`
}

// MediaConfig contains external encoder settings.
type MediaConfig struct {
	FFmpegPath   string   `toml:"ffmpeg_path"`
	FFprobePath  string   `toml:"ffprobe_path"`
	Extensions   []string `toml:"extensions"`
	UseCUDA      bool     `toml:"use_cuda"`
	AudioBitrate string   `toml:"audio_bitrate"`
	Preset       string   `toml:"preset"`
}

// LibraryConfig contains local library scan settings.
type LibraryConfig struct {
	Workers int `toml:"workers"`
}

// UploadConfig contains bulk upload settings.
type UploadConfig struct {
	Privacy      string `toml:"privacy"`
	DailyQuota   int    `toml:"daily_quota"`
	CostPerVideo int    `toml:"cost_per_video"`
	CourseDir    string `toml:"course_dir"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// ServerConfig contains OAuth callback server settings.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: config file already exists at %s", ErrFileExists, path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
