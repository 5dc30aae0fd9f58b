package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds application configuration. Values are layered: Default,
// then an optional YAML file, then environment variables. CLI flags are
// applied by the caller.
type Config struct {
	ServerRoot    string      `yaml:"server_root"`
	ListingForm   string      `yaml:"listing_form"`
	LocateCommand string      `yaml:"locate_command"`
	GetCommand    string      `yaml:"get_command"`
	GetFlags      []string    `yaml:"get_flags"`
	TarCommand    string      `yaml:"tar_command"`
	LogLevel      string      `yaml:"log_level"`
	MinIO         MinIOConfig `yaml:"minio"`
}

// MinIOConfig holds the mirror target. Only required when mirroring.
type MinIOConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	UseSSL    bool   `yaml:"use_ssl"`
}

type ErrMissingRequiredEnvVar struct {
	Name string
}

func (e *ErrMissingRequiredEnvVar) Error() string {
	return fmt.Sprintf("required environment variable %q is not set", e.Name)
}

// Default returns a Config with the stock CyVerse settings.
func Default() Config {
	return Config{
		ServerRoot:    "/iplant/home/shared/phytooracle/",
		ListingForm:   "substring",
		LocateCommand: "ilocate",
		GetCommand:    "iget",
		GetFlags:      []string{"-KPVT"},
		TarCommand:    "tar",
		LogLevel:      "info",
	}
}

// Load builds the configuration from defaults, the YAML file at path (if
// path is non-empty) and the environment.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		var err error
		cfg, err = LoadFromFile(path)
		if err != nil {
			return nil, err
		}
	}
	cfg.LoadFromEnv()
	return &cfg, nil
}

// LoadFromFile overlays the YAML file at path onto Default. Keys absent
// from the file keep their default values.
func LoadFromFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config file: %w", err)
	}
	return cfg, nil
}

// LoadFromEnv overrides fields from environment variables. Catalog settings
// use the IRODSGET_ prefix; mirror settings use the MINIO_ variables.
func (c *Config) LoadFromEnv() {
	setString(&c.ServerRoot, "IRODSGET_SERVER_ROOT")
	setString(&c.ListingForm, "IRODSGET_LISTING_FORM")
	setString(&c.LocateCommand, "IRODSGET_LOCATE_COMMAND")
	setString(&c.GetCommand, "IRODSGET_GET_COMMAND")
	setString(&c.TarCommand, "IRODSGET_TAR_COMMAND")
	setString(&c.LogLevel, "IRODSGET_LOG_LEVEL")
	if v := os.Getenv("IRODSGET_GET_FLAGS"); v != "" {
		c.GetFlags = strings.Fields(v)
	}

	setString(&c.MinIO.Endpoint, "MINIO_ENDPOINT")
	setString(&c.MinIO.AccessKey, "MINIO_ACCESS_KEY")
	setString(&c.MinIO.SecretKey, "MINIO_SECRET_KEY")
	setString(&c.MinIO.Bucket, "MINIO_BUCKET")
	if v := os.Getenv("MINIO_USE_SSL"); v != "" {
		c.MinIO.UseSSL = v == "true" || v == "1"
	}
}

// RequireMinIO returns an error naming the first unset mirror setting.
func (c *Config) RequireMinIO() error {
	required := []struct {
		name  string
		value string
	}{
		{"MINIO_ENDPOINT", c.MinIO.Endpoint},
		{"MINIO_ACCESS_KEY", c.MinIO.AccessKey},
		{"MINIO_SECRET_KEY", c.MinIO.SecretKey},
		{"MINIO_BUCKET", c.MinIO.Bucket},
	}
	for _, r := range required {
		if r.value == "" {
			return &ErrMissingRequiredEnvVar{Name: r.name}
		}
	}
	return nil
}

// SlogLevel parses LogLevel.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("parse log level: %w", err)
	}
	return level, nil
}

func setString(dst *string, name string) {
	if v := os.Getenv(name); v != "" {
		*dst = v
	}
}
