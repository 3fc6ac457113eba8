package config

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/vango-dev/patchwork/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "patchwork.json"

	DefaultHost         = "localhost"
	DefaultPort         = 7070
	DefaultHistorySize  = 100
	DefaultWriteTimeout = "10s"
	DefaultNamespace    = "patchwork"
	DefaultTracerName   = "patchwork"
	DefaultStorePath    = "patchwork.db"
)

// Store backends.
const (
	BackendBolt   = "bolt"
	BackendS3     = "s3"
	BackendMemory = "memory"
)

// Config is the complete patchwork.json configuration.
type Config struct {
	Server  ServerConfig  `json:"server"`
	Metrics MetricsConfig `json:"metrics"`
	Tracing TracingConfig `json:"tracing"`
	Store   StoreConfig   `json:"store"`

	// configPath stores the path the config was loaded from.
	configPath string
}

// ServerConfig configures the patch stream server.
type ServerConfig struct {
	Host string `json:"host,omitempty"`
	Port int    `json:"port,omitempty"`

	// HistorySize is the number of patch frames kept for resync.
	HistorySize int `json:"historySize,omitempty"`

	// WriteTimeout bounds a single websocket write, e.g. "10s".
	WriteTimeout string `json:"writeTimeout,omitempty"`
}

// MetricsConfig configures Prometheus metrics.
type MetricsConfig struct {
	// Enabled defaults to true when absent.
	Enabled   *bool  `json:"enabled,omitempty"`
	Namespace string `json:"namespace,omitempty"`
}

// TracingConfig configures OpenTelemetry spans.
type TracingConfig struct {
	TracerName string `json:"tracerName,omitempty"`
}

// StoreConfig selects and configures the snapshot store.
type StoreConfig struct {
	Backend string   `json:"backend,omitempty"`
	Path    string   `json:"path,omitempty"`
	S3      S3Config `json:"s3,omitempty"`
}

// S3Config configures the S3 snapshot backend. Credentials come from the
// standard AWS environment variables.
type S3Config struct {
	Bucket    string `json:"bucket,omitempty"`
	Prefix    string `json:"prefix,omitempty"`
	Region    string `json:"region,omitempty"`
	Endpoint  string `json:"endpoint,omitempty"`
	PathStyle bool   `json:"pathStyle,omitempty"`
}

// New creates a Config with default values.
func New() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load loads patchwork.json from dir.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile loads a configuration file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E141").
				WithDetail("No " + ConfigFileName + " found in " + filepath.Dir(path)).
				WithSuggestion("Create " + ConfigFileName + " or run without --config to use defaults")
		}
		return nil, errors.New("E120").Wrap(err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E120").
			WithDetail("Failed to parse " + path + ": " + err.Error()).
			WithSuggestion("Check that " + ConfigFileName + " is valid JSON")
	}
	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads patchwork.json from dir, or returns the defaults
// when the file does not exist.
func LoadOrDefault(dir string) (*Config, error) {
	if !Exists(dir) {
		return New(), nil
	}
	return Load(dir)
}

// Exists reports whether dir contains patchwork.json.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

// Save writes the config back to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		c.configPath = ConfigFileName
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the config to path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("E120").Wrap(err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.New("E120").Wrap(err)
	}
	c.configPath = path
	return nil
}

// Path returns the path the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.HistorySize == 0 {
		c.Server.HistorySize = DefaultHistorySize
	}
	if c.Server.WriteTimeout == "" {
		c.Server.WriteTimeout = DefaultWriteTimeout
	}

	if c.Metrics.Enabled == nil {
		enabled := true
		c.Metrics.Enabled = &enabled
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}

	if c.Tracing.TracerName == "" {
		c.Tracing.TracerName = DefaultTracerName
	}

	if c.Store.Backend == "" {
		c.Store.Backend = BackendBolt
	}
	if c.Store.Path == "" {
		c.Store.Path = DefaultStorePath
	}
}

// Validate checks value ranges and cross-field consistency.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.New("E121").
			WithDetailf("server.port must be between 0 and 65535, got %d", c.Server.Port)
	}
	if c.Server.HistorySize < 0 {
		return errors.New("E121").
			WithDetailf("server.historySize must not be negative, got %d", c.Server.HistorySize)
	}
	if _, err := time.ParseDuration(c.Server.WriteTimeout); err != nil {
		return errors.New("E121").
			WithDetailf("server.writeTimeout %q is not a duration", c.Server.WriteTimeout).
			WithSuggestion(`Use a Go duration such as "10s" or "500ms"`)
	}
	switch c.Store.Backend {
	case BackendBolt, BackendMemory:
	case BackendS3:
		if c.Store.S3.Bucket == "" {
			return errors.New("E121").
				WithDetail("store.s3.bucket is required when store.backend is \"s3\"")
		}
	default:
		return errors.New("E121").
			WithDetailf("store.backend %q is not one of bolt, s3, memory", c.Store.Backend)
	}
	return nil
}

// Address returns host:port for the server to listen on.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// URL returns the HTTP URL of the server.
func (c *Config) URL() string {
	return fmt.Sprintf("http://%s", c.Address())
}

// WriteTimeout returns server.writeTimeout as a duration. Invalid values
// fall back to the default.
func (c *Config) WriteTimeout() time.Duration {
	d, err := time.ParseDuration(c.Server.WriteTimeout)
	if err != nil {
		d, _ = time.ParseDuration(DefaultWriteTimeout)
	}
	return d
}

// MetricsEnabled reports whether Prometheus metrics are on.
func (c *Config) MetricsEnabled() bool {
	return c.Metrics.Enabled == nil || *c.Metrics.Enabled
}
