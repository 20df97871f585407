package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/proptree/proptree/internal/errors"
	"github.com/proptree/proptree/pkg/compose"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "proptree.json"

	// DefaultAddr is the default address of the example server.
	DefaultAddr = "localhost:3000"

	// DefaultAssetsPrefix is the URL prefix resources are served under.
	DefaultAssetsPrefix = "/static/"

	// DefaultPublishDir is where publish writes pages when no bucket is set.
	DefaultPublishDir = "dist"

	// DefaultSnapshotPath is the default snapshot database file.
	DefaultSnapshotPath = ".proptree/snapshots.db"

	// DefaultServiceName is the service name reported to the trace exporter.
	DefaultServiceName = "proptree"

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "PROPTREE_"
)

// Config represents the complete proptree.json configuration.
type Config struct {
	// Title is the document title used for rendered pages.
	Title string `json:"title,omitempty"`

	// Server contains example server configuration.
	Server ServerConfig `json:"server,omitempty"`

	// Render contains HTML output configuration.
	Render RenderConfig `json:"render,omitempty"`

	// Compose contains composer limits.
	Compose ComposeConfig `json:"compose,omitempty"`

	// Assets contains resource resolution configuration.
	Assets AssetsConfig `json:"assets,omitempty"`

	// Publish contains the local publish target.
	Publish PublishConfig `json:"publish,omitempty"`

	// S3 contains the bucket pages are published to.
	S3 S3Config `json:"s3,omitempty"`

	// Snapshot contains the snapshot store configuration.
	Snapshot SnapshotConfig `json:"snapshot,omitempty"`

	// Log contains logging configuration.
	Log LogConfig `json:"log,omitempty"`

	// Telemetry contains trace export configuration.
	Telemetry TelemetryConfig `json:"telemetry,omitempty"`

	// Props maps example names to YAML or JSON files holding their root
	// property bundles.
	Props map[string]string `json:"props,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains example server settings.
type ServerConfig struct {
	// Addr is the host:port to listen on.
	Addr string `json:"addr,omitempty"`

	// Live enables the WebSocket that pushes re-mounted pages.
	Live *bool `json:"live,omitempty"`
}

// RenderConfig contains HTML output settings.
type RenderConfig struct {
	// Pretty enables indented output.
	Pretty bool `json:"pretty,omitempty"`

	// Indent is the indentation string used when Pretty is set.
	Indent string `json:"indent,omitempty"`
}

// ComposeConfig contains composer limits.
type ComposeConfig struct {
	// MaxDepth bounds component nesting.
	MaxDepth int `json:"maxDepth,omitempty"`
}

// AssetsConfig contains resource resolution settings.
type AssetsConfig struct {
	// Dir is the directory resources are served from.
	Dir string `json:"dir,omitempty"`

	// Prefix is the URL prefix resolved resources get.
	Prefix string `json:"prefix,omitempty"`

	// Manifest is the fingerprint manifest. Empty means ids are used as-is.
	Manifest string `json:"manifest,omitempty"`
}

// PublishConfig contains the local publish target.
type PublishConfig struct {
	// Dir is the directory pages are written to.
	Dir string `json:"dir,omitempty"`
}

// S3Config locates the bucket pages are published to.
type S3Config struct {
	Bucket    string `json:"bucket,omitempty"`
	Prefix    string `json:"prefix,omitempty"`
	Region    string `json:"region,omitempty"`
	Endpoint  string `json:"endpoint,omitempty"`
	PathStyle bool   `json:"pathStyle,omitempty"`
}

// SnapshotConfig contains the snapshot store settings.
type SnapshotConfig struct {
	// Path is the bbolt database file.
	Path string `json:"path,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level,omitempty"`

	// Format is "text" or "json".
	Format string `json:"format,omitempty"`
}

// TelemetryConfig contains trace export settings.
type TelemetryConfig struct {
	// OTLPEndpoint is the OTLP/HTTP collector (host:port). Empty disables
	// export.
	OTLPEndpoint string `json:"otlpEndpoint,omitempty"`

	// Insecure disables TLS to the collector.
	Insecure bool `json:"insecure,omitempty"`

	// ServiceName is reported as service.name.
	ServiceName string `json:"serviceName,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads configuration from the specified directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("P021").
				WithDetail("No proptree.json found in " + filepath.Dir(path)).
				WithSuggestion("Create proptree.json or run without one to use the defaults")
		}
		return nil, errors.New("P020").Wrap(err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("P020").
			WithDetail("Failed to parse proptree.json: " + err.Error()).
			WithSuggestion("Check that proptree.json is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()
	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("P020").Wrap(err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("P020").Wrap(err)
	}
	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Server.Live == nil {
		live := true
		c.Server.Live = &live
	}
	if c.Render.Indent == "" {
		c.Render.Indent = "  "
	}
	if c.Compose.MaxDepth == 0 {
		c.Compose.MaxDepth = compose.DefaultMaxDepth
	}
	if c.Assets.Prefix == "" {
		c.Assets.Prefix = DefaultAssetsPrefix
	}
	if c.Publish.Dir == "" {
		c.Publish.Dir = DefaultPublishDir
	}
	if c.Snapshot.Path == "" {
		c.Snapshot.Path = DefaultSnapshotPath
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Telemetry.ServiceName == "" {
		c.Telemetry.ServiceName = DefaultServiceName
	}
}

// ApplyEnv overrides settings from PROPTREE_* variables. getenv is usually
// os.Getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	c.applyDefaults()
	str := func(name string, dst *string) {
		if v := getenv(EnvPrefix + name); v != "" {
			*dst = v
		}
	}
	str("TITLE", &c.Title)
	str("ADDR", &c.Server.Addr)
	str("ASSETS_PREFIX", &c.Assets.Prefix)
	str("ASSETS_MANIFEST", &c.Assets.Manifest)
	str("PUBLISH_DIR", &c.Publish.Dir)
	str("S3_BUCKET", &c.S3.Bucket)
	str("S3_PREFIX", &c.S3.Prefix)
	str("S3_REGION", &c.S3.Region)
	str("S3_ENDPOINT", &c.S3.Endpoint)
	str("SNAPSHOT_PATH", &c.Snapshot.Path)
	str("LOG_LEVEL", &c.Log.Level)
	str("LOG_FORMAT", &c.Log.Format)
	str("OTLP_ENDPOINT", &c.Telemetry.OTLPEndpoint)

	for name, dst := range map[string]*bool{
		"LIVE":          c.Server.Live,
		"PRETTY":        &c.Render.Pretty,
		"S3_PATH_STYLE": &c.S3.PathStyle,
		"OTLP_INSECURE": &c.Telemetry.Insecure,
	} {
		v := getenv(EnvPrefix + name)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.New("P020").
				WithDetail(EnvPrefix + name + " must be a boolean").
				Wrap(err)
		}
		*dst = b
	}

	if v := getenv(EnvPrefix + "MAX_DEPTH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.New("P020").
				WithDetail(EnvPrefix + "MAX_DEPTH must be an integer").
				Wrap(err)
		}
		c.Compose.MaxDepth = n
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Compose.MaxDepth < 1 {
		return errors.New("P020").
			WithDetail("compose.maxDepth must be at least 1")
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return errors.New("P020").
			WithDetail("log.level must be one of debug, info, warn, error").
			Wrap(err)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return errors.New("P020").
			WithDetail(`log.format must be "text" or "json"`)
	}
	if c.S3.Bucket == "" && (c.S3.Prefix != "" || c.S3.Endpoint != "") {
		return errors.New("P020").
			WithDetail("s3.bucket is required when other s3 settings are present")
	}
	return nil
}

// LiveEnabled reports whether the live WebSocket is enabled.
func (c *Config) LiveEnabled() bool {
	return c.Server.Live == nil || *c.Server.Live
}

// ParseLevel converts a level name into a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	err := l.UnmarshalText([]byte(strings.ToUpper(s)))
	return l, err
}

// resolve makes p absolute relative to the config directory.
func (c *Config) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Dir(), p)
}

// AssetsDir returns the absolute path of the resource directory.
func (c *Config) AssetsDir() string { return c.resolve(c.Assets.Dir) }

// ManifestPath returns the absolute path of the asset manifest, or "".
func (c *Config) ManifestPath() string { return c.resolve(c.Assets.Manifest) }

// PublishPath returns the absolute path of the publish directory.
func (c *Config) PublishPath() string { return c.resolve(c.Publish.Dir) }

// SnapshotPath returns the absolute path of the snapshot database.
func (c *Config) SnapshotPath() string { return c.resolve(c.Snapshot.Path) }

// PropsFile returns the property file configured for an example, or "".
func (c *Config) PropsFile(example string) string {
	return c.resolve(c.Props[example])
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing proptree.json, or an error if not found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("P021").
				WithDetail("No proptree.json found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads the nearest proptree.json above the working
// directory. Without one, the defaults are returned. Environment overrides
// are applied and the result is validated.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	cfg := New()
	if root, err := FindProjectRoot(wd); err == nil {
		if cfg, err = Load(root); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
