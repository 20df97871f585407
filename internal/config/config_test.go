package config

import (
	stderrors "errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/proptree/proptree/internal/errors"
	"github.com/proptree/proptree/pkg/compose"
)

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Server.Addr != DefaultAddr {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, DefaultAddr)
	}
	if !cfg.LiveEnabled() {
		t.Error("live should be enabled by default")
	}
	if cfg.Compose.MaxDepth != compose.DefaultMaxDepth {
		t.Errorf("Compose.MaxDepth = %d, want %d", cfg.Compose.MaxDepth, compose.DefaultMaxDepth)
	}
	if cfg.Assets.Prefix != DefaultAssetsPrefix {
		t.Errorf("Assets.Prefix = %q, want %q", cfg.Assets.Prefix, DefaultAssetsPrefix)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "text" {
		t.Errorf("Log = %+v", cfg.Log)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()

	_, err := Load(tmpDir)
	var pe *errors.Error
	if !stderrors.As(err, &pe) || pe.Code != "P021" {
		t.Fatalf("Load() on empty dir = %v, want P021", err)
	}

	configJSON := `{
  "title": "30 Days Of React",
  "server": {"addr": ":8080", "live": false},
  "compose": {"maxDepth": 32},
  "assets": {"dir": "images", "manifest": "manifest.json"},
  "s3": {"bucket": "site", "prefix": "react/"},
  "props": {"hello": "props/hello.yaml"}
}
`
	if err := os.WriteFile(filepath.Join(tmpDir, ConfigFileName), []byte(configJSON), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Title != "30 Days Of React" {
		t.Errorf("Title = %q", cfg.Title)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
	if cfg.LiveEnabled() {
		t.Error("live should be disabled")
	}
	if cfg.Compose.MaxDepth != 32 {
		t.Errorf("Compose.MaxDepth = %d", cfg.Compose.MaxDepth)
	}
	if cfg.Assets.Prefix != DefaultAssetsPrefix {
		t.Errorf("Assets.Prefix default not applied: %q", cfg.Assets.Prefix)
	}
	if got, want := cfg.ManifestPath(), filepath.Join(tmpDir, "manifest.json"); got != want {
		t.Errorf("ManifestPath() = %q, want %q", got, want)
	}
	if got, want := cfg.AssetsDir(), filepath.Join(tmpDir, "images"); got != want {
		t.Errorf("AssetsDir() = %q, want %q", got, want)
	}
	if got, want := cfg.PropsFile("hello"), filepath.Join(tmpDir, "props", "hello.yaml"); got != want {
		t.Errorf("PropsFile(hello) = %q, want %q", got, want)
	}
	if got := cfg.PropsFile("intro"); got != "" {
		t.Errorf("PropsFile(intro) = %q, want empty", got)
	}
	if cfg.Dir() != tmpDir {
		t.Errorf("Dir() = %q, want %q", cfg.Dir(), tmpDir)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, ConfigFileName), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(tmpDir)
	var pe *errors.Error
	if !stderrors.As(err, &pe) || pe.Code != "P020" {
		t.Fatalf("Load() = %v, want P020", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	cfg := New()
	cfg.Title = "saved"
	cfg.S3.Bucket = "b"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatal(err)
	}
	if cfg.Path() != path {
		t.Errorf("Path() = %q", cfg.Path())
	}

	got, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != "saved" || got.S3.Bucket != "b" {
		t.Errorf("loaded %+v", got)
	}

	if err := New().Save(); err == nil {
		t.Error("Save() without a path should fail")
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"PROPTREE_ADDR":          "0.0.0.0:9000",
		"PROPTREE_LIVE":          "false",
		"PROPTREE_PRETTY":        "true",
		"PROPTREE_MAX_DEPTH":     "64",
		"PROPTREE_S3_BUCKET":     "env-bucket",
		"PROPTREE_S3_PATH_STYLE": "1",
		"PROPTREE_LOG_LEVEL":     "debug",
		"PROPTREE_OTLP_ENDPOINT": "collector:4318",
	}
	cfg := New()
	if err := cfg.ApplyEnv(func(k string) string { return env[k] }); err != nil {
		t.Fatal(err)
	}

	if cfg.Server.Addr != "0.0.0.0:9000" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
	if cfg.LiveEnabled() {
		t.Error("PROPTREE_LIVE=false not applied")
	}
	if !cfg.Render.Pretty {
		t.Error("PROPTREE_PRETTY not applied")
	}
	if cfg.Compose.MaxDepth != 64 {
		t.Errorf("Compose.MaxDepth = %d", cfg.Compose.MaxDepth)
	}
	if cfg.S3.Bucket != "env-bucket" || !cfg.S3.PathStyle {
		t.Errorf("S3 = %+v", cfg.S3)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q", cfg.Log.Level)
	}
	if cfg.Telemetry.OTLPEndpoint != "collector:4318" {
		t.Errorf("Telemetry.OTLPEndpoint = %q", cfg.Telemetry.OTLPEndpoint)
	}
}

func TestApplyEnvErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad bool", map[string]string{"PROPTREE_LIVE": "maybe"}},
		{"bad int", map[string]string{"PROPTREE_MAX_DEPTH": "deep"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New().ApplyEnv(func(k string) string { return tt.env[k] })
			if err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"zero depth", func(c *Config) { c.Compose.MaxDepth = 0 }, true},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, true},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, true},
		{"json format", func(c *Config) { c.Log.Format = "json" }, false},
		{"s3 prefix without bucket", func(c *Config) { c.S3.Prefix = "x/" }, true},
		{"s3 bucket", func(c *Config) { c.S3.Bucket = "b"; c.S3.Prefix = "x/" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	if _, err := FindProjectRoot(nested); err == nil {
		t.Error("expected error without proptree.json")
	}

	if err := os.WriteFile(filepath.Join(root, ConfigFileName), []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}
	got, err := FindProjectRoot(nested)
	if err != nil {
		t.Fatal(err)
	}
	if got != root {
		t.Errorf("FindProjectRoot() = %q, want %q", got, root)
	}
	if !Exists(root) || Exists(nested) {
		t.Error("Exists() mismatch")
	}
}

func TestLoadFromWorkingDir(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, ConfigFileName), []byte(`{"title":"wd"}`), 0644); err != nil {
		t.Fatal(err)
	}
	t.Chdir(root)
	t.Setenv("PROPTREE_ADDR", ":7070")

	cfg, err := LoadFromWorkingDir()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Title != "wd" {
		t.Errorf("Title = %q", cfg.Title)
	}
	if cfg.Server.Addr != ":7070" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
}
