// internal/config/loader_test.go

package config

import (
	"os"
	"path/filepath"
	"testing"
)

const testYAML = `
http:
  listen_addr: "127.0.0.1:8080"
  force_https: false

platform:
  root_domain: "converta.app"
  preview_domain: "converta.vercel.app"

database:
  dsn: "converta:%s@tcp(127.0.0.1:3306)/converta?parseTime=true"
  password: "converta-dev"

redis:
  addr: ""
  ttl_seconds: 60
`

// writeTestConfig lays out <tmp>/conf/global.yaml and points the loader
// at it via CONVERTA_ROOT.
func writeTestConfig(t *testing.T) {
	t.Helper()
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "conf"), 0o755); err != nil {
		t.Fatalf("mkdir conf: %v", err)
	}
	yamlPath := filepath.Join(root, "conf", "global.yaml")
	if err := os.WriteFile(yamlPath, []byte(testYAML), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	t.Setenv("CONVERTA_ROOT", root)
}

func TestLoad_ReadsYAML(t *testing.T) {
	writeTestConfig(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.ListenAddr != "127.0.0.1:8080" {
		t.Errorf("listen_addr = %q", cfg.HTTP.ListenAddr)
	}
	if cfg.Platform.RootDomain != "converta.app" {
		t.Errorf("root_domain = %q", cfg.Platform.RootDomain)
	}
	if got := Get(); got == nil || got.HTTP.ListenAddr != cfg.HTTP.ListenAddr {
		t.Error("Get() does not return the cached config")
	}
}

// CONVERTA_-prefixed environment variables must override the YAML value;
// the prefix is stripped and "__" maps to the section separator.
func TestLoad_EnvOverridesYAML(t *testing.T) {
	writeTestConfig(t)
	t.Setenv("CONVERTA_HTTP__LISTEN_ADDR", "127.0.0.1:9999")
	t.Setenv("CONVERTA_PLATFORM__ROOT_DOMAIN", "converta.com.br")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.ListenAddr != "127.0.0.1:9999" {
		t.Errorf("listen_addr = %q, want env override 127.0.0.1:9999", cfg.HTTP.ListenAddr)
	}
	if cfg.Platform.RootDomain != "converta.com.br" {
		t.Errorf("root_domain = %q, want env override converta.com.br", cfg.Platform.RootDomain)
	}
}

func TestLoad_MissingRequiredFieldFails(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "conf"), 0o755); err != nil {
		t.Fatalf("mkdir conf: %v", err)
	}
	yaml := "http:\n  listen_addr: \"127.0.0.1:8080\"\n"
	if err := os.WriteFile(filepath.Join(root, "conf", "global.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	t.Setenv("CONVERTA_ROOT", root)

	if _, err := Load(); err == nil {
		t.Fatal("Load succeeded without database/platform sections, want validation error")
	}
}
