package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"HB_TOKEN", "HB_ORG_ID", "HB_ORGID", "HB_SERVER", "HB_PROTOCOL",
		"HB_TIMEOUT_SECONDS", "HB_LOG_LEVEL", "HB_TALKATIVE", "HB_CONFIG_FILE", "HB_PROFILE",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("HB_TOKEN", "secret-token")
	t.Setenv("HB_ORGID", "12345")
	t.Setenv("HB_SERVER", "apis-eu.highbond.com")
	t.Setenv("HB_TIMEOUT_SECONDS", "5")
	t.Setenv("HB_TALKATIVE", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Token != "secret-token" || cfg.OrgID != "12345" {
		t.Fatalf("unexpected credentials: %+v", cfg)
	}
	if cfg.Server != "apis-eu.highbond.com" {
		t.Fatalf("unexpected server: %s", cfg.Server)
	}
	if cfg.Protocol != DefaultProtocol {
		t.Fatalf("expected default protocol, got %s", cfg.Protocol)
	}
	if cfg.Timeout != 5*time.Second {
		t.Fatalf("unexpected timeout: %v", cfg.Timeout)
	}
	if !cfg.Talkative || cfg.LogLevel != "info" {
		t.Fatalf("expected talkative info logging, got talkative=%v level=%s", cfg.Talkative, cfg.LogLevel)
	}
	if strings.Contains(cfg.String(), "secret-token") {
		t.Fatalf("String leaked the token: %s", cfg.String())
	}
}

func TestLoadQuietByDefault(t *testing.T) {
	clearEnv(t)
	t.Setenv("HB_TOKEN", "secret-token")
	t.Setenv("HB_ORG_ID", "12345")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Talkative || cfg.LogLevel != "warn" {
		t.Fatalf("expected quiet warn logging, got talkative=%v level=%s", cfg.Talkative, cfg.LogLevel)
	}
}

func TestLoadRequiresToken(t *testing.T) {
	clearEnv(t)
	t.Setenv("HB_ORG_ID", "12345")

	if _, err := Load(); err == nil {
		t.Fatalf("expected missing token error")
	}
}

func TestLoadRejectsBadProtocol(t *testing.T) {
	clearEnv(t)
	t.Setenv("HB_TOKEN", "t")
	t.Setenv("HB_ORG_ID", "1")
	t.Setenv("HB_PROTOCOL", "ftp")

	if _, err := Load(); err == nil {
		t.Fatalf("expected protocol error")
	}
}

func TestLoadMergesProfile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	file := filepath.Join(dir, "highbond.yaml")
	content := `
profiles:
  - name: default
    token: file-token
    org_id: "111"
  - name: canada
    token: ca-token
    org_id: "222"
    server: apis-ca.highbond.com
    timeout_seconds: 12
`
	if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
		t.Fatalf("write profiles file: %v", err)
	}
	t.Setenv("HB_CONFIG_FILE", file)
	t.Setenv("HB_PROFILE", "canada")
	t.Setenv("HB_TOKEN", "env-token")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Token != "env-token" {
		t.Fatalf("environment should win over profile, got %s", cfg.Token)
	}
	if cfg.OrgID != "222" || cfg.Server != "apis-ca.highbond.com" {
		t.Fatalf("profile values not merged: %+v", cfg)
	}
	if cfg.Timeout != 12*time.Second {
		t.Fatalf("unexpected timeout: %v", cfg.Timeout)
	}
}

func TestLoadUnknownProfile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	file := filepath.Join(dir, "highbond.json")
	if err := os.WriteFile(file, []byte(`{"profiles":[{"name":"default","org_id":"1","token":"t"}]}`), 0o644); err != nil {
		t.Fatalf("write profiles file: %v", err)
	}
	t.Setenv("HB_CONFIG_FILE", file)
	t.Setenv("HB_PROFILE", "missing")

	if _, err := Load(); err == nil {
		t.Fatalf("expected unknown profile error")
	}
}
