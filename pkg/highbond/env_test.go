package highbond

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearHBEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"HB_TOKEN", "HB_ORG_ID", "HB_ORGID", "HB_SERVER", "HB_PROTOCOL", "HB_TIMEOUT_SECONDS", "HB_TALKATIVE", "HB_LOG_LEVEL", "HB_CONFIG_FILE", "HB_PROFILE"} {
		t.Setenv(k, "")
	}
}

func TestNewFromEnv(t *testing.T) {
	clearHBEnv(t)
	t.Setenv("HB_TOKEN", "env-token")
	t.Setenv("HB_ORG_ID", "1234")
	t.Setenv("HB_SERVER", "apis-ca.highbond.com")
	t.Setenv("HB_TIMEOUT_SECONDS", "5")

	c, err := NewFromEnv()
	if err != nil {
		t.Fatalf("NewFromEnv: %v", err)
	}
	cfg := c.Config()
	if cfg.Token != "env-token" || cfg.OrgID != "1234" || cfg.Server != ServerCA || cfg.Timeout != 5*time.Second {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if c.BaseURL() != "https://apis-ca.highbond.com/v1/orgs/1234" {
		t.Fatalf("unexpected base url %s", c.BaseURL())
	}
}

func TestNewFromEnvProfile(t *testing.T) {
	clearHBEnv(t)
	file := filepath.Join(t.TempDir(), "highbond.yaml")
	content := `profiles:
  - name: default
    token: file-token
    org_id: "77"
    server: apis-eu.highbond.com
`
	if err := os.WriteFile(file, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("HB_CONFIG_FILE", file)
	t.Setenv("HB_ORG_ID", "88")

	c, err := NewFromEnv()
	if err != nil {
		t.Fatalf("NewFromEnv: %v", err)
	}
	cfg := c.Config()
	if cfg.Token != "file-token" || cfg.OrgID != "88" || cfg.Server != ServerEU {
		t.Fatalf("environment should win over profile, got %+v", cfg)
	}
}

func TestNewFromEnvRequiresToken(t *testing.T) {
	clearHBEnv(t)
	t.Setenv("HB_ORG_ID", "1")
	if _, err := NewFromEnv(); err == nil {
		t.Fatalf("expected missing token error")
	}
}
