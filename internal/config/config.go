package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultServer         = "apis-us.highbond.com"
	DefaultProtocol       = "https"
	DefaultTimeoutSeconds = 30
	DefaultProfile        = "default"
)

// Config holds the client configuration loaded from the environment and an
// optional profiles file.
type Config struct {
	Token          string        `mapstructure:"token"`
	OrgID          string        `mapstructure:"org_id"`
	Server         string        `mapstructure:"server"`
	Protocol       string        `mapstructure:"protocol"`
	TimeoutSeconds int64         `mapstructure:"timeout_seconds"`
	Timeout        time.Duration `mapstructure:"-"`
	LogLevel       string        `mapstructure:"log_level"`
	Talkative      bool          `mapstructure:"talkative"`
	ConfigFile     string        `mapstructure:"config_file"`
	Profile        string        `mapstructure:"profile"`
}

// String redacts the token so the config can be logged.
func (c Config) String() string {
	return fmt.Sprintf("{org_id:%s server:%s protocol:%s timeout:%s profile:%s token:%s}",
		c.OrgID, c.Server, c.Protocol, c.Timeout, c.Profile, redact(c.Token))
}

// Load reads configuration from HB_* environment variables, a .env file and,
// when HB_CONFIG_FILE is set, the selected profile of that file. Values from
// the environment win over the profile.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	v := viper.New()
	v.SetEnvPrefix("hb")
	for _, key := range []string{"token", "server", "protocol", "timeout_seconds", "talkative", "config_file"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}
	if err := v.BindEnv("org_id", "HB_ORG_ID", "HB_ORGID"); err != nil {
		return nil, fmt.Errorf("bind env org_id: %w", err)
	}
	if err := v.BindEnv("log_level", "HB_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("bind env log_level: %w", err)
	}
	v.SetDefault("profile", DefaultProfile)
	_ = v.BindEnv("profile")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if path := strings.TrimSpace(cfg.ConfigFile); path != "" {
		reg, err := LoadProfiles(path)
		if err != nil {
			return nil, err
		}
		p, ok := reg.ByName(cfg.Profile)
		if !ok {
			return nil, fmt.Errorf("profile %q not found in %s", cfg.Profile, path)
		}
		cfg.merge(p)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// merge fills unset values from the profile.
func (c *Config) merge(p Profile) {
	if strings.TrimSpace(c.Token) == "" {
		c.Token = p.Token
	}
	if strings.TrimSpace(c.OrgID) == "" {
		c.OrgID = p.OrgID
	}
	if strings.TrimSpace(c.Server) == "" {
		c.Server = p.Server
	}
	if strings.TrimSpace(c.Protocol) == "" {
		c.Protocol = p.Protocol
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = p.TimeoutSeconds
	}
}

func (c *Config) applyDefaults() {
	c.Token = strings.TrimSpace(c.Token)
	c.OrgID = strings.TrimSpace(c.OrgID)
	c.Server = strings.TrimSpace(c.Server)
	c.Protocol = strings.ToLower(strings.TrimSpace(c.Protocol))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))

	if c.Server == "" {
		c.Server = DefaultServer
	}
	if c.Protocol == "" {
		c.Protocol = DefaultProtocol
	}
	if c.TimeoutSeconds == 0 {
		c.TimeoutSeconds = DefaultTimeoutSeconds
	}
	if c.LogLevel == "" {
		if c.Talkative {
			c.LogLevel = "info"
		} else {
			c.LogLevel = "warn"
		}
	}
	c.Timeout = time.Duration(c.TimeoutSeconds) * time.Second
}

// Validate checks that the settings required to reach the API are present.
func (c *Config) Validate() error {
	if c.Token == "" {
		return errors.New("token is required (HB_TOKEN)")
	}
	if c.OrgID == "" {
		return errors.New("organization id is required (HB_ORG_ID)")
	}
	if c.Protocol != "http" && c.Protocol != "https" {
		return fmt.Errorf("invalid protocol %q (expected http or https)", c.Protocol)
	}
	if c.TimeoutSeconds <= 0 {
		return fmt.Errorf("invalid timeout_seconds (must be positive seconds)")
	}
	return nil
}

func redact(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 4 {
		return "****"
	}
	return "****" + s[len(s)-4:]
}
