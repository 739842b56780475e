package highbond

import (
	"github.com/samvad-hq/highbond-go/internal/config"
	"github.com/samvad-hq/highbond-go/internal/logger"
)

// NewFromEnv builds a Client from HB_* environment variables, an optional
// .env file and an optional profiles file. A zap logger at the configured
// level is installed unless opts supply their own.
func NewFromEnv(opts ...Option) (*Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log := logger.New(cfg.LogLevel)
	log.DebugObj("highbond config loaded", "config", cfg.String())

	c, err := New(Config{
		Token:    cfg.Token,
		OrgID:    cfg.OrgID,
		Server:   Server(cfg.Server),
		Protocol: cfg.Protocol,
		Timeout:  cfg.Timeout,
	}, append([]Option{WithLogger(log)}, opts...)...)
	if err != nil {
		_ = log.Close()
		return nil, err
	}
	return c, nil
}
