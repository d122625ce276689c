package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (s *ConfigTestSuite) TestLoad_Defaults() {
	cfg := Load()

	s.Equal("8080", cfg.Server.Port)
	s.Equal("localhost", cfg.Server.Host)
	s.Equal("development", cfg.Server.Environment)
	s.Equal(15*time.Second, cfg.Server.ReadTimeout)
	s.Equal([]string{"*"}, cfg.Server.CORSAllowOrigins)
	s.Equal("data", cfg.Data.Dir)
	s.Equal(5, cfg.Security.RateLimitPerSecond)
	s.Equal(10, cfg.Security.RateLimitBurst)
	s.Equal("info", cfg.Logging.Level)

	s.True(cfg.IsDevelopment())
	s.False(cfg.IsProduction())
	s.NoError(cfg.Validate())
}

func (s *ConfigTestSuite) TestLoad_FromEnvironment() {
	s.T().Setenv("SERVER_PORT", "9090")
	s.T().Setenv("DATA_DIR", "/var/lib/budget/exports")
	s.T().Setenv("RATE_LIMIT_PER_SECOND", "20")
	s.T().Setenv("RATE_LIMIT_BURST", "40")
	s.T().Setenv("SERVER_READ_TIMEOUT", "30s")
	s.T().Setenv("CORS_ALLOW_ORIGINS", "https://a.example , https://b.example")

	cfg := Load()

	s.Equal("9090", cfg.Server.Port)
	s.Equal("/var/lib/budget/exports", cfg.Data.Dir)
	s.Equal(20, cfg.Security.RateLimitPerSecond)
	s.Equal(40, cfg.Security.RateLimitBurst)
	s.Equal(30*time.Second, cfg.Server.ReadTimeout)
	s.Equal([]string{"https://a.example", "https://b.example"}, cfg.Server.CORSAllowOrigins)
}

func (s *ConfigTestSuite) TestLoad_IgnoresMalformedValues() {
	s.T().Setenv("RATE_LIMIT_PER_SECOND", "plenty")
	s.T().Setenv("SERVER_READ_TIMEOUT", "soon")

	cfg := Load()

	s.Equal(5, cfg.Security.RateLimitPerSecond)
	s.Equal(15*time.Second, cfg.Server.ReadTimeout)
}

func (s *ConfigTestSuite) TestValidate_RejectsBadValues() {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty data dir", func(c *Config) { c.Data.Dir = "" }},
		{"zero rate limit", func(c *Config) { c.Security.RateLimitPerSecond = 0 }},
		{"burst below rate", func(c *Config) { c.Security.RateLimitBurst = 1 }},
		{"non-numeric port", func(c *Config) { c.Server.Port = "http" }},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			cfg := Load()
			tc.mutate(cfg)
			s.Error(cfg.Validate())
		})
	}
}

func (s *ConfigTestSuite) TestAddress() {
	cfg := Load()
	s.Equal("localhost:8080", cfg.Server.Address())
}
