// Package llm provides the provider-agnostic scoring client: a capability
// interface over chat-style backends plus retry, rate-limit and parsing
// machinery shared by all scoring protocols.
package llm

import (
	"context"
	"time"
)

// Request is a single prompt submission to a backend.
type Request struct {
	System      string
	Prompt      string
	Temperature float64
}

// Response is the raw textual output of a backend.
type Response struct {
	Text string
}

// Submitter is the capability every concrete backend implements. It issues
// exactly one attempt; retry policy lives in Client.
type Submitter interface {
	Submit(ctx context.Context, req Request) (Response, error)
	Name() string
	Model() string
}

// Config enumerates every recognized client option. All values arrive
// explicitly through this struct; the client never consults the environment.
type Config struct {
	Backend            string        `mapstructure:"backend"`
	Model              string        `mapstructure:"model"`
	BaseURL            string        `mapstructure:"base-url"`
	APIKeyFile         string        `mapstructure:"api-key-file"`
	APIKeyEnv          string        `mapstructure:"api-key-env"`
	MaxRetries         int           `mapstructure:"max-retries"`
	MaxInFlight        int           `mapstructure:"max-in-flight"`
	RateLimitPerSecond float64       `mapstructure:"rate-limit-per-second"`
	Timeout            time.Duration `mapstructure:"timeout"`
}

const (
	defaultMaxRetries         = 3
	defaultMaxInFlight        = 4
	defaultRateLimitPerSecond = 2.0
	defaultTimeout            = 60 * time.Second
)

// withDefaults fills unset options with values safe for both hosted and
// local backends.
func (c Config) withDefaults() Config {
	if c.MaxRetries <= 0 {
		c.MaxRetries = defaultMaxRetries
	}
	if c.MaxInFlight <= 0 {
		c.MaxInFlight = defaultMaxInFlight
	}
	if c.RateLimitPerSecond <= 0 {
		c.RateLimitPerSecond = defaultRateLimitPerSecond
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	return c
}
