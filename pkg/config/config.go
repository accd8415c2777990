package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultEndpoints are the public Xphere RPC nodes used when no endpoints are configured.
var DefaultEndpoints = []string{
	"https://xphere-main.zigap.io",
	"https://mello.zigap.io",
	"https://joy.zigap.io",
	"https://jenny.zigap.io",
}

// DefaultBroadcastLimit caps the endpoints a transaction is fanned out to.
const DefaultBroadcastLimit = 32

// Config holds the client settings. It is a value type: the With* helpers
// return modified copies and a client copies the config it is built from, so
// configure before first use.
type Config struct {
	// Endpoints are the base URLs of the RPC nodes. Default: DefaultEndpoints.
	Endpoints []string `json:"endpoints" yaml:"endpoints"`
	// Headers are sent with every request.
	Headers map[string]string `json:"headers" yaml:"headers"`
	// BroadcastLimit is the maximum number of distinct endpoints, configured
	// plus discovered peers, a transaction is sent to. Default: 32.
	BroadcastLimit int `json:"broadcast_limit" yaml:"broadcast_limit"`
	// PrivateKey is the hex seed used when a submission is made without an
	// explicit key (optional).
	PrivateKey string `json:"private_key" yaml:"private_key"`
	// Debug enables verbose logging.
	Debug bool `json:"debug" yaml:"debug"`
	// Timeouts configures request and polling deadlines. See Timeouts.WithDefaults.
	Timeouts Timeouts `json:"timeouts" yaml:"timeouts"`
	// Submit bounds the transaction submission workflow.
	Submit Submit `json:"submit" yaml:"submit"`
}

// Timeouts controls request deadlines and polling intervals.
// Zero values are replaced by defaults in WithDefaults.
type Timeouts struct {
	Request time.Duration `json:"request" yaml:"request"` // single HTTP roundtrip
	Poll    time.Duration `json:"poll" yaml:"poll"`       // round polling interval
}

// Submit configures resending of unconfirmed transactions.
type Submit struct {
	// MaxResends caps how often a transaction is re-broadcast. Zero means no cap.
	MaxResends int `json:"max_resends" yaml:"max_resends"`
}

// Validate fills implicit defaults and rejects blank endpoints and negative values.
func (c *Config) Validate() error {
	if len(c.Endpoints) == 0 {
		c.Endpoints = append([]string(nil), DefaultEndpoints...)
	}
	for i, e := range c.Endpoints {
		if strings.TrimSpace(e) == "" {
			return fmt.Errorf("endpoint %d is empty", i)
		}
	}

	if c.BroadcastLimit < 0 {
		return errors.New("broadcast limit must not be negative")
	}
	if c.BroadcastLimit == 0 {
		c.BroadcastLimit = DefaultBroadcastLimit
	}
	if c.Timeouts.Request < 0 || c.Timeouts.Poll < 0 {
		return errors.New("timeouts must not be negative")
	}
	if c.Submit.MaxResends < 0 {
		return errors.New("max resends must not be negative")
	}
	c.Timeouts = c.Timeouts.WithDefaults()

	return nil
}

// WithDefaults returns a copy of t with zero values replaced by defaults:
//
//	Request: 30s
//	Poll:    2s
func (t Timeouts) WithDefaults() Timeouts {
	tt := t
	if tt.Request == 0 {
		tt.Request = 30 * time.Second
	}
	if tt.Poll == 0 {
		tt.Poll = 2 * time.Second
	}
	return tt
}

// Clone returns a deep copy of c.
func (c Config) Clone() Config {
	out := c
	out.Endpoints = append([]string(nil), c.Endpoints...)
	if c.Headers != nil {
		out.Headers = make(map[string]string, len(c.Headers))
		for k, v := range c.Headers {
			out.Headers[k] = v
		}
	}
	return out
}

func (c Config) WithEndpoints(endpoints ...string) Config {
	out := c.Clone()
	out.Endpoints = append([]string(nil), endpoints...)
	return out
}

func (c Config) WithTimeout(d time.Duration) Config {
	out := c.Clone()
	out.Timeouts.Request = d
	return out
}

func (c Config) WithHeaders(headers map[string]string) Config {
	out := c.Clone()
	out.Headers = make(map[string]string, len(headers))
	for k, v := range headers {
		out.Headers[k] = v
	}
	return out
}

func (c Config) WithBroadcastLimit(limit int) Config {
	out := c.Clone()
	out.BroadcastLimit = limit
	return out
}

// Load reads a YAML (or JSON) config file and validates it.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
