package goAdmin

import (
	"errors"
	"net/url"
	"strings"
	"time"
)

// Config defines a public type used by goAdmin APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	Gateway GatewayConfig
	Auth    AuthConfig
	Cache   CacheConfig
	Audit   AuditConfig
	Metrics MetricsConfig
}

/*
====================================
GATEWAY CONFIG
====================================
*/

// GatewayConfig defines a public type used by goAdmin APIs.
//
// GatewayConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type GatewayConfig struct {
	BaseURL     string
	Timeout     time.Duration
	UserAgent   string
	AdminPrefix string
}

/*
====================================
AUTH CONFIG
====================================
*/

// AuthConfig defines a public type used by goAdmin APIs.
//
// AuthConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuthConfig struct {
	LoginPath    string
	RefreshPath  string
	AllowedRoles []Role
}

/*
====================================
CACHE CONFIG
====================================
*/

// CacheConfig defines a public type used by goAdmin APIs.
//
// CacheConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CacheConfig struct {
	StaleTTL time.Duration
	Disabled bool
}

/*
====================================
AUDIT CONFIG
====================================
*/

// AuditConfig defines a public type used by goAdmin APIs.
//
// AuditConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig defines a public type used by goAdmin APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

// DefaultConfig describes the defaultconfig operation and its observable behavior.
//
// DefaultConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func DefaultConfig() Config {
	return defaultConfig()
}

func defaultConfig() Config {
	return Config{
		Gateway: GatewayConfig{
			BaseURL:     "/api/v1",
			Timeout:     30 * time.Second,
			UserAgent:   "goAdmin",
			AdminPrefix: "/admin",
		},
		Auth: AuthConfig{
			LoginPath:    "/auth/login/password",
			RefreshPath:  "/auth/refresh",
			AllowedRoles: []Role{RoleAdmin, RoleModerator},
		},
		Cache: CacheConfig{
			StaleTTL: 30 * time.Second,
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 256,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

func cloneConfig(cfg Config) Config {
	out := cfg
	out.Auth.AllowedRoles = append([]Role(nil), cfg.Auth.AllowedRoles...)
	return out
}

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
// Validate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Gateway.BaseURL) == "" {
		return errors.New("Gateway BaseURL is required")
	}
	if strings.Contains(c.Gateway.BaseURL, "://") {
		if _, err := url.Parse(c.Gateway.BaseURL); err != nil {
			return errors.New("Gateway BaseURL is not a valid URL")
		}
	}
	if c.Gateway.Timeout <= 0 {
		return errors.New("Gateway Timeout must be positive")
	}
	if c.Gateway.Timeout > 5*time.Minute {
		return errors.New("Gateway Timeout exceeds the 5 minute ceiling")
	}
	if !strings.HasPrefix(c.Auth.LoginPath, "/") {
		return errors.New("Auth LoginPath must start with /")
	}
	if !strings.HasPrefix(c.Auth.RefreshPath, "/") {
		return errors.New("Auth RefreshPath must start with /")
	}
	if len(c.Auth.AllowedRoles) == 0 {
		return errors.New("Auth AllowedRoles must not be empty")
	}
	for _, role := range c.Auth.AllowedRoles {
		if strings.TrimSpace(string(role)) == "" {
			return errors.New("Auth AllowedRoles contains an empty role")
		}
	}
	if c.Cache.StaleTTL < 0 {
		return errors.New("Cache StaleTTL must not be negative")
	}
	if c.Audit.Enabled && c.Audit.BufferSize < 0 {
		return errors.New("Audit BufferSize must not be negative")
	}
	return nil
}

func (c *Config) roleAllowed(role Role) bool {
	for _, allowed := range c.Auth.AllowedRoles {
		if allowed == role {
			return true
		}
	}
	return false
}
