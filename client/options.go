package client

import (
	"time"

	"go.uber.org/zap"

	sdklog "github.com/Paul-Jonathan2005/AptosBountyBoard/pkg/log"
)

// Option is a function that modifies Config
type Option func(*Config)

// WithBackendURL sets the marketplace API base URL
func WithBackendURL(u string) Option {
	return func(c *Config) {
		c.BackendURL = u
	}
}

// WithChainRPCURL sets the fullnode REST endpoint
func WithChainRPCURL(u string) Option {
	return func(c *Config) {
		c.ChainRPCURL = u
	}
}

// WithModuleAddress sets the account that published the bounty module
func WithModuleAddress(addr string) Option {
	return func(c *Config) {
		c.ModuleAddress = addr
	}
}

// WithRequestTimeout sets the per-request HTTP timeout
func WithRequestTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.RequestTimeout = timeout
	}
}

// WithStorePath persists the session in a LevelDB directory
func WithStorePath(path string) Option {
	return func(c *Config) {
		c.StorePath = path
	}
}

// WithLRUSize bounds the TaskStore existence cache
func WithLRUSize(size int) Option {
	return func(c *Config) {
		c.LRUSize = size
	}
}

// WithWaitTx replaces the confirmation polling settings
func WithWaitTx(cfg WaitTxConfig) Option {
	return func(c *Config) {
		c.WaitTx = cfg
	}
}

// WithLogger sets the SDK logger
func WithLogger(logger sdklog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithZapLogger logs through a zap logger
func WithZapLogger(logger *zap.Logger) Option {
	return func(c *Config) {
		c.Logger = sdklog.NewZap(logger)
	}
}
