package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/naoina/toml"

	sdkcrypto "github.com/Paul-Jonathan2005/AptosBountyBoard/pkg/crypto"
	sdklog "github.com/Paul-Jonathan2005/AptosBountyBoard/pkg/log"
	"github.com/Paul-Jonathan2005/AptosBountyBoard/types"
)

const (
	DefaultBackendURL    = "http://localhost:8000/api/"
	DefaultChainRPCURL   = "https://fullnode.testnet.aptoslabs.com"
	DefaultModuleAddress = "0x7e6213fecd8feee9d3908368eb43825af78f6116ab922f5544574cd13272b4f8"
	DefaultCoinType      = "0x1::aptos_coin::AptosCoin"
)

// Config holds all configuration for the bounty board client.
type Config struct {
	// Endpoints
	BackendURL  string // marketplace REST API base, e.g. http://host/api/
	ChainRPCURL string // fullnode REST endpoint

	// Contract
	ModuleAddress string // account that published the task_bounty module
	CoinType      string

	// RequestTimeout bounds each individual HTTP request. Waiting for a
	// transaction confirmation is not bounded by it.
	RequestTimeout time.Duration

	// StorePath is the LevelDB directory for persisted session state. Empty keeps
	// the session in memory only.
	StorePath string

	// LRUSize bounds the cache of accounts whose TaskStore is known to exist.
	LRUSize int

	// WaitTx controls transaction confirmation behaviour.
	WaitTx WaitTxConfig

	// Logger is optional; when set, SDK operations emit diagnostics.
	Logger sdklog.Logger
}

// WaitTxConfig configures how the SDK polls for transaction confirmation.
type WaitTxConfig struct {
	// PollInterval controls how frequently the transaction is looked up.
	PollInterval time.Duration
	// PollMaxRetries limits the number of poll attempts before failing (0 => unlimited until ctx ends).
	PollMaxRetries int
	// PollBackoffMultiplier > 1 enables exponential growth for poll intervals.
	PollBackoffMultiplier float64
	// PollBackoffMaxInterval caps the exponential backoff delay (0 => unlimited).
	PollBackoffMaxInterval time.Duration
	// PollBackoffJitter randomizes delays (0..1) to avoid synced retries.
	PollBackoffJitter float64
}

// Validate checks if the configuration is valid and populates defaults.
func (c *Config) Validate() error {
	if c.BackendURL == "" {
		c.BackendURL = DefaultBackendURL
	}
	if c.ChainRPCURL == "" {
		c.ChainRPCURL = DefaultChainRPCURL
	}
	if c.ModuleAddress == "" {
		c.ModuleAddress = DefaultModuleAddress
	}
	if c.CoinType == "" {
		c.CoinType = DefaultCoinType
	}

	for name, raw := range map[string]string{"backend_url": c.BackendURL, "chain_rpc_url": c.ChainRPCURL} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%w: %s must be an absolute URL, got %q", types.ErrInvalidConfig, name, raw)
		}
	}
	module, err := sdkcrypto.NormalizeAddress(c.ModuleAddress)
	if err != nil {
		return fmt.Errorf("%w: module_address: %v", types.ErrInvalidConfig, err)
	}
	c.ModuleAddress = module

	// Set defaults
	if c.RequestTimeout == 0 {
		c.RequestTimeout = 30 * time.Second
	}
	if c.LRUSize <= 0 {
		c.LRUSize = 128
	}
	ApplyWaitTxDefaults(&c.WaitTx)

	return nil
}

// Default returns a configuration with sensible defaults for testnet.
func Default() Config {
	return Config{
		BackendURL:     DefaultBackendURL,
		ChainRPCURL:    DefaultChainRPCURL,
		ModuleAddress:  DefaultModuleAddress,
		CoinType:       DefaultCoinType,
		RequestTimeout: 30 * time.Second,
		LRUSize:        128,
		WaitTx:         DefaultWaitTxConfig(),
	}
}

// DefaultWaitTxConfig returns recommended defaults for wait-tx behaviour.
func DefaultWaitTxConfig() WaitTxConfig {
	return WaitTxConfig{
		PollInterval:           500 * time.Millisecond,
		PollMaxRetries:         0,
		PollBackoffMultiplier:  1.5,
		PollBackoffMaxInterval: 5 * time.Second,
		PollBackoffJitter:      0,
	}
}

// ApplyWaitTxDefaults normalizes zero or negative values using defaults.
func ApplyWaitTxDefaults(cfg *WaitTxConfig) {
	if cfg == nil {
		return
	}
	def := DefaultWaitTxConfig()

	if cfg.PollInterval <= 0 {
		cfg.PollInterval = def.PollInterval
	}
	if cfg.PollMaxRetries < 0 {
		cfg.PollMaxRetries = 0
	}
	if cfg.PollBackoffMultiplier <= 0 {
		cfg.PollBackoffMultiplier = def.PollBackoffMultiplier
	}
	if cfg.PollBackoffMaxInterval <= 0 {
		cfg.PollBackoffMaxInterval = def.PollBackoffMaxInterval
	}
	if cfg.PollBackoffJitter < 0 {
		cfg.PollBackoffJitter = 0
	}
}

// file mirrors Config with TOML-friendly field types.
type file struct {
	BackendURL     string `toml:"backend_url"`
	ChainRPCURL    string `toml:"chain_rpc_url"`
	ModuleAddress  string `toml:"module_address"`
	CoinType       string `toml:"coin_type"`
	RequestTimeout string `toml:"request_timeout"`
	StorePath      string `toml:"store_path"`
	LRUSize        int    `toml:"lru_size"`
	WaitTx         struct {
		PollInterval           string  `toml:"poll_interval"`
		PollMaxRetries         int     `toml:"poll_max_retries"`
		PollBackoffMultiplier  float64 `toml:"poll_backoff_multiplier"`
		PollBackoffMaxInterval string  `toml:"poll_backoff_max_interval"`
		PollBackoffJitter      float64 `toml:"poll_backoff_jitter"`
	} `toml:"wait_tx"`
}

// Load reads a TOML configuration file on top of Default and validates it.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw file
	if err := toml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("%w: decode %s: %v", types.ErrInvalidConfig, path, err)
	}

	cfg := Default()
	setString(&cfg.BackendURL, raw.BackendURL)
	setString(&cfg.ChainRPCURL, raw.ChainRPCURL)
	setString(&cfg.ModuleAddress, raw.ModuleAddress)
	setString(&cfg.CoinType, raw.CoinType)
	setString(&cfg.StorePath, raw.StorePath)
	if raw.LRUSize > 0 {
		cfg.LRUSize = raw.LRUSize
	}
	if err := setDuration(&cfg.RequestTimeout, "request_timeout", raw.RequestTimeout); err != nil {
		return Config{}, err
	}
	if err := setDuration(&cfg.WaitTx.PollInterval, "wait_tx.poll_interval", raw.WaitTx.PollInterval); err != nil {
		return Config{}, err
	}
	if err := setDuration(&cfg.WaitTx.PollBackoffMaxInterval, "wait_tx.poll_backoff_max_interval", raw.WaitTx.PollBackoffMaxInterval); err != nil {
		return Config{}, err
	}
	if raw.WaitTx.PollMaxRetries != 0 {
		cfg.WaitTx.PollMaxRetries = raw.WaitTx.PollMaxRetries
	}
	if raw.WaitTx.PollBackoffMultiplier != 0 {
		cfg.WaitTx.PollBackoffMultiplier = raw.WaitTx.PollBackoffMultiplier
	}
	if raw.WaitTx.PollBackoffJitter != 0 {
		cfg.WaitTx.PollBackoffJitter = raw.WaitTx.PollBackoffJitter
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, name, v string) error {
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", types.ErrInvalidConfig, name, err)
	}
	*dst = d
	return nil
}
