package client

import clientconfig "github.com/Paul-Jonathan2005/AptosBountyBoard/client/config"

// Config re-exports the config.Config type.
type Config = clientconfig.Config

// WaitTxConfig re-exports the wait-tx config type.
type WaitTxConfig = clientconfig.WaitTxConfig

// DefaultConfig mirrors config.Default.
func DefaultConfig() Config {
	return clientconfig.Default()
}

// LoadConfig mirrors config.Load.
func LoadConfig(path string) (Config, error) {
	return clientconfig.Load(path)
}

// DefaultWaitTxConfig mirrors config.DefaultWaitTxConfig.
func DefaultWaitTxConfig() WaitTxConfig {
	return clientconfig.DefaultWaitTxConfig()
}
