package client

import (
	"context"
	"fmt"

	"github.com/Paul-Jonathan2005/AptosBountyBoard/wallet"
)

// Factory keeps a base configuration so callers can create one client per
// wallet without re-specifying shared settings.
type Factory struct {
	baseCfg Config
	opts    []Option
}

// NewFactory captures the shared configuration.
func NewFactory(cfg Config, opts ...Option) *Factory {
	return &Factory{
		baseCfg: cfg,
		opts:    append([]Option{}, opts...),
	}
}

// WithProvider returns a Client bound to provider. Extra options override the
// factory defaults for this instance; each persistent client needs its own
// StorePath.
func (f *Factory) WithProvider(ctx context.Context, provider wallet.Provider, extraOpts ...Option) (*Client, error) {
	if provider == nil {
		return nil, fmt.Errorf("provider is required")
	}

	opts := append([]Option{}, f.opts...)
	opts = append(opts, extraOpts...)

	return New(ctx, f.baseCfg, provider, opts...)
}
