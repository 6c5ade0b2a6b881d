package main

import (
	"path/filepath"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Paul-Jonathan2005/AptosBountyBoard/api"
	"github.com/Paul-Jonathan2005/AptosBountyBoard/client"
)

var logger = zap.NewNop()

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "TOML configuration file",
			EnvVars: []string{"BOUNTYCTL_CONFIG"},
		},
		&cli.StringFlag{
			Name:    "backend",
			Usage:   "backend API base URL",
			EnvVars: []string{"BOUNTYCTL_BACKEND"},
		},
		&cli.StringFlag{
			Name:    "rpc",
			Usage:   "fullnode REST endpoint",
			EnvVars: []string{"BOUNTYCTL_RPC"},
		},
		&cli.StringFlag{
			Name:    "store",
			Usage:   "session directory",
			Value:   defaultStorePath(),
			EnvVars: []string{"BOUNTYCTL_STORE"},
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "debug logging",
		},
	}
}

func defaultStorePath() string {
	dir, err := filepath.Abs(".bountyctl")
	if err != nil {
		return ".bountyctl"
	}
	return dir
}

func setupLogger(c *cli.Context) error {
	logCfg := zap.NewDevelopmentConfig()
	logCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	logCfg.DisableStacktrace = true
	if !c.Bool("verbose") {
		logCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	l, err := logCfg.Build()
	if err != nil {
		return err
	}
	logger = l
	return nil
}

func syncLogger(*cli.Context) error {
	_ = logger.Sync()
	return nil
}

// clientConfig merges the config file with the global flags.
func clientConfig(c *cli.Context) (client.Config, error) {
	cfg := client.DefaultConfig()
	if path := c.String("config"); path != "" {
		loaded, err := client.LoadConfig(path)
		if err != nil {
			return client.Config{}, err
		}
		cfg = loaded
	}
	for _, opt := range []client.Option{
		client.WithBackendURL(first(c.String("backend"), cfg.BackendURL)),
		client.WithChainRPCURL(first(c.String("rpc"), cfg.ChainRPCURL)),
		client.WithStorePath(first(c.String("store"), cfg.StorePath)),
		client.WithZapLogger(logger),
	} {
		opt(&cfg)
	}
	return cfg, nil
}

// newClient builds a client from the config file and global flags. The CLI has
// no wallet, so contract submission is not available through it.
func newClient(c *cli.Context) (*client.Client, error) {
	cfg, err := clientConfig(c)
	if err != nil {
		return nil, err
	}
	return client.New(c.Context, cfg, nil)
}

func first(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func errorText(err error) string {
	return color.RedString("error: %s", api.ErrorMessage(err))
}
