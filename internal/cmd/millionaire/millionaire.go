// Package millionaire parses game service flags and launches the service.
package millionaire

import (
	"context"
	"flag"
	"fmt"

	entrypoint "github.com/louisbranch/millionaire/internal/platform/cmd"
	server "github.com/louisbranch/millionaire/internal/services/millionaire/app"
)

// Config holds millionaire command configuration.
type Config struct {
	Port int    `env:"MILLIONAIRE_PORT" envDefault:"8090"`
	Addr string `env:"MILLIONAIRE_ADDR"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.IntVar(&cfg.Port, "port", cfg.Port, "The millionaire gRPC server port")
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "The millionaire gRPC listen address (overrides -port)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ListenAddr returns the address the server binds to.
func (c Config) ListenAddr() string {
	if c.Addr != "" {
		return c.Addr
	}
	return fmt.Sprintf(":%d", c.Port)
}

// Run starts the millionaire gRPC API service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceMillionaire, func(ctx context.Context) error {
		srv, err := server.NewWithAddr(cfg.ListenAddr())
		if err != nil {
			return err
		}
		return srv.Serve(ctx)
	})
}
