package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/YannickKae/Interest-Rate-Simulation/internal/server"
)

func serve(cmd *cobra.Command, args []string) error {
	cfg := server.DefaultConfig()
	cfg.Addr = addr
	cfg.RunTimeout = timeout
	cfg.MaxPoints = maxPoints

	srv := server.New(cfg, log)

	ctx, cancel := signalContext()
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return srv.Shutdown(context.Background())
	}
}
