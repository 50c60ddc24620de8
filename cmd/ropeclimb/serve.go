package main

import (
	"context"
	"time"

	"github.com/san-kum/ropeclimb/internal/relay"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "run the websocket relay",
		RunE:  runServe,
	}
	cmd.Flags().StringVar(&relayAddr, "addr", "", "listen address (overrides config)")
	return cmd
}

var relayAddr string

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	addr := cfg.Relay.Addr
	if relayAddr != "" {
		addr = relayAddr
	}

	hubCtx, stopHub := context.WithCancel(context.Background())
	hub := relay.NewHub(relay.WithEvent(cfg.Relay.Event), relay.WithLogger(logger))
	go hub.Run(hubCtx)

	srv := relay.NewServer(relay.Config{Addr: addr, Path: cfg.Relay.Path}, hub, relay.WithServerLogger(logger))

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting relay", "addr", addr, "path", cfg.Relay.Path, "event", cfg.Relay.Event)
		errCh <- srv.ListenAndServe()
	}()

	var err error
	select {
	case err = <-errCh:
	case <-ctx.Done():
		logger.Info("shutting down relay")
		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		err = srv.Shutdown(shutdownCtx)
		stop()
	}

	// Upgraded connections outlive Shutdown; stopping the hub closes them.
	stopHub()
	<-hub.Done()
	return err
}
