package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"dqx0.com/go/framed/httpf"
	"dqx0.com/go/framed/internal/config"
	"dqx0.com/go/framed/internal/obs"
)

var (
	flagAddr     string
	flagRoot     string
	flagLogLevel string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve files from a directory over HTTP/1.1",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Default()
		if cfgFile != "" {
			var err error
			cfg, err = config.Load(cfgFile)
			if err != nil {
				return err
			}
		}
		if flagAddr != "" {
			cfg.ListenAddr = flagAddr
		}
		if flagRoot != "" {
			cfg.Root = flagRoot
		}
		if flagLogLevel != "" {
			cfg.LogLevel = flagLogLevel
		}
		lvl, err := obs.ParseLevel(cfg.LogLevel)
		if err != nil {
			return err
		}
		logger := obs.StdLogger{L: log.New(os.Stderr, "", log.LstdFlags), Min: lvl}

		s := &httpf.Server{
			Addr:    cfg.ListenAddr,
			Handler: &httpf.FileHandler{Root: cfg.Root, Index: cfg.Index},
			Logger:  logger,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errc := make(chan error, 1)
		go func() { errc <- s.ListenAndServe() }()

		select {
		case err := <-errc:
			return err
		case <-ctx.Done():
			logger.Logf(obs.Info, "shutting down")
			shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := s.Shutdown(shCtx); err != nil {
				return err
			}
			if err := <-errc; err != nil && !errors.Is(err, httpf.ErrServerClosed) {
				return err
			}
			return nil
		}
	},
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "listen address (overrides config)")
	serveCmd.Flags().StringVar(&flagRoot, "root", "", "directory to serve (overrides config)")
	serveCmd.Flags().StringVar(&flagLogLevel, "log-level", "", "debug, info, warn or error")
}
