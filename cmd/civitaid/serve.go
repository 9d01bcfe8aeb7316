package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"civitaid/internal/httpapi"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		addr        string
		corsOrigins string
		maxBody     int64
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.cfg.Addr
			}
			svc, err := a.service()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			httpapi.SetLogger(a.log.With().Str("component", "http").Logger())
			httpapi.SetBaseContext(ctx)
			httpapi.SetMaxBodyBytes(maxBody)
			cors := a.cfg.CORS
			if corsOrigins != "" {
				cors.Enabled = true
				cors.Origins = splitCSV(corsOrigins)
			}
			httpapi.SetCORSOptions(cors.Enabled, cors.Origins, cors.Methods, cors.Headers)

			srv := &http.Server{
				Addr:              addr,
				Handler:           httpapi.NewMux(svc),
				ReadHeaderTimeout: 10 * time.Second,
			}
			errc := make(chan error, 1)
			go func() {
				a.log.Info().Str("addr", addr).Str("config", a.configPath).Msg("civitaid listening")
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errc <- err
				}
				close(errc)
			}()

			select {
			case err := <-errc:
				return err
			case <-ctx.Done():
			}
			// Graceful shutdown (Ctrl+C / SIGTERM)
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				a.log.Warn().Err(err).Msg("graceful shutdown error")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", envStr("CIVITAID_ADDR", ""), "HTTP listen address (defaults to the config addr)")
	cmd.Flags().StringVar(&corsOrigins, "cors-origins", "", "Comma separated CORS origins; enables CORS")
	cmd.Flags().Int64Var(&maxBody, "max-body-bytes", 0, "Maximum JSON request body size (0 = 1MiB)")
	return cmd
}
