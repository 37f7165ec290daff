package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"interactsh/internal/logging"
	"interactsh/internal/mockserver"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		addr string
		opts mockserver.Options
	)
	cmd := &cobra.Command{
		Use:          "interactsh-mock",
		Short:        "In-memory interaction server for development",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.ConfigureRuntime()
			gin.SetMode(gin.ReleaseMode)
			opts.Logger = logger.With().Str("component", "mockserver").Logger()

			srv := &http.Server{
				Addr:              addr,
				Handler:           mockserver.New(opts).Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = srv.Shutdown(shutdownCtx)
			}()

			logger.Info().Str("addr", addr).Str("domain", opts.Domain).Msg("mock server listening")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&opts.Domain, "domain", "", "zone interactions arrive under")
	cmd.Flags().StringVar(&opts.Token, "token", "", "require this token in the Authorization header")
	cmd.Flags().IntVar(&opts.CorrelationLength, "correlation-length", 0, "exact correlation id length to accept (0: any)")
	return cmd
}
