package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"relay-bridge/config"
	"relay-bridge/pkg/intent"
	"relay-bridge/pkg/quote"
	"relay-bridge/pkg/registry"
	"relay-bridge/pkg/relay"
	"relay-bridge/pkg/server"
	"relay-bridge/pkg/types"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API for browser front ends",
	Long: `Serve the quote, intent, and status operations over HTTP:

  POST /api/quote    request a transfer quote
  POST /api/intent   parse a free-text transfer request
  GET  /api/status   check a transfer's status
  GET  /healthz      health check
  GET  /metrics      Prometheus metrics`,
	Run: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) {
	cfg, err := config.Load()
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	log := newLogger(cmd)
	env := types.Environment(cfg.Environment)
	reg := registry.ForEnvironment(env)
	client := relay.NewClient(cfg.BaseURL(), relay.WithLogger(log))
	resolver := quote.NewResolver(reg, client, log)

	sessions := intent.NewSessionStore(intent.DefaultSessionTTL)
	defer sessions.Close()

	srv := server.New(cfg.Server, env, resolver, client, sessions, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.ListenAndServe(ctx); err != nil {
		printError(err)
		os.Exit(1)
	}
}
