// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/reservation-engine/internal/engine"
	"github.com/pdiddy/reservation-engine/internal/history"
	"github.com/pdiddy/reservation-engine/internal/server"
	"github.com/pdiddy/reservation-engine/pkg/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP extraction service",
	Long: `Serve starts the HTTP service:

  GET  /health   returns {"status":"healthy","service":"reservation-engine"}
  POST /extract  takes {"html": "...", "type": "flight"} and returns the result

The listen address, CORS origins and body limit come from the server section
of the config file or RESERVATION_ENGINE_SERVER_* variables. With --record
every request is logged to the history database.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	record, _ := cmd.Flags().GetBool("record")

	var opts []server.Option
	if record {
		store, err := history.NewStore(cfg.History)
		if err != nil {
			return err
		}
		defer store.Close()
		opts = append(opts, server.WithRecorder(store))
		appLog.Info("recording attempts", logger.String("db", cfg.History.DBPath))
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(engine.New(appLog), cfg.Server, appLog, opts...)
	return srv.ListenAndServe(ctx)
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :8001)")
	serveCmd.Flags().StringSlice("cors-origin", nil, "allowed CORS origin; repeat for several (default: all)")
	serveCmd.Flags().Bool("record", false, "log every request to the history database")

	_ = viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("server.cors_allowed_origins", serveCmd.Flags().Lookup("cors-origin"))

	rootCmd.AddCommand(serveCmd)
}
