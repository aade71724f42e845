// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the reservation-engine CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/reservation-engine/pkg/logger"
	"github.com/pdiddy/reservation-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// cfg and appLog are populated before any subcommand runs.
var (
	cfg    types.Config
	appLog *logger.Logger
)

// rootCmd is the base command for the reservation-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "reservation-engine",
	Short: "Normalize schema.org reservations from confirmation emails",
	Long: `reservation-engine reads the JSON-LD and microdata embedded in booking
confirmation emails and turns them into canonical flight, hotel, car rental,
train, restaurant and event records. A record is returned only when enough
required fields are present; otherwise the result is not-found so a
fallback extractor can take over.

Use extract for one-off files, serve to run the HTTP service, and history to
inspect logged attempts.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := loadConfig()
		if err != nil {
			return err
		}
		cfg = loaded

		l, err := logger.New(cfg.Log)
		if err != nil {
			return err
		}
		appLog = l
		zap.ReplaceGlobals(l.Logger)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if appLog != nil {
			_ = appLog.Sync()
		}
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./reservation-engine.yaml or ~/.config/reservation-engine/reservation-engine.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "", "log format: console or json")

	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("reservation-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "reservation-engine"))
		}
	}

	viper.SetEnvPrefix("RESERVATION_ENGINE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()
	setDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
