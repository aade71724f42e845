// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/reservation-engine/pkg/types"
)

// setDefaults registers every config key so environment variables such as
// RESERVATION_ENGINE_SERVER_ADDR are picked up by Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("server.addr", ":8001")
	v.SetDefault("server.cors_allowed_origins", []string{})
	v.SetDefault("server.max_body_bytes", int64(5<<20))
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)

	v.SetDefault("history.db_path", "data/history.db")
	v.SetDefault("history.max_results", 20)

	v.SetDefault("client.base_url", "")
	v.SetDefault("client.timeout", 30*time.Second)
	v.SetDefault("client.max_retries", 3)
	v.SetDefault("client.user_agent", "reservation-engine/"+version)
}

// loadConfig decodes the merged flags, environment, file and defaults.
func loadConfig() (types.Config, error) {
	return decodeConfig(viper.GetViper())
}

func decodeConfig(v *viper.Viper) (types.Config, error) {
	var c types.Config
	if err := v.Unmarshal(&c); err != nil {
		return types.Config{}, fmt.Errorf("decoding config: %w", err)
	}
	return c, nil
}
