// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/reservation-engine/pkg/types"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "", want: "info"},
		{in: "debug", want: "debug"},
		{in: "WARN", want: "warn"},
		{in: "error", want: "error"},
		{in: "verbose", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestNewWithWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWithWriter(types.LoggingConfig{Level: "info", Format: "json"}, &buf)
	require.NoError(t, err)

	log.Named("engine").Info("accepted", String("method", "json-ld"), Float64("completeness", 1))

	out := buf.String()
	assert.Contains(t, out, `"logger":"engine"`)
	assert.Contains(t, out, `"msg":"accepted"`)
	assert.Contains(t, out, `"method":"json-ld"`)
}

func TestNewWithWriterFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWithWriter(types.LoggingConfig{Level: "warn"}, &buf)
	require.NoError(t, err)

	log.Info("hidden")
	log.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewWithWriterRejectsUnknownFormat(t *testing.T) {
	_, err := NewWithWriter(types.LoggingConfig{Format: "xml"}, &bytes.Buffer{})
	assert.ErrorContains(t, err, "unsupported log format")
}

func TestNopDiscards(t *testing.T) {
	log := Nop()
	log.Named("x").WithRequestID("abc").Error("nothing happens")
}
