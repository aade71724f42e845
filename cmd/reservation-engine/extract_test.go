// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/reservation-engine/internal/engine"
	"github.com/pdiddy/reservation-engine/internal/schemaorg"
	"github.com/pdiddy/reservation-engine/pkg/logger"
	"github.com/pdiddy/reservation-engine/pkg/types"
)

func TestParseCandidatesJSON(t *testing.T) {
	c, err := parseCandidates([]byte(`{
		"jsonld": [{"@type": "FoodEstablishmentReservation", "partySize": 4}],
		"microdata": [{"@type": "EventReservation"}]
	}`))
	require.NoError(t, err)
	require.Len(t, c.JSONLD, 1)
	require.Len(t, c.Microdata, 1)
	assert.Equal(t, "FoodEstablishmentReservation", schemaorg.TypeOf(c.JSONLD[0]))
	n, ok := schemaorg.Int(c.JSONLD[0].Get("partySize"))
	assert.True(t, ok)
	assert.Equal(t, 4, n)
}

func TestParseCandidatesYAML(t *testing.T) {
	c, err := parseCandidates([]byte(`
jsonld:
  - "@type": FoodEstablishmentReservation
    reservationFor:
      name: Le Bernardin
    startTime: 2026-01-30T19:00:00-05:00
`))
	require.NoError(t, err)
	require.Len(t, c.JSONLD, 1)
	assert.Empty(t, c.Microdata)

	res := engine.New(logger.Nop()).Normalize(c, types.TypeRestaurant)
	require.True(t, res.Success)
	got := res.Data.(types.RestaurantExtraction)
	assert.Equal(t, "Le Bernardin", got.RestaurantName)
	assert.Equal(t, "2026-01-30", got.ReservationDate)
	assert.Equal(t, "7:00 PM", got.ReservationTime)
}

func TestParseCandidatesRejectsNonMapping(t *testing.T) {
	_, err := parseCandidates([]byte(`[1, 2]`))
	assert.Error(t, err)

	_, err = parseCandidates([]byte("jsonld: [unclosed"))
	assert.Error(t, err)

	c, err := parseCandidates([]byte(""))
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())
}

func TestWriteResult(t *testing.T) {
	res := types.Result{
		Success:      true,
		Method:       types.MethodJSONLD,
		Data:         types.RestaurantExtraction{RestaurantName: "Cafe", PartySize: 2},
		Completeness: 1,
		Confidence:   types.ConfidenceHigh,
	}

	var jsonOut bytes.Buffer
	require.NoError(t, writeResult(&jsonOut, res, "json"))
	assert.Contains(t, jsonOut.String(), `"restaurantName": "Cafe"`)
	assert.Contains(t, jsonOut.String(), `"method": "json-ld"`)

	var yamlOut bytes.Buffer
	require.NoError(t, writeResult(&yamlOut, res, "yaml"))
	assert.Contains(t, yamlOut.String(), "restaurantName: Cafe")
	assert.Contains(t, yamlOut.String(), "method: json-ld")
	assert.NotContains(t, yamlOut.String(), "error:")
}

func TestReadInput(t *testing.T) {
	data, err := readInput(strings.NewReader("<p>stdin</p>"), nil)
	require.NoError(t, err)
	assert.Equal(t, "<p>stdin</p>", string(data))

	data, err = readInput(strings.NewReader("<p>dash</p>"), []string{"-"})
	require.NoError(t, err)
	assert.Equal(t, "<p>dash</p>", string(data))

	_, err = readInput(nil, []string{t.TempDir() + "/missing.html"})
	assert.Error(t, err)
}

func TestDecodeConfigDefaultsAndEnv(t *testing.T) {
	t.Setenv("RESERVATION_ENGINE_SERVER_ADDR", ":9999")
	t.Setenv("RESERVATION_ENGINE_CLIENT_TIMEOUT", "5s")

	v := viper.New()
	v.SetEnvPrefix("RESERVATION_ENGINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	c, err := decodeConfig(v)
	require.NoError(t, err)
	assert.Equal(t, ":9999", c.Server.Addr)
	assert.Equal(t, 5*time.Second, c.Client.Timeout)
	assert.Equal(t, int64(5<<20), c.Server.MaxBodyBytes)
	assert.Equal(t, "data/history.db", c.History.DBPath)
	assert.Equal(t, 3, c.Client.MaxRetries)
	assert.Equal(t, "info", c.Log.Level)
}
