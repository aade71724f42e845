// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package client

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/reservation-engine/internal/engine"
	"github.com/pdiddy/reservation-engine/internal/server"
	"github.com/pdiddy/reservation-engine/pkg/logger"
	"github.com/pdiddy/reservation-engine/pkg/types"
)

func init() {
	// Use a tiny base delay so tests finish quickly.
	RetryBaseDelay = 1 * time.Millisecond
}

// --- DoWithRetry ---

func TestDoWithRetry_ImmediateSuccess(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	req, err := http.NewRequest(http.MethodGet, ts.URL, nil)
	require.NoError(t, err)

	resp, err := DoWithRetry(context.Background(), ts.Client(), req, 3)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestDoWithRetry_RetriesRetryableStatuses(t *testing.T) {
	for _, status := range []int{http.StatusTooManyRequests, http.StatusServiceUnavailable} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			var calls int32
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				if atomic.AddInt32(&calls, 1) <= 2 {
					w.WriteHeader(status)
					return
				}
				w.WriteHeader(http.StatusOK)
			}))
			defer ts.Close()

			req, err := http.NewRequest(http.MethodGet, ts.URL, nil)
			require.NoError(t, err)

			resp, err := DoWithRetry(context.Background(), ts.Client(), req, 3)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
		})
	}
}

func TestDoWithRetry_ReplaysBody(t *testing.T) {
	var bodies []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		bodies = append(bodies, string(b))
		if len(bodies) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	req, err := http.NewRequest(http.MethodPost, ts.URL, bytes.NewReader([]byte(`{"a":1}`)))
	require.NoError(t, err)

	resp, err := DoWithRetry(context.Background(), ts.Client(), req, 3)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, []string{`{"a":1}`, `{"a":1}`}, bodies)
}

func TestDoWithRetry_ExhaustsRetries(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	req, err := http.NewRequest(http.MethodGet, ts.URL, nil)
	require.NoError(t, err)

	resp, err := DoWithRetry(context.Background(), ts.Client(), req, 2)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	// 1 initial + 2 retries = 3 total calls.
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestDoWithRetry_DefaultMaxRetries(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	req, err := http.NewRequest(http.MethodGet, ts.URL, nil)
	require.NoError(t, err)

	resp, err := DoWithRetry(context.Background(), ts.Client(), req, 0)
	require.NoError(t, err)
	defer resp.Body.Close()

	// 1 initial + 3 default retries = 4 total calls.
	assert.Equal(t, int32(4), atomic.LoadInt32(&calls))
}

func TestDoWithRetry_ContextCancelled(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	old := RetryBaseDelay
	RetryBaseDelay = 500 * time.Millisecond
	defer func() { RetryBaseDelay = old }()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	req, err := http.NewRequest(http.MethodGet, ts.URL, nil)
	require.NoError(t, err)

	_, err = DoWithRetry(ctx, ts.Client(), req, 5)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestDoWithRetry_OtherErrorsPassThrough(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	req, err := http.NewRequest(http.MethodGet, ts.URL, nil)
	require.NoError(t, err)

	resp, err := DoWithRetry(context.Background(), ts.Client(), req, 3)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestRetryDelay(t *testing.T) {
	resp := &http.Response{Header: http.Header{}}
	assert.Equal(t, RetryBaseDelay, retryDelay(resp, 0))
	assert.Equal(t, 4*RetryBaseDelay, retryDelay(resp, 2))

	resp.Header.Set("Retry-After", "2")
	assert.Equal(t, 2*time.Second, retryDelay(resp, 5))

	resp.Header.Set("Retry-After", "3600")
	assert.Equal(t, maxRetryAfter, retryDelay(resp, 0))

	resp.Header.Set("Retry-After", "Wed, 21 Oct 2026 07:28:00 GMT")
	assert.Equal(t, RetryBaseDelay, retryDelay(resp, 0))
}

// --- Client ---

const hotelEmail = `<script type="application/ld+json">
{"@type":"LodgingReservation","reservationNumber":"H1","reservationFor":{"name":"Inn"},
 "checkinTime":"2026-03-01T15:00:00","checkoutTime":"2026-03-03T11:00:00"}
</script>`

func newRemote(t *testing.T) *Client {
	t.Helper()
	srv := server.New(engine.New(logger.Nop()), types.ServerConfig{}, logger.Nop())
	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)

	c, err := New(types.ClientConfig{BaseURL: ts.URL + "/", UserAgent: "test-agent"})
	require.NoError(t, err)
	return c
}

func TestNewRequiresBaseURL(t *testing.T) {
	_, err := New(types.ClientConfig{})
	assert.Error(t, err)
}

func TestExtract(t *testing.T) {
	c := newRemote(t)

	res, err := c.Extract(context.Background(), hotelEmail, types.TypeHotel)
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, types.MethodJSONLD, res.Method)
	assert.Equal(t, types.ConfidenceHigh, res.Confidence)
	hotel, ok := res.Data.(*types.HotelExtraction)
	require.True(t, ok)
	assert.Equal(t, "Inn", hotel.HotelName)
	assert.Equal(t, "3:00 PM", hotel.CheckInTime)
}

func TestExtractNotFound(t *testing.T) {
	res, err := newRemote(t).Extract(context.Background(), "<p>nothing</p>", types.TypeCruise)
	require.NoError(t, err)
	assert.Equal(t, types.NotFound(), res)
}

func TestExtractRejected(t *testing.T) {
	_, err := newRemote(t).Extract(context.Background(), "", types.ReservationType("spaceship"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
	assert.Contains(t, err.Error(), "unsupported reservation type")
}

func TestExtractSendsHeaders(t *testing.T) {
	var ua, ct string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua, ct = r.UserAgent(), r.Header.Get("Content-Type")
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"success":false,"method":"not-found","completeness":0,"confidence":"low"}`)
	}))
	defer ts.Close()

	c, err := New(types.ClientConfig{BaseURL: ts.URL})
	require.NoError(t, err)
	_, err = c.Extract(context.Background(), "", types.TypeFlight)
	require.NoError(t, err)

	assert.Equal(t, defaultUserAgent, ua)
	assert.Equal(t, "application/json", ct)
}

func TestExtractBadResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, `not json`)
	}))
	defer ts.Close()

	c, err := New(types.ClientConfig{BaseURL: ts.URL})
	require.NoError(t, err)
	_, err = c.Extract(context.Background(), "", types.TypeFlight)
	assert.ErrorContains(t, err, "decoding response")
}

func TestHealth(t *testing.T) {
	assert.NoError(t, newRemote(t).Health(context.Background()))

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()
	c, err := New(types.ClientConfig{BaseURL: ts.URL})
	require.NoError(t, err)
	assert.ErrorContains(t, c.Health(context.Background()), "500")
}
