package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoteClient_GetJSON(t *testing.T) {
	api := newFakeAPI(t)
	api.raw("/ok", http.StatusOK, `{"dados":{"id":7}}`)
	api.raw("/broken", http.StatusOK, `{"dados":`)
	api.raw("/boom", http.StatusBadGateway, `upstream down`)

	metrics := NewMetrics(prometheus.NewRegistry())
	client := NewRemoteClient("camara", 2*time.Second, metrics)
	ctx := context.Background()

	t.Run("decodes body", func(t *testing.T) {
		var out struct {
			Data struct {
				ID int `json:"id"`
			} `json:"dados"`
		}
		require.NoError(t, client.GetJSON(ctx, api.server.URL+"/ok", &out))
		assert.Equal(t, 7, out.Data.ID)
	})

	t.Run("non-2xx is a status error", func(t *testing.T) {
		var out map[string]any
		err := client.GetJSON(ctx, api.server.URL+"/boom", &out)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrRemoteStatus)
		assert.False(t, IsNotFound(err))

		var se *RemoteStatusError
		require.True(t, errors.As(err, &se))
		assert.Equal(t, http.StatusBadGateway, se.Code)
	})

	t.Run("404 is recognisable", func(t *testing.T) {
		var out map[string]any
		err := client.GetJSON(ctx, api.server.URL+"/missing", &out)
		assert.True(t, IsNotFound(err))
	})

	t.Run("malformed body is a decode error", func(t *testing.T) {
		var out map[string]any
		err := client.GetJSON(ctx, api.server.URL+"/broken", &out)
		assert.ErrorIs(t, err, ErrRemoteDecode)
	})

	t.Run("transport failure is unavailable", func(t *testing.T) {
		var out map[string]any
		err := client.GetJSON(ctx, "http://127.0.0.1:1/nothing", &out)
		assert.ErrorIs(t, err, ErrRemoteUnavailable)
		assert.False(t, errors.Is(err, ErrRemoteStatus))
	})

	t.Run("cancelled context is unavailable", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		var out map[string]any
		err := client.GetJSON(cancelled, api.server.URL+"/ok", &out)
		assert.ErrorIs(t, err, ErrRemoteUnavailable)
		assert.ErrorIs(t, err, context.Canceled)
	})

	assert.Equal(t, 4, testutil.CollectAndCount(metrics.RemoteLatency))
}

func TestRemoteOutcome(t *testing.T) {
	assert.Equal(t, "ok", remoteOutcome(nil))
	assert.Equal(t, "status", remoteOutcome(&RemoteStatusError{Code: 500}))
	assert.Equal(t, "decode", remoteOutcome(ErrRemoteDecode))
	assert.Equal(t, "unavailable", remoteOutcome(ErrRemoteUnavailable))
}
