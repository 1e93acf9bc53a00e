package spotrac

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nfl-analytics/dead-money-pipeline/internal/domain/rawbatch"
	"github.com/nfl-analytics/dead-money-pipeline/internal/platform/logging"
	"github.com/nfl-analytics/dead-money-pipeline/internal/platform/resilience"
	"github.com/nfl-analytics/dead-money-pipeline/internal/usecase"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string, retries int, breaker resilience.BreakerConfig) *Client {
	return NewClient(ClientConfig{
		BaseURL:        baseURL,
		Timeout:        2 * time.Second,
		MaxRetries:     retries,
		Logger:         logging.NewNop(),
		CircuitBreaker: breaker,
		Now:            func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) },
	})
}

func TestListBatchesFetchesAndParses(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/dead-money/export/2023.csv":
			_, _ = w.Write([]byte("Player,Team,Year,Dead_Cap_Millions\nRussell Wilson,DEN,2023,35.4\n"))
		case "/dead-money/export/2024.csv":
			w.WriteHeader(http.StatusNotFound)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusBadRequest)
		}
	}))
	defer server.Close()

	client := newTestClient(server.URL, 0, resilience.BreakerConfig{})
	batches, err := client.ListBatches(context.Background(), rawbatch.KindPlayerDeadMoney, []int{2023, 2024})
	require.NoError(t, err)
	require.Len(t, batches, 1, "a 404 period is skipped, not an error")

	batch := batches[0]
	require.Equal(t, rawbatch.KindPlayerDeadMoney, batch.Kind)
	require.Equal(t, 2023, batch.Period)
	require.Equal(t, []string{"player", "team", "year", "dead_cap_millions"}, batch.Columns)
	require.Equal(t, [][]string{{"Russell Wilson", "DEN", "2023", "35.4"}}, batch.Rows)
	require.Equal(t, time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC), batch.RetrievedAt)
}

func TestListBatchesRetriesTransientStatus(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("Team_Code,Year,Dead_Money_Millions\nDEN,2023,89.1\n"))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 2, resilience.BreakerConfig{})
	batches, err := client.ListBatches(context.Background(), rawbatch.KindTeamCap, []int{2023})
	require.NoError(t, err)
	require.Len(t, batches, 1)
	require.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

func TestListBatchesPermanentStatusFails(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := newTestClient(server.URL, 3, resilience.BreakerConfig{})
	_, err := client.ListBatches(context.Background(), rawbatch.KindTeamCap, []int{2023})
	require.Error(t, err)
	require.EqualValues(t, 1, atomic.LoadInt32(&calls), "non-retryable status must not be retried")
}

func TestListBatchesCircuitOpens(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newTestClient(server.URL, 0, resilience.BreakerConfig{
		Enabled:          true,
		FailureThreshold: 1,
		OpenTimeout:      time.Minute,
		HalfOpenMaxReq:   1,
	})

	_, err := client.ListBatches(context.Background(), rawbatch.KindTeamCap, []int{2023})
	require.Error(t, err)

	_, err = client.ListBatches(context.Background(), rawbatch.KindTeamCap, []int{2023})
	require.True(t, errors.Is(err, usecase.ErrDependencyUnavailable), "open circuit must short-circuit the next call")
}
