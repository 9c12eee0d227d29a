package fetch_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carlosfiori/conversor-clima/internal/fetch"
)

func TestController_Execute(t *testing.T) {
	tests := []struct {
		name       string
		fn         fetch.Func[string, int]
		wantStatus fetch.Status
		wantResult int
		wantErr    string
	}{
		{
			name:       "success stores result",
			fn:         func(ctx context.Context, q string) (int, error) { return len(q), nil },
			wantStatus: fetch.StatusSuccess,
			wantResult: 5,
		},
		{
			name: "transport error shows fixed message",
			fn: func(ctx context.Context, q string) (int, error) {
				return 0, fetch.Transport("could not obtain exchange rate", errors.New("status 503"))
			},
			wantStatus: fetch.StatusError,
			wantErr:    "could not obtain exchange rate",
		},
		{
			name: "data error shows its own message",
			fn: func(ctx context.Context, q string) (int, error) {
				return 0, fetch.Data("conversion unavailable right now", nil)
			},
			wantStatus: fetch.StatusError,
			wantErr:    "conversion unavailable right now",
		},
		{
			name:       "unclassified error falls back to unknown",
			fn:         func(ctx context.Context, q string) (int, error) { return 0, errors.New("boom") },
			wantStatus: fetch.StatusError,
			wantErr:    fetch.UnknownMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := fetch.New("test", tt.fn)
			state := c.Execute(context.Background(), "hello")

			assert.Equal(t, tt.wantStatus, state.Status)
			assert.False(t, state.Loading)
			assert.Equal(t, tt.wantErr, state.Error)
			if tt.wantErr == "" {
				require.NotNil(t, state.Result)
				assert.Equal(t, tt.wantResult, *state.Result)
			} else {
				assert.Nil(t, state.Result)
			}
			assert.Equal(t, state, c.Snapshot())
		})
	}
}

func TestController_ValidationSkipsRequest(t *testing.T) {
	var calls int32
	c := fetch.New("test",
		func(ctx context.Context, q string) (int, error) {
			atomic.AddInt32(&calls, 1)
			return 1, nil
		},
		fetch.WithValidator[string, int](func(q string) error {
			switch {
			case q == "":
				return fetch.ErrSkip
			case strings.HasPrefix(q, "-"):
				return fetch.Validation("enter a valid amount")
			}
			return nil
		}),
	)

	state := c.Execute(context.Background(), "ok")
	require.Equal(t, fetch.StatusSuccess, state.Status)

	state = c.Execute(context.Background(), "")
	assert.Equal(t, fetch.StatusSuccess, state.Status, "skip leaves state untouched")

	state = c.Execute(context.Background(), "-1")
	assert.Equal(t, fetch.StatusError, state.Status)
	assert.Equal(t, "enter a valid amount", state.Error)
	assert.Nil(t, state.Result)
	assert.False(t, state.Loading)

	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestController_LoadingWhileInFlight(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	c := fetch.New("test", func(ctx context.Context, q string) (int, error) {
		close(started)
		<-release
		return 7, nil
	})

	done := make(chan fetch.State[int])
	go func() { done <- c.Execute(context.Background(), "q") }()

	<-started
	inFlight := c.Snapshot()
	assert.True(t, inFlight.Loading)
	assert.Equal(t, fetch.StatusLoading, inFlight.Status)
	assert.Nil(t, inFlight.Result)
	assert.Empty(t, inFlight.Error)

	close(release)
	final := <-done
	assert.False(t, final.Loading)
	assert.Equal(t, 7, *final.Result)
}

func TestController_StaleResponseDiscarded(t *testing.T) {
	slowStarted := make(chan struct{})
	var successes []string
	var mu sync.Mutex

	c := fetch.New("test",
		func(ctx context.Context, q string) (string, error) {
			if q == "slow" {
				close(slowStarted)
				// Ignores cancellation on purpose so it resolves after the fast one.
				time.Sleep(50 * time.Millisecond)
				return "slow result", nil
			}
			return "fast result", nil
		},
		fetch.WithOnSuccess[string, string](func(ctx context.Context, q, r string) {
			mu.Lock()
			defer mu.Unlock()
			successes = append(successes, q)
		}),
	)

	slowDone := make(chan fetch.State[string])
	go func() { slowDone <- c.Execute(context.Background(), "slow") }()
	<-slowStarted

	fast := c.Execute(context.Background(), "fast")
	require.Equal(t, fetch.StatusSuccess, fast.Status)
	assert.Equal(t, "fast result", *fast.Result)

	stale := <-slowDone
	assert.Equal(t, "fast result", *stale.Result, "stale resolution returns the newer state")
	assert.Equal(t, "fast result", *c.Snapshot().Result)
	assert.Equal(t, fast.Generation, c.Snapshot().Generation)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"fast"}, successes)
}

func TestController_SupersededRequestIsCancelled(t *testing.T) {
	firstStarted := make(chan struct{})
	firstErr := make(chan error, 1)

	c := fetch.New("test", func(ctx context.Context, q string) (int, error) {
		if q == "first" {
			close(firstStarted)
			<-ctx.Done()
			firstErr <- ctx.Err()
			return 0, ctx.Err()
		}
		return 2, nil
	})

	go c.Execute(context.Background(), "first")
	<-firstStarted

	state := c.Execute(context.Background(), "second")
	assert.Equal(t, 2, *state.Result)

	select {
	case err := <-firstErr:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("superseded request was not cancelled")
	}

	// The cancelled request must not turn the visible state into an error.
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, fetch.StatusSuccess, c.Snapshot().Status)
}

func TestController_ValidationSupersedesInFlight(t *testing.T) {
	started := make(chan struct{})
	c := fetch.New("test",
		func(ctx context.Context, q string) (int, error) {
			close(started)
			<-ctx.Done()
			return 0, ctx.Err()
		},
		fetch.WithValidator[string, int](func(q string) error {
			if q == "bad" {
				return fetch.Validation("enter a valid amount")
			}
			return nil
		}),
	)

	done := make(chan struct{})
	go func() {
		c.Execute(context.Background(), "good")
		close(done)
	}()
	<-started

	state := c.Execute(context.Background(), "bad")
	assert.Equal(t, "enter a valid amount", state.Error)

	<-done
	assert.Equal(t, "enter a valid amount", c.Snapshot().Error)
	assert.False(t, c.Snapshot().Loading)
}
