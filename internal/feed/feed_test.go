package feed

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/esmatch/internal/cache"
	"github.com/rshade/esmatch/internal/match"
)

type fakeFetcher struct {
	payload json.RawMessage
	err     error
	calls   int
}

func (f *fakeFetcher) Fetch(_ context.Context, _ string) (json.RawMessage, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.payload, nil
}

// decodeNames treats the payload as a JSON array of match names.
func decodeNames(raw json.RawMessage) ([]match.Match, error) {
	var names []string
	if err := json.Unmarshal(raw, &names); err != nil {
		return nil, err
	}
	out := make([]match.Match, 0, len(names))
	for i, n := range names {
		out = append(out, match.Match{ID: i + 1, Name: n})
	}
	return out, nil
}

func newService(t *testing.T, f *fakeFetcher) *Service {
	t.Helper()
	store, err := cache.NewFileStore(t.TempDir())
	require.NoError(t, err)
	return NewService(cache.NewPolicy(store, f), decodeNames, time.Hour)
}

func TestLoad_FetchThenCache(t *testing.T) {
	f := &fakeFetcher{payload: json.RawMessage(`["A","B"]`)}
	svc := newService(t, f)
	ctx := context.Background()

	res, err := svc.Load(ctx, "/matches/upcoming", false)
	require.NoError(t, err)
	assert.False(t, res.FromCache)
	assert.False(t, res.Stale())
	assert.Equal(t, "/matches/upcoming", res.Feed)
	require.Len(t, res.Matches, 2)
	assert.Equal(t, "A", res.Matches[0].Name)

	res, err = svc.Load(ctx, "/matches/upcoming", false)
	require.NoError(t, err)
	assert.True(t, res.FromCache)
	assert.Equal(t, 1, f.calls)
}

func TestLoad_RefreshForcesFetch(t *testing.T) {
	f := &fakeFetcher{payload: json.RawMessage(`["A"]`)}
	svc := newService(t, f)
	ctx := context.Background()

	_, err := svc.Load(ctx, "/matches/upcoming", false)
	require.NoError(t, err)
	res, err := svc.Load(ctx, "/matches/upcoming", true)
	require.NoError(t, err)
	assert.False(t, res.FromCache)
	assert.Equal(t, 2, f.calls)
}

func TestLoad_FailureFallsBackToStoredSnapshot(t *testing.T) {
	f := &fakeFetcher{payload: json.RawMessage(`["A"]`)}
	svc := newService(t, f)
	ctx := context.Background()

	first, err := svc.Load(ctx, "/matches/upcoming", false)
	require.NoError(t, err)

	f.err = errors.New("503 Service Unavailable")
	res, err := svc.Load(ctx, "/matches/upcoming", true)
	require.NoError(t, err)
	assert.True(t, res.Stale())
	assert.True(t, res.FromCache)
	require.ErrorIs(t, res.FetchErr, f.err)
	require.Len(t, res.Matches, 1)
	assert.True(t, first.FetchedAt.Equal(res.FetchedAt))
}

func TestLoad_FailureWithoutSnapshot(t *testing.T) {
	boom := errors.New("connection refused")
	svc := newService(t, &fakeFetcher{err: boom})

	_, err := svc.Load(context.Background(), "/matches/running", false)
	require.ErrorIs(t, err, boom)
}

func TestLoad_UndecodablePayload(t *testing.T) {
	svc := newService(t, &fakeFetcher{payload: json.RawMessage(`{"not":"names"}`)})

	_, err := svc.Load(context.Background(), "/matches/past", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding snapshot /matches/past")
}

func TestCooldown(t *testing.T) {
	svc := NewService(nil, decodeNames, 5*time.Minute)
	assert.Equal(t, 5*time.Minute, svc.Cooldown())
}

func TestLoad_FailureWithMalformedSnapshot(t *testing.T) {
	dir := t.TempDir()
	store, err := cache.NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(store.Path("/matches/past"), []byte("garbage"), 0o600))

	boom := errors.New("timeout")
	svc := NewService(cache.NewPolicy(store, &fakeFetcher{err: boom}), decodeNames, time.Hour)

	_, err = svc.Load(context.Background(), "/matches/past", false)
	require.ErrorIs(t, err, boom)
}
