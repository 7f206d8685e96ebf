package cache

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotJSON(t *testing.T) {
	fetched := time.Date(2026, 3, 1, 12, 0, 0, 123456789, time.UTC)
	snap := Snapshot{Key: "/matches/upcoming", FetchedAt: fetched, Data: json.RawMessage(`[{"id":1}]`)}

	encoded, err := json.Marshal(snap)
	require.NoError(t, err)

	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(encoded, &fields))
	assert.Len(t, fields, 2)
	assert.Contains(t, fields, "fetchedAt")
	assert.Contains(t, fields, "data")

	var decoded Snapshot
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	assert.True(t, fetched.Equal(decoded.FetchedAt))
	assert.JSONEq(t, `[{"id":1}]`, string(decoded.Data))
	assert.Empty(t, decoded.Key)
}

func TestSnapshotUnmarshalRejectsIncompleteEnvelope(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want error
	}{
		{name: "missing timestamp", raw: `{"data":[]}`, want: errMissingTimestamp},
		{name: "missing data", raw: `{"fetchedAt":"2026-03-01T12:00:00Z"}`, want: errMissingData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Snapshot
			err := json.Unmarshal([]byte(tt.raw), &s)
			require.ErrorIs(t, err, tt.want)
		})
	}

	var s Snapshot
	require.Error(t, json.Unmarshal([]byte(`{"fetchedAt":"yesterday","data":[]}`), &s))
}

func TestSnapshotFreshness(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	snap := &Snapshot{FetchedAt: now.Add(-5 * time.Minute)}

	assert.Equal(t, 5*time.Minute, snap.Age(now))
	assert.True(t, snap.IsFresh(now, 10*time.Minute))
	assert.False(t, snap.IsFresh(now, 5*time.Minute))
	assert.False(t, snap.IsFresh(now, 0))

	// a timestamp from the future is still stale with a zero cooldown
	future := &Snapshot{FetchedAt: now.Add(time.Hour)}
	assert.False(t, future.IsFresh(now, 0))
}
