package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rshade/esmatch/internal/logging"
)

// Store is the snapshot persistence the policy depends on.
type Store interface {
	Read(key string) (Lookup, error)
	Write(key string, payload any) (*Snapshot, error)
}

// Fetcher retrieves the raw payload for a resource key from the remote source.
type Fetcher interface {
	Fetch(ctx context.Context, key string) (json.RawMessage, error)
}

// Result is what FetchIfNeeded hands back to callers.
type Result struct {
	Snapshot *Snapshot

	// FromCache is true when the stored snapshot was reused without a network call.
	FromCache bool
}

// Policy is a single-entry-per-key TTL cache in front of a Fetcher.
type Policy struct {
	store   Store
	fetcher Fetcher
	now     func() time.Time
}

// NewPolicy creates a freshness policy over store and fetcher.
func NewPolicy(store Store, fetcher Fetcher) *Policy {
	return &Policy{store: store, fetcher: fetcher, now: time.Now}
}

// FetchIfNeeded returns the stored snapshot for key while it is younger than
// cooldown. Otherwise (absent, malformed, or at least cooldown old) it fetches,
// writes and returns a new snapshot. A cooldown of zero always refetches.
//
// When the fetch fails nothing is written and any previous snapshot is left
// untouched; the fetch error is returned.
func (p *Policy) FetchIfNeeded(ctx context.Context, key string, cooldown time.Duration) (Result, error) {
	log := logging.FromContext(ctx)

	if cooldown < 0 {
		return Result{}, fmt.Errorf("%w: got %s", ErrInvalidCooldown, cooldown)
	}

	lookup, err := p.store.Read(key)
	if err != nil {
		return Result{}, err
	}

	switch lookup.State {
	case Found:
		now := p.now()
		age := lookup.Snapshot.Age(now)
		if lookup.Snapshot.IsFresh(now, cooldown) {
			log.Debug().Ctx(ctx).
				Str("component", "cache").
				Str("operation", "fetch_if_needed").
				Str("key", key).
				Dur("age", age).
				Dur("cooldown", cooldown).
				Msg("snapshot fresh, skipping fetch")
			return Result{Snapshot: lookup.Snapshot, FromCache: true}, nil
		}
		log.Debug().Ctx(ctx).
			Str("component", "cache").
			Str("operation", "fetch_if_needed").
			Str("key", key).
			Dur("age", age).
			Dur("cooldown", cooldown).
			Msg("snapshot stale")
	case Malformed:
		log.Warn().Ctx(ctx).
			Str("component", "cache").
			Str("operation", "fetch_if_needed").
			Str("key", key).
			Err(lookup.Err).
			Msg("snapshot malformed, refetching")
	case Absent:
		log.Debug().Ctx(ctx).
			Str("component", "cache").
			Str("operation", "fetch_if_needed").
			Str("key", key).
			Msg("no snapshot, fetching")
	}

	payload, err := p.fetcher.Fetch(ctx, key)
	if err != nil {
		log.Warn().Ctx(ctx).
			Str("component", "cache").
			Str("operation", "fetch_if_needed").
			Str("key", key).
			Err(err).
			Msg("fetch failed, snapshot left untouched")
		return Result{}, err
	}

	snap, err := p.store.Write(key, payload)
	if err != nil {
		return Result{}, fmt.Errorf("writing snapshot: %w", err)
	}

	log.Info().Ctx(ctx).
		Str("component", "cache").
		Str("operation", "fetch_if_needed").
		Str("key", key).
		Time("fetched_at", snap.FetchedAt).
		Int("bytes", len(snap.Data)).
		Msg("snapshot refreshed")
	return Result{Snapshot: snap}, nil
}

// Last returns whatever snapshot is stored for key regardless of age.
// It returns ErrSnapshotNotFound when none exists and a *ParseError when the
// file is malformed.
func (p *Policy) Last(key string) (*Snapshot, error) {
	lookup, err := p.store.Read(key)
	if err != nil {
		return nil, err
	}
	switch lookup.State {
	case Found:
		return lookup.Snapshot, nil
	case Malformed:
		return nil, lookup.Err
	default:
		return nil, ErrSnapshotNotFound
	}
}
