// Package feed turns the freshness policy's raw snapshots into decoded match
// sets, falling back to the last stored snapshot when a refresh fails.
package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rshade/esmatch/internal/cache"
	"github.com/rshade/esmatch/internal/logging"
	"github.com/rshade/esmatch/internal/match"
)

// Policy is the part of cache.Policy the service needs.
type Policy interface {
	FetchIfNeeded(ctx context.Context, key string, cooldown time.Duration) (cache.Result, error)
	Last(key string) (*cache.Snapshot, error)
}

// DecodeFunc maps a raw payload into matches.
type DecodeFunc func(raw json.RawMessage) ([]match.Match, error)

// Result is a decoded match set for one feed.
type Result struct {
	Feed      string
	Matches   []match.Match
	FetchedAt time.Time
	FromCache bool

	// FetchErr is set when a refresh failed and Matches come from the
	// previously stored snapshot instead.
	FetchErr error
}

// Stale reports whether the result is fallback data after a failed refresh.
func (r Result) Stale() bool {
	return r.FetchErr != nil
}

// Service loads feeds through the freshness policy.
type Service struct {
	policy   Policy
	decode   DecodeFunc
	cooldown time.Duration
}

// NewService creates a Service. cooldown applies to every non-forced load.
func NewService(policy Policy, decode DecodeFunc, cooldown time.Duration) *Service {
	return &Service{policy: policy, decode: decode, cooldown: cooldown}
}

// Cooldown returns the configured cooldown.
func (s *Service) Cooldown() time.Duration {
	return s.cooldown
}

// Load returns the matches for key. refresh forces a fetch (cooldown 0).
//
// When the fetch fails and an earlier snapshot exists, that snapshot is
// decoded and returned with FetchErr set; the error is only returned when
// there is nothing to fall back to.
func (s *Service) Load(ctx context.Context, key string, refresh bool) (Result, error) {
	log := logging.FromContext(ctx)

	cooldown := s.cooldown
	if refresh {
		cooldown = 0
	}

	res, err := s.policy.FetchIfNeeded(ctx, key, cooldown)
	if err != nil {
		snap, lastErr := s.policy.Last(key)
		if lastErr != nil {
			if pe, ok := cache.AsParseError(lastErr); ok {
				log.Warn().Ctx(ctx).
					Str("component", "feed").
					Str("key", key).
					Str("path", pe.Path).
					Err(pe.Err).
					Msg("stored snapshot is malformed, nothing to fall back to")
			} else if !errors.Is(lastErr, cache.ErrSnapshotNotFound) {
				log.Warn().Ctx(ctx).
					Str("component", "feed").
					Str("key", key).
					Err(lastErr).
					Msg("no usable fallback snapshot")
			}
			return Result{}, err
		}
		out, decodeErr := s.result(key, snap)
		if decodeErr != nil {
			return Result{}, err
		}
		out.FromCache = true
		out.FetchErr = err
		log.Warn().Ctx(ctx).
			Str("component", "feed").
			Str("key", key).
			Time("fetched_at", snap.FetchedAt).
			Err(err).
			Msg("refresh failed, using stored snapshot")
		return out, nil
	}

	out, err := s.result(key, res.Snapshot)
	if err != nil {
		return Result{}, err
	}
	out.FromCache = res.FromCache
	return out, nil
}

func (s *Service) result(key string, snap *cache.Snapshot) (Result, error) {
	matches, err := s.decode(snap.Data)
	if err != nil {
		return Result{}, fmt.Errorf("decoding snapshot %s: %w", key, err)
	}
	return Result{Feed: key, Matches: matches, FetchedAt: snap.FetchedAt}, nil
}
