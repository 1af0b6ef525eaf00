package service

import (
	"context"
	"fmt"
	"time"

	"github.com/pkordes/circlehub/internal/catalog"
	"github.com/pkordes/circlehub/internal/domain"
	"github.com/pkordes/circlehub/internal/search"
)

// loadTimeout bounds a single provider call.
const loadTimeout = 30 * time.Second

// snapshot is one loaded generation of the club data.
type snapshot struct {
	cat *catalog.Catalog
	idx *search.Index

	loadedAt time.Time
	// checkedAt is the last load attempt, successful or not. A failed refresh
	// bumps it so the provider is retried once per TTL rather than per request.
	checkedAt time.Time
}

// current returns a snapshot no older than the TTL, loading one if needed.
// Concurrent loads are collapsed into one provider call.
func (s *ClubService) current(ctx context.Context) (*snapshot, error) {
	s.mu.RLock()
	snap := s.snap
	s.mu.RUnlock()

	if snap != nil && s.fresh(snap) {
		return snap, nil
	}

	v, err, _ := s.group.Do("catalog", func() (any, error) {
		return s.sharedRefresh(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*snapshot), nil
}

// sharedRefresh runs refresh on behalf of every caller waiting on the
// singleflight group, so it must not inherit the cancellation of whichever
// request happened to trigger it.
func (s *ClubService) sharedRefresh(ctx context.Context) (*snapshot, error) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), loadTimeout)
	defer cancel()
	return s.refresh(ctx)
}

// Load forces a reload from the provider. The server calls it at startup so a
// broken data source is reported before the first request.
func (s *ClubService) Load(ctx context.Context) error {
	_, err, _ := s.group.Do("catalog", func() (any, error) {
		return s.sharedRefresh(ctx)
	})
	return err
}

func (s *ClubService) fresh(snap *snapshot) bool {
	return s.ttl <= 0 || s.now().Sub(snap.checkedAt) < s.ttl
}

// refresh loads a new snapshot. On failure the previous snapshot, if any,
// keeps serving.
func (s *ClubService) refresh(ctx context.Context) (*snapshot, error) {
	next, err := s.build(ctx)
	if err == nil {
		s.mu.Lock()
		s.snap = next
		s.mu.Unlock()
		s.logger.Info("catalog loaded", "clubs", next.cat.Len())
		return next, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snap == nil {
		s.logger.Error("catalog load failed", "error", err)
		return nil, fmt.Errorf("service.ClubService.refresh: %w: %w", domain.ErrUnavailable, err)
	}

	s.logger.Warn("catalog refresh failed; serving previous data",
		"error", err,
		"loaded_at", s.snap.loadedAt,
	)
	stale := *s.snap
	stale.checkedAt = s.now()
	s.snap = &stale
	return s.snap, nil
}

func (s *ClubService) build(ctx context.Context) (*snapshot, error) {
	clubs, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	cat, err := catalog.New(clubs, s.catalogOpts...)
	if err != nil {
		return nil, err
	}
	now := s.now()
	return &snapshot{
		cat:       cat,
		idx:       search.NewIndex(cat),
		loadedAt:  now,
		checkedAt: now,
	}, nil
}
