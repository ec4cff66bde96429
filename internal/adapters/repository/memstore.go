package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/okian/scoutrank/internal/domain/model"
	"github.com/okian/scoutrank/pkg/metrics"
)

const defaultMetricsUpdateInterval = 5 * time.Second

var _ Store = (*MemoryStore)(nil)

// MemoryStore is an in-memory Store. Results are cloned on the way in and
// out so callers never share slices with the store.
type MemoryStore struct {
	mu      sync.RWMutex
	byEvent map[string]model.PickListResult

	capacity              int
	metricsUpdateInterval time.Duration

	wg       sync.WaitGroup
	stopChan chan struct{}
	stopOnce sync.Once
}

// NewMemoryStore constructs a store and starts its metrics updater, which
// runs until ctx is done or Close is called.
func NewMemoryStore(ctx context.Context, opts ...Option) *MemoryStore {
	s := &MemoryStore{
		byEvent:               make(map[string]model.PickListResult),
		metricsUpdateInterval: defaultMetricsUpdateInterval,
		stopChan:              make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.startMetricsUpdater(ctx)
	return s
}

// Close stops the background goroutine.
func (s *MemoryStore) Close() error {
	s.stopOnce.Do(func() { close(s.stopChan) })
	s.wg.Wait()
	return nil
}

func normalizeKey(eventKey string) string {
	return strings.ToLower(strings.TrimSpace(eventKey))
}

// Save implements Store.Save.
func (s *MemoryStore) Save(ctx context.Context, result model.PickListResult) error {
	start := time.Now()
	defer func() {
		metrics.RecordRepositoryUpdateLatency(float64(time.Since(start).Microseconds()) / 1000)
	}()

	key := normalizeKey(result.EventKey)
	if key == "" {
		metrics.RecordErrorByComponent("repository", "invalid_key")
		return fmt.Errorf("%w: empty", ErrInvalidKey)
	}

	s.mu.Lock()
	if _, exists := s.byEvent[key]; !exists && s.capacity > 0 && len(s.byEvent) >= s.capacity {
		s.evictOldestLocked()
	}
	s.byEvent[key] = result.Clone()
	n := len(s.byEvent)
	s.mu.Unlock()

	metrics.UpdateStoredPickLists(n)
	return nil
}

func (s *MemoryStore) evictOldestLocked() {
	var oldestKey string
	var oldest time.Time
	for k, r := range s.byEvent {
		if oldestKey == "" || r.GeneratedAt.Before(oldest) || (r.GeneratedAt.Equal(oldest) && k < oldestKey) {
			oldestKey, oldest = k, r.GeneratedAt
		}
	}
	delete(s.byEvent, oldestKey)
}

// Get implements Store.Get.
func (s *MemoryStore) Get(ctx context.Context, eventKey string) (model.PickListResult, error) {
	start := time.Now()
	defer func() {
		metrics.RecordRepositoryQueryLatency(float64(time.Since(start).Microseconds()) / 1000)
	}()

	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.byEvent[normalizeKey(eventKey)]
	if !ok {
		metrics.RecordErrorByComponent("repository", "not_found")
		return model.PickListResult{}, fmt.Errorf("%w: %s", ErrNotFound, eventKey)
	}
	// SetPicked writes into the stored Teams array, so copy under the lock.
	return r.Clone(), nil
}

// List implements Store.List.
func (s *MemoryStore) List(ctx context.Context) ([]Summary, error) {
	start := time.Now()
	defer func() {
		metrics.RecordRepositoryQueryLatency(float64(time.Since(start).Microseconds()) / 1000)
	}()

	s.mu.RLock()
	out := make([]Summary, 0, len(s.byEvent))
	for _, r := range s.byEvent {
		sum := Summary{
			ID:          r.ID,
			EventKey:    r.EventKey,
			Strategy:    r.Strategy,
			GeneratedAt: r.GeneratedAt,
			Teams:       len(r.Teams),
		}
		for i := range r.Teams {
			if r.Teams[i].Picked {
				sum.Picked++
			}
		}
		out = append(out, sum)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return normalizeKey(out[i].EventKey) < normalizeKey(out[j].EventKey)
	})
	return out, nil
}

// SetPicked implements Store.SetPicked.
func (s *MemoryStore) SetPicked(ctx context.Context, eventKey string, team int, picked bool) (model.PickListTeam, error) {
	start := time.Now()
	defer func() {
		metrics.RecordRepositoryUpdateLatency(float64(time.Since(start).Microseconds()) / 1000)
	}()

	key := normalizeKey(eventKey)

	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.byEvent[key]
	if !ok {
		metrics.RecordErrorByComponent("repository", "not_found")
		return model.PickListTeam{}, fmt.Errorf("%w: %s", ErrNotFound, eventKey)
	}
	for i := range r.Teams {
		if r.Teams[i].TeamNumber != team {
			continue
		}
		// Teams shares its backing array with the stored value, so this
		// write lands in the map entry.
		r.Teams[i].Picked = picked
		t := r.Teams[i]
		t.Strengths = append([]string(nil), t.Strengths...)
		t.Weaknesses = append([]string(nil), t.Weaknesses...)
		t.Notes = append([]string(nil), t.Notes...)
		return t, nil
	}

	metrics.RecordErrorByComponent("repository", "team_not_found")
	return model.PickListTeam{}, fmt.Errorf("%w: team %d at %s", ErrTeamNotFound, team, eventKey)
}

// Count implements Store.Count.
func (s *MemoryStore) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byEvent)
}

func (s *MemoryStore) startMetricsUpdater(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.metricsUpdateInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopChan:
				return
			case <-ticker.C:
				metrics.UpdateStoredPickLists(s.Count(ctx))
			}
		}
	}()
}
