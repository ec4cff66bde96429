package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/okian/scoutrank/internal/domain/model"
)

func sampleResult(event string, at time.Time, teams ...int) model.PickListResult {
	r := model.PickListResult{ID: "id-" + event, EventKey: event, Strategy: "balanced", GeneratedAt: at}
	for i, n := range teams {
		r.Teams = append(r.Teams, model.PickListTeam{
			RawTeamMetrics: model.RawTeamMetrics{TeamNumber: n, Notes: []string{"note"}},
			Rank:           i + 1,
			CompositeScore: 1 - float64(i)/10,
			Strengths:      []string{"Skilled driver"},
		})
	}
	return r
}

func TestMemoryStore_SaveGet(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(ctx)
	defer store.Close()

	if count := store.Count(ctx); count != 0 {
		t.Errorf("expected count 0, got %d", count)
	}

	if _, err := store.Get(ctx, "2026casj"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	now := time.Now()
	if err := store.Save(ctx, sampleResult("2026casj", now, 254, 1678)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := store.Get(ctx, " 2026CASJ ")
	if err != nil {
		t.Fatalf("lookup should ignore case and spaces: %v", err)
	}
	if len(got.Teams) != 2 || got.Teams[0].TeamNumber != 254 {
		t.Fatalf("unexpected teams %+v", got.Teams)
	}

	// Replacing keeps one entry per event.
	if err := store.Save(ctx, sampleResult("2026casj", now.Add(time.Minute), 971)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count := store.Count(ctx); count != 1 {
		t.Errorf("expected count 1, got %d", count)
	}
	got, _ = store.Get(ctx, "2026casj")
	if got.Teams[0].TeamNumber != 971 {
		t.Errorf("expected replacement list, got %+v", got.Teams)
	}

	if err := store.Save(ctx, sampleResult("  ", now)); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("expected ErrInvalidKey, got %v", err)
	}
}

func TestMemoryStore_Isolation(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(ctx)
	defer store.Close()

	in := sampleResult("2026txhou", time.Now(), 118, 148)
	if err := store.Save(ctx, in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	in.Teams[0].Strengths[0] = "mutated"

	out, _ := store.Get(ctx, "2026txhou")
	if out.Teams[0].Strengths[0] != "Skilled driver" {
		t.Errorf("saved value was mutated through the caller's slice")
	}
	out.Teams[0].Picked = true

	again, _ := store.Get(ctx, "2026txhou")
	if again.Teams[0].Picked {
		t.Errorf("stored value was mutated through a returned slice")
	}
}

func TestMemoryStore_SetPicked(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(ctx)
	defer store.Close()

	if err := store.Save(ctx, sampleResult("2026mimil", time.Now(), 33, 67, 217)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	team, err := store.SetPicked(ctx, "2026mimil", 67, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !team.Picked || team.Rank != 2 {
		t.Errorf("expected picked team at rank 2, got %+v", team)
	}

	got, _ := store.Get(ctx, "2026mimil")
	if !got.Teams[1].Picked || got.Teams[1].CompositeScore != 0.9 || got.Teams[1].Rank != 2 {
		t.Errorf("picking must not change rank or score: %+v", got.Teams[1])
	}

	summaries, _ := store.List(ctx)
	if len(summaries) != 1 || summaries[0].Picked != 1 || summaries[0].Teams != 3 {
		t.Errorf("unexpected summaries %+v", summaries)
	}

	if _, err := store.SetPicked(ctx, "2026mimil", 67, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ = store.Get(ctx, "2026mimil")
	if got.Teams[1].Picked {
		t.Errorf("expected team to be unpicked")
	}

	if _, err := store.SetPicked(ctx, "2026mimil", 9999, true); !errors.Is(err, ErrTeamNotFound) {
		t.Errorf("expected ErrTeamNotFound, got %v", err)
	}
	if _, err := store.SetPicked(ctx, "2026nope", 67, true); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStore_ListOrderAndCapacity(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(ctx, WithCapacity(2))
	defer store.Close()

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i, ev := range []string{"2026wasno", "2026azva", "2026orore"} {
		if err := store.Save(ctx, sampleResult(ev, base.Add(time.Duration(i)*time.Hour), 1)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	summaries, err := store.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected capacity to hold 2 lists, got %d", len(summaries))
	}
	if summaries[0].EventKey != "2026azva" || summaries[1].EventKey != "2026orore" {
		t.Errorf("expected the oldest list evicted and keys sorted, got %+v", summaries)
	}
}

func TestMemoryStore_Concurrency(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(ctx, WithMetricsUpdateInterval(time.Millisecond))
	defer store.Close()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ev := fmt.Sprintf("2026ev%d", i%4)
			for j := 0; j < 50; j++ {
				_ = store.Save(ctx, sampleResult(ev, time.Now(), 1, 2, 3))
				_, _ = store.SetPicked(ctx, ev, 2, j%2 == 0)
				_, _ = store.Get(ctx, ev)
				_, _ = store.List(ctx)
			}
		}(i)
	}
	wg.Wait()

	if count := store.Count(ctx); count != 4 {
		t.Errorf("expected 4 events, got %d", count)
	}
}

func TestMemoryStore_GetWhilePicking(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(ctx)
	defer store.Close()

	if err := store.Save(ctx, sampleResult("2026casj", time.Now(), 1, 2, 3)); err != nil {
		t.Fatalf("save: %v", err)
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for j := 0; j < 2000; j++ {
			if _, err := store.SetPicked(ctx, "2026casj", 2, j%2 == 0); err != nil {
				t.Errorf("set picked: %v", err)
				return
			}
		}
	}()
	go func() {
		defer wg.Done()
		for j := 0; j < 2000; j++ {
			got, err := store.Get(ctx, "2026casj")
			if err != nil {
				t.Errorf("get: %v", err)
				return
			}
			if len(got.Teams) != 3 {
				t.Errorf("expected 3 teams, got %d", len(got.Teams))
				return
			}
		}
	}()
	wg.Wait()
}

func TestMemoryStore_CloseIsIdempotent(t *testing.T) {
	store := NewMemoryStore(context.Background())
	if err := store.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("unexpected error on second close: %v", err)
	}
}
