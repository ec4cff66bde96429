// Package repository defines the pick-list store interface and errors.
package repository

import (
	"context"
	"time"

	"github.com/okian/scoutrank/internal/domain/model"
)

// Summary is the list view of a stored pick list.
type Summary struct {
	ID          string    `json:"id"`
	EventKey    string    `json:"event_key"`
	Strategy    string    `json:"strategy"`
	GeneratedAt time.Time `json:"generated_at"`
	Teams       int       `json:"teams"`
	Picked      int       `json:"picked"`
}

// Store keeps the latest pick list per event.
type Store interface {
	// Save stores result, replacing any earlier list for the same event.
	Save(ctx context.Context, result model.PickListResult) error

	// Get returns the stored list for an event.
	// Returns ErrNotFound if the event has none.
	Get(ctx context.Context, eventKey string) (model.PickListResult, error)

	// List returns summaries ordered by event key.
	List(ctx context.Context) ([]Summary, error)

	// SetPicked flips a team's picked flag without touching rank or score.
	SetPicked(ctx context.Context, eventKey string, team int, picked bool) (model.PickListTeam, error)

	// Count returns the number of stored pick lists.
	Count(ctx context.Context) int
}
