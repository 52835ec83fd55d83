package repository

import (
	"context"

	"github.com/finboard-io/engine/internal/models"
	"github.com/finboard-io/engine/pkg/database"
	appErr "github.com/finboard-io/engine/pkg/errors"
)

// EventRepository is read-only: events are ingested out of band and only
// queried here as most-recent-N.
type EventRepository interface {
	ListRecent(ctx context.Context, limit int) ([]models.Event, error)
}

type eventRepository struct {
	db *database.DB
}

func NewEventRepository(db *database.DB) EventRepository {
	return &eventRepository{db: db}
}

// ListRecent returns the top N events ordered by time descending. Ties
// within equal timestamps keep the backend's default order.
func (r *eventRepository) ListRecent(ctx context.Context, limit int) ([]models.Event, error) {
	if !r.db.Connected() {
		return nil, appErr.New(appErr.CodeUnavailable, "database backend not available")
	}
	var out []models.Event
	if err := r.db.Gorm().WithContext(ctx).Order("time DESC").Limit(limit).Find(&out).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "query events failed")
	}
	return out, nil
}
