package repository

import (
	"context"

	"github.com/finboard-io/engine/internal/models"
	"github.com/finboard-io/engine/pkg/database"
)

type ProjectRepository interface {
	BaseRepository[models.Project]
	ListByOwner(ctx context.Context, ownerID int64) ([]models.Project, error)
}

type projectRepository struct {
	BaseRepository[models.Project]
}

func NewProjectRepository(db *database.DB) ProjectRepository {
	return &projectRepository{BaseRepository: NewBaseRepository[models.Project](db)}
}

func (r *projectRepository) ListByOwner(ctx context.Context, ownerID int64) ([]models.Project, error) {
	return r.ListBy(ctx, "owner_id", ownerID)
}
