package repository

import (
	"github.com/finboard-io/engine/internal/models"
	"github.com/finboard-io/engine/pkg/database"
)

// GraphRepository has no resource-specific lookups; graphs carry no
// referential checks.
type GraphRepository interface {
	BaseRepository[models.Graph]
}

type graphRepository struct {
	BaseRepository[models.Graph]
}

func NewGraphRepository(db *database.DB) GraphRepository {
	return &graphRepository{BaseRepository: NewBaseRepository[models.Graph](db)}
}
