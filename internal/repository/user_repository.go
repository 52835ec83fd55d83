package repository

import (
	"context"

	"github.com/finboard-io/engine/internal/models"
	"github.com/finboard-io/engine/pkg/database"
)

type UserRepository interface {
	BaseRepository[models.User]
	GetByEmail(ctx context.Context, email string, dest *models.User) error
}

type userRepository struct {
	BaseRepository[models.User]
}

func NewUserRepository(db *database.DB) UserRepository {
	return &userRepository{BaseRepository: NewBaseRepository[models.User](db)}
}

func (r *userRepository) GetByEmail(ctx context.Context, email string, dest *models.User) error {
	return r.GetBy(ctx, "email", email, dest)
}
