package repository

import (
	"context"
	"testing"

	"github.com/finboard-io/engine/internal/models"
	"github.com/finboard-io/engine/pkg/database"
	appErr "github.com/finboard-io/engine/pkg/errors"
)

// A zero-value database.DB behaves exactly like a process started
// without credentials: no handle, every operation degrades.

func TestUserRepositoryUnavailable(t *testing.T) {
	repo := NewUserRepository(new(database.DB))
	ctx := context.Background()

	var u models.User
	if err := repo.Create(ctx, &models.User{Email: "a@x.com", Name: "A"}); !appErr.IsCode(err, appErr.CodeUnavailable) {
		t.Fatalf("expected unavailable on create, got %v", err)
	}
	if err := repo.GetByID(ctx, int64(1), &u); !appErr.IsCode(err, appErr.CodeUnavailable) {
		t.Fatalf("expected unavailable on get, got %v", err)
	}
	if err := repo.GetByEmail(ctx, "a@x.com", &u); !appErr.IsCode(err, appErr.CodeUnavailable) {
		t.Fatalf("expected unavailable on get by email, got %v", err)
	}
	if err := repo.UpdateFields(ctx, int64(1), map[string]any{"name": "B"}, &u); !appErr.IsCode(err, appErr.CodeUnavailable) {
		t.Fatalf("expected unavailable on update, got %v", err)
	}
	if err := repo.Delete(ctx, int64(1)); !appErr.IsCode(err, appErr.CodeUnavailable) {
		t.Fatalf("expected unavailable on delete, got %v", err)
	}
}

func TestListUnavailableIsTyped(t *testing.T) {
	ctx := context.Background()

	users, err := NewUserRepository(new(database.DB)).List(ctx)
	if !appErr.IsCode(err, appErr.CodeUnavailable) {
		t.Fatalf("expected unavailable, got %v", err)
	}
	if len(users) != 0 {
		t.Fatal("no records expected from a disconnected handle")
	}

	projects, err := NewProjectRepository(new(database.DB)).ListByOwner(ctx, 1)
	if !appErr.IsCode(err, appErr.CodeUnavailable) {
		t.Fatalf("expected unavailable, got %v", err)
	}
	if len(projects) != 0 {
		t.Fatal("no records expected from a disconnected handle")
	}
}

func TestEventsUnavailableIsTypedNotString(t *testing.T) {
	repo := NewEventRepository(new(database.DB))
	events, err := repo.ListRecent(context.Background(), 5)
	if events != nil {
		t.Fatal("error results must not carry data")
	}
	// The failure must be a coded error, never a sentinel value a caller
	// could mistake for event data.
	if !appErr.IsCode(err, appErr.CodeUnavailable) {
		t.Fatalf("expected typed unavailable error, got %v", err)
	}
}

func TestGraphRepositoryUnavailable(t *testing.T) {
	repo := NewGraphRepository(new(database.DB))
	if err := repo.Create(context.Background(), &models.Graph{Type: "bar", Title: "Revenue"}); !appErr.IsCode(err, appErr.CodeUnavailable) {
		t.Fatalf("expected unavailable on create, got %v", err)
	}
}
