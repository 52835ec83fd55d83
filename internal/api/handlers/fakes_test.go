package handlers

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/finboard-io/engine/internal/models"
	appErr "github.com/finboard-io/engine/pkg/errors"
)

// In-memory repository fakes. Setting failWith makes every operation
// return that error, simulating a disconnected or failing backend.

type fakeUserRepo struct {
	users       map[int64]models.User
	nextID      int64
	failWith    error
	updateCalls int
	deleteCalls int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]models.User{}, nextID: 1}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *models.User) error {
	if f.failWith != nil {
		return f.failWith
	}
	u.ID = f.nextID
	f.nextID++
	u.CreatedAt = time.Now().UTC()
	f.users[u.ID] = *u
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id any, dest *models.User) error {
	if f.failWith != nil {
		return f.failWith
	}
	u, ok := f.users[id.(int64)]
	if !ok {
		return appErr.New(appErr.CodeNotFound, "entity not found")
	}
	*dest = u
	return nil
}

func (f *fakeUserRepo) GetBy(ctx context.Context, field string, value any, dest *models.User) error {
	if f.failWith != nil {
		return f.failWith
	}
	if field == "email" {
		for _, u := range f.users {
			if u.Email == value.(string) {
				*dest = u
				return nil
			}
		}
	}
	return appErr.New(appErr.CodeNotFound, "entity not found")
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string, dest *models.User) error {
	return f.GetBy(ctx, "email", email, dest)
}

func (f *fakeUserRepo) List(ctx context.Context) ([]models.User, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	out := make([]models.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeUserRepo) ListBy(ctx context.Context, field string, value any) ([]models.User, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return nil, nil
}

func (f *fakeUserRepo) UpdateFields(ctx context.Context, id any, fields map[string]any, dest *models.User) error {
	f.updateCalls++
	if f.failWith != nil {
		return f.failWith
	}
	u, ok := f.users[id.(int64)]
	if !ok {
		return appErr.New(appErr.CodeNotFound, "entity not found")
	}
	if v, ok := fields["email"]; ok {
		u.Email = v.(string)
	}
	if v, ok := fields["name"]; ok {
		u.Name = v.(string)
	}
	f.users[u.ID] = u
	*dest = u
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id any) error {
	f.deleteCalls++
	if f.failWith != nil {
		return f.failWith
	}
	if _, ok := f.users[id.(int64)]; !ok {
		return appErr.New(appErr.CodeNotFound, "entity not found")
	}
	delete(f.users, id.(int64))
	return nil
}

type fakeProjectRepo struct {
	projects    map[int64]models.Project
	nextID      int64
	failWith    error
	updateCalls int
	deleteCalls int
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{projects: map[int64]models.Project{}, nextID: 1}
}

func (f *fakeProjectRepo) Create(ctx context.Context, p *models.Project) error {
	if f.failWith != nil {
		return f.failWith
	}
	p.ID = f.nextID
	f.nextID++
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = p.CreatedAt
	f.projects[p.ID] = *p
	return nil
}

func (f *fakeProjectRepo) GetByID(ctx context.Context, id any, dest *models.Project) error {
	if f.failWith != nil {
		return f.failWith
	}
	p, ok := f.projects[id.(int64)]
	if !ok {
		return appErr.New(appErr.CodeNotFound, "entity not found")
	}
	*dest = p
	return nil
}

func (f *fakeProjectRepo) GetBy(ctx context.Context, field string, value any, dest *models.Project) error {
	return appErr.New(appErr.CodeNotFound, "entity not found")
}

func (f *fakeProjectRepo) List(ctx context.Context) ([]models.Project, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	out := make([]models.Project, 0, len(f.projects))
	for _, p := range f.projects {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeProjectRepo) ListBy(ctx context.Context, field string, value any) ([]models.Project, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	var out []models.Project
	if field == "owner_id" {
		for _, p := range f.projects {
			if p.OwnerID == value.(int64) {
				out = append(out, p)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeProjectRepo) ListByOwner(ctx context.Context, ownerID int64) ([]models.Project, error) {
	return f.ListBy(ctx, "owner_id", ownerID)
}

func (f *fakeProjectRepo) UpdateFields(ctx context.Context, id any, fields map[string]any, dest *models.Project) error {
	f.updateCalls++
	if f.failWith != nil {
		return f.failWith
	}
	p, ok := f.projects[id.(int64)]
	if !ok {
		return appErr.New(appErr.CodeNotFound, "entity not found")
	}
	if v, ok := fields["title"]; ok {
		p.Title = v.(string)
	}
	if v, ok := fields["description"]; ok {
		p.Description = v.(string)
	}
	p.UpdatedAt = time.Now().UTC()
	f.projects[p.ID] = p
	*dest = p
	return nil
}

func (f *fakeProjectRepo) Delete(ctx context.Context, id any) error {
	f.deleteCalls++
	if f.failWith != nil {
		return f.failWith
	}
	if _, ok := f.projects[id.(int64)]; !ok {
		return appErr.New(appErr.CodeNotFound, "entity not found")
	}
	delete(f.projects, id.(int64))
	return nil
}

type fakeGraphRepo struct {
	graphs      map[uuid.UUID]models.Graph
	failWith    error
	deleteCalls int
}

func newFakeGraphRepo() *fakeGraphRepo {
	return &fakeGraphRepo{graphs: map[uuid.UUID]models.Graph{}}
}

func (f *fakeGraphRepo) Create(ctx context.Context, g *models.Graph) error {
	if f.failWith != nil {
		return f.failWith
	}
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	g.CreatedAt = time.Now().UTC()
	g.UpdatedAt = g.CreatedAt
	f.graphs[g.ID] = *g
	return nil
}

func (f *fakeGraphRepo) GetByID(ctx context.Context, id any, dest *models.Graph) error {
	if f.failWith != nil {
		return f.failWith
	}
	g, ok := f.graphs[id.(uuid.UUID)]
	if !ok {
		return appErr.New(appErr.CodeNotFound, "entity not found")
	}
	*dest = g
	return nil
}

func (f *fakeGraphRepo) GetBy(ctx context.Context, field string, value any, dest *models.Graph) error {
	return appErr.New(appErr.CodeNotFound, "entity not found")
}

func (f *fakeGraphRepo) List(ctx context.Context) ([]models.Graph, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	out := make([]models.Graph, 0, len(f.graphs))
	for _, g := range f.graphs {
		out = append(out, g)
	}
	return out, nil
}

func (f *fakeGraphRepo) ListBy(ctx context.Context, field string, value any) ([]models.Graph, error) {
	return nil, nil
}

func (f *fakeGraphRepo) UpdateFields(ctx context.Context, id any, fields map[string]any, dest *models.Graph) error {
	if f.failWith != nil {
		return f.failWith
	}
	g, ok := f.graphs[id.(uuid.UUID)]
	if !ok {
		return appErr.New(appErr.CodeNotFound, "entity not found")
	}
	if v, ok := fields["type"]; ok {
		g.Type = v.(string)
	}
	if v, ok := fields["title"]; ok {
		g.Title = v.(string)
	}
	if v, ok := fields["query"]; ok {
		g.Query = v.(string)
	}
	if v, ok := fields["attributes"]; ok {
		g.Attributes = v.(datatypes.JSON)
	}
	g.UpdatedAt = time.Now().UTC()
	f.graphs[g.ID] = g
	*dest = g
	return nil
}

func (f *fakeGraphRepo) Delete(ctx context.Context, id any) error {
	f.deleteCalls++
	if f.failWith != nil {
		return f.failWith
	}
	if _, ok := f.graphs[id.(uuid.UUID)]; !ok {
		return appErr.New(appErr.CodeNotFound, "entity not found")
	}
	delete(f.graphs, id.(uuid.UUID))
	return nil
}

type fakeEventRepo struct {
	events    []models.Event
	failWith  error
	lastLimit int
}

func (f *fakeEventRepo) ListRecent(ctx context.Context, limit int) ([]models.Event, error) {
	f.lastLimit = limit
	if f.failWith != nil {
		return nil, f.failWith
	}
	out := make([]models.Event, len(f.events))
	copy(out, f.events)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time.After(out[j].Time) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
