package types

// Create requests carry required fields; update requests carry pointers
// so that an absent field and an empty field stay distinguishable. An
// update whose pointers are all nil is an empty patch and never reaches
// the backend.

type UserCreateRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required"`
}

type UserUpdateRequest struct {
	Email *string `json:"email" validate:"omitempty,email"`
	Name  *string `json:"name" validate:"omitempty,min=1"`
}

// Fields returns the effective patch as column/value pairs.
func (r UserUpdateRequest) Fields() map[string]any {
	out := map[string]any{}
	if r.Email != nil {
		out["email"] = *r.Email
	}
	if r.Name != nil {
		out["name"] = *r.Name
	}
	return out
}

type ProjectCreateRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	OwnerID     int64  `json:"owner_id" validate:"required,gt=0"`
}

type ProjectUpdateRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1"`
	Description *string `json:"description"`
}

func (r ProjectUpdateRequest) Fields() map[string]any {
	out := map[string]any{}
	if r.Title != nil {
		out["title"] = *r.Title
	}
	if r.Description != nil {
		out["description"] = *r.Description
	}
	return out
}

type GraphCreateRequest struct {
	Type       string         `json:"type" validate:"required"`
	Title      string         `json:"title" validate:"required"`
	Query      string         `json:"query"`
	Attributes map[string]any `json:"attributes"`
}

type GraphUpdateRequest struct {
	Type       *string        `json:"type" validate:"omitempty,min=1"`
	Title      *string        `json:"title" validate:"omitempty,min=1"`
	Query      *string        `json:"query"`
	Attributes map[string]any `json:"attributes"`
}
