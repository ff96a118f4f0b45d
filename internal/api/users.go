package api

import (
	"context"

	"github.com/charlesng35/assetdesk/internal/models"
	"github.com/charlesng35/assetdesk/internal/querycache"
)

// UserFilter narrows the user list.
type UserFilter struct {
	models.ListParams
	IsActive *bool
	RoleID   string
}

// UsersAPI manages accounts.
type UsersAPI struct {
	resource
}

// List returns one page of users.
func (u *UsersAPI) List(ctx context.Context, f UserFilter) (models.Page[models.User], error) {
	q := listQuery(f.ListParams)
	setBool(q, "isActive", f.IsActive)
	setIf(q, "roleId", f.RoleID)
	return list[models.User](ctx, u.resource, q)
}

// Get returns one user.
func (u *UsersAPI) Get(ctx context.Context, id string) (*models.User, error) {
	return get[models.User](ctx, u.resource, id)
}

// Create adds a user.
func (u *UsersAPI) Create(ctx context.Context, req models.CreateUserRequest) (*models.User, error) {
	return mutate(ctx, u.resource, methodPost, u.base, req, func(*models.User) []querycache.Tag {
		return []querycache.Tag{u.listTag()}
	})
}

// Update edits a user's details.
func (u *UsersAPI) Update(ctx context.Context, id string, req models.UpdateUserRequest) (*models.User, error) {
	if err := requireID(u.name, id); err != nil {
		return nil, err
	}
	return mutate(ctx, u.resource, methodPut, u.path(id), req, func(*models.User) []querycache.Tag {
		return append(u.itemTags(id), querycache.TypeTag(TagProfile))
	})
}

// Delete removes a user. The profile is refreshed in case the signed-in user
// was the one removed.
func (u *UsersAPI) Delete(ctx context.Context, id string) error {
	return remove(ctx, u.resource, id, querycache.TypeTag(TagProfile))
}

// AssignRoles replaces a user's roles. The profile is refreshed because the
// signed-in user may have changed their own roles.
func (u *UsersAPI) AssignRoles(ctx context.Context, id string, req models.AssignRolesRequest) (*models.User, error) {
	if err := requireID(u.name, id); err != nil {
		return nil, err
	}
	return mutate(ctx, u.resource, methodPut, u.path(id, "roles"), req, func(*models.User) []querycache.Tag {
		return append(u.itemTags(id), querycache.TypeTag(TagProfile))
	})
}

// SetActive activates or deactivates a user.
func (u *UsersAPI) SetActive(ctx context.Context, id string, active bool) (*models.User, error) {
	if err := requireID(u.name, id); err != nil {
		return nil, err
	}
	req := models.SetActiveRequest{IsActive: active}
	return mutate(ctx, u.resource, methodPut, u.path(id, "status"), req, func(*models.User) []querycache.Tag {
		return u.itemTags(id)
	})
}
