package api

import (
	"context"

	"github.com/charlesng35/assetdesk/internal/models"
	"github.com/charlesng35/assetdesk/internal/querycache"
)

// RoleFilter narrows the role list.
type RoleFilter struct {
	models.ListParams
	IsActive *bool
}

// RolesAPI manages roles and their permission sets.
type RolesAPI struct {
	resource
}

// List returns one page of roles.
func (r *RolesAPI) List(ctx context.Context, f RoleFilter) (models.Page[models.Role], error) {
	q := listQuery(f.ListParams)
	setBool(q, "isActive", f.IsActive)
	return list[models.Role](ctx, r.resource, q)
}

// Get returns one role.
func (r *RolesAPI) Get(ctx context.Context, id string) (*models.Role, error) {
	return get[models.Role](ctx, r.resource, id)
}

// Create adds a role.
func (r *RolesAPI) Create(ctx context.Context, req models.RoleRequest) (*models.Role, error) {
	return mutate(ctx, r.resource, methodPost, r.base, req, func(*models.Role) []querycache.Tag {
		return []querycache.Tag{r.listTag()}
	})
}

// Update edits a role. Users embed their roles, so user records are refreshed too.
func (r *RolesAPI) Update(ctx context.Context, id string, req models.RoleRequest) (*models.Role, error) {
	if err := requireID(r.name, id); err != nil {
		return nil, err
	}
	return mutate(ctx, r.resource, methodPut, r.path(id), req, func(*models.Role) []querycache.Tag {
		return r.dependents(id)
	})
}

// Delete removes a role.
func (r *RolesAPI) Delete(ctx context.Context, id string) error {
	if err := requireID(r.name, id); err != nil {
		return err
	}
	return remove(ctx, r.resource, id, querycache.TypeTag(TagUsers), querycache.TypeTag(TagProfile))
}

// AssignPermissions replaces the permissions granted by a role.
func (r *RolesAPI) AssignPermissions(ctx context.Context, id string, req models.AssignPermissionsRequest) (*models.Role, error) {
	if err := requireID(r.name, id); err != nil {
		return nil, err
	}
	return mutate(ctx, r.resource, methodPut, r.path(id, "permissions"), req, func(*models.Role) []querycache.Tag {
		return r.dependents(id)
	})
}

func (r *RolesAPI) dependents(id string) []querycache.Tag {
	return append(r.itemTags(id), querycache.TypeTag(TagUsers), querycache.TypeTag(TagProfile))
}
