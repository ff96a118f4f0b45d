package api

import (
	"context"

	"github.com/charlesng35/assetdesk/internal/models"
	"github.com/charlesng35/assetdesk/internal/querycache"
)

// PermissionFilter narrows the permission list.
type PermissionFilter struct {
	models.ListParams
	Resource string
}

// PermissionsAPI manages the permission catalog. Permissions are immutable: they
// can be created and deleted but never edited.
type PermissionsAPI struct {
	resource
}

// List returns one page of permissions.
func (p *PermissionsAPI) List(ctx context.Context, f PermissionFilter) (models.Page[models.Permission], error) {
	q := listQuery(f.ListParams)
	setIf(q, "resource", f.Resource)
	return list[models.Permission](ctx, p.resource, q)
}

// Get returns one permission.
func (p *PermissionsAPI) Get(ctx context.Context, id string) (*models.Permission, error) {
	return get[models.Permission](ctx, p.resource, id)
}

// Create adds a permission.
func (p *PermissionsAPI) Create(ctx context.Context, req models.CreatePermissionRequest) (*models.Permission, error) {
	return mutate(ctx, p.resource, methodPost, p.base, req, func(*models.Permission) []querycache.Tag {
		return []querycache.Tag{p.listTag()}
	})
}

// Delete removes a permission and refreshes the roles that may have granted it.
func (p *PermissionsAPI) Delete(ctx context.Context, id string) error {
	return remove(ctx, p.resource, id, querycache.TypeTag(TagRoles), querycache.TypeTag(TagProfile))
}
