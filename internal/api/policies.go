package api

import (
	"context"

	"github.com/charlesng35/assetdesk/internal/models"
	"github.com/charlesng35/assetdesk/internal/querycache"
)

// PolicyFilter narrows the policy list.
type PolicyFilter struct {
	models.ListParams
	Resource string
	Effect   models.PolicyEffect
	IsActive *bool
}

// PoliciesAPI manages access policies.
type PoliciesAPI struct {
	resource
}

// List returns one page of policies.
func (p *PoliciesAPI) List(ctx context.Context, f PolicyFilter) (models.Page[models.Policy], error) {
	q := listQuery(f.ListParams)
	setIf(q, "resource", f.Resource)
	setIf(q, "effect", string(f.Effect))
	setBool(q, "isActive", f.IsActive)
	return list[models.Policy](ctx, p.resource, q)
}

// Get returns one policy.
func (p *PoliciesAPI) Get(ctx context.Context, id string) (*models.Policy, error) {
	return get[models.Policy](ctx, p.resource, id)
}

// Create adds a policy.
func (p *PoliciesAPI) Create(ctx context.Context, req models.PolicyRequest) (*models.Policy, error) {
	return mutate(ctx, p.resource, methodPost, p.base, req, func(*models.Policy) []querycache.Tag {
		return []querycache.Tag{p.listTag()}
	})
}

// Update edits a policy.
func (p *PoliciesAPI) Update(ctx context.Context, id string, req models.PolicyRequest) (*models.Policy, error) {
	if err := requireID(p.name, id); err != nil {
		return nil, err
	}
	return mutate(ctx, p.resource, methodPut, p.path(id), req, func(*models.Policy) []querycache.Tag {
		return p.itemTags(id)
	})
}

// Delete removes a policy.
func (p *PoliciesAPI) Delete(ctx context.Context, id string) error {
	return remove(ctx, p.resource, id)
}
