package api

import (
	"context"

	"github.com/charlesng35/assetdesk/internal/models"
	"github.com/charlesng35/assetdesk/internal/querycache"
)

// EquipmentFilter narrows the equipment list.
type EquipmentFilter struct {
	models.ListParams
	Status     models.EquipmentStatus
	CategoryID string
	Location   string
}

// EquipmentAPI manages equipment records.
type EquipmentAPI struct {
	resource
}

// List returns one page of equipment.
func (e *EquipmentAPI) List(ctx context.Context, f EquipmentFilter) (models.Page[models.Equipment], error) {
	q := listQuery(f.ListParams)
	setIf(q, "status", string(f.Status))
	setIf(q, "categoryId", f.CategoryID)
	setIf(q, "location", f.Location)
	return list[models.Equipment](ctx, e.resource, q)
}

// Get returns one equipment record.
func (e *EquipmentAPI) Get(ctx context.Context, id string) (*models.Equipment, error) {
	return get[models.Equipment](ctx, e.resource, id)
}

// Create registers equipment.
func (e *EquipmentAPI) Create(ctx context.Context, req models.EquipmentRequest) (*models.Equipment, error) {
	return mutate(ctx, e.resource, methodPost, e.base, req, func(*models.Equipment) []querycache.Tag {
		return []querycache.Tag{e.listTag()}
	})
}

// Update edits equipment details.
func (e *EquipmentAPI) Update(ctx context.Context, id string, req models.EquipmentRequest) (*models.Equipment, error) {
	if err := requireID(e.name, id); err != nil {
		return nil, err
	}
	return mutate(ctx, e.resource, methodPut, e.path(id), req, func(*models.Equipment) []querycache.Tag {
		return e.itemTags(id)
	})
}

// Delete removes equipment.
func (e *EquipmentAPI) Delete(ctx context.Context, id string) error {
	return remove(ctx, e.resource, id)
}

// UpdateStatus moves equipment to another status.
func (e *EquipmentAPI) UpdateStatus(ctx context.Context, id string, req models.EquipmentStatusRequest) (*models.Equipment, error) {
	if err := requireID(e.name, id); err != nil {
		return nil, err
	}
	return mutate(ctx, e.resource, methodPut, e.path(id, "status"), req, func(*models.Equipment) []querycache.Tag {
		return e.itemTags(id)
	})
}
