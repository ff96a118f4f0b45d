package api

import (
	"context"
	"net/url"

	"github.com/charlesng35/assetdesk/internal/models"
	"github.com/charlesng35/assetdesk/internal/querycache"
)

// AssignmentFilter narrows the assignment list.
type AssignmentFilter struct {
	models.ListParams
	Status      models.AssignmentStatus
	UserID      string
	EquipmentID string
}

// AssignmentsAPI hands equipment to users and takes it back.
type AssignmentsAPI struct {
	resource
}

func (f AssignmentFilter) query() url.Values {
	q := listQuery(f.ListParams)
	setIf(q, "status", string(f.Status))
	setIf(q, "userId", f.UserID)
	setIf(q, "equipmentId", f.EquipmentID)
	return q
}

// Key returns the cache key List uses for f.
func (a *AssignmentsAPI) Key(f AssignmentFilter) string {
	return a.QueryKey(f.query())
}

// List returns one page of assignments.
func (a *AssignmentsAPI) List(ctx context.Context, f AssignmentFilter) (models.Page[models.Assignment], error) {
	return list[models.Assignment](ctx, a.resource, f.query())
}

// Get returns one assignment.
func (a *AssignmentsAPI) Get(ctx context.Context, id string) (*models.Assignment, error) {
	return get[models.Assignment](ctx, a.resource, id)
}

// Create assigns equipment to a user. The equipment becomes InUse server-side.
func (a *AssignmentsAPI) Create(ctx context.Context, req models.CreateAssignmentRequest) (*models.Assignment, error) {
	return mutate(ctx, a.resource, methodPost, a.base, req, func(out *models.Assignment) []querycache.Tag {
		return append([]querycache.Tag{a.listTag()}, equipmentTags(firstNonEmpty(out.EquipmentID, req.EquipmentID))...)
	})
}

// Return closes an assignment.
func (a *AssignmentsAPI) Return(ctx context.Context, id string, req models.ReturnAssignmentRequest) (*models.Assignment, error) {
	if err := requireID(a.name, id); err != nil {
		return nil, err
	}
	return mutate(ctx, a.resource, methodPut, a.path(id, "return"), req, func(out *models.Assignment) []querycache.Tag {
		return append(a.itemTags(id), equipmentTags(out.EquipmentID)...)
	})
}
