package api

import (
	"context"

	"github.com/charlesng35/assetdesk/internal/models"
	"github.com/charlesng35/assetdesk/internal/querycache"
)

// MaintenanceFilter narrows the maintenance list.
type MaintenanceFilter struct {
	models.ListParams
	Status       models.MaintenanceStatus
	EquipmentID  string
	TechnicianID string
}

// MaintenancesAPI tracks repair work on equipment.
type MaintenancesAPI struct {
	resource
}

// List returns one page of maintenance requests.
func (m *MaintenancesAPI) List(ctx context.Context, f MaintenanceFilter) (models.Page[models.Maintenance], error) {
	q := listQuery(f.ListParams)
	setIf(q, "status", string(f.Status))
	setIf(q, "equipmentId", f.EquipmentID)
	setIf(q, "technicianId", f.TechnicianID)
	return list[models.Maintenance](ctx, m.resource, q)
}

// Get returns one maintenance request.
func (m *MaintenancesAPI) Get(ctx context.Context, id string) (*models.Maintenance, error) {
	return get[models.Maintenance](ctx, m.resource, id)
}

// Create opens a maintenance request for a piece of equipment.
func (m *MaintenancesAPI) Create(ctx context.Context, req models.CreateMaintenanceRequest) (*models.Maintenance, error) {
	return mutate(ctx, m.resource, methodPost, m.base, req, func(out *models.Maintenance) []querycache.Tag {
		return append([]querycache.Tag{m.listTag()}, equipmentTags(firstNonEmpty(out.EquipmentID, req.EquipmentID))...)
	})
}

// Assign hands the request to a technician.
func (m *MaintenancesAPI) Assign(ctx context.Context, id string, req models.AssignMaintenanceRequest) (*models.Maintenance, error) {
	return m.transition(ctx, id, "assign", req)
}

// Start marks work as begun.
func (m *MaintenancesAPI) Start(ctx context.Context, id string) (*models.Maintenance, error) {
	return m.transition(ctx, id, "start", struct{}{})
}

// Complete closes the request with its cost and notes.
func (m *MaintenancesAPI) Complete(ctx context.Context, id string, req models.CompleteMaintenanceRequest) (*models.Maintenance, error) {
	return m.transition(ctx, id, "complete", req)
}

// Cancel abandons the request.
func (m *MaintenancesAPI) Cancel(ctx context.Context, id string, req models.CancelRequest) (*models.Maintenance, error) {
	return m.transition(ctx, id, "cancel", req)
}

// Every transition can change the equipment's status, so the equipment is refreshed too.
func (m *MaintenancesAPI) transition(ctx context.Context, id, action string, payload any) (*models.Maintenance, error) {
	if err := requireID(m.name, id); err != nil {
		return nil, err
	}
	return mutate(ctx, m.resource, methodPut, m.path(id, action), payload, func(out *models.Maintenance) []querycache.Tag {
		return append(m.itemTags(id), equipmentTags(out.EquipmentID)...)
	})
}
