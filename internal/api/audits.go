package api

import (
	"context"

	"github.com/charlesng35/assetdesk/internal/models"
	"github.com/charlesng35/assetdesk/internal/querycache"
)

// AuditFilter narrows the audit list.
type AuditFilter struct {
	models.ListParams
	Status    models.AuditStatus
	AuditorID string
}

// AuditsAPI runs inventory audits.
type AuditsAPI struct {
	resource
}

// List returns one page of audits.
func (a *AuditsAPI) List(ctx context.Context, f AuditFilter) (models.Page[models.Audit], error) {
	q := listQuery(f.ListParams)
	setIf(q, "status", string(f.Status))
	setIf(q, "auditorId", f.AuditorID)
	return list[models.Audit](ctx, a.resource, q)
}

// Get returns one audit with its records.
func (a *AuditsAPI) Get(ctx context.Context, id string) (*models.Audit, error) {
	return get[models.Audit](ctx, a.resource, id)
}

// Create plans an audit.
func (a *AuditsAPI) Create(ctx context.Context, req models.CreateAuditRequest) (*models.Audit, error) {
	return mutate(ctx, a.resource, methodPost, a.base, req, func(*models.Audit) []querycache.Tag {
		return []querycache.Tag{a.listTag()}
	})
}

// Start moves a planned audit to InProgress.
func (a *AuditsAPI) Start(ctx context.Context, id string) (*models.Audit, error) {
	return a.transition(ctx, id, "start", struct{}{})
}

// Complete closes an audit with its findings.
func (a *AuditsAPI) Complete(ctx context.Context, id string, req models.CompleteAuditRequest) (*models.Audit, error) {
	return a.transition(ctx, id, "complete", req)
}

// Cancel abandons an audit.
func (a *AuditsAPI) Cancel(ctx context.Context, id string, req models.CancelRequest) (*models.Audit, error) {
	return a.transition(ctx, id, "cancel", req)
}

// AddRecord records what the auditor found for one piece of equipment.
func (a *AuditsAPI) AddRecord(ctx context.Context, id string, req models.AuditRecordRequest) (*models.AuditRecord, error) {
	if err := requireID(a.name, id); err != nil {
		return nil, err
	}
	return mutate(ctx, a.resource, methodPost, a.path(id, "records"), req, func(*models.AuditRecord) []querycache.Tag {
		return []querycache.Tag{a.itemTag(id)}
	})
}

func (a *AuditsAPI) transition(ctx context.Context, id, action string, payload any) (*models.Audit, error) {
	if err := requireID(a.name, id); err != nil {
		return nil, err
	}
	return mutate(ctx, a.resource, methodPut, a.path(id, action), payload, func(*models.Audit) []querycache.Tag {
		return a.itemTags(id)
	})
}
