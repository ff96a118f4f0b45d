package api

import (
	"context"
	"net/url"

	"github.com/charlesng35/assetdesk/internal/models"
	"github.com/charlesng35/assetdesk/internal/querycache"
)

// LiquidationFilter narrows the liquidation list.
type LiquidationFilter struct {
	models.ListParams
	// IsApproved filters on the decision; nil lists everything.
	IsApproved *bool
	// Pending lists only undecided requests. It takes precedence over IsApproved.
	Pending bool
}

// LiquidationsAPI handles requests to dispose of equipment.
type LiquidationsAPI struct {
	resource
}

func (f LiquidationFilter) query() url.Values {
	q := listQuery(f.ListParams)
	if f.Pending {
		q.Set("pending", "true")
	} else {
		setBool(q, "isApproved", f.IsApproved)
	}
	return q
}

// Key returns the cache key List uses for f.
func (l *LiquidationsAPI) Key(f LiquidationFilter) string {
	return l.QueryKey(f.query())
}

// List returns one page of liquidation requests.
func (l *LiquidationsAPI) List(ctx context.Context, f LiquidationFilter) (models.Page[models.Liquidation], error) {
	return list[models.Liquidation](ctx, l.resource, f.query())
}

// Get returns one liquidation request.
func (l *LiquidationsAPI) Get(ctx context.Context, id string) (*models.Liquidation, error) {
	return get[models.Liquidation](ctx, l.resource, id)
}

// Create requests disposal of a piece of equipment.
func (l *LiquidationsAPI) Create(ctx context.Context, req models.CreateLiquidationRequest) (*models.Liquidation, error) {
	return mutate(ctx, l.resource, methodPost, l.base, req, func(out *models.Liquidation) []querycache.Tag {
		return append([]querycache.Tag{l.listTag()}, equipmentTags(firstNonEmpty(out.EquipmentID, req.EquipmentID))...)
	})
}

// Approve accepts the request. The equipment becomes Liquidated server-side.
func (l *LiquidationsAPI) Approve(ctx context.Context, id string, req models.ApproveLiquidationRequest) (*models.Liquidation, error) {
	return l.decide(ctx, id, "approve", req)
}

// Reject declines the request.
func (l *LiquidationsAPI) Reject(ctx context.Context, id string, req models.RejectLiquidationRequest) (*models.Liquidation, error) {
	return l.decide(ctx, id, "reject", req)
}

func (l *LiquidationsAPI) decide(ctx context.Context, id, action string, payload any) (*models.Liquidation, error) {
	if err := requireID(l.name, id); err != nil {
		return nil, err
	}
	return mutate(ctx, l.resource, methodPut, l.path(id, action), payload, func(out *models.Liquidation) []querycache.Tag {
		return append(l.itemTags(id), equipmentTags(out.EquipmentID)...)
	})
}
