package api

import (
	"context"
	"net/url"

	"github.com/charlesng35/assetdesk/internal/apiclient"
	"github.com/charlesng35/assetdesk/internal/models"
	"github.com/charlesng35/assetdesk/internal/querycache"
)

// WarehouseItemFilter narrows the stock list.
type WarehouseItemFilter struct {
	models.ListParams
	Location string
	LowStock *bool
}

// TransactionFilter narrows the transaction history.
type TransactionFilter struct {
	models.ListParams
	ItemID string
	Type   models.TransactionType
}

// WarehouseAPI manages stock items and their transactions.
type WarehouseAPI struct {
	items        resource
	transactions resource
}

func newWarehouseAPI(http *apiclient.Client, cache *querycache.Cache) *WarehouseAPI {
	return &WarehouseAPI{
		items:        resource{http: http, cache: cache, base: "/api/warehouses/items", tag: TagWarehouseItems, name: "warehouse items"},
		transactions: resource{http: http, cache: cache, base: "/api/warehouses/transactions", tag: TagWarehouseTransactions, name: "warehouse transactions"},
	}
}

// ItemsKey returns the cache key ListItems uses for f.
func (w *WarehouseAPI) ItemsKey(f WarehouseItemFilter) string {
	return w.items.QueryKey(itemQuery(f))
}

// ItemKey returns the cache key GetItem uses for id.
func (w *WarehouseAPI) ItemKey(id string) string {
	return w.items.ItemKey(id)
}

// ListItems returns one page of stock items.
func (w *WarehouseAPI) ListItems(ctx context.Context, f WarehouseItemFilter) (models.Page[models.WarehouseItem], error) {
	return list[models.WarehouseItem](ctx, w.items, itemQuery(f))
}

func itemQuery(f WarehouseItemFilter) url.Values {
	q := listQuery(f.ListParams)
	setIf(q, "location", f.Location)
	setBool(q, "lowStock", f.LowStock)
	return q
}

// GetItem returns one stock item.
func (w *WarehouseAPI) GetItem(ctx context.Context, id string) (*models.WarehouseItem, error) {
	return get[models.WarehouseItem](ctx, w.items, id)
}

// CreateItem adds a stock item.
func (w *WarehouseAPI) CreateItem(ctx context.Context, req models.WarehouseItemRequest) (*models.WarehouseItem, error) {
	return mutate(ctx, w.items, methodPost, w.items.base, req, func(*models.WarehouseItem) []querycache.Tag {
		return []querycache.Tag{w.items.listTag()}
	})
}

// UpdateItem edits a stock item.
func (w *WarehouseAPI) UpdateItem(ctx context.Context, id string, req models.WarehouseItemRequest) (*models.WarehouseItem, error) {
	if err := requireID(w.items.name, id); err != nil {
		return nil, err
	}
	return mutate(ctx, w.items, methodPut, w.items.path(id), req, func(*models.WarehouseItem) []querycache.Tag {
		return w.items.itemTags(id)
	})
}

// DeleteItem removes a stock item.
func (w *WarehouseAPI) DeleteItem(ctx context.Context, id string) error {
	return remove(ctx, w.items, id)
}

// ListTransactions returns one page of stock movements.
func (w *WarehouseAPI) ListTransactions(ctx context.Context, f TransactionFilter) (models.Page[models.WarehouseTransaction], error) {
	q := listQuery(f.ListParams)
	setIf(q, "itemId", f.ItemID)
	setIf(q, "type", string(f.Type))
	return list[models.WarehouseTransaction](ctx, w.transactions, q)
}

// GetTransaction returns one stock movement.
func (w *WarehouseAPI) GetTransaction(ctx context.Context, id string) (*models.WarehouseTransaction, error) {
	return get[models.WarehouseTransaction](ctx, w.transactions, id)
}

// CreateTransaction records an import, export or adjustment. The item's quantity
// changes server-side, so the item is refreshed as well.
func (w *WarehouseAPI) CreateTransaction(ctx context.Context, req models.WarehouseTransactionRequest) (*models.WarehouseTransaction, error) {
	return mutate(ctx, w.transactions, methodPost, w.transactions.base, req, func(tx *models.WarehouseTransaction) []querycache.Tag {
		itemID := tx.ItemID
		if itemID == "" {
			itemID = req.ItemID
		}
		return append([]querycache.Tag{w.transactions.listTag()}, w.items.itemTags(itemID)...)
	})
}
