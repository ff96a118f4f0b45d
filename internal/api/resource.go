package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/charlesng35/assetdesk/internal/apiclient"
	"github.com/charlesng35/assetdesk/internal/models"
	"github.com/charlesng35/assetdesk/internal/querycache"
	apperrors "github.com/charlesng35/assetdesk/pkg/errors"
	"github.com/charlesng35/assetdesk/pkg/validator"
)

// resource binds a module to its service, base path and tag type.
type resource struct {
	http  *apiclient.Client
	cache *querycache.Cache
	base  string
	tag   string
	name  string
}

func (r resource) path(id string, action ...string) string {
	p := r.base + "/" + url.PathEscape(id)
	for _, a := range action {
		p += "/" + a
	}
	return p
}

func (r resource) listTag() querycache.Tag {
	return querycache.ListTag(r.tag)
}

func (r resource) itemTag(id string) querycache.Tag {
	return querycache.ItemTag(r.tag, id)
}

// itemTags is the usual invalidation set for a change to one record.
func (r resource) itemTags(id string) []querycache.Tag {
	return []querycache.Tag{r.listTag(), r.itemTag(id)}
}

// QueryKey returns the cache key a list call with q uses, for subscribers.
func (r resource) QueryKey(q url.Values) string {
	return querycache.Key(r.name+".list", q)
}

// ItemKey returns the cache key a get call for id uses.
func (r resource) ItemKey(id string) string {
	return querycache.Key(r.name+".get", id)
}

func list[T any](ctx context.Context, r resource, q url.Values) (models.Page[T], error) {
	provides := []querycache.Tag{r.listTag()}
	return querycache.Fetch(ctx, r.cache, r.QueryKey(q), provides, func(ctx context.Context) (models.Page[T], error) {
		var env models.Envelope[T]
		if err := r.http.Get(ctx, r.base, q, &env); err != nil {
			return models.Page[T]{}, err
		}
		return models.Normalize(env), nil
	})
}

func get[T any](ctx context.Context, r resource, id string) (*T, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.NewBadRequest(r.name + ": id is required")
	}
	provides := []querycache.Tag{r.itemTag(id)}
	return querycache.Fetch(ctx, r.cache, r.ItemKey(id), provides, func(ctx context.Context) (*T, error) {
		var out T
		if err := r.http.Get(ctx, r.path(id), nil, &out); err != nil {
			return nil, err
		}
		return &out, nil
	})
}

// mutate validates payload, sends it, and only after the server accepted it
// invalidates the tags computed from the response.
func mutate[T any](ctx context.Context, r resource, method, path string, payload any, invalidates func(*T) []querycache.Tag) (*T, error) {
	if err := validator.ValidatePayload(payload); err != nil {
		return nil, err
	}

	var out T
	if err := r.http.Do(ctx, apiclient.Request{Method: method, Path: path, Body: payload}, &out); err != nil {
		return nil, err
	}
	if invalidates != nil {
		r.cache.Invalidate(invalidates(&out)...)
	}
	return &out, nil
}

func remove(ctx context.Context, r resource, id string, extra ...querycache.Tag) error {
	if strings.TrimSpace(id) == "" {
		return apperrors.NewBadRequest(r.name + ": id is required")
	}
	if err := r.http.Delete(ctx, r.path(id), nil); err != nil {
		return err
	}
	r.cache.Invalidate(append(r.itemTags(id), extra...)...)
	return nil
}

func requireID(name, id string) error {
	if strings.TrimSpace(id) == "" {
		return apperrors.NewBadRequest(name + ": id is required")
	}
	return nil
}

// equipmentTags invalidates one equipment record when its id is known, otherwise all of them.
func equipmentTags(equipmentID string) []querycache.Tag {
	if equipmentID == "" {
		return []querycache.Tag{querycache.TypeTag(TagEquipment)}
	}
	return []querycache.Tag{querycache.ListTag(TagEquipment), querycache.ItemTag(TagEquipment, equipmentID)}
}

func listQuery(p models.ListParams) url.Values {
	q := url.Values{}
	p.Apply(q)
	return q
}

func setIf(q url.Values, key, value string) {
	if value = strings.TrimSpace(value); value != "" {
		q.Set(key, value)
	}
}

func setBool(q url.Values, key string, value *bool) {
	if value != nil {
		q.Set(key, strconv.FormatBool(*value))
	}
}

const (
	methodPost = http.MethodPost
	methodPut  = http.MethodPut
)

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
