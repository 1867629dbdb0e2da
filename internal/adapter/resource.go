package adapter

import (
	"context"
	"net/http"

	"github.com/league-panel/internal/types"
)

// resource is the uniform list/get/create/update/delete shape shared by the
// entity clients. Errors from the gateway are returned untouched.
type resource[T any, In any] struct {
	gw         *Gateway
	collection string // with trailing slash, e.g. "/panel/tokens/"
}

func newResource[T any, In any](gw *Gateway, collection string) resource[T, In] {
	return resource[T, In]{gw: gw, collection: collection}
}

func (r resource[T, In]) list(ctx context.Context, q *Query) (*types.Page[T], error) {
	return r.listAt(ctx, r.collection, q)
}

func (r resource[T, In]) listAt(ctx context.Context, path string, q *Query) (*types.Page[T], error) {
	page, err := Do[types.Page[T]](ctx, r.gw, q.On(path), RequestOptions{})
	if err != nil {
		return nil, err
	}
	if page.Items == nil {
		page.Items = []T{}
	}
	return &page, nil
}

// Get fetches one record by id
func (r resource[T, In]) Get(ctx context.Context, id int64) (*T, error) {
	return r.call(ctx, http.MethodGet, Endpoint(r.collection, id), nil)
}

// Create posts input to the collection
func (r resource[T, In]) Create(ctx context.Context, input In) (*T, error) {
	return r.call(ctx, http.MethodPost, r.collection, input)
}

// Update replaces the editable fields of id with input
func (r resource[T, In]) Update(ctx context.Context, id int64, input In) (*T, error) {
	return r.call(ctx, http.MethodPut, Endpoint(r.collection, id), input)
}

// Delete removes id, returning the backend's confirmation text (often empty)
func (r resource[T, In]) Delete(ctx context.Context, id int64) (string, error) {
	return opaque(ctx, r.gw, http.MethodDelete, Endpoint(r.collection, id))
}

func (r resource[T, In]) call(ctx context.Context, method, endpoint string, body interface{}) (*T, error) {
	out, err := Do[T](ctx, r.gw, endpoint, RequestOptions{Method: method, Body: body})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// opaque calls a report or action endpoint whose body is shown to the operator as text
func opaque(ctx context.Context, gw *Gateway, method, endpoint string) (string, error) {
	out, err := Do[types.Opaque](ctx, gw, endpoint, RequestOptions{Method: method})
	if err != nil {
		return "", err
	}
	return out.String(), nil
}
