package adapter

import (
	"net/url"
	"strconv"
	"strings"
)

// Query builds a query string in insertion order.
// A parameter is added only when its value is non-nil (and, for strings, non-empty);
// zero and false are real values and are sent.
type Query struct {
	parts []string
}

// NewQuery returns an empty query
func NewQuery() *Query {
	return &Query{}
}

func (q *Query) add(name, value string) *Query {
	q.parts = append(q.parts, url.QueryEscape(name)+"="+url.QueryEscape(value))
	return q
}

// Int adds name when v is non-nil
func (q *Query) Int(name string, v *int) *Query {
	if v == nil {
		return q
	}
	return q.add(name, strconv.Itoa(*v))
}

// Int64 adds name when v is non-nil
func (q *Query) Int64(name string, v *int64) *Query {
	if v == nil {
		return q
	}
	return q.add(name, strconv.FormatInt(*v, 10))
}

// Bool adds name when v is non-nil
func (q *Query) Bool(name string, v *bool) *Query {
	if v == nil {
		return q
	}
	return q.add(name, strconv.FormatBool(*v))
}

// String adds name when v is non-nil and non-empty
func (q *Query) String(name string, v *string) *Query {
	if v == nil || *v == "" {
		return q
	}
	return q.add(name, *v)
}

// Page adds skip and limit
func (q *Query) Page(p Pagination) *Query {
	return q.Int("skip", p.Skip).Int("limit", p.Limit)
}

// Encode returns the query string without a leading '?'
func (q *Query) Encode() string {
	return strings.Join(q.parts, "&")
}

// On appends the query to path, or returns path unchanged when empty
func (q *Query) On(path string) string {
	if len(q.parts) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

// Pagination is the skip/limit cursor of a list call; nil fields are not sent
type Pagination struct {
	Skip  *int
	Limit *int
}

// PageOf returns a Pagination sending both skip and limit
func PageOf(skip, limit int) Pagination {
	return Pagination{Skip: Int(skip), Limit: Int(limit)}
}

// Int returns a pointer to v
func Int(v int) *int { return &v }

// Int64 returns a pointer to v
func Int64(v int64) *int64 { return &v }

// Bool returns a pointer to v
func Bool(v bool) *bool { return &v }

// String returns a pointer to v
func String(v string) *string { return &v }
