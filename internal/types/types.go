// Package types provides common type definitions shared by the panel API clients and the console.
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// TournamentStatus is the lifecycle stage of a tournament
type TournamentStatus string

const (
	// TournamentRegistration accepts deck submissions
	TournamentRegistration TournamentStatus = "registration"
	// TournamentActive is running
	TournamentActive TournamentStatus = "active"
	// TournamentFinished has final results
	TournamentFinished TournamentStatus = "finished"
)

// TournamentStatuses lists every status in display order
var TournamentStatuses = []TournamentStatus{
	TournamentRegistration,
	TournamentActive,
	TournamentFinished,
}

// Valid reports whether s is a known status
func (s TournamentStatus) Valid() bool {
	for _, known := range TournamentStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Page is the paginated envelope returned by list endpoints.
//
// Older backend versions answer list requests with a bare JSON array;
// UnmarshalJSON accepts both shapes and always yields a full envelope.
type Page[T any] struct {
	Items   []T  `json:"items"`
	Total   int  `json:"total"`
	Skip    int  `json:"skip"`
	Limit   int  `json:"limit"`
	HasNext bool `json:"has_next"`
	HasPrev bool `json:"has_prev"`
}

// envelope mirrors Page without its UnmarshalJSON method
type envelope[T any] struct {
	Items   []T  `json:"items"`
	Total   int  `json:"total"`
	Skip    int  `json:"skip"`
	Limit   int  `json:"limit"`
	HasNext bool `json:"has_next"`
	HasPrev bool `json:"has_prev"`
}

// UnmarshalJSON implements json.Unmarshaler
func (p *Page[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)

	switch {
	case len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")):
		*p = Page[T]{Items: []T{}}
		return nil

	case trimmed[0] == '[':
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return fmt.Errorf("decode list: %w", err)
		}
		*p = BarePage(items)
		return nil

	default:
		var env envelope[T]
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return fmt.Errorf("decode page: %w", err)
		}
		if env.Items == nil {
			env.Items = []T{}
		}
		*p = Page[T](env)
		return nil
	}
}

// BarePage synthesizes the envelope for an un-paginated list
func BarePage[T any](items []T) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items: items,
		Total: len(items),
		Skip:  0,
		Limit: len(items),
	}
}

// Opaque is the body of report and action endpoints (scheduler status, stats summaries,
// card activation, deletes). A JSON string decodes to its value; any other JSON value is
// kept as its compact text so the operator still sees it.
type Opaque string

// UnmarshalJSON implements json.Unmarshaler
func (o *Opaque) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*o = ""
		return nil
	}

	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*o = Opaque(s)
		return nil
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err != nil {
		return err
	}
	*o = Opaque(buf.String())
	return nil
}

// String returns the text
func (o Opaque) String() string {
	return string(o)
}
