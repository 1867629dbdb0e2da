package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func TestPage_Envelope(t *testing.T) {
	body := `{"items":[{"id":1,"name":"BTC"}],"total":41,"skip":20,"limit":20,"has_next":true,"has_prev":true}`

	var page Page[item]
	require.NoError(t, json.Unmarshal([]byte(body), &page))

	assert.Equal(t, []item{{ID: 1, Name: "BTC"}}, page.Items)
	assert.Equal(t, 41, page.Total)
	assert.Equal(t, 20, page.Skip)
	assert.Equal(t, 20, page.Limit)
	assert.True(t, page.HasNext)
	assert.True(t, page.HasPrev)
}

func TestPage_BareArray(t *testing.T) {
	var page Page[item]
	require.NoError(t, json.Unmarshal([]byte(` [{"id":1},{"id":2},{"id":3}]`), &page))

	assert.Len(t, page.Items, 3)
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 0, page.Skip)
	assert.Equal(t, 3, page.Limit)
	assert.False(t, page.HasNext)
	assert.False(t, page.HasPrev)
}

func TestPage_NullItems(t *testing.T) {
	var page Page[item]
	require.NoError(t, json.Unmarshal([]byte(`{"items":null,"total":0}`), &page))
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)

	var empty Page[item]
	require.NoError(t, json.Unmarshal([]byte(`null`), &empty))
	assert.NotNil(t, empty.Items)
}

func TestPage_InvalidBody(t *testing.T) {
	var page Page[item]
	assert.Error(t, json.Unmarshal([]byte(`[{"id":"x"}]`), &page))
	assert.Error(t, json.Unmarshal([]byte(`{"items":7}`), &page))
}

func TestOpaque(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"string", `"Scheduler triggered"`, "Scheduler triggered"},
		{"object", `{ "running": true,  "jobs": [1, 2] }`, `{"running":true,"jobs":[1,2]}`},
		{"number", `42`, "42"},
		{"null", `null`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var o Opaque
			require.NoError(t, json.Unmarshal([]byte(tt.body), &o))
			assert.Equal(t, tt.want, o.String())
		})
	}
}

func TestTournamentStatus(t *testing.T) {
	assert.True(t, TournamentActive.Valid())
	assert.False(t, TournamentStatus("cancelled").Valid())
}
