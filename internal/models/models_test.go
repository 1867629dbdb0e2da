package models

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/league-panel/internal/types"
)

func TestDateTimeLocal(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2025-03-01T12:30:45Z", "2025-03-01T12:30"},
		{"2025-03-01T12:30:45.123456", "2025-03-01T12:30"},
		{"2025-03-01T09:05:00+03:00", "2025-03-01T09:05"},
		{"2025-03-01T09:05", "2025-03-01T09:05"},
		{"", ""},
		{"soon", "soon"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DateTimeLocal(tt.in), tt.in)
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "123.45", Truncate("123.45"))

	long := "1234567890.1234567890123"
	got := Truncate(long)
	assert.Equal(t, "1234567890.123456789...", got)
	assert.True(t, strings.HasSuffix(got, "..."))

	exact := strings.Repeat("9", DisplayLimit)
	assert.Equal(t, exact, Truncate(exact))
}

func TestFormDefaults(t *testing.T) {
	card := NewCardInput()
	assert.Zero(t, card.TokenID)
	assert.Zero(t, card.RarityID)
	assert.Empty(t, card.DesignType)
	assert.True(t, card.IsActive)

	assert.Equal(t, "#000000", NewRarityInput().Color)
	assert.Equal(t, types.TournamentRegistration, NewTournamentInput().Status)

	reward := NewRewardTypeInput()
	assert.True(t, reward.IsClaimable)
	assert.True(t, reward.IsActive)

	assert.Equal(t, int64(9), NewTournamentPrizeInput(9).TournamentID)
}

func TestPackTypeInput_OmitsEmptyOptionals(t *testing.T) {
	in := NewPackTypeInput()
	in.Name = "Starter"
	in.Price = decimal.RequireFromString("4.99")

	body, err := json.Marshal(in)
	require.NoError(t, err)

	s := string(body)
	assert.Contains(t, s, `"price":"4.99"`)
	assert.NotContains(t, s, "supply")
	assert.NotContains(t, s, "available_from")
	assert.NotContains(t, s, "guaranteed_slots")
}

func TestDecodeServerRecords(t *testing.T) {
	var price TokenPrice
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"token_id":2,"price":"0.000012345","market_cap":null,"change_24h":"-3.2","sources_count":4,"timestamp":"2025-01-01T00:00:00"}`), &price))
	assert.Equal(t, "0.000012345", price.Price.String())
	assert.False(t, price.MarketCap.Valid)
	assert.True(t, price.Change24h.Valid)

	var pack PackType
	require.NoError(t, json.Unmarshal([]byte(`{"id":3,"name":"Gold","price":"10.50","supply":null,"available_from":"2025-02-01T08:00:00Z"}`), &pack))
	assert.Nil(t, pack.Supply)
	in := pack.Input()
	assert.Equal(t, "2025-02-01T08:00", in.AvailableFrom)
	assert.Empty(t, in.AvailableUntil)
}
