package adapter

import (
	"context"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/league-panel/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler func(http.ResponseWriter, *http.Request)) (*Client, *fakeBackend) {
	t.Helper()
	fb := newFakeBackend(t, handler)
	return NewClient(NewGateway(fb.URL, time.Second)), fb
}

func TestCardsList_QueryOrderAndEnvelope(t *testing.T) {
	client, fb := newTestClient(t, respond(http.StatusOK,
		`{"items":[{"id":7,"token_id":1,"rarity_id":2,"token_name":"Bitcoin"}],"total":1,"skip":0,"limit":20,"has_next":false,"has_prev":false}`))

	page, err := client.Cards.List(context.Background(), CardFilter{ActiveOnly: Bool(true)}, PageOf(0, 20))
	require.NoError(t, err)

	req := fb.last(t)
	assert.Equal(t, "/management/cards/", req.Path)
	assert.Equal(t, "active_only=true&skip=0&limit=20", req.Query)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Bitcoin", page.Items[0].TokenName)
	assert.Equal(t, 1, page.Total)
}

func TestCardsList_AllFilters(t *testing.T) {
	client, fb := newTestClient(t, respond(http.StatusOK, `[]`))

	_, err := client.Cards.List(context.Background(), CardFilter{
		ActiveOnly: Bool(false),
		TokenID:    Int64(0),
		Rarity:     String(""),
	}, Pagination{})
	require.NoError(t, err)
	assert.Equal(t, "active_only=false&token_id=0", fb.last(t).Query, "zero and false are sent, empty strings are not")

	_, err = client.Cards.List(context.Background(), CardFilter{Rarity: String("rare epic")}, PageOf(40, 20))
	require.NoError(t, err)
	assert.Equal(t, "rarity=rare+epic&skip=40&limit=20", fb.last(t).Query)
}

func TestTokensList_BareArrayNormalized(t *testing.T) {
	client, fb := newTestClient(t, respond(http.StatusOK, `[{"id":1,"name":"BTC"},{"id":2,"name":"ETH"}]`))

	page, err := client.Tokens.List(context.Background(), TokenFilter{}, Pagination{})
	require.NoError(t, err)

	assert.Equal(t, "/panel/tokens/", fb.last(t).Path)
	assert.Empty(t, fb.last(t).Query)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, 2, page.Total)
	assert.Equal(t, 2, page.Limit)
	assert.Equal(t, 0, page.Skip)
	assert.False(t, page.HasNext)
	assert.False(t, page.HasPrev)
}

func TestCRUDPathsAndMethods(t *testing.T) {
	client, fb := newTestClient(t, respond(http.StatusOK, `{"id":5,"name":"Gold","price":"9.99"}`))
	ctx := context.Background()

	pack, err := client.PackTypes.Get(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "9.99", pack.Price.String())
	assert.Equal(t, "GET /panel/pack-types/5", fb.last(t).Method+" "+fb.last(t).Path)

	in := models.NewPackTypeInput()
	in.Name = "Gold"
	in.Price = decimal.RequireFromString("9.99")
	_, err = client.PackTypes.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "POST /panel/pack-types/", fb.last(t).Method+" "+fb.last(t).Path)
	body := decodeJSON(t, fb.last(t).Body)
	assert.Equal(t, "9.99", body["price"])

	_, err = client.Rarities.Update(ctx, 3, models.NewRarityInput())
	require.NoError(t, err)
	assert.Equal(t, "PUT /panel/rarities/3", fb.last(t).Method+" "+fb.last(t).Path)

	_, err = client.Users.Update(ctx, 9, models.UserInput{Nickname: "neo"})
	require.NoError(t, err)
	assert.Equal(t, "PUT /panel/users/9", fb.last(t).Method+" "+fb.last(t).Path)
}

func TestDeleteThenRefetch(t *testing.T) {
	var deleted atomic.Bool
	client, fb := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodDelete && r.URL.Path == "/management/cards/7":
			deleted.Store(true)
			respond(http.StatusOK, `"Card deleted"`)(w, r)
		case r.Method == http.MethodGet && r.URL.Path == "/management/cards/":
			if deleted.Load() {
				respond(http.StatusOK, `{"items":[],"total":0,"skip":0,"limit":20}`)(w, r)
				return
			}
			respond(http.StatusOK, `{"items":[{"id":7}],"total":1,"skip":0,"limit":20}`)(w, r)
		default:
			respond(http.StatusNotFound, `{"message":"Not found"}`)(w, r)
		}
	})
	ctx := context.Background()

	before, err := client.Cards.List(ctx, CardFilter{}, PageOf(0, 20))
	require.NoError(t, err)
	require.Len(t, before.Items, 1)

	msg, err := client.Cards.Delete(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "Card deleted", msg)

	after, err := client.Cards.List(ctx, CardFilter{}, PageOf(0, 20))
	require.NoError(t, err)
	assert.Empty(t, after.Items)
	assert.Equal(t, 3, fb.count())
}

func TestDeleteEmptyBody(t *testing.T) {
	client, _ := newTestClient(t, respond(http.StatusNoContent, ``))
	msg, err := client.Tokens.Delete(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, msg)
}

func TestActionEndpoints(t *testing.T) {
	client, fb := newTestClient(t, respond(http.StatusOK, `{"running":true}`))
	ctx := context.Background()

	tests := []struct {
		name   string
		call   func() (string, error)
		method string
		path   string
	}{
		{"scheduler status", func() (string, error) { return client.Tokens.SchedulerStatus(ctx) }, "GET", "/panel/tokens/scheduler/status"},
		{"scheduler trigger", func() (string, error) { return client.Tokens.TriggerScheduler(ctx) }, "POST", "/panel/tokens/scheduler/trigger"},
		{"card activate", func() (string, error) { return client.Cards.Activate(ctx, 4) }, "POST", "/management/cards/4/activate"},
		{"card reference", func() (string, error) { return client.Cards.ReferenceOptions(ctx) }, "GET", "/management/cards/reference/options"},
		{"tournament stats", func() (string, error) { return client.Tournaments.StatsSummary(ctx) }, "GET", "/panel/tournaments/stats/summary"},
		{"user stats", func() (string, error) { return client.Users.StatsSummary(ctx) }, "GET", "/panel/users/stats/summary"},
		{"duplicates", func() (string, error) { return client.Users.SearchDuplicates(ctx) }, "GET", "/panel/users/search/duplicates"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.call()
			require.NoError(t, err)
			assert.Equal(t, `{"running":true}`, got)
			assert.Equal(t, tt.method, fb.last(t).Method)
			assert.Equal(t, tt.path, fb.last(t).Path)
		})
	}
}

func TestTournamentSubResources(t *testing.T) {
	client, fb := newTestClient(t, respond(http.StatusOK, `{"items":[],"total":0}`))
	ctx := context.Background()

	_, err := client.Tournaments.Decks(ctx, 12, PageOf(20, 20))
	require.NoError(t, err)
	assert.Equal(t, "/panel/tournament-decks/decks", fb.last(t).Path)
	assert.Equal(t, "tournament_id=12&skip=20&limit=20", fb.last(t).Query)

	_, err = client.Tournaments.Results(ctx, 12, PageOf(0, 20))
	require.NoError(t, err)
	assert.Equal(t, "/panel/tournament-decks/results", fb.last(t).Path)

	_, err = client.Prizes.List(ctx, nil, PageOf(0, 20))
	require.NoError(t, err)
	assert.Equal(t, "skip=0&limit=20", fb.last(t).Query, "unscoped prize list")

	_, err = client.Prizes.List(ctx, Int64(12), PageOf(0, 20))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(fb.last(t).Query, "tournament_id=12&"))

	_, err = client.Tournaments.List(ctx, TournamentFilter{Status: String("active"), ActiveOnly: Bool(true)}, Pagination{})
	require.NoError(t, err)
	assert.Equal(t, "status_filter=active&active_only=true", fb.last(t).Query)

	_, err = client.Tokens.Prices(ctx, 3, PageOf(0, 20))
	require.NoError(t, err)
	assert.Equal(t, "/panel/tokens/3/prices", fb.last(t).Path)
}

func TestSignInIsAnonymous(t *testing.T) {
	client, fb := newTestClient(t, respond(http.StatusOK, `{"access_token":"abc","token_type":"bearer","expires_in":28800}`))

	resp, err := client.Auth.SignIn(ctxWithToken(t, "old"), "alice", "pw")
	require.NoError(t, err)
	assert.Equal(t, "abc", resp.AccessToken)
	assert.EqualValues(t, 28800, resp.ExpiresIn)

	req := fb.last(t)
	assert.Equal(t, "/panel/auth/signin", req.Path)
	assert.Empty(t, req.Header.Get("Authorization"))
	assert.JSONEq(t, `{"username":"alice","password":"pw"}`, req.Body)
}

func TestErrorsPropagateVerbatim(t *testing.T) {
	client, _ := newTestClient(t, respond(http.StatusNotFound, `{"message":"Card not found"}`))

	_, err := client.Cards.Get(context.Background(), 99)
	assert.EqualError(t, err, "Card not found")
}
