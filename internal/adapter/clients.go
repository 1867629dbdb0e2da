package adapter

import (
	"context"
	"net/http"

	"github.com/league-panel/internal/models"
	"github.com/league-panel/internal/types"
)

// Collection paths of the panel API
const (
	tokensPath      = "/panel/tokens/"
	cardsPath       = "/management/cards/"
	raritiesPath    = "/panel/rarities/"
	packTypesPath   = "/panel/pack-types/"
	rewardTypesPath = "/panel/reward-types/"
	tournamentsPath = "/panel/tournaments/"
	decksPath       = "/panel/tournament-decks/"
	prizesPath      = "/panel/tournament-prizes/"
	usersPath       = "/panel/users/"
	signInPath      = "/panel/auth/signin"
)

// Client groups every resource client over one gateway
type Client struct {
	Auth        *AuthClient
	Tokens      *TokensClient
	Cards       *CardsClient
	Rarities    *RaritiesClient
	PackTypes   *PackTypesClient
	RewardTypes *RewardTypesClient
	Tournaments *TournamentsClient
	Prizes      *PrizesClient
	Users       *UsersClient
}

// NewClient wires all resource clients to gw
func NewClient(gw *Gateway) *Client {
	return &Client{
		Auth:        &AuthClient{gw: gw},
		Tokens:      &TokensClient{newResource[models.Token, models.TokenInput](gw, tokensPath)},
		Cards:       &CardsClient{newResource[models.Card, models.CardInput](gw, cardsPath)},
		Rarities:    &RaritiesClient{newResource[models.Rarity, models.RarityInput](gw, raritiesPath)},
		PackTypes:   &PackTypesClient{newResource[models.PackType, models.PackTypeInput](gw, packTypesPath)},
		RewardTypes: &RewardTypesClient{newResource[models.RewardType, models.RewardTypeInput](gw, rewardTypesPath)},
		Tournaments: &TournamentsClient{newResource[models.Tournament, models.TournamentInput](gw, tournamentsPath)},
		Prizes:      &PrizesClient{newResource[models.TournamentPrize, models.TournamentPrizeInput](gw, prizesPath)},
		Users:       &UsersClient{res: newResource[models.User, models.UserInput](gw, usersPath)},
	}
}

// AuthClient signs operators in
type AuthClient struct {
	gw *Gateway
}

// SignIn exchanges credentials for an access token. No stored token is sent.
func (c *AuthClient) SignIn(ctx context.Context, username, password string) (*models.SignInResponse, error) {
	resp, err := Do[models.SignInResponse](ctx, c.gw, signInPath, RequestOptions{
		Method:    http.MethodPost,
		Body:      models.SignInRequest{Username: username, Password: password},
		Anonymous: true,
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// TokenFilter narrows the token list
type TokenFilter struct {
	ActiveOnly *bool
}

// TokensClient manages tokens, their price history and the price scheduler
type TokensClient struct {
	resource[models.Token, models.TokenInput]
}

// List returns a page of tokens
func (c *TokensClient) List(ctx context.Context, f TokenFilter, p Pagination) (*types.Page[models.Token], error) {
	return c.list(ctx, NewQuery().Bool("active_only", f.ActiveOnly).Page(p))
}

// Prices returns a page of the token's price history
func (c *TokensClient) Prices(ctx context.Context, tokenID int64, p Pagination) (*types.Page[models.TokenPrice], error) {
	res := newResource[models.TokenPrice, struct{}](c.gw, tokensPath)
	return res.listAt(ctx, Endpoint(tokensPath, tokenID, "prices"), NewQuery().Page(p))
}

// SchedulerStatus reports the price collection scheduler state
func (c *TokensClient) SchedulerStatus(ctx context.Context) (string, error) {
	return opaque(ctx, c.gw, http.MethodGet, tokensPath+"scheduler/status")
}

// TriggerScheduler starts a price collection run now
func (c *TokensClient) TriggerScheduler(ctx context.Context) (string, error) {
	return opaque(ctx, c.gw, http.MethodPost, tokensPath+"scheduler/trigger")
}

// CardFilter narrows the card list
type CardFilter struct {
	ActiveOnly *bool
	TokenID    *int64
	Rarity     *string
}

// CardsClient manages cards
type CardsClient struct {
	resource[models.Card, models.CardInput]
}

// List returns a page of cards
func (c *CardsClient) List(ctx context.Context, f CardFilter, p Pagination) (*types.Page[models.Card], error) {
	q := NewQuery().
		Bool("active_only", f.ActiveOnly).
		Int64("token_id", f.TokenID).
		String("rarity", f.Rarity).
		Page(p)
	return c.list(ctx, q)
}

// Activate marks a card active
func (c *CardsClient) Activate(ctx context.Context, id int64) (string, error) {
	return opaque(ctx, c.gw, http.MethodPost, Endpoint(cardsPath, id, "activate"))
}

// ReferenceOptions returns the backend's reference data for card forms
func (c *CardsClient) ReferenceOptions(ctx context.Context) (string, error) {
	return opaque(ctx, c.gw, http.MethodGet, cardsPath+"reference/options")
}

// RaritiesClient manages rarities
type RaritiesClient struct {
	resource[models.Rarity, models.RarityInput]
}

// List returns a page of rarities
func (c *RaritiesClient) List(ctx context.Context, p Pagination) (*types.Page[models.Rarity], error) {
	return c.list(ctx, NewQuery().Page(p))
}

// PackTypesClient manages pack types
type PackTypesClient struct {
	resource[models.PackType, models.PackTypeInput]
}

// List returns a page of pack types
func (c *PackTypesClient) List(ctx context.Context, p Pagination) (*types.Page[models.PackType], error) {
	return c.list(ctx, NewQuery().Page(p))
}

// RewardTypesClient manages reward types
type RewardTypesClient struct {
	resource[models.RewardType, models.RewardTypeInput]
}

// List returns a page of reward types
func (c *RewardTypesClient) List(ctx context.Context, p Pagination) (*types.Page[models.RewardType], error) {
	return c.list(ctx, NewQuery().Page(p))
}

// TournamentFilter narrows the tournament list
type TournamentFilter struct {
	Status     *string
	ActiveOnly *bool
}

// TournamentsClient manages tournaments and reads their decks and results
type TournamentsClient struct {
	resource[models.Tournament, models.TournamentInput]
}

// List returns a page of tournaments
func (c *TournamentsClient) List(ctx context.Context, f TournamentFilter, p Pagination) (*types.Page[models.Tournament], error) {
	q := NewQuery().
		String("status_filter", f.Status).
		Bool("active_only", f.ActiveOnly).
		Page(p)
	return c.list(ctx, q)
}

// StatsSummary returns the backend's tournament statistics report
func (c *TournamentsClient) StatsSummary(ctx context.Context) (string, error) {
	return opaque(ctx, c.gw, http.MethodGet, tournamentsPath+"stats/summary")
}

// Decks returns a page of decks submitted to a tournament
func (c *TournamentsClient) Decks(ctx context.Context, tournamentID int64, p Pagination) (*types.Page[models.TournamentDeck], error) {
	res := newResource[models.TournamentDeck, struct{}](c.gw, decksPath)
	return res.listAt(ctx, decksPath+"decks", NewQuery().Int64("tournament_id", &tournamentID).Page(p))
}

// Results returns a page of a tournament's realized rewards
func (c *TournamentsClient) Results(ctx context.Context, tournamentID int64, p Pagination) (*types.Page[models.TournamentReward], error) {
	res := newResource[models.TournamentReward, struct{}](c.gw, decksPath)
	return res.listAt(ctx, decksPath+"results", NewQuery().Int64("tournament_id", &tournamentID).Page(p))
}

// PrizesClient manages tournament prize configuration
type PrizesClient struct {
	resource[models.TournamentPrize, models.TournamentPrizeInput]
}

// List returns a page of prizes, across all tournaments when tournamentID is nil
func (c *PrizesClient) List(ctx context.Context, tournamentID *int64, p Pagination) (*types.Page[models.TournamentPrize], error) {
	return c.list(ctx, NewQuery().Int64("tournament_id", tournamentID).Page(p))
}

// UsersClient reads and edits player accounts; users cannot be created or deleted here
type UsersClient struct {
	res resource[models.User, models.UserInput]
}

// List returns a page of users
func (c *UsersClient) List(ctx context.Context, p Pagination) (*types.Page[models.User], error) {
	return c.res.list(ctx, NewQuery().Page(p))
}

// Get fetches one user
func (c *UsersClient) Get(ctx context.Context, id int64) (*models.User, error) {
	return c.res.Get(ctx, id)
}

// Update changes a user's editable fields
func (c *UsersClient) Update(ctx context.Context, id int64, input models.UserInput) (*models.User, error) {
	return c.res.Update(ctx, id, input)
}

// StatsSummary returns the backend's user statistics report
func (c *UsersClient) StatsSummary(ctx context.Context) (string, error) {
	return opaque(ctx, c.res.gw, http.MethodGet, usersPath+"stats/summary")
}

// SearchDuplicates runs the backend's duplicate-account search
func (c *UsersClient) SearchDuplicates(ctx context.Context) (string, error) {
	return opaque(ctx, c.res.gw, http.MethodGet, usersPath+"search/duplicates")
}
