package models

import (
	"encoding/json"

	"github.com/league-panel/internal/types"
	"github.com/shopspring/decimal"
)

// Tournament is one numbered competition round
type Tournament struct {
	ID               int64                  `json:"id"`
	TournamentNumber int                    `json:"tournament_number"`
	Status           types.TournamentStatus `json:"status"`
	StartDate        string                 `json:"start_date"`
	EndDate          string                 `json:"end_date"`
	WeightLimit      *float64               `json:"weight_limit,omitempty"`
	IsActive         bool                   `json:"is_active"`
	DurationDays     int                    `json:"duration_days"`
	CreatedAt        string                 `json:"created_at"`
	UpdatedAt        string                 `json:"updated_at"`
}

// TournamentInput is the body of tournament create and update requests
type TournamentInput struct {
	TournamentNumber int                    `json:"tournament_number" validate:"required"`
	Status           types.TournamentStatus `json:"status" validate:"required"`
	StartDate        string                 `json:"start_date" validate:"required"`
	EndDate          string                 `json:"end_date" validate:"required"`
	WeightLimit      *float64               `json:"weight_limit,omitempty"`
}

// NewTournamentInput returns the defaults of the create form
func NewTournamentInput() TournamentInput {
	return TournamentInput{Status: types.TournamentRegistration}
}

// Input returns the editable part of t, with dates in form-input format
func (t Tournament) Input() TournamentInput {
	return TournamentInput{
		TournamentNumber: t.TournamentNumber,
		Status:           t.Status,
		StartDate:        DateTimeLocal(t.StartDate),
		EndDate:          DateTimeLocal(t.EndDate),
		WeightLimit:      t.WeightLimit,
	}
}

// TournamentDeck is a deck a user submitted to a tournament. Read-only.
type TournamentDeck struct {
	ID               int64           `json:"id"`
	TournamentID     int64           `json:"tournament_id"`
	UserID           int64           `json:"user_id"`
	DeckComposition  json.RawMessage `json:"deck_composition"`
	DeckHash         string          `json:"deck_hash"`
	IsValid          bool            `json:"is_valid"`
	IsActive         bool            `json:"is_active"`
	ValidationErrors json.RawMessage `json:"validation_errors"`
	TransactionHash  *string         `json:"transaction_hash"`
	SubmittedAt      string          `json:"submitted_at"`
}

// TournamentReward is a realized result: the reward paid for a range of positions
type TournamentReward struct {
	ID           int64           `json:"id"`
	TournamentID int64           `json:"tournament_id"`
	PositionFrom int             `json:"position_from"`
	PositionTo   int             `json:"position_to"`
	RewardTypeID int64           `json:"reward_type_id"`
	RewardAmount decimal.Decimal `json:"reward_amount"`
	CreatedAt    string          `json:"created_at"`
}

// TournamentPrize is prize configuration; same shape as a reward, but mutable
type TournamentPrize TournamentReward

// TournamentPrizeInput is the body of prize create and update requests
type TournamentPrizeInput struct {
	TournamentID int64           `json:"tournament_id" validate:"required"`
	PositionFrom int             `json:"position_from"`
	PositionTo   int             `json:"position_to"`
	RewardTypeID int64           `json:"reward_type_id"`
	RewardAmount decimal.Decimal `json:"reward_amount"`
}

// NewTournamentPrizeInput returns the defaults of the create form, scoped to tournamentID when non-zero
func NewTournamentPrizeInput(tournamentID int64) TournamentPrizeInput {
	return TournamentPrizeInput{TournamentID: tournamentID, RewardAmount: decimal.Zero}
}

// Input returns the editable part of p
func (p TournamentPrize) Input() TournamentPrizeInput {
	return TournamentPrizeInput{
		TournamentID: p.TournamentID,
		PositionFrom: p.PositionFrom,
		PositionTo:   p.PositionTo,
		RewardTypeID: p.RewardTypeID,
		RewardAmount: p.RewardAmount,
	}
}
