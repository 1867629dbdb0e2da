package models

import (
	"github.com/shopspring/decimal"
)

// Rarity grades cards; Color is a CSS color used verbatim
type Rarity struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	ScoreBonus  float64 `json:"score_bonus"`
	Color       string  `json:"color"`
	IsActive    bool    `json:"is_active"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// RarityInput is the body of rarity create and update requests
type RarityInput struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	ScoreBonus  float64 `json:"score_bonus"`
	Color       string  `json:"color" validate:"required"`
	IsActive    bool    `json:"is_active"`
}

// NewRarityInput returns the defaults of the create form
func NewRarityInput() RarityInput {
	return RarityInput{Color: "#000000", IsActive: true}
}

// Input returns the editable part of r
func (r Rarity) Input() RarityInput {
	return RarityInput{
		Name:        r.Name,
		Description: r.Description,
		ScoreBonus:  r.ScoreBonus,
		Color:       r.Color,
		IsActive:    r.IsActive,
	}
}

// PackType is a purchasable card pack
type PackType struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	ImageURL        string          `json:"image_url"`
	HeaderImageURL  string          `json:"header_image_url"`
	CardsPerPack    int             `json:"cards_per_pack"`
	Price           decimal.Decimal `json:"price"`
	Currency        string          `json:"currency"`
	Supply          *int            `json:"supply"`
	AvailableFrom   *string         `json:"available_from"`
	AvailableUntil  *string         `json:"available_until"`
	GuaranteedSlots *string         `json:"guaranteed_slots"`
	IsActive        bool            `json:"is_active"`
	CreatedAt       string          `json:"created_at"`
	UpdatedAt       string          `json:"updated_at"`
}

// PackTypeInput is the body of pack type create and update requests.
// Optional fields left empty on the form are omitted from the body.
type PackTypeInput struct {
	Name            string          `json:"name" validate:"required"`
	Description     string          `json:"description"`
	ImageURL        string          `json:"image_url"`
	HeaderImageURL  string          `json:"header_image_url"`
	CardsPerPack    int             `json:"cards_per_pack"`
	Price           decimal.Decimal `json:"price"`
	Currency        string          `json:"currency"`
	Supply          *int            `json:"supply,omitempty"`
	AvailableFrom   string          `json:"available_from,omitempty"`
	AvailableUntil  string          `json:"available_until,omitempty"`
	GuaranteedSlots string          `json:"guaranteed_slots,omitempty"`
	IsActive        bool            `json:"is_active"`
}

// NewPackTypeInput returns the defaults of the create form
func NewPackTypeInput() PackTypeInput {
	return PackTypeInput{Price: decimal.Zero, IsActive: true}
}

// Input returns the editable part of p, with dates in form-input format
func (p PackType) Input() PackTypeInput {
	in := PackTypeInput{
		Name:           p.Name,
		Description:    p.Description,
		ImageURL:       p.ImageURL,
		HeaderImageURL: p.HeaderImageURL,
		CardsPerPack:   p.CardsPerPack,
		Price:          p.Price,
		Currency:       p.Currency,
		Supply:         p.Supply,
		IsActive:       p.IsActive,
	}
	if p.AvailableFrom != nil {
		in.AvailableFrom = DateTimeLocal(*p.AvailableFrom)
	}
	if p.AvailableUntil != nil {
		in.AvailableUntil = DateTimeLocal(*p.AvailableUntil)
	}
	if p.GuaranteedSlots != nil {
		in.GuaranteedSlots = *p.GuaranteedSlots
	}
	return in
}

// RewardType describes a kind of prize a tournament can pay out
type RewardType struct {
	ID               int64           `json:"id"`
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	RewardCategory   string          `json:"reward_category"`
	DefaultAmount    decimal.Decimal `json:"default_amount"`
	CurrencyType     string          `json:"currency_type"`
	IsClaimable      bool            `json:"is_claimable"`
	ExpiresAfterDays int             `json:"expires_after_days"`
	IsActive         bool            `json:"is_active"`
	CreatedAt        string          `json:"created_at"`
	UpdatedAt        string          `json:"updated_at"`
}

// RewardTypeInput is the body of reward type create and update requests
type RewardTypeInput struct {
	Name             string          `json:"name" validate:"required"`
	Description      string          `json:"description"`
	RewardCategory   string          `json:"reward_category" validate:"required"`
	DefaultAmount    decimal.Decimal `json:"default_amount"`
	CurrencyType     string          `json:"currency_type"`
	IsClaimable      bool            `json:"is_claimable"`
	ExpiresAfterDays int             `json:"expires_after_days"`
	IsActive         bool            `json:"is_active"`
}

// NewRewardTypeInput returns the defaults of the create form
func NewRewardTypeInput() RewardTypeInput {
	return RewardTypeInput{DefaultAmount: decimal.Zero, IsClaimable: true, IsActive: true}
}

// Input returns the editable part of r
func (r RewardType) Input() RewardTypeInput {
	return RewardTypeInput{
		Name:             r.Name,
		Description:      r.Description,
		RewardCategory:   r.RewardCategory,
		DefaultAmount:    r.DefaultAmount,
		CurrencyType:     r.CurrencyType,
		IsClaimable:      r.IsClaimable,
		ExpiresAfterDays: r.ExpiresAfterDays,
		IsActive:         r.IsActive,
	}
}
