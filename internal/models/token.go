// Package models mirrors the panel API's records and the request bodies sent to it.
package models

import (
	"github.com/shopspring/decimal"
)

// Token is a tradable asset a card is minted for
type Token struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Symbol    string  `json:"symbol"`
	Weight    float64 `json:"weight"`
	ImageURL  string  `json:"image_url"`
	IsActive  bool    `json:"is_active"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

// TokenInput is the body of token create and update requests
type TokenInput struct {
	Name     string  `json:"name" validate:"required"`
	Symbol   string  `json:"symbol" validate:"required"`
	Weight   float64 `json:"weight"`
	ImageURL string  `json:"image_url"`
	IsActive bool    `json:"is_active"`
}

// NewTokenInput returns the defaults of the create form
func NewTokenInput() TokenInput {
	return TokenInput{IsActive: true}
}

// Input returns the editable part of t
func (t Token) Input() TokenInput {
	return TokenInput{
		Name:     t.Name,
		Symbol:   t.Symbol,
		Weight:   t.Weight,
		ImageURL: t.ImageURL,
		IsActive: t.IsActive,
	}
}

// TokenPrice is one sample of a token's price history
type TokenPrice struct {
	ID           int64               `json:"id"`
	TokenID      int64               `json:"token_id"`
	Price        decimal.Decimal     `json:"price"`
	MarketCap    decimal.NullDecimal `json:"market_cap"`
	Change24h    decimal.NullDecimal `json:"change_24h"`
	SourcesCount int                 `json:"sources_count"`
	Timestamp    string              `json:"timestamp"`
}
