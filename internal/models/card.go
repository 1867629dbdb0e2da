package models

// Card is a collectible bound to a token and a rarity.
// TokenName, TokenSymbol, RarityName and RarityColor are denormalized by the server.
type Card struct {
	ID                 int64  `json:"id"`
	TokenID            int64  `json:"token_id"`
	RarityID           int64  `json:"rarity_id"`
	Rarity             string `json:"rarity,omitempty"`
	DesignType         string `json:"design_type"`
	BackgroundImageURL string `json:"background_image_url"`
	IsActive           bool   `json:"is_active"`
	CreatedAt          string `json:"created_at"`
	UpdatedAt          string `json:"updated_at"`
	TokenName          string `json:"token_name"`
	TokenSymbol        string `json:"token_symbol"`
	RarityName         string `json:"rarity_name"`
	RarityColor        string `json:"rarity_color"`
}

// RarityLabel is the name shown for the card's rarity
func (c Card) RarityLabel() string {
	if c.RarityName != "" {
		return c.RarityName
	}
	return c.Rarity
}

// CardInput is the body of card create and update requests
type CardInput struct {
	TokenID            int64  `json:"token_id" validate:"required"`
	RarityID           int64  `json:"rarity_id" validate:"required"`
	DesignType         string `json:"design_type"`
	BackgroundImageURL string `json:"background_image_url"`
	IsActive           bool   `json:"is_active"`
}

// NewCardInput returns the defaults of the create form
func NewCardInput() CardInput {
	return CardInput{IsActive: true}
}

// Input returns the editable part of c
func (c Card) Input() CardInput {
	return CardInput{
		TokenID:            c.TokenID,
		RarityID:           c.RarityID,
		DesignType:         c.DesignType,
		BackgroundImageURL: c.BackgroundImageURL,
		IsActive:           c.IsActive,
	}
}
