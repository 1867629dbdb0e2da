package models

// User is a player account. WalletShort and DaysSinceRegistration are derived server-side.
type User struct {
	ID                    int64  `json:"id"`
	WalletAddress         string `json:"wallet_address"`
	Nickname              string `json:"nickname"`
	ReferralRoute         string `json:"referral_route"`
	AvatarURL             string `json:"avatar_url"`
	IsActive              bool   `json:"is_active"`
	CreatedAt             string `json:"created_at"`
	UpdatedAt             string `json:"updated_at"`
	WalletShort           string `json:"wallet_short"`
	DaysSinceRegistration int    `json:"days_since_registration"`
}

// UserInput holds the only fields an operator may change
type UserInput struct {
	Nickname      string `json:"nickname"`
	ReferralRoute string `json:"referral_route"`
	AvatarURL     string `json:"avatar_url"`
	IsActive      bool   `json:"is_active"`
}

// Input returns the editable part of u
func (u User) Input() UserInput {
	return UserInput{
		Nickname:      u.Nickname,
		ReferralRoute: u.ReferralRoute,
		AvatarURL:     u.AvatarURL,
		IsActive:      u.IsActive,
	}
}

// SignInRequest is the body of the sign-in call
type SignInRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SignInResponse is returned by a successful sign-in
type SignInResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}
