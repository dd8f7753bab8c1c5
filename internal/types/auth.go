package types

// RegisterRequest is the JSON body for POST /auth/register.
type RegisterRequest struct {
	Email    string  `json:"email" example:"newuser@example.com"`
	Password string  `json:"password" example:"Str0ngP@ss!"`
	Name     *string `json:"name,omitempty" example:"John"`
}

// LoginRequest is the JSON body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" example:"user@example.com"`
	Password string `json:"password" example:"password123"`
}

// TokenResponse is returned by both register and login.
type TokenResponse struct {
	AccessToken string `json:"access_token" example:"eyJhbGciOiJI..."`
}

// IdentityClaim is the verified identity carried by an access token.
type IdentityClaim struct {
	UserID int64
	Email  string
}
