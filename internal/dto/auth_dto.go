package dto

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type CreateClientRequest struct {
	Name   string `json:"name" validate:"required,min=3"`
	Secret string `json:"secret" validate:"required,min=12"`
}
