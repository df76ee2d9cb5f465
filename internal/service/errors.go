package service

import "errors"

var (
	ErrSessionNotFound    = errors.New("session not found")
	ErrInvalidCredentials = errors.New("invalid client credentials")
	ErrClientExists       = errors.New("client already exists")
)
