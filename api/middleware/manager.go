package middleware

import (
	"danstore_server/services"

	"github.com/MonkyMars/gecho"
)

type Middleware struct {
	logger      *gecho.Logger
	authService *services.AuthService
}

func NewMiddleware(logger *gecho.Logger, authService *services.AuthService) *Middleware {
	return &Middleware{
		logger:      logger,
		authService: authService,
	}
}
