package auth

import (
	"danstore_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type AuthRoutesManager struct {
	logger       *gecho.Logger
	authService  *services.AuthService
	emailService *services.EmailService
}

func NewAuthRoutesManager(logger *gecho.Logger, authService *services.AuthService, emailService *services.EmailService) *AuthRoutesManager {
	return &AuthRoutesManager{
		logger:       logger,
		authService:  authService,
		emailService: emailService,
	}
}

func (arm *AuthRoutesManager) RegisterRoutes(r chi.Router) {
	r.Post("/api/login/", arm.HandleLogin)
	r.Post("/api/register/", arm.HandleRegister)
	r.Post("/api/token/refresh/", arm.HandleRefresh)
}
