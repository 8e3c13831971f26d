package service

import (
	"github.com/viewtube/user-service/internal/config"
	"github.com/viewtube/user-service/internal/logger"
	"github.com/viewtube/user-service/internal/media"
	"github.com/viewtube/user-service/internal/store"
)

// Services aggregates the business-logic layer handed to the transport.
type Services struct {
	AuthService AuthService
}

// NewServices wires the auth service to its collaborators.
func NewServices(users store.UserRepository, uploader media.Uploader, cfg config.App, logger *logger.Logger) *Services {
	logger.Info().Msg("creating new services...")

	return &Services{
		AuthService: NewAuthService(users, uploader, cfg, logger),
	}
}
