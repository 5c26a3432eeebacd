package handler

import (
	"github.com/deppfellow/ads-api/internal/server"
	"github.com/deppfellow/ads-api/internal/service"
)

// Handlers is a container that groups all HTTP handlers.
type Handlers struct {
	Health        *HealthHandler
	OpenAPI       *OpenAPIHandler
	User          *UserHandler
	Advertisement *AdvertisementHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:        NewHealthHandler(s),
		OpenAPI:       NewOpenAPIHandler(s),
		User:          NewUserHandler(s, services.User),
		Advertisement: NewAdvertisementHandler(s, services.Advertisement),
	}
}
