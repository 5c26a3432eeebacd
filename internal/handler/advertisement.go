package handler

import (
	"net/http"

	"github.com/deppfellow/ads-api/internal/model"
	"github.com/deppfellow/ads-api/internal/server"
	"github.com/deppfellow/ads-api/internal/service"
	"github.com/labstack/echo/v4"
)

type AdvertisementHandler struct {
	Handler
	advertisementService *service.AdvertisementService
}

func NewAdvertisementHandler(s *server.Server, advertisementService *service.AdvertisementService) *AdvertisementHandler {
	return &AdvertisementHandler{
		Handler:              NewHandler(s),
		advertisementService: advertisementService,
	}
}

func (h *AdvertisementHandler) GetAdvertisement(c echo.Context) error {
	return Handle(
		h.Handler,
		func(c echo.Context, payload *model.ByIDPayload) (*model.AdvertisementResponse, error) {
			return h.advertisementService.GetAdvertisement(c.Request().Context(), payload.ID)
		},
		http.StatusOK,
		&model.ByIDPayload{},
	)(c)
}

func (h *AdvertisementHandler) CreateAdvertisement(c echo.Context) error {
	return Handle(
		h.Handler,
		func(c echo.Context, payload *model.CreateAdvertisementPayload) (*model.CreatedResponse, error) {
			return h.advertisementService.CreateAdvertisement(c.Request().Context(), payload)
		},
		http.StatusOK,
		&model.CreateAdvertisementPayload{},
	)(c)
}

func (h *AdvertisementHandler) UpdateAdvertisement(c echo.Context) error {
	return Handle(
		h.Handler,
		func(c echo.Context, payload *model.UpdateAdvertisementPayload) (*model.StatusResponse, error) {
			return h.advertisementService.UpdateAdvertisement(c.Request().Context(), payload)
		},
		http.StatusOK,
		&model.UpdateAdvertisementPayload{},
	)(c)
}

func (h *AdvertisementHandler) DeleteAdvertisement(c echo.Context) error {
	return Handle(
		h.Handler,
		func(c echo.Context, payload *model.ByIDPayload) (*model.StatusResponse, error) {
			return h.advertisementService.DeleteAdvertisement(c.Request().Context(), payload.ID)
		},
		http.StatusOK,
		&model.ByIDPayload{},
	)(c)
}
