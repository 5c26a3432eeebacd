package handler

import (
	"net/http"

	"github.com/deppfellow/ads-api/internal/model"
	"github.com/deppfellow/ads-api/internal/server"
	"github.com/deppfellow/ads-api/internal/service"
	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	Handler
	userService *service.UserService
}

func NewUserHandler(s *server.Server, userService *service.UserService) *UserHandler {
	return &UserHandler{
		Handler:     NewHandler(s),
		userService: userService,
	}
}

func (h *UserHandler) GetUser(c echo.Context) error {
	return Handle(
		h.Handler,
		func(c echo.Context, payload *model.ByIDPayload) (*model.UserResponse, error) {
			return h.userService.GetUser(c.Request().Context(), payload.ID)
		},
		http.StatusOK,
		&model.ByIDPayload{},
	)(c)
}

func (h *UserHandler) CreateUser(c echo.Context) error {
	return Handle(
		h.Handler,
		func(c echo.Context, payload *model.CreateUserPayload) (*model.CreatedResponse, error) {
			return h.userService.CreateUser(c.Request().Context(), payload)
		},
		http.StatusOK,
		&model.CreateUserPayload{},
	)(c)
}

func (h *UserHandler) UpdateUser(c echo.Context) error {
	return Handle(
		h.Handler,
		func(c echo.Context, payload *model.UpdateUserPayload) (*model.StatusResponse, error) {
			return h.userService.UpdateUser(c.Request().Context(), payload)
		},
		http.StatusOK,
		&model.UpdateUserPayload{},
	)(c)
}

func (h *UserHandler) DeleteUser(c echo.Context) error {
	return Handle(
		h.Handler,
		func(c echo.Context, payload *model.ByIDPayload) (*model.StatusResponse, error) {
			return h.userService.DeleteUser(c.Request().Context(), payload.ID)
		},
		http.StatusOK,
		&model.ByIDPayload{},
	)(c)
}
