package router

import (
	"github.com/deppfellow/ads-api/internal/handler"
	"github.com/deppfellow/ads-api/internal/middleware"
	"github.com/labstack/echo/v4"
)

// The id guard is attached per route: group middleware would make echo
// register catch-all routes that answer 404 where 405 is expected.

func registerUserRoutes(r *echo.Echo, h *handler.Handlers) {
	numericID := middleware.NumericParam("id")

	r.POST("/user", h.User.CreateUser)
	r.GET("/user/:id", h.User.GetUser, numericID)
	r.PATCH("/user/:id", h.User.UpdateUser, numericID)
	r.DELETE("/user/:id", h.User.DeleteUser, numericID)
}

func registerAdvertisementRoutes(r *echo.Echo, h *handler.Handlers) {
	numericID := middleware.NumericParam("id")

	r.POST("/advertisement", h.Advertisement.CreateAdvertisement)
	r.GET("/advertisement/:id", h.Advertisement.GetAdvertisement, numericID)
	r.PATCH("/advertisement/:id", h.Advertisement.UpdateAdvertisement, numericID)
	r.DELETE("/advertisement/:id", h.Advertisement.DeleteAdvertisement, numericID)
}
