package middleware

import (
	"regexp"
	"strconv"

	"github.com/labstack/echo/v4"
)

var digits = regexp.MustCompile(`^\d+$`)

// NumericParam makes a route match only when the named path parameter is a
// digit sequence that fits in an int64. Anything else is answered exactly
// like an unknown route.
func NumericParam(name string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			value := c.Param(name)
			if !digits.MatchString(value) {
				return echo.ErrNotFound
			}
			if _, err := strconv.ParseInt(value, 10, 64); err != nil {
				return echo.ErrNotFound
			}
			return next(c)
		}
	}
}
