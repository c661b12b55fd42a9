package api

import (
	"errors"
	"github.com/labstack/echo/v4"
	"task-service/internal/service"
)

// errorResponse writes err as {"error": detail}. Rejected input is a 400,
// every other client facing service error is a 404 and anything else is a
// server error.
func errorResponse(c echo.Context, err error) error {
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		if errors.Is(svcErr.Kind, service.ErrInvalidInput) {
			return c.JSON(400, map[string]string{"error": svcErr.Detail})
		}
		return c.JSON(404, map[string]string{"error": svcErr.Detail})
	}
	return c.JSON(500, map[string]string{"error": err.Error()})
}

func paramID(c echo.Context, name string) (int, error) {
	var id int
	err := echo.PathParamsBinder(c).MustInt(name, &id).BindError()
	return id, err
}

// window reads the optional skip and limit query parameters.
func window(c echo.Context) (skip, limit int, err error) {
	skip, limit = service.DefaultSkip, service.DefaultLimit
	err = echo.QueryParamsBinder(c).Int("skip", &skip).Int("limit", &limit).BindError()
	if err == nil && (skip < 0 || limit < 0) {
		err = errors.New("skip and limit must not be negative")
	}
	return skip, limit, err
}
