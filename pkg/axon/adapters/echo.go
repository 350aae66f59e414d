// Package adapters maps the errors raised by generated stubs onto the
// responses of the supported web frameworks.
package adapters

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/toyz/axonbase/pkg/axon"
)

// EchoErrorHandler returns an echo.HTTPErrorHandler writing *axon.HttpError
// values as JSON with their status. Other errors go to echo's default
// handler. Combine it with middleware.Recover to serve stubs that panic.
func EchoErrorHandler(e *echo.Echo) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		httpErr, ok := axon.AsHttpError(err)
		if !ok {
			e.DefaultHTTPErrorHandler(err, c)
			return
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(httpErr.StatusCode)
		} else {
			err = c.JSON(httpErr.StatusCode, httpErr)
		}
		if err != nil {
			e.Logger.Error(err)
		}
	}
}
