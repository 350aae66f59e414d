package adapters

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/stretchr/testify/assert"
)

func newEchoServer(svc greeter) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = EchoErrorHandler(e)
	e.Use(middleware.Recover())

	e.GET("/greet/:name", func(c echo.Context) error {
		msg, err := svc.Greet(c.Param("name"))
		if err != nil {
			return err
		}
		return c.String(http.StatusOK, msg)
	})
	e.POST("/wave", func(c echo.Context) error {
		svc.Wave()
		return c.NoContent(http.StatusNoContent)
	})
	e.GET("/missing", func(c echo.Context) error {
		return echo.ErrNotFound
	})
	return e
}

func TestEchoErrorHandler_NotImplemented(t *testing.T) {
	e := newEchoServer(greeterBase{})

	rec := serve(e, http.MethodGet, "/greet/bob")
	assert.Equal(t, http.StatusNotImplemented, rec.Code)
	body := decodeError(t, rec.Body.Bytes())
	assert.Equal(t, "Greeter.Greet is not implemented", body.Message)
	assert.Equal(t, "Greet", body.Details.Method)
}

func TestEchoErrorHandler_PanickingStub(t *testing.T) {
	e := newEchoServer(greeterBase{})

	rec := serve(e, http.MethodPost, "/wave")
	assert.Equal(t, http.StatusNotImplemented, rec.Code)
	assert.Equal(t, "Wave", decodeError(t, rec.Body.Bytes()).Details.Method)
}

func TestEchoErrorHandler_Overridden(t *testing.T) {
	e := newEchoServer(partialGreeter{})

	rec := serve(e, http.MethodGet, "/greet/bob")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hello bob", rec.Body.String())
}

func TestEchoErrorHandler_OtherErrors(t *testing.T) {
	e := newEchoServer(greeterBase{})

	rec := serve(e, http.MethodGet, "/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
