package web

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (ws *Server) handleIndex(c echo.Context) error {
	return c.HTMLBlob(http.StatusOK, ws.indexHTML)
}

func (ws *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
