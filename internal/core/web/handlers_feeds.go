package web

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const (
	msgFeedNotFound = "RSS Feed not found"
	msgFeedExists   = "RSS Feed already exists"
	msgFeedDeleted  = "RSS Feed deleted"
)

func (ws *Server) handleListFeeds(c echo.Context) error {
	feeds, err := ws.feeds.List(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err, msgFeedNotFound, msgFeedExists)
	}
	response := make([]recordResponse, 0, len(feeds))
	for _, f := range feeds {
		response = append(response, toFeedResponse(f))
	}
	return c.JSON(http.StatusOK, response)
}

func (ws *Server) handleCreateFeed(c echo.Context) error {
	var req createRecordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}
	f, err := ws.feeds.Create(c.Request().Context(), req.Name, req.URL)
	if err != nil {
		return writeServiceError(c, err, msgFeedNotFound, msgFeedExists)
	}
	return c.JSON(http.StatusCreated, toFeedResponse(f))
}

func (ws *Server) handleDeleteFeed(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid feed id"})
	}
	if err := ws.feeds.Delete(c.Request().Context(), id); err != nil {
		return writeServiceError(c, err, msgFeedNotFound, msgFeedExists)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: msgFeedDeleted})
}

func (ws *Server) handleExportFeeds(c echo.Context) error {
	out, err := ws.feeds.ExportOPML(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err, msgFeedNotFound, msgFeedExists)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="feedmarks.opml"`)
	return c.Blob(http.StatusOK, "text/x-opml; charset=utf-8", out)
}

func handleExportMethodNotAllowed(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderAllow, http.MethodGet)
	return echo.ErrMethodNotAllowed
}
