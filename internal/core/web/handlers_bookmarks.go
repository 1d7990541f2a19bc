package web

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const (
	msgBookmarkNotFound = "Bookmark not found"
	msgBookmarkDeleted  = "Bookmark deleted"
)

func (ws *Server) handleListBookmarks(c echo.Context) error {
	bookmarks, err := ws.bookmarks.List(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err, msgBookmarkNotFound, "")
	}
	response := make([]recordResponse, 0, len(bookmarks))
	for _, b := range bookmarks {
		response = append(response, toBookmarkResponse(b))
	}
	return c.JSON(http.StatusOK, response)
}

func (ws *Server) handleCreateBookmark(c echo.Context) error {
	var req createRecordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}
	b, err := ws.bookmarks.Create(c.Request().Context(), req.Name, req.URL)
	if err != nil {
		return writeServiceError(c, err, msgBookmarkNotFound, "")
	}
	return c.JSON(http.StatusCreated, toBookmarkResponse(b))
}

func (ws *Server) handleDeleteBookmark(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid bookmark id"})
	}
	if err := ws.bookmarks.Delete(c.Request().Context(), id); err != nil {
		return writeServiceError(c, err, msgBookmarkNotFound, "")
	}
	return c.JSON(http.StatusOK, messageResponse{Message: msgBookmarkDeleted})
}
