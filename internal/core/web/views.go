package web

import "github.com/seckatie/feedmarks/internal/core/db"

// recordResponse is the JSON shape of both bookmarks and feeds.
type recordResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

type createRecordRequest struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func toBookmarkResponse(b db.Bookmark) recordResponse {
	return recordResponse{ID: b.ID, Name: b.Name, URL: b.URL}
}

func toFeedResponse(f db.Feed) recordResponse {
	return recordResponse{ID: f.ID, Name: f.Name, URL: f.URL}
}
