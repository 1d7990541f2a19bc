//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package service

import (
	"context"

	"github.com/seckatie/feedmarks/internal/core/db"
)

// BookmarkRepository is the persistence the bookmark service needs.
// *db.DB satisfies it.
type BookmarkRepository interface {
	AddBookmark(ctx context.Context, name, url string) (db.Bookmark, error)
	ListBookmarks(ctx context.Context, limit int) ([]db.Bookmark, error)
	DeleteBookmark(ctx context.Context, id int64) error
}

// FeedRepository is the persistence the feed service needs.
// *db.DB satisfies it.
type FeedRepository interface {
	AddFeed(ctx context.Context, name, url string) (db.Feed, error)
	FindFeedByURL(ctx context.Context, url string) (db.Feed, error)
	ListFeeds(ctx context.Context, limit int) ([]db.Feed, error)
	DeleteFeed(ctx context.Context, id int64) error
}

var (
	_ BookmarkRepository = (*db.DB)(nil)
	_ FeedRepository     = (*db.DB)(nil)
)
