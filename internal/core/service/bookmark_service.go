//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/seckatie/feedmarks/internal/core/db"
)

type BookmarkService interface {
	List(ctx context.Context) ([]db.Bookmark, error)
	Create(ctx context.Context, name, url string) (db.Bookmark, error)
	Delete(ctx context.Context, id int64) error
}

type bookmarkService struct {
	bookmarks BookmarkRepository
}

func NewBookmarkService(bookmarks BookmarkRepository) BookmarkService {
	return &bookmarkService{bookmarks: bookmarks}
}

func (s *bookmarkService) List(ctx context.Context) ([]db.Bookmark, error) {
	bookmarks, err := s.bookmarks.ListBookmarks(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	return bookmarks, nil
}

// Create stores a new bookmark. Bookmarks are not deduplicated.
func (s *bookmarkService) Create(ctx context.Context, name, url string) (db.Bookmark, error) {
	in, err := newRecordInput(name, url)
	if err != nil {
		return db.Bookmark{}, err
	}
	b, err := s.bookmarks.AddBookmark(ctx, in.Name, in.URL)
	if err != nil {
		return db.Bookmark{}, fmt.Errorf("create bookmark: %w", err)
	}
	return b, nil
}

func (s *bookmarkService) Delete(ctx context.Context, id int64) error {
	if err := s.bookmarks.DeleteBookmark(ctx, id); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("bookmark %d: %w", id, ErrNotFound)
		}
		return fmt.Errorf("delete bookmark: %w", err)
	}
	return nil
}
