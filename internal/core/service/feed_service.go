//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/seckatie/feedmarks/internal/core/db"
	"github.com/seckatie/feedmarks/internal/opml"
)

type FeedService interface {
	List(ctx context.Context) ([]db.Feed, error)
	Create(ctx context.Context, name, url string) (db.Feed, error)
	Delete(ctx context.Context, id int64) error
	ExportOPML(ctx context.Context) ([]byte, error)
}

type feedService struct {
	feeds FeedRepository
	now   func() time.Time
}

func NewFeedService(feeds FeedRepository) FeedService {
	return &feedService{feeds: feeds, now: time.Now}
}

func (s *feedService) List(ctx context.Context) ([]db.Feed, error) {
	feeds, err := s.feeds.ListFeeds(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("list feeds: %w", err)
	}
	return feeds, nil
}

// Create stores a new feed unless one with the same URL already exists.
// The URL is checked before the insert; the table's UNIQUE index only
// catches a concurrent insert that slipped past the check.
func (s *feedService) Create(ctx context.Context, name, url string) (db.Feed, error) {
	in, err := newRecordInput(name, url)
	if err != nil {
		return db.Feed{}, err
	}

	if _, err := s.feeds.FindFeedByURL(ctx, in.URL); err == nil {
		return db.Feed{}, fmt.Errorf("feed %q: %w", in.URL, ErrConflict)
	} else if !errors.Is(err, db.ErrNotFound) {
		return db.Feed{}, fmt.Errorf("check feed url: %w", err)
	}

	f, err := s.feeds.AddFeed(ctx, in.Name, in.URL)
	if err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			return db.Feed{}, fmt.Errorf("feed %q: %w", in.URL, ErrConflict)
		}
		return db.Feed{}, fmt.Errorf("create feed: %w", err)
	}
	return f, nil
}

func (s *feedService) Delete(ctx context.Context, id int64) error {
	if err := s.feeds.DeleteFeed(ctx, id); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("feed %d: %w", id, ErrNotFound)
		}
		return fmt.Errorf("delete feed: %w", err)
	}
	return nil
}

// ExportOPML renders every stored feed as an OPML subscription list.
func (s *feedService) ExportOPML(ctx context.Context) ([]byte, error) {
	feeds, err := s.feeds.ListFeeds(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("list feeds: %w", err)
	}

	doc := opml.Document{
		Version: "2.0",
		Head: opml.Head{
			Title:       "feedmarks subscriptions",
			DateCreated: s.now().UTC().Format(time.RFC1123Z),
		},
	}
	for _, f := range feeds {
		doc.Body.Outlines = append(doc.Body.Outlines, opml.Outline{
			Text:   f.Name,
			Title:  f.Name,
			Type:   "rss",
			XMLURL: f.URL,
		})
	}

	out, err := opml.Encode(doc)
	if err != nil {
		return nil, fmt.Errorf("encode opml: %w", err)
	}
	return out, nil
}
