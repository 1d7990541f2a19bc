package db

import (
	"context"
	"errors"
	"testing"
)

// TestAddFeed tests feed creation.
func TestAddFeed(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()
	ctx := context.Background()

	t.Run("creates feed successfully", func(t *testing.T) {
		f, err := db.AddFeed(ctx, "A", "http://x.com/rss")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if f.ID != 1 {
			t.Errorf("expected first feed to get ID 1, got %d", f.ID)
		}
		if f.Name != "A" || f.URL != "http://x.com/rss" {
			t.Errorf("unexpected feed %+v", f)
		}
	})

	t.Run("rejects duplicate URL with ErrDuplicate", func(t *testing.T) {
		before, _ := db.CountFeeds(ctx)

		_, err := db.AddFeed(ctx, "Other name", "http://x.com/rss")
		if !errors.Is(err, ErrDuplicate) {
			t.Fatalf("expected ErrDuplicate, got %v", err)
		}

		after, _ := db.CountFeeds(ctx)
		if before != after {
			t.Errorf("expected feed count %d to be unchanged, got %d", before, after)
		}
	})

	t.Run("allows duplicate names", func(t *testing.T) {
		if _, err := db.AddFeed(ctx, "A", "http://y.com/rss"); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})
}

// TestFindFeedByURL tests looking up a feed by URL.
func TestFindFeedByURL(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()
	ctx := context.Background()

	created, _ := db.AddFeed(ctx, "Go Blog", "https://go.dev/blog/feed.atom")

	t.Run("finds existing feed", func(t *testing.T) {
		f, err := db.FindFeedByURL(ctx, "https://go.dev/blog/feed.atom")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if f != created {
			t.Errorf("expected %+v, got %+v", created, f)
		}
	})

	t.Run("returns ErrNotFound for unknown URL", func(t *testing.T) {
		_, err := db.FindFeedByURL(ctx, "https://unknown.example/rss")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

// TestGetFeed tests retrieving a single feed.
func TestGetFeed(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()
	ctx := context.Background()

	created, _ := db.AddFeed(ctx, "Feed", "https://example.com/rss")

	f, err := db.GetFeed(ctx, created.ID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if f != created {
		t.Errorf("expected %+v, got %+v", created, f)
	}

	if _, err := db.GetFeed(ctx, 424242); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

// TestListFeeds tests listing feeds.
func TestListFeeds(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()
	ctx := context.Background()

	feeds, err := db.ListFeeds(ctx, 0)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if feeds == nil || len(feeds) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", feeds)
	}

	db.AddFeed(ctx, "One", "https://one.com/rss")
	db.AddFeed(ctx, "Two", "https://two.com/rss")

	feeds, _ = db.ListFeeds(ctx, 0)
	if len(feeds) != 2 {
		t.Fatalf("expected 2 feeds, got %d", len(feeds))
	}
	if feeds[0].Name != "One" || feeds[1].Name != "Two" {
		t.Errorf("expected insertion order, got %q then %q", feeds[0].Name, feeds[1].Name)
	}

	feeds, _ = db.ListFeeds(ctx, 1)
	if len(feeds) != 1 {
		t.Errorf("expected 1 feed with limit, got %d", len(feeds))
	}
}

// TestDeleteFeed tests deleting a feed.
func TestDeleteFeed(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()
	ctx := context.Background()

	t.Run("deletes existing feed and frees its URL", func(t *testing.T) {
		f, _ := db.AddFeed(ctx, "Gone", "https://gone.com/rss")

		if err := db.DeleteFeed(ctx, f.ID); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if _, err := db.GetFeed(ctx, f.ID); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound after delete, got %v", err)
		}
		if _, err := db.AddFeed(ctx, "Back", "https://gone.com/rss"); err != nil {
			t.Errorf("expected URL to be reusable after delete, got %v", err)
		}
	})

	t.Run("returns ErrNotFound for non-existent feed", func(t *testing.T) {
		if err := db.DeleteFeed(ctx, 99999); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}
