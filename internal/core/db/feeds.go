package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// ------------------------------
// Feed methods
// ------------------------------

func (db *DB) GetFeed(ctx context.Context, id int64) (Feed, error) {
	var f Feed
	err := db.db.QueryRowContext(ctx, "SELECT id, name, url, created_at FROM feeds WHERE id = ?", id).
		Scan(&f.ID, &f.Name, &f.URL, &f.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Feed{}, fmt.Errorf("feed %d: %w", id, ErrNotFound)
		}
		return Feed{}, fmt.Errorf("failed to get feed: %w", err)
	}
	return f, nil
}

// FindFeedByURL looks up the feed stored under url. It returns ErrNotFound
// when no feed has that URL.
func (db *DB) FindFeedByURL(ctx context.Context, url string) (Feed, error) {
	var f Feed
	err := db.db.QueryRowContext(ctx, "SELECT id, name, url, created_at FROM feeds WHERE url = ? LIMIT 1", url).
		Scan(&f.ID, &f.Name, &f.URL, &f.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Feed{}, fmt.Errorf("feed %q: %w", url, ErrNotFound)
		}
		return Feed{}, fmt.Errorf("failed to find feed: %w", err)
	}
	return f, nil
}

// AddFeed inserts a feed and returns the stored record.
//
// feeds.url is UNIQUE; an insert that collides returns ErrDuplicate.
// Emits a FeedCreatedEvent after the insert.
func (db *DB) AddFeed(ctx context.Context, name, url string) (Feed, error) {
	createdAt := time.Now().UTC().Format(time.RFC3339)
	result, err := db.db.ExecContext(ctx,
		"INSERT INTO feeds (name, url, created_at) VALUES (?, ?, ?)",
		name,
		url,
		createdAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return Feed{}, fmt.Errorf("feed %q: %w", url, ErrDuplicate)
		}
		return Feed{}, fmt.Errorf("failed to add feed: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return Feed{}, fmt.Errorf("failed to get last insert ID: %w", err)
	}

	f := Feed{ID: id, Name: name, URL: url, CreatedAt: createdAt}
	db.emit(FeedCreatedEvent{Feed: f})
	return f, nil
}

// ListFeeds returns feeds in insertion order. A limit <= 0 returns all.
func (db *DB) ListFeeds(ctx context.Context, limit int) ([]Feed, error) {
	query := `
		SELECT id, name, url, created_at
		FROM feeds
		ORDER BY id ASC
	`
	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = db.db.QueryContext(ctx, query+" LIMIT ?", limit)
	} else {
		rows, err = db.db.QueryContext(ctx, query)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list feeds: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Warn("failed to close rows", "error", err)
		}
	}()

	out := []Feed{}
	for rows.Next() {
		var f Feed
		if err := rows.Scan(&f.ID, &f.Name, &f.URL, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan feed: %w", err)
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate feeds: %w", err)
	}
	return out, nil
}

func (db *DB) CountFeeds(ctx context.Context) (int, error) {
	var n int
	if err := db.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM feeds").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count feeds: %w", err)
	}
	return n, nil
}

// DeleteFeed removes a feed from the database.
// Emits a FeedDeletedEvent after successful deletion.
func (db *DB) DeleteFeed(ctx context.Context, id int64) error {
	f, err := db.GetFeed(ctx, id)
	if err != nil {
		return err
	}

	res, err := db.db.ExecContext(ctx, "DELETE FROM feeds WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete feed: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to determine rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("feed %d: %w", id, ErrNotFound)
	}

	db.emit(FeedDeletedEvent{Feed: f})
	return nil
}
