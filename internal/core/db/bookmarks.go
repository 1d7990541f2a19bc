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
// Bookmark methods
// ------------------------------

func (db *DB) GetBookmark(ctx context.Context, id int64) (Bookmark, error) {
	var b Bookmark
	err := db.db.QueryRowContext(ctx, "SELECT id, name, url, created_at FROM bookmarks WHERE id = ?", id).
		Scan(&b.ID, &b.Name, &b.URL, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Bookmark{}, fmt.Errorf("bookmark %d: %w", id, ErrNotFound)
		}
		return Bookmark{}, fmt.Errorf("failed to get bookmark: %w", err)
	}
	return b, nil
}

// AddBookmark inserts a bookmark and returns the stored record.
//
// Bookmarks carry no uniqueness constraint, so the same name or URL may be
// added any number of times. Emits a BookmarkCreatedEvent after the insert.
func (db *DB) AddBookmark(ctx context.Context, name, url string) (Bookmark, error) {
	createdAt := time.Now().UTC().Format(time.RFC3339)
	result, err := db.db.ExecContext(ctx,
		"INSERT INTO bookmarks (name, url, created_at) VALUES (?, ?, ?)",
		name,
		url,
		createdAt,
	)
	if err != nil {
		return Bookmark{}, fmt.Errorf("failed to add bookmark: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return Bookmark{}, fmt.Errorf("failed to get last insert ID: %w", err)
	}

	b := Bookmark{ID: id, Name: name, URL: url, CreatedAt: createdAt}
	db.emit(BookmarkCreatedEvent{Bookmark: b})
	return b, nil
}

// ListBookmarks returns bookmarks in insertion order. A limit <= 0 returns all.
func (db *DB) ListBookmarks(ctx context.Context, limit int) ([]Bookmark, error) {
	query := `
		SELECT id, name, url, created_at
		FROM bookmarks
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
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Warn("failed to close rows", "error", err)
		}
	}()

	out := []Bookmark{}
	for rows.Next() {
		var b Bookmark
		if err := rows.Scan(&b.ID, &b.Name, &b.URL, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan bookmark: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bookmarks: %w", err)
	}
	return out, nil
}

func (db *DB) CountBookmarks(ctx context.Context) (int, error) {
	var n int
	if err := db.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM bookmarks").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count bookmarks: %w", err)
	}
	return n, nil
}

// DeleteBookmark removes a bookmark from the database.
// Emits a BookmarkDeletedEvent after successful deletion.
func (db *DB) DeleteBookmark(ctx context.Context, id int64) error {
	b, err := db.GetBookmark(ctx, id)
	if err != nil {
		return err
	}

	res, err := db.db.ExecContext(ctx, "DELETE FROM bookmarks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete bookmark: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to determine rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("bookmark %d: %w", id, ErrNotFound)
	}

	db.emit(BookmarkDeletedEvent{Bookmark: b})
	return nil
}
