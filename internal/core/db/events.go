package db

import "log/slog"

// ------------------------------
// Event System
// ------------------------------
//
// The DB emits typed events when bookmarks or feeds are created or deleted.
// Register listeners to react to these changes.
//
// Example usage:
//
//	db.RegisterEventListener(db.OnFeedCreatedEvent, func(event db.Event) error {
//	    ev := event.(db.FeedCreatedEvent)
//	    slog.Info("feed created", "id", ev.Feed.ID, "url", ev.Feed.URL)
//	    return nil
//	})
//
// Event is the common interface for all database events.
type Event interface {
	Kind() EventKind
}

// EventKind represents all the kinds of events that can be emitted by the DB.
type EventKind int

const (
	// OnBookmarkCreatedEvent is emitted when a bookmark is created.
	OnBookmarkCreatedEvent EventKind = iota
	// OnBookmarkDeletedEvent is emitted when a bookmark is deleted.
	OnBookmarkDeletedEvent
	// OnFeedCreatedEvent is emitted when a feed is created.
	OnFeedCreatedEvent
	// OnFeedDeletedEvent is emitted when a feed is deleted.
	OnFeedDeletedEvent
)

func (k EventKind) String() string {
	switch k {
	case OnBookmarkCreatedEvent:
		return "bookmark_created"
	case OnBookmarkDeletedEvent:
		return "bookmark_deleted"
	case OnFeedCreatedEvent:
		return "feed_created"
	case OnFeedDeletedEvent:
		return "feed_deleted"
	default:
		return "unknown"
	}
}

// BookmarkCreatedEvent is emitted after a new bookmark is successfully inserted.
type BookmarkCreatedEvent struct {
	Bookmark Bookmark
}

func (e BookmarkCreatedEvent) Kind() EventKind { return OnBookmarkCreatedEvent }

// BookmarkDeletedEvent is emitted after a bookmark is deleted.
// The Bookmark field contains the state before deletion.
type BookmarkDeletedEvent struct {
	Bookmark Bookmark
}

func (e BookmarkDeletedEvent) Kind() EventKind { return OnBookmarkDeletedEvent }

// FeedCreatedEvent is emitted after a new feed is successfully inserted.
type FeedCreatedEvent struct {
	Feed Feed
}

func (e FeedCreatedEvent) Kind() EventKind { return OnFeedCreatedEvent }

// FeedDeletedEvent is emitted after a feed is deleted.
type FeedDeletedEvent struct {
	Feed Feed
}

func (e FeedDeletedEvent) Kind() EventKind { return OnFeedDeletedEvent }

// EventListener is a callback that handles events of a specific kind.
type EventListener func(event Event) error

// RegisterEventListener adds a listener for a specific event kind.
// Listeners are called synchronously in registration order after the DB operation succeeds.
func (db *DB) RegisterEventListener(eventKind EventKind, listener EventListener) {
	if db.eventListeners == nil {
		db.eventListeners = make(map[EventKind][]EventListener)
	}
	db.eventListeners[eventKind] = append(db.eventListeners[eventKind], listener)
}

// emit dispatches an event to all registered listeners for that event kind.
func (db *DB) emit(event Event) {
	for _, listener := range db.eventListeners[event.Kind()] {
		if err := listener(event); err != nil {
			slog.Error("event listener failed", "event", event.Kind().String(), "error", err)
		}
	}
}
