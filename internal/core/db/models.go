package db

type Bookmark struct {
	ID   int64
	Name string
	URL  string
	// CreatedAt is stored in the DB as RFC3339 text.
	CreatedAt string
}

type Feed struct {
	ID   int64
	Name string
	URL  string
	// CreatedAt is stored in the DB as RFC3339 text.
	CreatedAt string
}
