package core

import "time"

const AppName = "feedmarks"

// Launch defaults, mirrored by the FEEDMARKS_* environment defaults.
const (
	DefaultDBPath    = "feedmarks.db"
	DefaultHost      = "127.0.0.1"
	DefaultPort      = 5000
	DefaultOpenDelay = 1250 * time.Millisecond
)

// Formats accepted by --log-format.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)
