// meta/meta.go
package meta

import "time"

// RENDER_PACING is the pause the board view holds after every render so that
// automated moves stay readable.
const RENDER_PACING = 800 * time.Millisecond

// DEPTH_LIMIT caps the search depth any tier may request.
const DEPTH_LIMIT = 12

// OPENING_PLIES is the default number of random plies played before an arena
// game hands over to the automated players.
const OPENING_PLIES = 4

// ARENA_GAMES is the default number of games in an arena series.
const ARENA_GAMES = 20

// UNDO_BACKLOG is how many undo requests the web boundary queues for a running
// session. Requests beyond it are dropped.
const UNDO_BACKLOG = 16
