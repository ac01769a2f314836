package world

import "fmt"

// GameLog is the player-facing message log. Newest entries are appended.
type GameLog struct {
	entries []string
	max     int
}

// NewGameLog keeps at most limit entries; limit <= 0 keeps everything.
func NewGameLog(limit int) *GameLog {
	return &GameLog{max: limit}
}

// Add formats and appends a message.
func (l *GameLog) Add(format string, args ...any) {
	l.entries = append(l.entries, fmt.Sprintf(format, args...))
	if l.max > 0 && len(l.entries) > l.max {
		l.entries = l.entries[len(l.entries)-l.max:]
	}
}

// Entries returns the log, oldest first.
func (l *GameLog) Entries() []string { return l.entries }

// Last returns up to n of the newest entries, oldest first.
func (l *GameLog) Last(n int) []string {
	if n >= len(l.entries) {
		return l.entries
	}
	return l.entries[len(l.entries)-n:]
}

// Reset drops every entry.
func (l *GameLog) Reset() { l.entries = l.entries[:0] }
