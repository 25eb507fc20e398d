// Package leaderboard keeps the best finished matches and persists them.
package leaderboard

import (
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/tomz197/skirunner/internal/config"
)

// DefaultName is used for submissions without a usable name.
const DefaultName = "skier"

// Entry is one line of the leaderboard.
type Entry struct {
	Name     string    `msgpack:"name"`
	Score    int       `msgpack:"score"`
	RaceTime float64   `msgpack:"race_time"`
	At       time.Time `msgpack:"at"`
}

// Board is a bounded list of entries sorted by score, best first.
// It is safe for concurrent use.
type Board struct {
	mu      sync.Mutex
	entries []Entry
	size    int
}

// New creates an empty board that keeps at most size entries.
func New(size int) *Board {
	if size <= 0 {
		size = config.LeaderboardSize
	}
	return &Board{size: size}
}

// Submit records an entry if it ranks. It returns the 1-based rank, or 0 when
// the score did not make the board. Equal scores keep submission order.
func (b *Board) Submit(e Entry) int {
	e.Name = SanitizeName(e.Name)

	b.mu.Lock()
	defer b.mu.Unlock()

	pos := len(b.entries)
	for i, cur := range b.entries {
		if e.Score > cur.Score {
			pos = i
			break
		}
	}
	if pos >= b.size {
		return 0
	}

	b.entries = append(b.entries, Entry{})
	copy(b.entries[pos+1:], b.entries[pos:])
	b.entries[pos] = e
	if len(b.entries) > b.size {
		b.entries = b.entries[:b.size]
	}
	return pos + 1
}

// Qualifies reports whether a score would make the board.
func (b *Board) Qualifies(score int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries) < b.size || score > b.entries[len(b.entries)-1].Score
}

// Entries returns a copy of the board, best first.
func (b *Board) Entries() []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Entry, len(b.entries))
	copy(out, b.entries)
	return out
}

// replace loads entries from storage, keeping the board's order rules.
func (b *Board) replace(entries []Entry) {
	b.mu.Lock()
	b.entries = nil
	b.mu.Unlock()
	for _, e := range entries {
		b.Submit(e)
	}
}

// SanitizeName trims a player name, strips control characters and caps its
// length. Empty names become DefaultName.
func SanitizeName(name string) string {
	name = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, name)
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) > config.MaxNameLength {
		name = string([]rune(name)[:config.MaxNameLength])
	}
	if name == "" {
		return DefaultName
	}
	return name
}

// FormatTime renders seconds as M:SS.s.
func FormatTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	tenths := int(seconds*10 + 0.5)
	minutes := tenths / 600
	tenths -= minutes * 600
	return fmt.Sprintf("%d:%02d.%d", minutes, tenths/10, tenths%10)
}
