// Package activity keeps a bounded in-memory record of handled
// commands for the admin and owner log views.
package activity

import (
	"fmt"
	"sync"
	"time"
)

type Entry struct {
	At      time.Time
	UserID  string
	Command string
	Outcome string
}

type Log struct {
	mu      sync.Mutex
	entries []Entry
	cap     int
}

func NewLog(capacity int) *Log {
	if capacity <= 0 {
		capacity = 200
	}
	return &Log{cap: capacity}
}

func (l *Log) Record(userID, command, outcome string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, Entry{
		At:      time.Now(),
		UserID:  userID,
		Command: command,
		Outcome: outcome,
	})
	if len(l.entries) > l.cap {
		l.entries = l.entries[len(l.entries)-l.cap:]
	}
}

// Recent returns up to n entries, newest first.
func (l *Log) Recent(n int) []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	if n <= 0 || n > len(l.entries) {
		n = len(l.entries)
	}
	out := make([]Entry, n)
	for i := 0; i < n; i++ {
		out[i] = l.entries[len(l.entries)-1-i]
	}
	return out
}

func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

func (e Entry) String() string {
	return fmt.Sprintf("%s %s !%s (%s)", e.At.Format("15:04:05"), e.UserID, e.Command, e.Outcome)
}
