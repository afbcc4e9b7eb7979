// Package ratelimit gates inbound traffic twice: a per-user token
// bucket for raw message throughput and a per-(user, command) fixed
// window for command spam. Counters live in TTL caches and vanish on
// restart, which is acceptable.
package ratelimit

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

type Config struct {
	// MessageRate is sustained messages per second per user;
	// MessageBurst the bucket size.
	MessageRate  float64
	MessageBurst int
	// CommandLimit invocations of one command per CommandWindow.
	CommandLimit  int
	CommandWindow time.Duration
}

type Limiter struct {
	cfg      Config
	buckets  *gocache.Cache
	counters *gocache.Cache
}

func New(cfg Config) *Limiter {
	if cfg.MessageRate <= 0 {
		cfg.MessageRate = 1
	}
	if cfg.MessageBurst <= 0 {
		cfg.MessageBurst = 5
	}
	if cfg.CommandLimit <= 0 {
		cfg.CommandLimit = 10
	}
	if cfg.CommandWindow <= 0 {
		cfg.CommandWindow = time.Minute
	}
	return &Limiter{
		cfg:      cfg,
		buckets:  gocache.New(10*time.Minute, 10*time.Minute),
		counters: gocache.New(cfg.CommandWindow, cfg.CommandWindow),
	}
}

// Allow reports whether the user may send another message at all.
func (l *Limiter) Allow(userID string) bool {
	return l.bucketFor(userID).Allow()
}

func (l *Limiter) bucketFor(userID string) *rate.Limiter {
	if v, ok := l.buckets.Get(userID); ok {
		return v.(*rate.Limiter)
	}
	lim := rate.NewLimiter(rate.Limit(l.cfg.MessageRate), l.cfg.MessageBurst)
	// Add loses the race gracefully: whoever got there first wins.
	if err := l.buckets.Add(userID, lim, gocache.DefaultExpiration); err != nil {
		if v, ok := l.buckets.Get(userID); ok {
			return v.(*rate.Limiter)
		}
	}
	return lim
}

// AllowCommand counts invocations of command by user inside the
// current window. The first call over the limit and every one after it
// returns false until the window expires.
func (l *Limiter) AllowCommand(userID, command string) bool {
	key := userID + "|" + command
	if err := l.counters.Add(key, 1, gocache.DefaultExpiration); err == nil {
		return l.cfg.CommandLimit >= 1
	}
	n, err := l.counters.IncrementInt(key, 1)
	if err != nil {
		// Entry expired between Add and Increment; start a fresh window.
		l.counters.SetDefault(key, 1)
		return l.cfg.CommandLimit >= 1
	}
	return n <= l.cfg.CommandLimit
}
