package service

import (
	"sync"
	"time"
)

const trackerMaxEntries = 5000

type ipAttempts struct {
	count       int
	windowStart time.Time
}

// attemptTracker counts failed logins per source IP inside a sliding
// lockout window. State is process-local; a multi-instance deployment
// would move this behind a shared store.
type attemptTracker struct {
	mu          sync.Mutex
	maxAttempts int
	window      time.Duration
	byIP        map[string]*ipAttempts
}

func newAttemptTracker(maxAttempts int, window time.Duration) *attemptTracker {
	return &attemptTracker{
		maxAttempts: maxAttempts,
		window:      window,
		byIP:        map[string]*ipAttempts{},
	}
}

// locked reports whether the IP has exhausted its attempts, and if so how
// long until the window expires. An elapsed window clears the entry.
func (t *attemptTracker) locked(ip string) (bool, time.Duration) {
	now := time.Now()

	t.mu.Lock()
	defer t.mu.Unlock()

	entry, ok := t.byIP[ip]
	if !ok {
		return false, 0
	}

	windowEnd := entry.windowStart.Add(t.window)
	if now.After(windowEnd) {
		delete(t.byIP, ip)
		return false, 0
	}

	if entry.count >= t.maxAttempts {
		return true, windowEnd.Sub(now)
	}

	return false, 0
}

// fail records one failed attempt. The window start is stamped on the
// first failure and kept until the window elapses.
func (t *attemptTracker) fail(ip string) {
	now := time.Now()

	t.mu.Lock()
	defer t.mu.Unlock()

	entry, ok := t.byIP[ip]
	if !ok || now.After(entry.windowStart.Add(t.window)) {
		t.byIP[ip] = &ipAttempts{count: 1, windowStart: now}
		t.gcLocked(now)
		return
	}

	entry.count++
}

func (t *attemptTracker) reset(ip string) {
	t.mu.Lock()
	delete(t.byIP, ip)
	t.mu.Unlock()
}

func (t *attemptTracker) gcLocked(now time.Time) {
	if len(t.byIP) < trackerMaxEntries {
		return
	}

	for ip, entry := range t.byIP {
		if now.After(entry.windowStart.Add(t.window)) {
			delete(t.byIP, ip)
		}
	}
}
