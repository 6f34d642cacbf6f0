package guard

import (
	"sync"
	"time"
)

// RateLimitConfig configures the sliding-window rate limiter.
type RateLimitConfig struct {
	MaxCalls         int           // calls allowed per window per caller
	Window           time.Duration // sliding window length
	CleanupInterval  time.Duration // how often to drop idle callers
	CallerExpiration time.Duration // how long to keep idle caller windows
	MaxCallers       int           // cap on tracked callers (memory bound)
}

// DefaultRateLimitConfig returns sensible defaults for rate limiting
func DefaultRateLimitConfig() *RateLimitConfig {
	return &RateLimitConfig{
		MaxCalls:         10,
		Window:           time.Minute,
		CleanupInterval:  5 * time.Minute,
		CallerExpiration: 10 * time.Minute,
		MaxCallers:       10000,
	}
}

// callerWindow holds the recent call timestamps of one caller.
type callerWindow struct {
	calls    []time.Time
	lastSeen time.Time
	mu       sync.Mutex
}

// SlidingWindowLimiter rejects a caller's call once MaxCalls calls have
// already landed inside the trailing Window. The call that exceeds the
// budget is the first one rejected; calls up to the budget always pass.
type SlidingWindowLimiter struct {
	config   *RateLimitConfig
	callers  map[string]*callerWindow
	mu       sync.RWMutex
	stopChan chan struct{}
	stopOnce sync.Once

	// now is swappable for tests.
	now func() time.Time
}

// NewSlidingWindowLimiter creates a limiter and starts its cleanup loop.
func NewSlidingWindowLimiter(config *RateLimitConfig) *SlidingWindowLimiter {
	if config == nil {
		config = DefaultRateLimitConfig()
	}

	l := &SlidingWindowLimiter{
		config:   config,
		callers:  make(map[string]*callerWindow),
		stopChan: make(chan struct{}),
		now:      time.Now,
	}

	go l.cleanupLoop()

	return l
}

// Allow reports whether a new call from the caller fits the window
// budget, recording it when it does. Returns false when the caller is
// over budget or the caller cap has been reached.
func (l *SlidingWindowLimiter) Allow(callerID string) bool {
	w := l.getWindow(callerID)
	if w == nil {
		return false
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	now := l.now()
	w.lastSeen = now

	// Drop calls that slid out of the window.
	kept := w.calls[:0]
	for _, t := range w.calls {
		if now.Sub(t) < l.config.Window {
			kept = append(kept, t)
		}
	}
	w.calls = kept

	if len(w.calls) < l.config.MaxCalls {
		w.calls = append(w.calls, now)
		return true
	}
	return false
}

// TimeUntilNextAllowed returns how long the caller must wait before a
// call would be allowed again; zero when a call is allowed now.
func (l *SlidingWindowLimiter) TimeUntilNextAllowed(callerID string) time.Duration {
	l.mu.RLock()
	w, exists := l.callers[callerID]
	l.mu.RUnlock()
	if !exists {
		return 0
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	now := l.now()
	inWindow := 0
	oldest := time.Time{}
	for _, t := range w.calls {
		if now.Sub(t) < l.config.Window {
			if oldest.IsZero() || t.Before(oldest) {
				oldest = t
			}
			inWindow++
		}
	}
	if inWindow < l.config.MaxCalls {
		return 0
	}
	wait := l.config.Window - now.Sub(oldest)
	if wait < 0 {
		return 0
	}
	return wait
}

// getWindow gets or creates the caller's window, or nil when the
// caller cap is reached.
func (l *SlidingWindowLimiter) getWindow(callerID string) *callerWindow {
	l.mu.RLock()
	w, exists := l.callers[callerID]
	count := len(l.callers)
	l.mu.RUnlock()
	if exists {
		return w
	}

	if l.config.MaxCallers > 0 && count >= l.config.MaxCallers {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if w, exists = l.callers[callerID]; exists {
		return w
	}
	if l.config.MaxCallers > 0 && len(l.callers) >= l.config.MaxCallers {
		return nil
	}

	w = &callerWindow{lastSeen: l.now()}
	l.callers[callerID] = w
	return w
}

func (l *SlidingWindowLimiter) cleanupLoop() {
	if l.config.CleanupInterval <= 0 {
		return
	}
	ticker := time.NewTicker(l.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.cleanup()
		case <-l.stopChan:
			return
		}
	}
}

// cleanup removes idle caller windows. Candidates are collected under
// the read lock and re-verified under the write lock.
func (l *SlidingWindowLimiter) cleanup() {
	now := l.now()
	expired := make([]string, 0)

	l.mu.RLock()
	for id, w := range l.callers {
		w.mu.Lock()
		idle := now.Sub(w.lastSeen) > l.config.CallerExpiration
		w.mu.Unlock()
		if idle {
			expired = append(expired, id)
		}
	}
	l.mu.RUnlock()

	if len(expired) == 0 {
		return
	}

	l.mu.Lock()
	for _, id := range expired {
		if w, exists := l.callers[id]; exists {
			w.mu.Lock()
			if now.Sub(w.lastSeen) > l.config.CallerExpiration {
				delete(l.callers, id)
			}
			w.mu.Unlock()
		}
	}
	l.mu.Unlock()
}

// Stop stops the cleanup goroutine.
func (l *SlidingWindowLimiter) Stop() {
	l.stopOnce.Do(func() { close(l.stopChan) })
}

// GetStats returns current limiter statistics
func (l *SlidingWindowLimiter) GetStats() map[string]any {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return map[string]any{
		"active_callers": len(l.callers),
		"max_calls":      l.config.MaxCalls,
		"window":         l.config.Window.String(),
	}
}
