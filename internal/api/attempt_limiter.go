package api

import (
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/ovumcy/internal/services"
)

// maxThrottledKeys triggers a sweep before another key is tracked.
const maxThrottledKeys = 4096

// loginThrottle counts failed sign-ins per key inside a sliding window.
type loginThrottle struct {
	limit  int
	window time.Duration

	mu       sync.Mutex
	failures map[string][]time.Time
}

func newLoginThrottle(limit int, window time.Duration) *loginThrottle {
	return &loginThrottle{
		limit:    limit,
		window:   window,
		failures: make(map[string][]time.Time),
	}
}

// blocked reports whether key is over the limit at now and, if so, how long
// until the oldest counted failure leaves the window.
func (throttle *loginThrottle) blocked(key string, now time.Time) (bool, time.Duration) {
	throttle.mu.Lock()
	defer throttle.mu.Unlock()

	active := throttle.activeLocked(key, now)
	if len(active) < throttle.limit {
		return false, 0
	}
	wait := active[len(active)-throttle.limit].Add(throttle.window).Sub(now)
	if wait < time.Second {
		wait = time.Second
	}
	return true, wait
}

func (throttle *loginThrottle) recordFailure(key string, now time.Time) {
	throttle.mu.Lock()
	defer throttle.mu.Unlock()

	if len(throttle.failures) >= maxThrottledKeys {
		throttle.sweepLocked(now)
	}
	throttle.failures[key] = append(throttle.activeLocked(key, now), now)
}

func (throttle *loginThrottle) clear(key string) {
	throttle.mu.Lock()
	delete(throttle.failures, key)
	throttle.mu.Unlock()
}

// sweep drops every key whose failures have all expired.
func (throttle *loginThrottle) sweep(now time.Time) int {
	throttle.mu.Lock()
	defer throttle.mu.Unlock()
	return throttle.sweepLocked(now)
}

func (throttle *loginThrottle) sweepLocked(now time.Time) int {
	removed := 0
	for key := range throttle.failures {
		if len(throttle.activeLocked(key, now)) == 0 {
			removed++
		}
	}
	return removed
}

// activeLocked trims expired failures in place. Callers hold mu.
func (throttle *loginThrottle) activeLocked(key string, now time.Time) []time.Time {
	stamps, ok := throttle.failures[key]
	if !ok {
		return nil
	}
	cutoff := now.Add(-throttle.window)
	kept := stamps[:0]
	for _, stamp := range stamps {
		if stamp.After(cutoff) {
			kept = append(kept, stamp)
		}
	}
	if len(kept) == 0 {
		delete(throttle.failures, key)
		return nil
	}
	throttle.failures[key] = kept
	return kept
}

// loginThrottleKey scopes failures to one client address and one account.
func loginThrottleKey(c *fiber.Ctx, email string) string {
	address := strings.TrimSpace(c.IP())
	if address == "" {
		address = "unknown"
	}
	return address + "|" + services.NormalizeAuthEmail(email)
}
