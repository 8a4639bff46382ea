package worker

import (
	"context"
	"net/url"
	"sync"

	"golang.org/x/time/rate"
)

// Limiter rate-limits fetches per host so an extraction run stays polite to
// the source mirrors regardless of how many volumes it pulls.
type Limiter struct {
	mu       sync.RWMutex
	perHost  map[string]*rate.Limiter
	rateCap  rate.Limit
	burstCap int
}

// NewLimiter builds a limiter allowing requestsPerSecond per host.
func NewLimiter(requestsPerSecond float64, burst int) *Limiter {
	if burst <= 0 {
		burst = 1
	}
	return &Limiter{
		perHost:  make(map[string]*rate.Limiter),
		rateCap:  rate.Limit(requestsPerSecond),
		burstCap: burst,
	}
}

// Wait blocks until the URL's host has capacity, or ctx is done.
func (l *Limiter) Wait(ctx context.Context, rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return err
	}
	return l.hostLimiter(parsed.Host).Wait(ctx)
}

// Allow reports whether a request to the URL's host may proceed right now.
func (l *Limiter) Allow(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return l.hostLimiter(parsed.Host).Allow()
}

func (l *Limiter) hostLimiter(host string) *rate.Limiter {
	l.mu.RLock()
	lim, ok := l.perHost[host]
	l.mu.RUnlock()
	if ok {
		return lim
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if lim, ok := l.perHost[host]; ok {
		return lim
	}
	lim = rate.NewLimiter(l.rateCap, l.burstCap)
	l.perHost[host] = lim
	return lim
}
