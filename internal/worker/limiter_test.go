package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_AllowRespectsBurst(t *testing.T) {
	l := NewLimiter(1, 2)
	url := "https://www.gutenberg.org/cache/epub/2707/pg2707.txt"

	if !l.Allow(url) || !l.Allow(url) {
		t.Fatal("burst capacity should allow two immediate requests")
	}
	if l.Allow(url) {
		t.Error("third immediate request should be limited")
	}
}

func TestLimiter_HostsAreIndependent(t *testing.T) {
	l := NewLimiter(1, 1)

	if !l.Allow("https://www.gutenberg.org/a.txt") {
		t.Fatal("first host should be allowed")
	}
	if !l.Allow("https://mirror.example.org/a.txt") {
		t.Error("a different host should not share the first host's budget")
	}
	if l.Allow("https://www.gutenberg.org/b.txt") {
		t.Error("same host should be limited")
	}
}

func TestLimiter_WaitHonorsContext(t *testing.T) {
	l := NewLimiter(0.01, 1)
	url := "https://www.gutenberg.org/a.txt"

	// Drain the burst so the next Wait must block.
	if !l.Allow(url) {
		t.Fatal("burst should be available")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := l.Wait(ctx, url); err == nil {
		t.Error("Wait should fail once the context deadline passes")
	}
}

func TestLimiter_BadURL(t *testing.T) {
	l := NewLimiter(1, 1)
	if l.Allow("://not-a-url") {
		t.Error("unparseable URL should not be allowed")
	}
}
