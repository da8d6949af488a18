package service

import (
	"testing"
	"time"
)

func TestLoginRateLimiter_AllowsUpToMax(t *testing.T) {
	limiter := NewLoginRateLimiter(time.Minute, 3)

	for i := 0; i < 3; i++ {
		if !limiter.Allow("e@x.com") {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}
	if limiter.Allow("e@x.com") {
		t.Fatalf("expected refusal after max attempts")
	}
	// Otra clave no comparte la ventana.
	if !limiter.Allow("other@x.com") {
		t.Fatalf("unrelated key should be allowed")
	}
}

func TestLoginRateLimiter_WindowExpiry(t *testing.T) {
	limiter := NewLoginRateLimiter(10*time.Millisecond, 1)

	if !limiter.Allow("e@x.com") {
		t.Fatalf("first attempt should be allowed")
	}
	if limiter.Allow("e@x.com") {
		t.Fatalf("second attempt inside window should be refused")
	}
	time.Sleep(20 * time.Millisecond)
	if !limiter.Allow("e@x.com") {
		t.Fatalf("attempt after window should be allowed")
	}
}
