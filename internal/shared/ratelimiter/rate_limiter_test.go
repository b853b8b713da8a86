package ratelimiter

import (
	"testing"
	"time"
)

func TestWaitIfNeeded_UnderLimitDoesNotBlock(t *testing.T) {
	rl := NewRateLimiter(5, time.Minute)

	start := time.Now()
	for i := 0; i < 5; i++ {
		rl.WaitIfNeeded()
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("calls under the limit took %v, expected no delay", elapsed)
	}
}

func TestWaitIfNeeded_OverLimitDelays(t *testing.T) {
	interval := 200 * time.Millisecond
	rl := NewRateLimiter(2, interval)

	rl.WaitIfNeeded()
	rl.WaitIfNeeded()

	start := time.Now()
	rl.WaitIfNeeded()
	if elapsed := time.Since(start); elapsed < interval/2 {
		t.Errorf("call over the limit returned after %v, expected a delay near %v", elapsed, interval)
	}
}

func TestWaitIfNeeded_ResetsAfterInterval(t *testing.T) {
	interval := 50 * time.Millisecond
	rl := NewRateLimiter(1, interval)

	rl.WaitIfNeeded()
	time.Sleep(interval + 10*time.Millisecond)

	start := time.Now()
	rl.WaitIfNeeded()
	if elapsed := time.Since(start); elapsed > interval {
		t.Errorf("call after the interval took %v, expected the counter to reset", elapsed)
	}
}
