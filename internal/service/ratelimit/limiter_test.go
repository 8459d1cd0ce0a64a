package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestAllowConsumesCapacity(t *testing.T) {
	l := New()
	if !l.Allow("k", 2, 0.0001) {
		t.Fatalf("first token expected")
	}
	if !l.Allow("k", 2, 0.0001) {
		t.Fatalf("second token expected")
	}
	if l.Allow("k", 2, 0.0001) {
		t.Fatalf("bucket should be empty")
	}
}

func TestAllowKeysAreIndependent(t *testing.T) {
	l := New()
	if !l.Allow("a", 1, 0.0001) {
		t.Fatalf("token expected for a")
	}
	if !l.Allow("b", 1, 0.0001) {
		t.Fatalf("token expected for b")
	}
}

func TestWaitHonorsContext(t *testing.T) {
	l := New()
	// Drain the bucket.
	if !l.Allow("k", 1, 0.0001) {
		t.Fatalf("token expected")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 80*time.Millisecond)
	defer cancel()
	if err := l.Wait(ctx, "k", 1, 0.0001); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestWaitRefills(t *testing.T) {
	l := New()
	if !l.Allow("k", 1, 50) {
		t.Fatalf("token expected")
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := l.Wait(ctx, "k", 1, 50); err != nil {
		t.Fatalf("expected refill before deadline: %v", err)
	}
}
