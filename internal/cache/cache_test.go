package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryGetSet(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	if _, ok := m.Get(ctx, "missing"); ok {
		t.Fatal("hit on empty cache")
	}

	m.Set(ctx, "k", []byte("v"), time.Minute)
	val, ok := m.Get(ctx, "k")
	if !ok || string(val) != "v" {
		t.Fatalf("Get = %q, %v", val, ok)
	}
}

func TestMemoryExpiry(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	m.Set(ctx, "k", []byte("v"), -time.Second)
	if _, ok := m.Get(ctx, "k"); ok {
		t.Fatal("expired entry returned")
	}
}

func TestMemoryDelete(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	m.Set(ctx, "k", []byte("v"), time.Minute)
	m.Delete(ctx, "k")
	if _, ok := m.Get(ctx, "k"); ok {
		t.Fatal("deleted entry returned")
	}
}

func TestMemoryOverwrite(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	m.Set(ctx, "k", []byte("old"), time.Minute)
	m.Set(ctx, "k", []byte("new"), time.Minute)
	val, ok := m.Get(ctx, "k")
	if !ok || string(val) != "new" {
		t.Fatalf("Get after overwrite = %q, %v", val, ok)
	}
}
