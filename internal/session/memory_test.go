package session

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryStorePutGet(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	if err := store.Put(ctx, "token-1", "user@example.com", time.Minute); err != nil {
		t.Fatalf("put error: %v", err)
	}

	email, err := store.Get(ctx, "token-1")
	if err != nil {
		t.Fatalf("get error: %v", err)
	}
	if email != "user@example.com" {
		t.Fatalf("expected user@example.com, got %q", email)
	}
}

func TestMemoryStoreGetUnknown(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	if _, err := store.Get(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	if err := store.Put(ctx, "token-1", "user@example.com", -time.Second); err != nil {
		t.Fatalf("put error: %v", err)
	}

	if _, err := store.Get(ctx, "token-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected expired entry to read as ErrNotFound, got %v", err)
	}
	if err := store.Delete(ctx, "token-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected expired entry to delete as ErrNotFound, got %v", err)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	if err := store.Put(ctx, "token-1", "user@example.com", time.Minute); err != nil {
		t.Fatalf("put error: %v", err)
	}

	if err := store.Delete(ctx, "token-1"); err != nil {
		t.Fatalf("first delete should succeed, got %v", err)
	}
	// Second delete reports there was nothing to delete.
	if err := store.Delete(ctx, "token-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on repeat delete, got %v", err)
	}
	if _, err := store.Get(ctx, "token-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected deleted token to be dead, got %v", err)
	}
}

func TestMemoryStoreOverwrite(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	ctx := context.Background()

	if err := store.Put(ctx, "token-1", "old@example.com", time.Minute); err != nil {
		t.Fatalf("put error: %v", err)
	}
	if err := store.Put(ctx, "token-1", "new@example.com", time.Minute); err != nil {
		t.Fatalf("put error: %v", err)
	}

	email, err := store.Get(ctx, "token-1")
	if err != nil {
		t.Fatalf("get error: %v", err)
	}
	if email != "new@example.com" {
		t.Fatalf("expected overwritten value, got %q", email)
	}
}
