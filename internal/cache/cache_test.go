package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestPutGetRoundtrip(t *testing.T) {
	c, err := New(true, t.TempDir(), 3600)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	key := BuildKey("openai", "gpt-4o-mini", "summary", "some prompt")
	if _, ok := c.Get(key); ok {
		t.Fatal("unexpected hit before Put")
	}

	if err := c.Put(key, "add a parser"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, ok := c.Get(key)
	if !ok {
		t.Fatal("expected hit after Put")
	}
	if got != "add a parser" {
		t.Errorf("Get = %q", got)
	}
}

func TestDisabledCache(t *testing.T) {
	c, err := New(false, "", 3600)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := c.Put("k", "v"); err != nil {
		t.Fatalf("Put on disabled cache: %v", err)
	}
	if _, ok := c.Get("k"); ok {
		t.Error("disabled cache must always miss")
	}
	if c.Enabled() {
		t.Error("Enabled = true")
	}
}

func TestNilCache(t *testing.T) {
	var c *Cache
	if _, ok := c.Get("k"); ok {
		t.Error("nil cache must miss")
	}
	if err := c.Put("k", "v"); err != nil {
		t.Errorf("Put on nil cache: %v", err)
	}
	if c.Enabled() {
		t.Error("nil cache reports enabled")
	}
}

func TestTTLExpiry(t *testing.T) {
	dir := t.TempDir()
	c, err := New(true, dir, 60)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// Write an entry whose CreatedAt is already past the TTL.
	key := "stale"
	entry := Entry{
		Key:       HashKey(key),
		Response:  "old response",
		CreatedAt: time.Now().Add(-2 * time.Minute),
		TTL:       60,
	}
	data, _ := json.Marshal(entry)
	path := filepath.Join(dir, HashKey(key)+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	if _, ok := c.Get(key); ok {
		t.Error("expired entry must miss")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("expired entry should be removed on read")
	}
}

func TestClear(t *testing.T) {
	dir := t.TempDir()
	c, err := New(true, dir, 3600)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Put(k, "v"); err != nil {
			t.Fatal(err)
		}
	}
	if err := c.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	stats, err := c.GetStats()
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if stats.Entries != 0 {
		t.Errorf("Entries = %d after Clear", stats.Entries)
	}
}

func TestGetStats(t *testing.T) {
	c, err := New(true, t.TempDir(), 3600)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	c.Put("a", "one")
	c.Put("b", "two")

	stats, err := c.GetStats()
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if stats.Entries != 2 {
		t.Errorf("Entries = %d", stats.Entries)
	}
	if stats.TotalBytes == 0 {
		t.Error("TotalBytes = 0")
	}
	if stats.Dir != c.Dir() {
		t.Errorf("Dir = %q", stats.Dir)
	}
}

func TestBuildKeySeparatesKinds(t *testing.T) {
	summary := BuildKey("openai", "gpt-4o-mini", "summary", "material")
	title := BuildKey("openai", "gpt-4o-mini", "title", "material")
	if summary == title {
		t.Error("summary and title keys must differ for the same material")
	}
	other := BuildKey("anthropic", "gpt-4o-mini", "summary", "material")
	if summary == other {
		t.Error("keys must differ across providers")
	}
}
