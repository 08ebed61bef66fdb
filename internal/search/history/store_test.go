package history

import (
	"context"
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"leadscout_backend/internal/search/domain"
	"leadscout_backend/platform/logger"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return NewStore(rdb, logger.New("test")), mr
}

func entry(id, city string, categories ...string) domain.HistoryEntry {
	return domain.HistoryEntry{
		ID:          id,
		Query:       domain.SearchQuery{City: city, Categories: categories, RadiusKm: 10},
		Timestamp:   "2025-03-14T10:30:00Z",
		ResultCount: 3,
	}
}

func TestRecordAndLoad(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.Record(ctx, "client-a", entry("1", "Pune", "cafe")); err != nil {
		t.Fatalf("record failed: %v", err)
	}

	entries := store.Load(ctx, "client-a")
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Query.City != "Pune" {
		t.Fatalf("unexpected entry %+v", entries[0])
	}
}

func TestRecordDedupesSameQuery(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	_ = store.Record(ctx, "c", entry("1", "Pune", "cafe", "bakery"))
	_ = store.Record(ctx, "c", entry("2", "pune", "cafe", "bakery"))

	entries := store.Load(ctx, "c")
	if len(entries) != 1 {
		t.Fatalf("expected dedupe to keep 1 entry, got %d", len(entries))
	}
	if entries[0].ID != "2" {
		t.Fatalf("expected newest entry to win, got %q", entries[0].ID)
	}
}

func TestRecordCategoryOrderMatters(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	_ = store.Record(ctx, "c", entry("1", "Pune", "cafe", "bakery"))
	_ = store.Record(ctx, "c", entry("2", "Pune", "bakery", "cafe"))

	entries := store.Load(ctx, "c")
	if len(entries) != 2 {
		t.Fatalf("expected order-sensitive keys to keep both entries, got %d", len(entries))
	}
}

func TestRecordCapsEntries(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < Limit+5; i++ {
		_ = store.Record(ctx, "c", entry(fmt.Sprintf("%d", i), fmt.Sprintf("City%d", i), "cafe"))
	}

	entries := store.Load(ctx, "c")
	if len(entries) != Limit {
		t.Fatalf("expected cap of %d, got %d", Limit, len(entries))
	}
	if entries[0].ID != fmt.Sprintf("%d", Limit+4) {
		t.Fatalf("expected newest first, got %q", entries[0].ID)
	}
}

func TestLoadMissingKeyIsEmpty(t *testing.T) {
	store, _ := newTestStore(t)

	entries := store.Load(context.Background(), "nobody")
	if entries == nil || len(entries) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", entries)
	}
}

func TestLoadCorruptPayloadIsEmpty(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	mr.Set("leadscout:history:c", "{not json")

	entries := store.Load(ctx, "c")
	if len(entries) != 0 {
		t.Fatalf("expected empty history for corrupt payload, got %d entries", len(entries))
	}

	// A corrupt blob is recoverable: the next write starts fresh.
	if err := store.Record(ctx, "c", entry("1", "Pune", "cafe")); err != nil {
		t.Fatalf("record after corruption failed: %v", err)
	}
	if got := store.Load(ctx, "c"); len(got) != 1 {
		t.Fatalf("expected 1 entry after rewrite, got %d", len(got))
	}
}

func TestLoadUnknownVersionIsEmpty(t *testing.T) {
	store, mr := newTestStore(t)

	mr.Set("leadscout:history:c", `{"version":2,"entries":[{"id":"1"}]}`)

	entries := store.Load(context.Background(), "c")
	if len(entries) != 0 {
		t.Fatalf("expected version mismatch to be discarded, got %d entries", len(entries))
	}
}

func TestClear(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	_ = store.Record(ctx, "c", entry("1", "Pune", "cafe"))
	if err := store.Clear(ctx, "c"); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if entries := store.Load(ctx, "c"); len(entries) != 0 {
		t.Fatalf("expected empty history after clear, got %d", len(entries))
	}
}
