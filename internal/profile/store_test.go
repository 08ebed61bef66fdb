package profile

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"leadscout_backend/platform/logger"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return NewStore(rdb, logger.New("test")), mr
}

func TestSaveAndLoad(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	p := Profile{Name: "Asha", Email: "asha@example.com"}
	if err := store.Save(ctx, "client-a", p); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got := store.Load(ctx, "client-a")
	if got != p {
		t.Fatalf("expected %+v, got %+v", p, got)
	}
}

func TestLoadMissingIsZero(t *testing.T) {
	store, _ := newTestStore(t)

	if got := store.Load(context.Background(), "nobody"); got != (Profile{}) {
		t.Fatalf("expected zero profile, got %+v", got)
	}
}

func TestLoadCorruptIsZero(t *testing.T) {
	store, mr := newTestStore(t)

	mr.Set("leadscout:profile:c", "{broken")
	if got := store.Load(context.Background(), "c"); got != (Profile{}) {
		t.Fatalf("expected zero profile for corrupt payload, got %+v", got)
	}

	mr.Set("leadscout:profile:c", `{"version":9,"profile":{"name":"X"}}`)
	if got := store.Load(context.Background(), "c"); got != (Profile{}) {
		t.Fatalf("expected zero profile for unknown version, got %+v", got)
	}
}

func TestProfilesAreClientScoped(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	_ = store.Save(ctx, "a", Profile{Name: "A"})
	_ = store.Save(ctx, "b", Profile{Name: "B"})

	if got := store.Load(ctx, "a"); got.Name != "A" {
		t.Fatalf("client a got %+v", got)
	}
	if got := store.Load(ctx, "b"); got.Name != "B" {
		t.Fatalf("client b got %+v", got)
	}
}
