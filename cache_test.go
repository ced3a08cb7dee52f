package stagepage

import (
	"errors"
	"testing"
	"time"
)

func TestAssetCacheLoadFillsOnce(t *testing.T) {
	c := NewAssetCache(time.Hour)
	mod := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	calls := 0
	fill := func() (processedAsset, error) {
		calls++
		return processedAsset{data: []byte("x"), contentType: "image/jpeg"}, nil
	}

	for i := 0; i < 3; i++ {
		e, err := c.Load("hero.jpeg", mod, fill)
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if string(e.data) != "x" || !e.modTime.Equal(mod) {
			t.Fatalf("entry = %+v", e)
		}
	}
	if calls != 1 {
		t.Errorf("fill called %d times, want 1", calls)
	}
}

func TestAssetCacheExpires(t *testing.T) {
	c := NewAssetCache(time.Minute)
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	calls := 0
	fill := func() (processedAsset, error) {
		calls++
		return processedAsset{}, nil
	}

	c.Load("a", now, fill)
	now = now.Add(30 * time.Second)
	c.Load("a", now.Add(-30*time.Second), fill)
	if calls != 1 {
		t.Fatalf("fill called %d times before TTL, want 1", calls)
	}
	now = now.Add(time.Minute)
	c.Load("a", now.Add(-90*time.Second), fill)
	if calls != 2 {
		t.Errorf("fill called %d times after TTL, want 2", calls)
	}
}

func TestAssetCacheModTimeChange(t *testing.T) {
	c := NewAssetCache(time.Hour)
	mod := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	calls := 0
	fill := func() (processedAsset, error) {
		calls++
		return processedAsset{}, nil
	}
	c.Load("a", mod, fill)
	c.Load("a", mod.Add(time.Second), fill)
	if calls != 2 {
		t.Errorf("fill called %d times, want 2", calls)
	}
}

func TestAssetCacheFillError(t *testing.T) {
	c := NewAssetCache(time.Hour)
	boom := errors.New("boom")
	_, err := c.Load("a", time.Now(), func() (processedAsset, error) {
		return processedAsset{}, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	if c.Len() != 0 {
		t.Errorf("Len = %d, want 0 after failed fill", c.Len())
	}
}

func TestAssetCacheInvalidate(t *testing.T) {
	c := NewAssetCache(time.Hour)
	c.Load("a", time.Now(), func() (processedAsset, error) { return processedAsset{}, nil })
	c.Invalidate()
	if c.Len() != 0 {
		t.Errorf("Len = %d, want 0", c.Len())
	}
}
