package stagepage

import (
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func setupTestFailureLog(t *testing.T) *FailureLog {
	t.Helper()
	s, err := OpenFailureLog(filepath.Join(t.TempDir(), "data", "failures.db"))
	if err != nil {
		t.Fatalf("failed to open failure log: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenFailureLog(t *testing.T) {
	s := setupTestFailureLog(t)
	if s.db == nil {
		t.Fatal("db should not be nil")
	}
}

func TestRecordAndSummary(t *testing.T) {
	s := setupTestFailureLog(t)
	base := time.Date(2025, 4, 4, 13, 0, 0, 0, time.UTC)

	failures := []AssetFailure{
		{Slot: "gallery-2", Primary: "/assets/g2.jpg", Fallback: "https://f/2", At: base},
		{Slot: "gallery-2", Primary: "/assets/g2.jpg", Fallback: "https://f/2", At: base.Add(time.Minute)},
		{Slot: "hero", Primary: "/assets/hero.jpg", Fallback: "https://f/h", At: base.Add(2 * time.Minute)},
	}
	for _, f := range failures {
		if err := s.Record(f); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	sum, err := s.Summary()
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if len(sum) != 2 {
		t.Fatalf("len(Summary) = %d, want 2", len(sum))
	}
	if sum[0].Primary != "/assets/g2.jpg" || sum[0].Count != 2 {
		t.Errorf("Summary[0] = %+v, want /assets/g2.jpg x2", sum[0])
	}
	if !sum[0].LastSeen.Equal(base.Add(time.Minute)) {
		t.Errorf("LastSeen = %v, want %v", sum[0].LastSeen, base.Add(time.Minute))
	}
	if sum[1].Slot != "hero" {
		t.Errorf("Summary[1].Slot = %q, want %q", sum[1].Slot, "hero")
	}
}

func TestRecentNewestFirst(t *testing.T) {
	s := setupTestFailureLog(t)
	base := time.Date(2025, 4, 4, 13, 0, 0, 0, time.UTC)
	for i, slot := range []string{"bio", "gallery-0", "gallery-1"} {
		if err := s.Record(AssetFailure{Slot: slot, Primary: "/p/" + slot, At: base.Add(time.Duration(i) * time.Second)}); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	got, err := s.Recent(2)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len(Recent) = %d, want 2", len(got))
	}
	if got[0].Slot != "gallery-1" || got[1].Slot != "gallery-0" {
		t.Errorf("Recent slots = %q, %q; want gallery-1, gallery-0", got[0].Slot, got[1].Slot)
	}
}

func TestPrune(t *testing.T) {
	s := setupTestFailureLog(t)
	base := time.Date(2025, 4, 4, 13, 0, 0, 0, time.UTC)
	s.Record(AssetFailure{Slot: "hero", Primary: "/old", At: base})
	s.Record(AssetFailure{Slot: "hero", Primary: "/new", At: base.Add(48 * time.Hour)})

	n, err := s.Prune(base.Add(24 * time.Hour))
	if err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	if n != 1 {
		t.Errorf("Prune removed %d rows, want 1", n)
	}
	got, _ := s.Recent(10)
	if len(got) != 1 || got[0].Primary != "/new" {
		t.Errorf("remaining = %+v, want only /new", got)
	}
}

func TestStartRetention(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
	s, err := OpenFailureLog(filepath.Join(t.TempDir(), "failures.db"))
	if err != nil {
		t.Fatalf("failed to open failure log: %v", err)
	}
	defer s.Close()
	s.Record(AssetFailure{Slot: "hero", Primary: "/old", At: time.Now().Add(-48 * time.Hour)})
	s.Record(AssetFailure{Slot: "hero", Primary: "/new"})

	stop := s.StartRetention(24*time.Hour, 5*time.Millisecond)
	deadline := time.Now().Add(2 * time.Second)
	for {
		got, err := s.Recent(10)
		if err != nil {
			t.Fatalf("Recent failed: %v", err)
		}
		if len(got) == 1 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("old failure not pruned, %d rows left", len(got))
		}
		time.Sleep(5 * time.Millisecond)
	}
	stop()
	stop()
}
