package storage

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/linchx/tradesnap/session"
)

func testStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "bot_data.json"), nil)
}

func TestPutGetRoundTrip(t *testing.T) {
	s := testStore(t)

	if _, ok := s.Get(42); ok {
		t.Fatalf("expected absent config for new user")
	}

	cfg := session.Config{
		Pairs:     []string{"EURUSD", "GBPUSD"},
		Questions: []string{"Bias", "Flow", "SMS", "Verdict"},
	}
	if err := s.Put(42, cfg); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok := s.Get(42)
	if !ok {
		t.Fatalf("config missing after Put")
	}
	if !reflect.DeepEqual(got, cfg) {
		t.Fatalf("Get = %+v, want %+v", got, cfg)
	}

	// last writer wins per user key
	cfg.Pairs = []string{"XAUUSD"}
	if err := s.Put(42, cfg); err != nil {
		t.Fatalf("Put overwrite: %v", err)
	}
	got, _ = s.Get(42)
	if len(got.Pairs) != 1 || got.Pairs[0] != "XAUUSD" {
		t.Fatalf("overwrite not applied: %+v", got)
	}
}

func TestUsersAreIsolated(t *testing.T) {
	s := testStore(t)
	a := session.Config{Pairs: []string{"EURUSD"}, Questions: []string{"A", "B", "C", "D"}}
	b := session.Config{Pairs: []string{"GBPUSD"}, Questions: []string{"E", "F", "G", "H"}}
	if err := s.Put(1, a); err != nil {
		t.Fatalf("Put(1): %v", err)
	}
	if err := s.Put(2, b); err != nil {
		t.Fatalf("Put(2): %v", err)
	}
	got, ok := s.Get(1)
	if !ok || got.Pairs[0] != "EURUSD" {
		t.Fatalf("user 1 config clobbered: %+v", got)
	}
}

// TestCorruptFileTreatedAsAbsent 损坏的数据文件按“无数据”处理，且可被覆盖重建。
func TestCorruptFileTreatedAsAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bot_data.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("seed corrupt file: %v", err)
	}
	s := NewFileStore(path, nil)

	if _, ok := s.Get(7); ok {
		t.Fatalf("corrupt file must read as absent")
	}

	cfg := session.Config{Pairs: []string{"EURUSD"}, Questions: []string{"A", "B", "C", "D"}}
	if err := s.Put(7, cfg); err != nil {
		t.Fatalf("Put over corrupt file: %v", err)
	}
	if _, ok := s.Get(7); !ok {
		t.Fatalf("config missing after rewriting corrupt file")
	}
}
