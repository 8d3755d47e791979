package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func stores(t *testing.T) map[string]Store {
	t.Helper()
	d, err := Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load store: %v", err)
	}
	return map[string]Store{
		"disk":   d,
		"memory": NewMemory(),
	}
}

func TestStoreContract(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			if _, ok, err := s.Get(ctx, "journal-2024-01-01"); err != nil || ok {
				t.Fatalf("get absent: ok=%v err=%v", ok, err)
			}

			if err := s.Set(ctx, "journal-2024-01-01", []byte("one")); err != nil {
				t.Fatalf("set: %v", err)
			}
			if err := s.Set(ctx, "journal-2024-01-02", []byte("two")); err != nil {
				t.Fatalf("set: %v", err)
			}
			if err := s.Set(ctx, "journal-2024-01-01", []byte("uno")); err != nil {
				t.Fatalf("overwrite: %v", err)
			}

			val, ok, err := s.Get(ctx, "journal-2024-01-01")
			if err != nil || !ok || string(val) != "uno" {
				t.Fatalf("get: %q ok=%v err=%v", val, ok, err)
			}

			keys, err := s.Keys(ctx)
			if err != nil {
				t.Fatalf("keys: %v", err)
			}
			if len(keys) != 2 || keys[0] != "journal-2024-01-01" || keys[1] != "journal-2024-01-02" {
				t.Fatalf("unexpected keys %v", keys)
			}

			pairs, err := s.MultiGet(ctx, []string{"journal-2024-01-02", "journal-missing"})
			if err != nil {
				t.Fatalf("multiget: %v", err)
			}
			if len(pairs) != 2 || string(pairs[0].Value) != "two" || pairs[1].Value != nil {
				t.Fatalf("unexpected pairs %+v", pairs)
			}

			if err := s.Remove(ctx, "journal-2024-01-02"); err != nil {
				t.Fatalf("remove: %v", err)
			}
			if err := s.Remove(ctx, "journal-2024-01-02"); err != nil {
				t.Fatalf("remove twice should be a no-op: %v", err)
			}
			if _, ok, _ := s.Get(ctx, "journal-2024-01-02"); ok {
				t.Fatal("expected key to be removed")
			}
		})
	}
}

func TestDiskLayout(t *testing.T) {
	base := t.TempDir()
	s, err := Load(testConfig{path: base})
	if err != nil {
		t.Fatalf("load store: %v", err)
	}
	if err := s.Set(context.Background(), "journal-2024-03-01", []byte("{}")); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, err := os.Stat(filepath.Join(base, "journal", "2024-03-01")); err != nil {
		t.Fatalf("expected record file: %v", err)
	}
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := NewMemory().Set(ctx, "k", nil); err == nil {
		t.Fatal("expected cancelled context to fail")
	}
}
