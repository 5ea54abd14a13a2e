package store

import (
	"context"
	"reflect"
	"testing"
)

func TestLocalStorage_SetGetRemove(t *testing.T) {
	t.Parallel()

	s := Store{Dir: t.TempDir()}
	l, err := s.OpenLocal(context.Background())
	if err != nil {
		t.Fatalf("OpenLocal: %v", err)
	}
	t.Cleanup(func() { _ = l.Close() })

	if _, ok, err := l.Get("missing"); err != nil || ok {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}
	if err := l.Set("a", "1"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := l.Set("a", "2"); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	v, ok, err := l.Get("a")
	if err != nil || !ok || v != "2" {
		t.Fatalf("expected a=2, got %q ok=%v err=%v", v, ok, err)
	}
	if err := l.Set("b", "x"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	keys, err := l.Keys()
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	if !reflect.DeepEqual(keys, []string{"a", "b"}) {
		t.Fatalf("unexpected keys: %#v", keys)
	}
	if err := l.Remove("a"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, ok, _ := l.Get("a"); ok {
		t.Fatalf("expected a removed")
	}
}

func TestLocalStorage_PersistsAcrossOpens(t *testing.T) {
	t.Parallel()

	s := Store{Dir: t.TempDir()}
	l1, err := s.OpenLocal(context.Background())
	if err != nil {
		t.Fatalf("OpenLocal: %v", err)
	}
	if err := l1.Set(KeyBootEnabled, "0"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	_ = l1.Close()

	l2, err := s.OpenLocal(context.Background())
	if err != nil {
		t.Fatalf("OpenLocal (2): %v", err)
	}
	t.Cleanup(func() { _ = l2.Close() })
	v, ok, err := l2.Get(KeyBootEnabled)
	if err != nil || !ok || v != "0" {
		t.Fatalf("expected persisted value, got %q ok=%v err=%v", v, ok, err)
	}
}

func TestLocalStorage_NilIsUnavailable(t *testing.T) {
	t.Parallel()

	var l *LocalStorage
	if _, _, err := l.Get("k"); err != ErrUnavailable {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if err := l.Set("k", "v"); err != ErrUnavailable {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}
