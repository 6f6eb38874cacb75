package rulestore

import (
	"context"
	"path/filepath"
	"testing"

	"muffle/internal/rules"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "rules.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})
	return store
}

func TestStoreRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	in := []*rules.Rule{
		{Mode: rules.ModeElement, Element: &rules.ElementConfig{Tag: "div", Class: "subs"}},
		{Mode: rules.ModeCue, Cue: &rules.CueConfig{Label: "English"}},
	}
	if err := store.Put(ctx, "example.com", in); err != nil {
		t.Fatalf("put: %v", err)
	}

	out, err := store.Get(ctx, "example.com")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(out))
	}
	if out[0].Mode != rules.ModeElement || out[0].Element.Class != "subs" {
		t.Fatalf("unexpected first rule: %+v", out[0])
	}
	if out[1].Mode != rules.ModeCue || out[1].Cue.Label != "English" {
		t.Fatalf("unexpected second rule: %+v", out[1])
	}
}

func TestStorePutReplaces(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.Put(ctx, "example.com", []*rules.Rule{{Mode: rules.ModeText, Text: &rules.TextConfig{Parent: "span"}}}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := store.Put(ctx, "example.com", []*rules.Rule{{Mode: rules.ModeCue}}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	out, err := store.Get(ctx, "example.com")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(out) != 1 || out[0].Mode != rules.ModeCue {
		t.Fatalf("expected replacement, got %+v", out)
	}
}

func TestStoreGetMissingHost(t *testing.T) {
	store := openTestStore(t)
	out, err := store.Get(context.Background(), "nowhere.example")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if out != nil {
		t.Fatalf("expected nil, got %+v", out)
	}
}

func TestStoreAllAndDelete(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	hosts := []string{"a.example", "b.example"}
	for _, host := range hosts {
		if err := store.Put(ctx, host, []*rules.Rule{{Mode: rules.ModeWatcher}}); err != nil {
			t.Fatalf("put %s: %v", host, err)
		}
	}

	table, err := store.All(ctx)
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(table) != 2 {
		t.Fatalf("expected 2 hosts, got %d", len(table))
	}

	if err := store.Delete(ctx, "a.example"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	table, err = store.All(ctx)
	if err != nil {
		t.Fatalf("all after delete: %v", err)
	}
	if _, ok := table["a.example"]; ok {
		t.Fatal("expected a.example removed")
	}
}

func TestStoreLockExcludesSecondOpen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.db")
	first, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer first.Close()

	if _, err := Open(path); err == nil {
		t.Fatal("expected second open to fail while locked")
	}
}
