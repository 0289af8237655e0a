package store

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/shubh-37/content-commander/internal/models"
)

func TestLoadDefaults(t *testing.T) {
	ctx := context.Background()
	s := New(NewMemory())

	accounts, err := s.LoadAccounts(ctx)
	if err != nil {
		t.Fatalf("LoadAccounts: %v", err)
	}
	if len(accounts) != 1 || accounts[0].ID != "1" || accounts[0].Username != "@creator_one" || accounts[0].AvatarColor != "#25F4EE" {
		t.Fatalf("unexpected seed accounts: %+v", accounts)
	}

	posts, err := s.LoadScheduledPosts(ctx)
	if err != nil {
		t.Fatalf("LoadScheduledPosts: %v", err)
	}
	if posts == nil || len(posts) != 0 {
		t.Fatalf("expected empty scheduled queue, got %+v", posts)
	}

	pipeline, err := s.LoadPipeline(ctx)
	if err != nil {
		t.Fatalf("LoadPipeline: %v", err)
	}
	if pipeline.TargetAccountID == nil || *pipeline.TargetAccountID != "1" {
		t.Fatalf("expected default pipeline, got %+v", pipeline)
	}
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := New(NewMemory())

	accounts := []models.TikTokAccount{
		{ID: "1", Username: "@creator_one", AvatarColor: models.ColorCyan},
		{ID: "2", Username: "Real Name", AvatarColor: models.ColorCyan, AccessToken: "tok"},
	}
	if err := s.SaveAccounts(ctx, accounts); err != nil {
		t.Fatalf("SaveAccounts: %v", err)
	}
	got, err := s.LoadAccounts(ctx)
	if err != nil {
		t.Fatalf("LoadAccounts: %v", err)
	}
	if len(got) != 2 || got[1].AccessToken != "tok" {
		t.Fatalf("unexpected accounts: %+v", got)
	}

	post := models.NewScheduledPost(accounts[0], "cap", "", "2026-01-01T10:00")
	if err := s.SaveScheduledPosts(ctx, []models.ScheduledPost{post}); err != nil {
		t.Fatalf("SaveScheduledPosts: %v", err)
	}
	posts, err := s.LoadScheduledPosts(ctx)
	if err != nil {
		t.Fatalf("LoadScheduledPosts: %v", err)
	}
	if len(posts) != 1 || posts[0] != post {
		t.Fatalf("unexpected posts: %+v", posts)
	}
}

func TestEmptyAccountListIsNotReseeded(t *testing.T) {
	ctx := context.Background()
	s := New(NewMemory())

	if err := s.SaveAccounts(ctx, nil); err != nil {
		t.Fatalf("SaveAccounts: %v", err)
	}
	accounts, err := s.LoadAccounts(ctx)
	if err != nil {
		t.Fatalf("LoadAccounts: %v", err)
	}
	if len(accounts) != 0 {
		t.Fatalf("expected persisted empty list, got %+v", accounts)
	}
}

func TestSaveIsIdempotent(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory()
	s := New(kv)

	accounts := models.SeedAccounts()
	if err := s.SaveAccounts(ctx, accounts); err != nil {
		t.Fatalf("first save: %v", err)
	}
	first, _, _ := kv.Get(ctx, KeyAccounts)

	if err := s.SaveAccounts(ctx, accounts); err != nil {
		t.Fatalf("second save: %v", err)
	}
	second, _, _ := kv.Get(ctx, KeyAccounts)

	if !bytes.Equal(first, second) {
		t.Fatalf("saves differ:\n%s\n%s", first, second)
	}
}

func TestMalformedValue(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory()
	kv.Set(ctx, KeyScheduledPosts, []byte("{not json"))

	_, err := New(kv).LoadScheduledPosts(ctx)
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestFileKV(t *testing.T) {
	ctx := context.Background()
	kv, err := NewFileKV(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileKV: %v", err)
	}

	if _, found, err := kv.Get(ctx, KeyAccounts); err != nil || found {
		t.Fatalf("expected missing key, found=%v err=%v", found, err)
	}

	if err := kv.Set(ctx, KeyAccounts, []byte(`[]`)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := kv.Set(ctx, KeyAccounts, []byte(`[{"id":"1"}]`)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	raw, found, err := kv.Get(ctx, KeyAccounts)
	if err != nil || !found {
		t.Fatalf("Get: found=%v err=%v", found, err)
	}
	if string(raw) != `[{"id":"1"}]` {
		t.Fatalf("unexpected value %s", raw)
	}

	if err := kv.Set(ctx, "../escape", []byte(`1`)); err == nil {
		t.Fatalf("expected invalid key error")
	}
}
