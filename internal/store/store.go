package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shubh-37/content-commander/internal/models"
)

// Persisted keys
const (
	KeyAccounts       = "tiktok_accounts"
	KeyScheduledPosts = "tiktok_scheduled"
	KeyPipeline       = "content_pipeline"
)

// ErrMalformed is returned when a persisted blob is not valid JSON for its key
var ErrMalformed = errors.New("malformed persisted value")

// KV is a durable key/value backend holding raw JSON blobs
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Store maps the named collections onto a KV backend.
// A missing key yields the collection's default value.
type Store struct {
	kv KV
}

func New(kv KV) *Store {
	return &Store{kv: kv}
}

// LoadAccounts returns the linked accounts, or the seed account when none were saved
func (s *Store) LoadAccounts(ctx context.Context) ([]models.TikTokAccount, error) {
	var accounts []models.TikTokAccount
	found, err := s.load(ctx, KeyAccounts, &accounts)
	if err != nil {
		return nil, err
	}
	if !found {
		return models.SeedAccounts(), nil
	}
	if accounts == nil {
		accounts = []models.TikTokAccount{}
	}
	return accounts, nil
}

func (s *Store) SaveAccounts(ctx context.Context, accounts []models.TikTokAccount) error {
	if accounts == nil {
		accounts = []models.TikTokAccount{}
	}
	return s.save(ctx, KeyAccounts, accounts)
}

// LoadScheduledPosts returns the scheduled queue, newest first
func (s *Store) LoadScheduledPosts(ctx context.Context) ([]models.ScheduledPost, error) {
	var posts []models.ScheduledPost
	if _, err := s.load(ctx, KeyScheduledPosts, &posts); err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []models.ScheduledPost{}
	}
	return posts, nil
}

func (s *Store) SaveScheduledPosts(ctx context.Context, posts []models.ScheduledPost) error {
	if posts == nil {
		posts = []models.ScheduledPost{}
	}
	return s.save(ctx, KeyScheduledPosts, posts)
}

// LoadPipeline returns the saved draft or a fresh one
func (s *Store) LoadPipeline(ctx context.Context) (models.ContentPipelineState, error) {
	state := models.NewContentPipelineState()
	var saved models.ContentPipelineState
	found, err := s.load(ctx, KeyPipeline, &saved)
	if err != nil {
		return state, err
	}
	if !found {
		return state, nil
	}
	if saved.Ideas == nil {
		saved.Ideas = []models.VideoIdea{}
	}
	if saved.Hashtags == nil {
		saved.Hashtags = []string{}
	}
	return saved, nil
}

func (s *Store) SavePipeline(ctx context.Context, state models.ContentPipelineState) error {
	return s.save(ctx, KeyPipeline, state)
}

func (s *Store) load(ctx context.Context, key string, dst interface{}) (bool, error) {
	raw, found, err := s.kv.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if !found {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("%w: %s: %v", ErrMalformed, key, err)
	}
	return true, nil
}

func (s *Store) save(ctx context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	if err := s.kv.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}
