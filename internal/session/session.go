package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/shubh-37/content-commander/internal/models"
	"github.com/shubh-37/content-commander/internal/store"
)

var (
	ErrUnknownStep      = errors.New("unknown step")
	ErrIdeaNotFound     = errors.New("idea not found")
	ErrUploadInProgress = errors.New("an upload is already in progress")
)

// UploadStatus is the progress and outcome of the most recent upload
type UploadStatus struct {
	Active   bool                  `json:"active"`
	Progress float64               `json:"progress"`
	Outcome  string                `json:"outcome,omitempty"`
	Status   string                `json:"status,omitempty"`
	Warning  string                `json:"warning,omitempty"`
	Error    string                `json:"error,omitempty"`
	Post     *models.ScheduledPost `json:"post,omitempty"`
}

// Snapshot is a consistent copy of everything the wizard shows
type Snapshot struct {
	Step           models.Step                 `json:"step"`
	Pipeline       models.ContentPipelineState `json:"pipeline"`
	Accounts       []models.TikTokAccount      `json:"accounts"`
	TargetAccount  *models.TikTokAccount       `json:"targetAccount"`
	ScheduledPosts []models.ScheduledPost      `json:"scheduledPosts"`
	Missing        []string                    `json:"missing"`
	Upload         UploadStatus                `json:"upload"`
}

// Session owns the state of one creative session. All mutations go through its methods.
type Session struct {
	mu        sync.Mutex
	store     *store.Store
	step      models.Step
	content   models.ContentPipelineState
	accounts  []models.TikTokAccount
	scheduled []models.ScheduledPost
	upload    UploadStatus
}

// Open reads persisted state once. A malformed blob fails the open.
func Open(ctx context.Context, st *store.Store) (*Session, error) {
	accounts, err := st.LoadAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}

	scheduled, err := st.LoadScheduledPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load scheduled posts: %w", err)
	}

	content, err := st.LoadPipeline(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load pipeline: %w", err)
	}

	log.Printf("📂 Session loaded: %d accounts, %d scheduled posts", len(accounts), len(scheduled))

	return &Session{
		store:     st,
		step:      models.StepIdeation,
		content:   content,
		accounts:  accounts,
		scheduled: scheduled,
	}, nil
}

func (s *Session) Step() models.Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

// GoTo jumps to any step. Steps are never gated on content.
func (s *Session) GoTo(step models.Step) error {
	if !step.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownStep, step)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.step = step
	return nil
}

// Next advances one step; UPLOAD stays on UPLOAD
func (s *Session) Next() models.Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.step = s.step.Next()
	return s.step
}

// Content returns a copy of the pipeline draft
func (s *Session) Content() models.ContentPipelineState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.content.Clone()
}

func (s *Session) SetIdeas(ctx context.Context, ideas []models.VideoIdea) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.content.Ideas = append([]models.VideoIdea{}, ideas...)
	s.persistPipeline(ctx)
}

// SelectIdea records the chosen idea and moves to SCRIPTING
func (s *Session) SelectIdea(ctx context.Context, id string) (models.VideoIdea, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idea, ok := s.content.FindIdea(id)
	if !ok {
		return models.VideoIdea{}, fmt.Errorf("%w: %s", ErrIdeaNotFound, id)
	}

	s.content.SelectedIdea = &idea
	s.step = models.StepScripting
	s.persistPipeline(ctx)
	return idea, nil
}

func (s *Session) SetScript(ctx context.Context, script string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.content.Script = script
	s.persistPipeline(ctx)
}

func (s *Session) SetCaption(ctx context.Context, caption string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.content.Caption = caption
	s.persistPipeline(ctx)
}

func (s *Session) SetHashtags(ctx context.Context, hashtags []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.content.Hashtags = append([]string{}, hashtags...)
	s.persistPipeline(ctx)
}

// SetMetadata replaces caption and hashtags together
func (s *Session) SetMetadata(ctx context.Context, caption string, hashtags []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.content.Caption = caption
	s.content.Hashtags = append([]string{}, hashtags...)
	s.persistPipeline(ctx)
}

// SetThumbnail stores the thumbnail URL; an empty url clears it
func (s *Session) SetThumbnail(ctx context.Context, url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if url == "" {
		s.content.ThumbnailURL = nil
	} else {
		s.content.ThumbnailURL = &url
	}
	s.persistPipeline(ctx)
}

// UpdateUploadConfig sets the target account and schedule time and persists the draft.
// A nil scheduledTime clears the schedule.
func (s *Session) UpdateUploadConfig(ctx context.Context, targetAccountID string, scheduledTime *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if targetAccountID != "" {
		s.content.TargetAccountID = &targetAccountID
	}
	if scheduledTime != nil {
		t := *scheduledTime
		s.content.ScheduledTime = &t
	} else {
		s.content.ScheduledTime = nil
	}

	if err := s.store.SavePipeline(ctx, s.content); err != nil {
		return fmt.Errorf("failed to save upload config: %w", err)
	}
	return nil
}

func (s *Session) Accounts() []models.TikTokAccount {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.TikTokAccount{}, s.accounts...)
}

// AddAccount appends and persists the account, then makes it the upload target
func (s *Session) AddAccount(ctx context.Context, account models.TikTokAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := append(append([]models.TikTokAccount{}, s.accounts...), account)
	if err := s.store.SaveAccounts(ctx, next); err != nil {
		return fmt.Errorf("failed to save accounts: %w", err)
	}
	s.accounts = next

	id := account.ID
	s.content.TargetAccountID = &id
	s.persistPipeline(ctx)

	log.Printf("🔗 Linked account %s (token: %v)", account.Username, account.HasToken())
	return nil
}

// TargetAccount resolves the upload target, falling back to the first account
func (s *Session) TargetAccount() (models.TikTokAccount, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.targetAccount()
}

func (s *Session) targetAccount() (models.TikTokAccount, bool) {
	if s.content.TargetAccountID != nil {
		for _, account := range s.accounts {
			if account.ID == *s.content.TargetAccountID {
				return account, true
			}
		}
	}
	if len(s.accounts) > 0 {
		return s.accounts[0], true
	}
	return models.TikTokAccount{}, false
}

func (s *Session) ScheduledPosts() []models.ScheduledPost {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.ScheduledPost{}, s.scheduled...)
}

// AddScheduledPost prepends the post and persists the whole queue
func (s *Session) AddScheduledPost(ctx context.Context, post models.ScheduledPost) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]models.ScheduledPost, 0, len(s.scheduled)+1)
	next = append(next, post)
	next = append(next, s.scheduled...)

	if err := s.store.SaveScheduledPosts(ctx, next); err != nil {
		return fmt.Errorf("failed to save scheduled posts: %w", err)
	}
	s.scheduled = next
	return nil
}

// Missing lists the draft fields the given step expects but does not have
func (s *Session) Missing(step models.Step) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return missingFor(step, s.content)
}

func missingFor(step models.Step, content models.ContentPipelineState) []string {
	missing := []string{}
	switch step {
	case models.StepScripting:
		if content.SelectedIdea == nil {
			missing = append(missing, "selectedIdea")
		}
	case models.StepMetadata:
		if content.Script == "" {
			missing = append(missing, "script")
		}
	case models.StepThumbnail:
		if content.SelectedIdea == nil {
			missing = append(missing, "selectedIdea")
		}
	case models.StepUpload:
		if content.Caption == "" {
			missing = append(missing, "caption")
		}
	}
	return missing
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Step:           s.step,
		Pipeline:       s.content.Clone(),
		Accounts:       append([]models.TikTokAccount{}, s.accounts...),
		ScheduledPosts: append([]models.ScheduledPost{}, s.scheduled...),
		Missing:        missingFor(s.step, s.content),
		Upload:         s.upload,
	}
	if account, ok := s.targetAccount(); ok {
		snap.TargetAccount = &account
	}
	return snap
}

// persistPipeline saves the draft; callers hold mu. Draft saves are best effort.
func (s *Session) persistPipeline(ctx context.Context) {
	if err := s.store.SavePipeline(ctx, s.content); err != nil {
		log.Printf("⚠️ Failed to persist pipeline: %v", err)
	}
}
