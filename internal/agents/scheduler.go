package agents

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/shubh-37/content-commander/internal/models"
	"github.com/shubh-37/content-commander/internal/session"
)

var (
	ErrNoFile               = errors.New("no video file selected")
	ErrScheduleTimeRequired = errors.New("a scheduled time is required when scheduling")
	ErrNoAccount            = errors.New("no account to upload to")
)

// Outcome of an upload submission
type Outcome string

const (
	OutcomePublished Outcome = "PUBLISHED"
	OutcomeSimulated Outcome = "SIMULATED"
	OutcomeFailed    Outcome = "FAILED"
)

// Status labels shown on completion
const (
	StatusPublished       = "Published"
	StatusPendingApproval = "Pending Approval"
	StatusScheduled       = "Scheduled"
	StatusFailed          = "Failed"
)

// FallbackWarning is surfaced when a real publish fails and the run falls back to simulation
const FallbackWarning = "Real API upload failed. Falling back to simulation."

// Publisher performs a real upload to the platform
type Publisher interface {
	UploadVideo(ctx context.Context, token string, video io.Reader, size int64, caption string, onProgress func(int)) error
}

// Notifier is told about every finished upload
type Notifier interface {
	NotifyUpload(ctx context.Context, account models.TikTokAccount, result UploadResult) error
}

// VideoFile is a local file staged for upload
type VideoFile struct {
	Path string
	Name string
	Size int64
}

type UploadRequest struct {
	File            *VideoFile
	TargetAccountID string
	Schedule        bool
	ScheduledTime   string
}

type UploadResult struct {
	Outcome Outcome               `json:"outcome"`
	Status  string                `json:"status"`
	Post    *models.ScheduledPost `json:"post,omitempty"`
	Warning string                `json:"warning,omitempty"`
	Err     error                 `json:"-"`
}

// SimulationConfig tunes simulated uploads
type SimulationConfig struct {
	Interval time.Duration
	MaxStep  float64
	Seed     int64
}

// SchedulerAgent runs the upload/schedule workflow against a session
type SchedulerAgent struct {
	session   *session.Session
	publisher Publisher
	notifier  Notifier
	step      StepFunc
	interval  time.Duration
	openFile  func(path string) (io.ReadCloser, error)
}

func NewSchedulerAgent(sess *session.Session, publisher Publisher, notifier Notifier, cfg SimulationConfig) *SchedulerAgent {
	if cfg.MaxStep <= 0 {
		cfg.MaxStep = DefaultSimulationMaxStep
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return &SchedulerAgent{
		session:   sess,
		publisher: publisher,
		notifier:  notifier,
		step:      RandomStep(rand.New(rand.NewSource(cfg.Seed)), cfg.MaxStep),
		interval:  cfg.Interval,
		openFile: func(path string) (io.ReadCloser, error) {
			return os.Open(path)
		},
	}
}

// WithStep replaces the progress policy
func (s *SchedulerAgent) WithStep(step StepFunc) *SchedulerAgent {
	s.step = step
	return s
}

// Job is a prepared submission holding the busy flag until Run returns
type Job struct {
	agent         *SchedulerAgent
	req           UploadRequest
	scheduledTime string
	account       models.TikTokAccount
	caption       string
	thumbnailURL  string
}

// Prepare validates the request, persists the upload config and claims the busy flag
func (s *SchedulerAgent) Prepare(ctx context.Context, req UploadRequest) (*Job, error) {
	if req.File == nil {
		return nil, ErrNoFile
	}

	scheduledTime := strings.TrimSpace(req.ScheduledTime)
	if req.Schedule && scheduledTime == "" {
		return nil, ErrScheduleTimeRequired
	}

	if err := s.session.BeginUpload(); err != nil {
		return nil, err
	}

	var schedule *string
	if req.Schedule {
		schedule = &scheduledTime
	}
	if err := s.session.UpdateUploadConfig(ctx, req.TargetAccountID, schedule); err != nil {
		s.session.AbortUpload()
		return nil, err
	}

	account, ok := s.session.TargetAccount()
	if !ok {
		s.session.AbortUpload()
		return nil, ErrNoAccount
	}

	content := s.session.Content()
	job := &Job{
		agent:         s,
		req:           req,
		scheduledTime: scheduledTime,
		account:       account,
		caption:       content.Caption,
	}
	if content.ThumbnailURL != nil {
		job.thumbnailURL = *content.ThumbnailURL
	}
	return job, nil
}

// Submit prepares and runs a submission synchronously
func (s *SchedulerAgent) Submit(ctx context.Context, req UploadRequest) (UploadResult, error) {
	job, err := s.Prepare(ctx, req)
	if err != nil {
		return UploadResult{}, err
	}
	return job.Run(ctx), nil
}

// Run takes exactly one path: a real publish for token accounts posting now,
// otherwise a simulation. A failed publish falls back to one simulation.
func (j *Job) Run(ctx context.Context) UploadResult {
	s := j.agent
	var result UploadResult

	if j.account.HasToken() && !j.req.Schedule && s.publisher != nil {
		log.Printf("🚀 Publishing %s to %s", j.req.File.Name, j.account.Username)
		if err := j.publish(ctx); err != nil {
			log.Printf("❌ Real upload failed: %v", err)
			s.session.SetUploadWarning(FallbackWarning)
			result = j.simulate(ctx)
			result.Warning = FallbackWarning
		} else {
			result = UploadResult{Outcome: OutcomePublished, Status: StatusPublished}
		}
	} else {
		result = j.simulate(ctx)
	}

	status := session.UploadStatus{
		Progress: 100,
		Outcome:  string(result.Outcome),
		Status:   result.Status,
		Warning:  result.Warning,
		Post:     result.Post,
	}
	if result.Err != nil {
		status.Error = result.Err.Error()
	}
	s.session.FinishUpload(status)

	if s.notifier != nil {
		if err := s.notifier.NotifyUpload(ctx, j.account, result); err != nil {
			log.Printf("⚠️ Failed to send upload notification: %v", err)
		}
	}

	return result
}

func (j *Job) publish(ctx context.Context) error {
	s := j.agent

	f, err := s.openFile(j.req.File.Path)
	if err != nil {
		return fmt.Errorf("failed to open video: %w", err)
	}
	defer f.Close()

	return s.publisher.UploadVideo(ctx, j.account.AccessToken, f, j.req.File.Size, j.caption, func(p int) {
		s.session.ReportProgress(float64(p))
	})
}

func (j *Job) simulate(ctx context.Context) UploadResult {
	s := j.agent
	s.session.ReportProgress(0)

	sim := &Simulator{Interval: s.interval, Step: s.step}
	sim.Run(s.session.ReportProgress)

	if !j.req.Schedule {
		return UploadResult{Outcome: OutcomeSimulated, Status: StatusPendingApproval}
	}

	post := models.NewScheduledPost(j.account, j.caption, j.thumbnailURL, j.scheduledTime)
	if err := s.session.AddScheduledPost(ctx, post); err != nil {
		log.Printf("❌ Failed to save scheduled post: %v", err)
		return UploadResult{Outcome: OutcomeFailed, Status: StatusFailed, Err: err}
	}

	log.Printf("📅 Scheduled post %s for %s at %s", post.ID, j.account.Username, j.scheduledTime)
	return UploadResult{Outcome: OutcomeSimulated, Status: StatusScheduled, Post: &post}
}
