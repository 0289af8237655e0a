package models

import "github.com/google/uuid"

// Scheduled post statuses
const (
	PostStatusScheduled = "SCHEDULED"
	PostStatusPublished = "PUBLISHED"
)

// ScheduledPost is a queued publication. Account identity and display
// fields are copied at creation time and never updated afterwards.
type ScheduledPost struct {
	ID              string `json:"id"`
	AccountID       string `json:"accountId"`
	AccountUsername string `json:"accountUsername"`
	AccountAvatar   string `json:"accountAvatar"`
	Caption         string `json:"caption"`
	ThumbnailURL    string `json:"thumbnailUrl"`
	ScheduledTime   string `json:"scheduledTime"`
	Status          string `json:"status"`
}

// NewScheduledPost creates a SCHEDULED post for the given account
func NewScheduledPost(account TikTokAccount, caption, thumbnailURL, scheduledTime string) ScheduledPost {
	return ScheduledPost{
		ID:              uuid.New().String(),
		AccountID:       account.ID,
		AccountUsername: account.Username,
		AccountAvatar:   account.AvatarColor,
		Caption:         caption,
		ThumbnailURL:    thumbnailURL,
		ScheduledTime:   scheduledTime,
		Status:          PostStatusScheduled,
	}
}
