package models

import "github.com/google/uuid"

// VideoIdea is one generated concept for a short video
type VideoIdea struct {
	ID    string `json:"id"`
	Hook  string `json:"hook"`
	Angle string `json:"angle"`
}

// NewVideoIdea creates an idea with a fresh id
func NewVideoIdea(hook, angle string) VideoIdea {
	return VideoIdea{
		ID:    uuid.New().String(),
		Hook:  hook,
		Angle: angle,
	}
}
