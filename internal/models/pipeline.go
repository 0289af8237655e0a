package models

// ContentPipelineState is the creative draft a session works on
type ContentPipelineState struct {
	Ideas           []VideoIdea `json:"ideas"`
	SelectedIdea    *VideoIdea  `json:"selectedIdea"`
	Script          string      `json:"script"`
	Caption         string      `json:"caption"`
	Hashtags        []string    `json:"hashtags"`
	ThumbnailURL    *string     `json:"thumbnailUrl"`
	TargetAccountID *string     `json:"targetAccountId"`
	ScheduledTime   *string     `json:"scheduledTime"`
}

// NewContentPipelineState returns the empty draft targeting the seed account
func NewContentPipelineState() ContentPipelineState {
	target := SeedAccountID
	return ContentPipelineState{
		Ideas:           []VideoIdea{},
		Hashtags:        []string{},
		TargetAccountID: &target,
	}
}

// Clone returns a deep copy so callers can't mutate shared slices or pointers
func (s ContentPipelineState) Clone() ContentPipelineState {
	out := s
	out.Ideas = append([]VideoIdea{}, s.Ideas...)
	out.Hashtags = append([]string{}, s.Hashtags...)
	if s.SelectedIdea != nil {
		idea := *s.SelectedIdea
		out.SelectedIdea = &idea
	}
	out.ThumbnailURL = cloneString(s.ThumbnailURL)
	out.TargetAccountID = cloneString(s.TargetAccountID)
	out.ScheduledTime = cloneString(s.ScheduledTime)
	return out
}

// FindIdea looks up a generated idea by id
func (s ContentPipelineState) FindIdea(id string) (VideoIdea, bool) {
	for _, idea := range s.Ideas {
		if idea.ID == id {
			return idea, true
		}
	}
	return VideoIdea{}, false
}

func cloneString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
