package models

import "testing"

func TestStepNext(t *testing.T) {
	cases := map[Step]Step{
		StepIdeation:  StepScripting,
		StepScripting: StepMetadata,
		StepMetadata:  StepThumbnail,
		StepThumbnail: StepUpload,
		StepUpload:    StepUpload,
	}
	for from, want := range cases {
		if got := from.Next(); got != want {
			t.Fatalf("%s.Next() = %s, want %s", from, got, want)
		}
	}
}

func TestParseStep(t *testing.T) {
	if step, ok := ParseStep(" metadata "); !ok || step != StepMetadata {
		t.Fatalf("expected METADATA, got %q ok=%v", step, ok)
	}
	if _, ok := ParseStep("PUBLISH"); ok {
		t.Fatalf("expected unknown step to be rejected")
	}
}

func TestNewContentPipelineState(t *testing.T) {
	state := NewContentPipelineState()
	if state.TargetAccountID == nil || *state.TargetAccountID != SeedAccountID {
		t.Fatalf("expected seed account target, got %v", state.TargetAccountID)
	}
	if state.SelectedIdea != nil || state.ThumbnailURL != nil || state.ScheduledTime != nil {
		t.Fatalf("expected nil optional fields, got %+v", state)
	}
	if len(state.Ideas) != 0 || len(state.Hashtags) != 0 || state.Script != "" || state.Caption != "" {
		t.Fatalf("expected empty draft, got %+v", state)
	}
}

func TestCloneDetachesPointers(t *testing.T) {
	state := NewContentPipelineState()
	state.Ideas = []VideoIdea{NewVideoIdea("hook", "angle")}
	state.SelectedIdea = &state.Ideas[0]

	clone := state.Clone()
	*clone.TargetAccountID = "other"
	clone.Ideas[0].Hook = "changed"
	clone.SelectedIdea.Angle = "changed"

	if *state.TargetAccountID != SeedAccountID {
		t.Fatalf("clone shares target pointer")
	}
	if state.Ideas[0].Hook != "hook" || state.SelectedIdea.Angle != "angle" {
		t.Fatalf("clone shares idea storage")
	}
}

func TestNewScheduledPostCopiesAccount(t *testing.T) {
	account := TikTokAccount{ID: "a1", Username: "@me", AvatarColor: ColorRed}
	post := NewScheduledPost(account, "caption", "data:image/png;base64,xx", "2026-01-01T10:00")

	if post.Status != PostStatusScheduled {
		t.Fatalf("expected SCHEDULED, got %s", post.Status)
	}
	if post.AccountID != "a1" || post.AccountUsername != "@me" || post.AccountAvatar != ColorRed {
		t.Fatalf("account fields not copied: %+v", post)
	}
	if post.ID == "" {
		t.Fatalf("expected generated id")
	}
}
