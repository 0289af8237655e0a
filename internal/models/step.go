package models

import "strings"

// Step is a stage of the content wizard
type Step string

const (
	StepIdeation  Step = "IDEATION"
	StepScripting Step = "SCRIPTING"
	StepMetadata  Step = "METADATA"
	StepThumbnail Step = "THUMBNAIL"
	StepUpload    Step = "UPLOAD"
)

// Steps lists the wizard stages in order
var Steps = []Step{StepIdeation, StepScripting, StepMetadata, StepThumbnail, StepUpload}

// ParseStep accepts a step name in any case
func ParseStep(s string) (Step, bool) {
	step := Step(strings.ToUpper(strings.TrimSpace(s)))
	return step, step.Valid()
}

// Valid reports whether s is one of the known steps
func (s Step) Valid() bool {
	return s.index() >= 0
}

// Next returns the following step. UPLOAD is the last step and maps to itself.
func (s Step) Next() Step {
	i := s.index()
	switch {
	case i < 0:
		return StepIdeation
	case i == len(Steps)-1:
		return StepUpload
	}
	return Steps[i+1]
}

func (s Step) index() int {
	for i, step := range Steps {
		if step == s {
			return i
		}
	}
	return -1
}
