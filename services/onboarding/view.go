package onboarding

import "medibook/models"

// Secondary actions bound to the left-hand button.
const (
	SecondarySkip     = "skip"
	SecondaryPrevious = "previous"
)

// View is what the onboarding screen renders for the current step.
type View struct {
	Step            models.Step `json:"step"`
	Current         int         `json:"current"`
	Total           int         `json:"total"`
	Dots            []bool      `json:"dots"`
	ShowPrevious    bool        `json:"showPrevious"`
	SecondaryAction string      `json:"secondaryAction"`
	PrimaryLabel    string      `json:"primaryLabel"`
	Progress        int         `json:"progress"` // percent
}

// Render derives the view for the sequencer's position over steps.
// steps must have s.Total() entries.
func Render(s *Sequencer, steps []models.Step) View {
	dots := make([]bool, s.Total())
	dots[s.Current()-1] = true

	v := View{
		Current:         s.Current(),
		Total:           s.Total(),
		Dots:            dots,
		ShowPrevious:    !s.IsFirst(),
		SecondaryAction: SecondarySkip,
		PrimaryLabel:    "Next",
		Progress:        s.Current() * 100 / s.Total(),
	}
	if s.Current()-1 < len(steps) {
		v.Step = steps[s.Current()-1]
	}
	if !s.IsFirst() {
		v.SecondaryAction = SecondaryPrevious
	}
	if s.IsLast() {
		v.PrimaryLabel = "Get Started"
	}
	return v
}
