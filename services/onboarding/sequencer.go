package onboarding

// Transition is what a sequencer action did.
type Transition string

const (
	Advanced      Transition = "advanced"
	Retreated     Transition = "retreated"
	Stayed        Transition = "stayed"
	Completed     Transition = "completed"
	BackToWelcome Transition = "back_to_welcome"
)

// Sequencer walks an ordered list of steps. The current step is 1-based and
// always stays within [1, total]; moving past either end fires a hook instead.
type Sequencer struct {
	current int
	total   int

	// OnComplete runs when Next is called on the last step, or Skip on any step but the first.
	OnComplete func()
	// OnBackToWelcome runs when Skip is called on the first step.
	OnBackToWelcome func()
}

// NewSequencer returns a sequencer over total steps positioned at start.
// Out-of-range values are clamped.
func NewSequencer(total, start int) *Sequencer {
	if total < 1 {
		total = 1
	}
	if start < 1 {
		start = 1
	}
	if start > total {
		start = total
	}
	return &Sequencer{current: start, total: total}
}

func (s *Sequencer) Current() int { return s.current }
func (s *Sequencer) Total() int   { return s.total }
func (s *Sequencer) IsFirst() bool {
	return s.current == 1
}
func (s *Sequencer) IsLast() bool {
	return s.current == s.total
}

// Next moves forward one step, or completes on the last step.
func (s *Sequencer) Next() Transition {
	if s.current < s.total {
		s.current++
		return Advanced
	}
	return s.complete()
}

// Previous moves back one step. It does nothing on the first step.
func (s *Sequencer) Previous() Transition {
	if s.current > 1 {
		s.current--
		return Retreated
	}
	return Stayed
}

// Skip leaves the wizard. On the first step it goes back to the welcome
// screen; on any later step it finishes onboarding exactly like Next on the
// last step does.
func (s *Sequencer) Skip() Transition {
	if s.current == 1 {
		if s.OnBackToWelcome != nil {
			s.OnBackToWelcome()
		}
		return BackToWelcome
	}
	return s.complete()
}

func (s *Sequencer) complete() Transition {
	if s.OnComplete != nil {
		s.OnComplete()
	}
	return Completed
}
