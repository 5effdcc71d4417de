// Package serial coordinates repeated user decisions during batch
// operations such as saving all open diagrams. Inside a batch the user may
// answer "yes to all" or "no to all" once; the answer is latched per aspect
// until the outermost batch ends.
package serial

import (
	"strings"
	"sync"
)

// Aspect identifies a family of similar decisions
type Aspect int

const (
	AspectSave Aspect = iota
	AspectOverwrite
	AspectGroupSave
	numAspects
)

// String returns the aspect name
func (a Aspect) String() string {
	switch a {
	case AspectSave:
		return "save"
	case AspectOverwrite:
		return "overwrite"
	case AspectGroupSave:
		return "group-save"
	default:
		return "unknown"
	}
}

// Status is the latched answer for an aspect
type Status int

const (
	Individual Status = iota
	YesToAll
	NoToAll
)

// Outcome is the resolved answer of a decision
type Outcome int

const (
	Approve Outcome = iota
	Decline
	Cancel
)

// String returns the outcome name
func (o Outcome) String() string {
	switch o {
	case Approve:
		return "approve"
	case Decline:
		return "decline"
	default:
		return "cancel"
	}
}

// Choice is a button offered by the modal prompt
type Choice int

const (
	ChoiceYes Choice = iota
	ChoiceNo
	ChoiceContinue
	ChoiceSkip
	ChoiceYesToAll
	ChoiceNoToAll
	ChoiceCancel
)

// Prompter asks the user a modal question and returns the chosen button.
// It is called synchronously on the controlling goroutine.
type Prompter interface {
	Prompt(aspect Aspect, message string, choices []Choice) Choice
}

// PrompterFunc adapts a function to the Prompter interface
type PrompterFunc func(aspect Aspect, message string, choices []Choice) Choice

// Prompt implements Prompter
func (f PrompterFunc) Prompt(aspect Aspect, message string, choices []Choice) Choice {
	return f(aspect, message, choices)
}

var (
	individualChoices = []Choice{ChoiceYes, ChoiceNo, ChoiceCancel}
	batchChoices      = []Choice{ChoiceContinue, ChoiceSkip, ChoiceYesToAll, ChoiceNoToAll, ChoiceCancel}
)

// Coordinator holds the nesting depth and the latched status per aspect.
// One coordinator is shared by every open diagram of a session.
type Coordinator struct {
	mu       sync.Mutex
	depth    int
	statuses [numAspects]Status
	prompter Prompter
}

// NewCoordinator creates a coordinator asking through p
func NewCoordinator(p Prompter) *Coordinator {
	return &Coordinator{prompter: p}
}

// SetPrompter replaces the prompt implementation
func (c *Coordinator) SetPrompter(p Prompter) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prompter = p
}

// EnterBatch starts a (possibly nested) batch. Entering the outermost batch
// resets every aspect to Individual.
func (c *Coordinator) EnterBatch() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.depth == 0 {
		c.reset()
	}
	c.depth++
}

// ExitBatch ends a batch. Leaving the outermost batch resets every aspect
// so a later batch starts clean.
func (c *Coordinator) ExitBatch() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.depth == 0 {
		return
	}
	c.depth--
	if c.depth == 0 {
		c.reset()
	}
}

// Depth returns the current nesting depth
func (c *Coordinator) Depth() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.depth
}

// Status returns the latched status of an aspect
func (c *Coordinator) Status(a Aspect) Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !a.valid() {
		return Individual
	}
	return c.statuses[a]
}

func (c *Coordinator) reset() {
	for i := range c.statuses {
		c.statuses[i] = Individual
	}
}

// Decide resolves one decision. Outside a batch the user is always asked
// (an empty prompt approves). Inside a batch a latched YesToAll/NoToAll
// answers without asking; otherwise the batch choices are offered and an
// "all" answer is latched for the rest of the batch.
func (c *Coordinator) Decide(a Aspect, prompt string) Outcome {
	c.mu.Lock()
	inBatch := c.depth > 0
	status := Individual
	if a.valid() {
		status = c.statuses[a]
	}
	p := c.prompter
	c.mu.Unlock()

	if inBatch {
		switch status {
		case YesToAll:
			return Approve
		case NoToAll:
			return Decline
		}
	}
	if strings.TrimSpace(prompt) == "" || p == nil {
		return Approve
	}

	if !inBatch {
		switch p.Prompt(a, prompt, individualChoices) {
		case ChoiceYes, ChoiceContinue, ChoiceYesToAll:
			return Approve
		case ChoiceNo, ChoiceSkip, ChoiceNoToAll:
			return Decline
		default:
			return Cancel
		}
	}

	// the prompt runs without the lock held; it is modal
	choice := p.Prompt(a, prompt, batchChoices)
	switch choice {
	case ChoiceYesToAll:
		c.latch(a, YesToAll)
		return Approve
	case ChoiceNoToAll:
		c.latch(a, NoToAll)
		return Decline
	case ChoiceContinue, ChoiceYes:
		return Approve
	case ChoiceSkip, ChoiceNo:
		return Decline
	default:
		return Cancel
	}
}

func (c *Coordinator) latch(a Aspect, s Status) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.depth > 0 && a.valid() {
		c.statuses[a] = s
	}
}

func (a Aspect) valid() bool {
	return a >= 0 && a < numAspects
}
