package serial

import (
	"sync"
	"testing"
)

// script answers prompts in order and records the offered choices
type script struct {
	answers []Choice
	offered [][]Choice
}

func (s *script) Prompt(_ Aspect, _ string, choices []Choice) Choice {
	s.offered = append(s.offered, choices)
	if len(s.answers) == 0 {
		return ChoiceCancel
	}
	c := s.answers[0]
	s.answers = s.answers[1:]
	return c
}

func TestDecide_OutsideBatch(t *testing.T) {
	tests := []struct {
		answer Choice
		want   Outcome
	}{
		{ChoiceYes, Approve},
		{ChoiceNo, Decline},
		{ChoiceCancel, Cancel},
		{ChoiceYesToAll, Approve},
	}
	for _, tt := range tests {
		s := &script{answers: []Choice{tt.answer}}
		c := NewCoordinator(s)
		if got := c.Decide(AspectSave, "Save?"); got != tt.want {
			t.Errorf("answer %v: got %v, want %v", tt.answer, got, tt.want)
		}
		if len(s.offered[0]) != 3 {
			t.Errorf("Expected yes/no/cancel outside a batch, got %v", s.offered[0])
		}
	}

	// "all" answers outside a batch are not remembered
	s := &script{answers: []Choice{ChoiceYesToAll, ChoiceNo}}
	c := NewCoordinator(s)
	c.Decide(AspectSave, "Save?")
	if got := c.Decide(AspectSave, "Save?"); got != Decline {
		t.Errorf("Expected second prompt to be asked, got %v", got)
	}
}

func TestDecide_EmptyPromptApproves(t *testing.T) {
	s := &script{}
	c := NewCoordinator(s)
	if c.Decide(AspectSave, "  ") != Approve {
		t.Error("Expected empty prompt to approve")
	}
	if len(s.offered) != 0 {
		t.Error("Expected no prompt to be shown")
	}
	if NewCoordinator(nil).Decide(AspectSave, "Save?") != Approve {
		t.Error("Expected coordinator without prompter to approve")
	}
}

func TestDecide_LatchesWithinBatch(t *testing.T) {
	s := &script{answers: []Choice{ChoiceContinue, ChoiceYesToAll, ChoiceNoToAll}}
	c := NewCoordinator(s)
	c.EnterBatch()

	if c.Decide(AspectSave, "a?") != Approve {
		t.Error("Expected continue to approve")
	}
	if len(s.offered[0]) != 5 {
		t.Errorf("Expected batch choices, got %v", s.offered[0])
	}
	if c.Decide(AspectSave, "b?") != Approve || c.Status(AspectSave) != YesToAll {
		t.Fatal("Expected yes to all to latch")
	}
	// latched, no prompt
	if c.Decide(AspectSave, "c?") != Approve || len(s.offered) != 2 {
		t.Error("Expected latched approval without prompting")
	}

	// other aspects are independent
	if c.Decide(AspectOverwrite, "d?") != Decline || c.Status(AspectOverwrite) != NoToAll {
		t.Error("Expected no to all for overwrite")
	}
	if c.Decide(AspectOverwrite, "e?") != Decline || len(s.offered) != 3 {
		t.Error("Expected latched decline without prompting")
	}

	c.ExitBatch()
	if c.Status(AspectSave) != Individual || c.Status(AspectOverwrite) != Individual {
		t.Error("Expected leaving the batch to reset every aspect")
	}
}

func TestBatch_Nesting(t *testing.T) {
	s := &script{answers: []Choice{ChoiceNoToAll}}
	c := NewCoordinator(s)

	c.EnterBatch()
	c.EnterBatch()
	if c.Depth() != 2 {
		t.Fatalf("Expected depth 2, got %d", c.Depth())
	}
	c.Decide(AspectGroupSave, "group?")
	c.ExitBatch()
	if c.Status(AspectGroupSave) != NoToAll {
		t.Error("Expected latch to survive inner batch exit")
	}
	c.ExitBatch()
	c.ExitBatch()
	if c.Depth() != 0 || c.Status(AspectGroupSave) != Individual {
		t.Error("Expected clean state after the outermost batch")
	}
}

func TestDecide_SkipAndCancelInBatch(t *testing.T) {
	s := &script{answers: []Choice{ChoiceSkip, ChoiceCancel}}
	c := NewCoordinator(s)
	c.EnterBatch()
	defer c.ExitBatch()

	if c.Decide(AspectSave, "a?") != Decline {
		t.Error("Expected skip to decline")
	}
	if c.Decide(AspectSave, "b?") != Cancel {
		t.Error("Expected cancel")
	}
	if c.Status(AspectSave) != Individual {
		t.Error("Expected single answers not to latch")
	}
}

func TestCoordinator_ConcurrentStatus(t *testing.T) {
	c := NewCoordinator(PrompterFunc(func(Aspect, string, []Choice) Choice { return ChoiceYesToAll }))
	c.EnterBatch()
	defer c.ExitBatch()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Decide(AspectSave, "save?")
			_ = c.Status(AspectSave)
		}()
	}
	wg.Wait()
	if c.Status(AspectSave) != YesToAll {
		t.Error("Expected yes to all to be latched")
	}
}

func TestStrings(t *testing.T) {
	if AspectGroupSave.String() != "group-save" || Aspect(99).String() != "unknown" {
		t.Error("Unexpected aspect names")
	}
	if Approve.String() != "approve" || Cancel.String() != "cancel" {
		t.Error("Unexpected outcome names")
	}
	if Aspect(-1).valid() || NewCoordinator(nil).Status(Aspect(42)) != Individual {
		t.Error("Expected invalid aspects to read Individual")
	}
}
