// Package testutil provides diagram fixtures and test doubles shared by
// the package tests.
package testutil

import (
	"fmt"
	"sort"
	"sync"

	"github.com/dshills/nsflow/pkg/diagram"
	"github.com/dshills/nsflow/pkg/serial"
)

// LinearDiagram returns a program whose main queue holds n instructions
// with texts s0..s{n-1}
func LinearDiagram(n int) *diagram.Root {
	root := diagram.NewRoot("linear")
	for i := 0; i < n; i++ {
		root.Main().Append(diagram.NewInstruction(fmt.Sprintf("s%d", i)))
	}
	return root
}

// SampleDiagram returns a program using every element kind
func SampleDiagram() *diagram.Root {
	loopBody := diagram.NewSubqueue(diagram.NewInstruction("sum := sum + i"))
	caseElem := diagram.NewCase(
		[]string{"x", "1", "2, 3", "default"},
		diagram.NewSubqueue(diagram.NewInstruction("y := 1")),
		diagram.NewSubqueue(diagram.NewInstruction("y := 2")),
		diagram.NewSubqueue(diagram.NewInstruction("y := 0")),
	)

	return diagram.NewRoot("sample(n)",
		diagram.NewInstruction("INPUT n", "sum := 0"),
		diagram.NewFor("for i := 1 to n", loopBody),
		diagram.NewAlternative("sum > 10",
			diagram.NewSubqueue(diagram.NewCall("report(sum)")),
			diagram.NewSubqueue(diagram.NewInstruction("sum := 10"))),
		caseElem,
		diagram.NewWhile("while sum > 0", diagram.NewSubqueue(diagram.NewInstruction("sum := sum - 1"))),
		diagram.NewRepeat("until sum = 0", diagram.NewSubqueue(diagram.NewInstruction("sum := sum + 1"))),
		diagram.NewParallel(
			diagram.NewSubqueue(diagram.NewInstruction("a()")),
			diagram.NewSubqueue(diagram.NewInstruction("b()")),
		),
		diagram.NewTry("e",
			diagram.NewSubqueue(diagram.NewCall("risky()")),
			diagram.NewSubqueue(diagram.NewInstruction("OUTPUT e")),
			nil),
		diagram.NewForever(diagram.NewSubqueue(diagram.NewJump("exit 0"))),
		diagram.NewJump("return sum"),
	)
}

// NestedDiagram returns a diagram of nested loops, each body holding
// width instructions besides the next level
func NestedDiagram(depth, width int) *diagram.Root {
	var inner *diagram.Element
	for d := depth; d > 0; d-- {
		body := diagram.NewSubqueue()
		for w := 0; w < width; w++ {
			body.Append(diagram.NewInstruction(fmt.Sprintf("x%d := x%d + %d", d, d, w)))
		}
		if inner != nil {
			body.Append(inner)
		}
		inner = diagram.NewWhile(fmt.Sprintf("while x%d < %d", d, width), body)
	}
	if inner == nil {
		return diagram.NewRoot("nested")
	}
	return diagram.NewRoot("nested", inner)
}

// ScriptedPrompter answers serial decisions from a fixed script and records
// every prompt it was shown
type ScriptedPrompter struct {
	mu      sync.Mutex
	Answers []serial.Choice
	Prompts []string
}

// Prompt implements serial.Prompter. Once the script is exhausted it
// answers Cancel.
func (p *ScriptedPrompter) Prompt(_ serial.Aspect, message string, _ []serial.Choice) serial.Choice {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Prompts = append(p.Prompts, message)
	if len(p.Answers) == 0 {
		return serial.ChoiceCancel
	}
	c := p.Answers[0]
	p.Answers = p.Answers[1:]
	return c
}

// Calls returns how many prompts were shown
func (p *ScriptedPrompter) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.Prompts)
}

// MemoryRepository is an in-memory diagram.Repository
type MemoryRepository struct {
	mu       sync.Mutex
	diagrams map[diagram.ID]*diagram.Root
	Saves    int
}

// NewMemoryRepository creates an empty repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{diagrams: make(map[diagram.ID]*diagram.Root)}
}

// Save implements diagram.Repository
func (r *MemoryRepository) Save(root *diagram.Root) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.diagrams[root.ID] = root
	r.Saves++
	return nil
}

// Load implements diagram.Repository
func (r *MemoryRepository) Load(id diagram.ID) (*diagram.Root, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	root, ok := r.diagrams[id]
	if !ok {
		return nil, diagram.ErrDiagramNotFound
	}
	return root, nil
}

// Exists implements diagram.Repository
func (r *MemoryRepository) Exists(id diagram.ID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.diagrams[id]
	return ok, nil
}

// Delete implements diagram.Repository
func (r *MemoryRepository) Delete(id diagram.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.diagrams[id]; !ok {
		return diagram.ErrDiagramNotFound
	}
	delete(r.diagrams, id)
	return nil
}

// List implements diagram.Repository
func (r *MemoryRepository) List() ([]*diagram.Root, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*diagram.Root, 0, len(r.diagrams))
	for _, root := range r.diagrams {
		out = append(out, root)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
