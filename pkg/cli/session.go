package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dshills/nsflow/pkg/diagram"
	"github.com/dshills/nsflow/pkg/editor"
	"github.com/dshills/nsflow/pkg/serial"
	"github.com/dshills/nsflow/pkg/syntax"
)

// sessionOptions controls how a command builds its editing session
type sessionOptions struct {
	negator  string
	keywords string // leave, refactor or adopt
}

// newSession creates an editing session with the configured parser
// preferences. A missing preferences file falls back to the defaults.
func newSession(ctx context.Context, opts sessionOptions) (*editor.Session, error) {
	logger := loggerFromContext(ctx)

	s := editor.NewSession()
	s.SetLogger(logger)

	kw := syntax.DefaultKeywords()
	path := GetPreferencesPath()
	if _, err := os.Stat(path); err == nil {
		loaded, err := syntax.LoadKeywords(path)
		if err != nil {
			return nil, err
		}
		kw = loaded
		logger.Debug("loaded preferences", "path", path)
	}
	s.SetKeywords(kw)

	negator := opts.negator
	if negator == "" {
		settings, err := LoadSettings()
		if err != nil {
			return nil, err
		}
		negator = settings.Negator
	}
	switch strings.ToLower(negator) {
	case "", "logical":
		s.SetNegator(syntax.NewLogicalNegator(kw))
	case "expr":
		s.SetNegator(syntax.NewExprNegator(kw))
	default:
		return nil, fmt.Errorf("unknown negator: %s (want logical or expr)", negator)
	}

	res, err := parseResolution(opts.keywords)
	if err != nil {
		return nil, err
	}
	s.SetKeywordResolver(editor.KeywordResolverFunc(func(root *diagram.Root, diffs []string) editor.Resolution {
		logger.Info("diagram uses different parser preferences",
			"diagram", root.Name(), "keys", strings.Join(diffs, ","), "resolution", res)
		return res
	}))

	return s, nil
}

func parseResolution(name string) (editor.Resolution, error) {
	switch strings.ToLower(name) {
	case "", "leave":
		return editor.ResolveLeave, nil
	case "refactor":
		return editor.ResolveRefactor, nil
	case "adopt":
		return editor.ResolveAdopt, nil
	default:
		return editor.ResolveCancel, fmt.Errorf("unknown keyword resolution: %s (want leave, refactor or adopt)", name)
	}
}

// linePrompter answers decision prompts from a line-oriented reader
type linePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newLinePrompter(in io.Reader, out io.Writer) *linePrompter {
	return &linePrompter{in: bufio.NewReader(in), out: out}
}

var choiceKeys = map[serial.Choice]string{
	serial.ChoiceYes:      "y",
	serial.ChoiceNo:       "n",
	serial.ChoiceContinue: "y",
	serial.ChoiceSkip:     "n",
	serial.ChoiceYesToAll: "a",
	serial.ChoiceNoToAll:  "s",
	serial.ChoiceCancel:   "c",
}

var choiceLabels = map[serial.Choice]string{
	serial.ChoiceYes:      "yes",
	serial.ChoiceNo:       "no",
	serial.ChoiceContinue: "continue",
	serial.ChoiceSkip:     "skip",
	serial.ChoiceYesToAll: "yes to all",
	serial.ChoiceNoToAll:  "no to all",
	serial.ChoiceCancel:   "cancel",
}

// Prompt implements serial.Prompter. End of input cancels.
func (p *linePrompter) Prompt(_ serial.Aspect, message string, choices []serial.Choice) serial.Choice {
	labels := make([]string, 0, len(choices))
	for _, c := range choices {
		labels = append(labels, fmt.Sprintf("%s=%s", choiceKeys[c], choiceLabels[c]))
	}
	for {
		_, _ = fmt.Fprintf(p.out, "%s [%s] ", message, strings.Join(labels, ", "))
		line, err := p.in.ReadString('\n')
		answer := strings.ToLower(strings.TrimSpace(line))
		for _, c := range choices {
			if answer == choiceKeys[c] {
				return c
			}
		}
		if err != nil {
			return serial.ChoiceCancel
		}
	}
}

// approveAll answers every prompt positively
var approveAll = serial.PrompterFunc(func(_ serial.Aspect, _ string, choices []serial.Choice) serial.Choice {
	for _, c := range choices {
		if c == serial.ChoiceYesToAll {
			return c
		}
	}
	return serial.ChoiceYes
})
