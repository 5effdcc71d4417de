// Package editor implements the editing core of a Nassi-Shneiderman
// diagram editor: selection, undo coordination, structural transmutation
// and copy/cut/paste.
//
// # Sessions and editors
//
// A Session is the application context shared by every open diagram. It
// owns the single-slot element clipboard, the serial decision coordinator
// used by batch operations, the current parser preferences and the
// collaborators that talk to the user (keyword resolver, decision prompter,
// platform clipboard). An Editor binds one diagram to a session:
//
//	session := editor.NewSession()
//	ed := editor.NewEditor(session, root)
//	ed.SelectAt(40, 60, false)
//	if ed.CanTransmute() {
//	    if err := ed.Transmute(); errors.Is(err, editor.ErrCancelled) {
//	        // the user declined; nothing changed
//	    }
//	}
//
// # Threading
//
// Editors are driven by one controlling goroutine. Background work must
// hand its results back to that goroutine instead of calling editors
// directly.
package editor

import (
	"errors"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/dshills/nsflow/pkg/diagram"
	"github.com/dshills/nsflow/pkg/serial"
	"github.com/dshills/nsflow/pkg/syntax"
)

// PlatformClipboard is the system clipboard used for whole-diagram
// transfer between processes
type PlatformClipboard interface {
	SetText(text string) error
	Text() (string, error)
}

// MemoryClipboard is an in-process PlatformClipboard
type MemoryClipboard struct {
	mu   sync.Mutex
	text string
}

// SetText implements PlatformClipboard
func (c *MemoryClipboard) SetText(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.text = text
	return nil
}

// Text implements PlatformClipboard
func (c *MemoryClipboard) Text() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.text == "" {
		return "", errors.New("clipboard is empty")
	}
	return c.text, nil
}

// Session is the context shared by all diagrams open in one process
type Session struct {
	mu        sync.Mutex
	clip      *diagram.Element
	keywords  syntax.Keywords
	negator   syntax.Negator
	resolver  KeywordResolver
	platform  PlatformClipboard
	decisions *serial.Coordinator
	metrics   diagram.Metrics
	logger    *log.Logger
}

// NewSession creates a session with default preferences, an in-memory
// platform clipboard and no interactive collaborators
func NewSession() *Session {
	kw := syntax.DefaultKeywords()
	return &Session{
		keywords:  kw,
		negator:   syntax.NewLogicalNegator(kw),
		platform:  &MemoryClipboard{},
		decisions: serial.NewCoordinator(nil),
		metrics:   diagram.DefaultMetrics(),
		logger:    log.Default(),
	}
}

// Keywords returns the current parser preferences
func (s *Session) Keywords() syntax.Keywords {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.keywords
}

// SetKeywords replaces the current parser preferences
func (s *Session) SetKeywords(k syntax.Keywords) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keywords = k
}

// Negator returns the condition negation strategy
func (s *Session) Negator() syntax.Negator {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.negator
}

// SetNegator replaces the condition negation strategy
func (s *Session) SetNegator(n syntax.Negator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n != nil {
		s.negator = n
	}
}

// SetKeywordResolver sets who decides how stale keywords are reconciled
func (s *Session) SetKeywordResolver(r KeywordResolver) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resolver = r
}

func (s *Session) keywordResolver() KeywordResolver {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolver
}

// SetPlatformClipboard replaces the system clipboard
func (s *Session) SetPlatformClipboard(c PlatformClipboard) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.platform = c
}

func (s *Session) platformClipboard() PlatformClipboard {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.platform
}

// SetPrompter sets the modal prompt used by serial decisions
func (s *Session) SetPrompter(p serial.Prompter) {
	s.decisions.SetPrompter(p)
}

// Decisions returns the serial decision coordinator
func (s *Session) Decisions() *serial.Coordinator {
	return s.decisions
}

// Metrics returns the layout metrics
func (s *Session) Metrics() diagram.Metrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.metrics
}

// SetMetrics replaces the layout metrics used by editors created afterwards
func (s *Session) SetMetrics(m diagram.Metrics) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metrics = m
}

// Logger returns the session logger
func (s *Session) Logger() *log.Logger {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.logger
}

// SetLogger replaces the session logger
func (s *Session) SetLogger(l *log.Logger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l != nil {
		s.logger = l
	}
}

// ClipboardContent returns the element held by the single-slot clipboard
// cache, or nil. The returned element must not be modified.
func (s *Session) ClipboardContent() *diagram.Element {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clip
}

func (s *Session) setClipboardContent(e *diagram.Element) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clip = e
}
