package diagram

import (
	"encoding/xml"
	"fmt"
	"time"
)

// DocumentVersion is the serialization format version written by this package
const DocumentVersion = "1.0"

// document is the serialized form of a diagram shared by the YAML, JSON
// and XML codecs
type document struct {
	XMLName      xml.Name          `yaml:"-" json:"-" xml:"diagram"`
	Version      string            `yaml:"version" json:"version" xml:"version,attr"`
	ID           string            `yaml:"id,omitempty" json:"id,omitempty" xml:"id,attr,omitempty"`
	Text         []string          `yaml:"text" json:"text" xml:"text>line"`
	Type         string            `yaml:"type,omitempty" json:"type,omitempty" xml:"type,attr,omitempty"`
	Author       string            `yaml:"author,omitempty" json:"author,omitempty" xml:"author,attr,omitempty"`
	Comment      []string          `yaml:"comment,omitempty" json:"comment,omitempty" xml:"comment>line"`
	Color        string            `yaml:"color,omitempty" json:"color,omitempty" xml:"color,attr,omitempty"`
	Created      time.Time         `yaml:"created,omitempty" json:"created,omitempty" xml:"created,attr,omitempty"`
	LastModified time.Time         `yaml:"last_modified,omitempty" json:"last_modified,omitempty" xml:"last_modified,attr,omitempty"`
	Keywords     map[string]string `yaml:"keywords,omitempty" json:"keywords,omitempty" xml:"-"`
	KeywordList  []docKeyword      `yaml:"-" json:"-" xml:"keyword,omitempty"`
	Body         []docElement      `yaml:"body" json:"body" xml:"body>element"`
}

type docKeyword struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

// docElement is the serialized form of one element
type docElement struct {
	ID           string     `yaml:"id,omitempty" json:"id,omitempty" xml:"id,attr,omitempty"`
	Type         string     `yaml:"type" json:"type" xml:"type,attr"`
	Text         []string   `yaml:"text,omitempty" json:"text,omitempty" xml:"text>line"`
	Comment      []string   `yaml:"comment,omitempty" json:"comment,omitempty" xml:"comment>line"`
	Color        string     `yaml:"color,omitempty" json:"color,omitempty" xml:"color,attr,omitempty"`
	Breakpoint   bool       `yaml:"breakpoint,omitempty" json:"breakpoint,omitempty" xml:"breakpoint,attr,omitempty"`
	BreakTrigger int        `yaml:"break_trigger,omitempty" json:"break_trigger,omitempty" xml:"break_trigger,attr,omitempty"`
	Disabled     bool       `yaml:"disabled,omitempty" json:"disabled,omitempty" xml:"disabled,attr,omitempty"`
	Collapsed    bool       `yaml:"collapsed,omitempty" json:"collapsed,omitempty" xml:"collapsed,attr,omitempty"`
	Immutable    bool       `yaml:"immutable,omitempty" json:"immutable,omitempty" xml:"immutable,attr,omitempty"`
	BranchOrder  []int      `yaml:"branch_order,omitempty" json:"branch_order,omitempty" xml:"branch_order>index"`
	Queues       []docQueue `yaml:"queues,omitempty" json:"queues,omitempty" xml:"queue,omitempty"`
}

// docQueue is one sub-queue of a composite element
type docQueue struct {
	Elements []docElement `yaml:"elements" json:"elements" xml:"element"`
}

func toDocument(r *Root) *document {
	doc := &document{
		Version:      DocumentVersion,
		ID:           r.ID.String(),
		Text:         append([]string(nil), r.Text...),
		Type:         r.Type.String(),
		Author:       r.Author,
		Comment:      append([]string(nil), r.Comment...),
		Color:        r.Color,
		Created:      r.Created,
		LastModified: r.LastModified,
		Body:         toDocQueue(r.Main()).Elements,
	}
	if len(r.StoredKeywords) > 0 {
		doc.Keywords = make(map[string]string, len(r.StoredKeywords))
		for k, v := range r.StoredKeywords {
			doc.Keywords[k] = v
		}
	}
	return doc
}

func toDocQueue(q *Element) docQueue {
	dq := docQueue{Elements: make([]docElement, 0, q.Len())}
	for _, c := range q.children {
		dq.Elements = append(dq.Elements, toDocElement(c))
	}
	return dq
}

func toDocElement(e *Element) docElement {
	de := docElement{
		ID:           e.ID.String(),
		Type:         e.Kind.String(),
		Text:         append([]string(nil), e.Text...),
		Comment:      append([]string(nil), e.Comment...),
		Color:        e.Color,
		Breakpoint:   e.Breakpoint,
		BreakTrigger: e.BreakTriggerCount,
		Disabled:     e.Disabled,
		Collapsed:    e.Collapsed,
		Immutable:    e.Immutable,
		BranchOrder:  append([]int(nil), e.BranchOrder...),
	}
	for _, q := range e.children {
		de.Queues = append(de.Queues, toDocQueue(q))
	}
	return de
}

func fromDocument(doc *document) (*Root, error) {
	if doc.Version == "" {
		return nil, fmt.Errorf("missing required field: version")
	}
	sig := ""
	if len(doc.Text) > 0 {
		sig = doc.Text[0]
	}
	r := NewRoot(sig)
	if doc.ID != "" {
		r.ID = ID(doc.ID)
	}
	r.Text = append([]string(nil), doc.Text...)
	r.Type = ParseRootType(doc.Type)
	r.Author = doc.Author
	r.Comment = append([]string(nil), doc.Comment...)
	r.Color = doc.Color
	if !doc.Created.IsZero() {
		r.Created = doc.Created
	}
	if !doc.LastModified.IsZero() {
		r.LastModified = doc.LastModified
	}

	keywords := doc.Keywords
	if len(keywords) == 0 && len(doc.KeywordList) > 0 {
		keywords = make(map[string]string, len(doc.KeywordList))
		for _, kw := range doc.KeywordList {
			keywords[kw.Name] = kw.Value
		}
	}
	if len(keywords) > 0 {
		r.StoredKeywords = keywords
	}

	main, err := fromDocQueue(docQueue{Elements: doc.Body})
	if err != nil {
		return nil, err
	}
	r.setMain(main)
	return r, nil
}

func fromDocQueue(dq docQueue) (*Element, error) {
	q := NewSubqueue()
	for i, de := range dq.Elements {
		e, err := fromDocElement(de)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		q.Append(e)
	}
	return q, nil
}

func fromDocElement(de docElement) (*Element, error) {
	kind, ok := ParseKind(de.Type)
	if !ok {
		return nil, fmt.Errorf("unknown element type: %q", de.Type)
	}
	if kind == KindRoot || kind == KindSubqueue {
		return nil, fmt.Errorf("element type %q not allowed inside a sequence", de.Type)
	}

	queues := make([]*Element, 0, len(de.Queues))
	for i, dq := range de.Queues {
		q, err := fromDocQueue(dq)
		if err != nil {
			return nil, fmt.Errorf("queue %d: %w", i, err)
		}
		queues = append(queues, q)
	}

	var e *Element
	switch kind {
	case KindInstruction, KindCall, KindJump:
		if len(queues) > 0 {
			return nil, fmt.Errorf("%s element cannot own queues", kind)
		}
		e = newLeaf(kind, de.Text)
	case KindCase:
		e = NewCase(de.Text, queues...)
	case KindParallel:
		if len(queues) == 0 {
			queues = []*Element{nil, nil}
		}
		e = newComposite(kind, de.Text, queues...)
	default:
		e = newComposite(kind, de.Text, padQueues(queues, slotCount(kind))...)
	}

	if de.ID != "" {
		e.ID = ID(de.ID)
	}
	e.Comment = append([]string(nil), de.Comment...)
	e.Color = de.Color
	e.Breakpoint = de.Breakpoint
	e.BreakTriggerCount = de.BreakTrigger
	e.Disabled = de.Disabled
	e.Collapsed = de.Collapsed
	e.Immutable = de.Immutable
	if len(de.BranchOrder) > 0 {
		e.BranchOrder = append([]int(nil), de.BranchOrder...)
	}
	return e, nil
}

// slotCount returns the fixed number of sub-queues of a composite kind, or
// -1 when the count depends on the element
func slotCount(k Kind) int {
	switch k {
	case KindAlternative:
		return 2
	case KindFor, KindWhile, KindRepeat, KindForever:
		return 1
	case KindTry:
		return 3
	case KindCase, KindParallel:
		return -1
	default:
		return 0
	}
}

func padQueues(queues []*Element, n int) []*Element {
	if n < 0 || len(queues) >= n {
		return queues
	}
	out := make([]*Element, n)
	copy(out, queues)
	return out
}
