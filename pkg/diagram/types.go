package diagram

import (
	"errors"

	"github.com/google/uuid"
)

// Common diagram errors
var (
	// ErrDiagramNotFound is returned when a diagram cannot be found in a repository
	ErrDiagramNotFound = errors.New("diagram not found")
)

// ID is a stable identifier for an element within a diagram
type ID string

// String returns the string representation of the ID
func (id ID) String() string {
	return string(id)
}

// NewID generates a new unique element ID
func NewID() ID {
	return ID(uuid.New().String())
}

// Kind enumerates the closed set of diagram element kinds
type Kind int

const (
	KindInstruction Kind = iota
	KindAlternative
	KindCase
	KindFor
	KindWhile
	KindRepeat
	KindForever
	KindParallel
	KindCall
	KindJump
	KindTry
	KindSubqueue
	KindRoot
)

var kindNames = [...]string{
	KindInstruction: "instruction",
	KindAlternative: "alternative",
	KindCase:        "case",
	KindFor:         "for",
	KindWhile:       "while",
	KindRepeat:      "repeat",
	KindForever:     "forever",
	KindParallel:    "parallel",
	KindCall:        "call",
	KindJump:        "jump",
	KindTry:         "try",
	KindSubqueue:    "subqueue",
	KindRoot:        "root",
}

// String returns the lowercase kind name used in serialized diagrams
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// ParseKind maps a serialized kind name back to its Kind
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return 0, false
}

// IsInstructionLike reports whether elements of this kind are simple
// text-carrying statements (instruction, call, jump).
func (k Kind) IsInstructionLike() bool {
	switch k {
	case KindInstruction, KindCall, KindJump:
		return true
	default:
		return false
	}
}

// IsComposite reports whether elements of this kind own sub-queues.
func (k Kind) IsComposite() bool {
	switch k {
	case KindAlternative, KindCase, KindFor, KindWhile, KindRepeat,
		KindForever, KindParallel, KindTry:
		return true
	default:
		return false
	}
}

// RootType classifies what a diagram represents
type RootType int

const (
	TypeProgram RootType = iota
	TypeSubroutine
	TypeIncludable
)

// String returns the serialized root type name
func (t RootType) String() string {
	switch t {
	case TypeSubroutine:
		return "subroutine"
	case TypeIncludable:
		return "includable"
	default:
		return "program"
	}
}

// ParseRootType maps a serialized name to a RootType, defaulting to program
func ParseRootType(name string) RootType {
	switch name {
	case "subroutine", "sub":
		return TypeSubroutine
	case "includable":
		return TypeIncludable
	default:
		return TypeProgram
	}
}
