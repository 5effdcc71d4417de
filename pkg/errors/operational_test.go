package errors_test

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	nserrors "github.com/dshills/nsflow/pkg/errors"
)

func TestNewOperationalError(t *testing.T) {
	baseErr := errors.New("disk full")

	tests := []struct {
		name      string
		operation string
		diagramID string
		elementID string
		cause     error
		wantNil   bool
		wantParts []string
	}{
		{
			name:      "with element",
			operation: "saving diagram",
			diagramID: "d-1",
			elementID: "e-2",
			cause:     baseErr,
			wantParts: []string{"saving diagram", "diagram=d-1", "element=e-2", "disk full"},
		},
		{
			name:      "without element",
			operation: "saving diagram",
			diagramID: "d-1",
			cause:     baseErr,
			wantParts: []string{"saving diagram: diagram=d-1: disk full"},
		},
		{
			name:      "nil cause returns nil",
			operation: "saving diagram",
			diagramID: "d-1",
			wantNil:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opErr := nserrors.NewOperationalError(tt.operation, tt.diagramID, tt.elementID, tt.cause)
			if tt.wantNil {
				if opErr != nil {
					t.Errorf("NewOperationalError() = %v, want nil", opErr)
				}
				return
			}
			if opErr.Timestamp.IsZero() {
				t.Error("Expected timestamp to be set")
			}
			msg := opErr.Error()
			for _, part := range tt.wantParts {
				if !strings.Contains(msg, part) {
					t.Errorf("Error() = %q, missing %q", msg, part)
				}
			}
			if tt.elementID == "" && strings.Contains(msg, "element=") {
				t.Errorf("Error() = %q, expected no element", msg)
			}
		})
	}
}

func TestOperationalError_Unwrap(t *testing.T) {
	sentinel := errors.New("not found")
	wrapped := fmt.Errorf("outer: %w", nserrors.NewOperationalError("loading diagram", "d-1", "", sentinel))

	if !errors.Is(wrapped, sentinel) {
		t.Error("Expected errors.Is to reach the cause")
	}
	var opErr *nserrors.OperationalError
	if !errors.As(wrapped, &opErr) || opErr.DiagramID != "d-1" {
		t.Error("Expected errors.As to find the operational error")
	}

	var nilErr *nserrors.OperationalError
	if nilErr.Unwrap() != nil || nilErr.Error() != "<nil OperationalError>" || nilErr.Keyvals() != nil {
		t.Error("Expected nil receiver to be safe")
	}
}

func TestOperationalError_Keyvals(t *testing.T) {
	cause := errors.New("locked")
	opErr := nserrors.NewOperationalErrorWithAttrs("saving diagram", "d-1", "e-1", cause,
		map[string]interface{}{"saved": 2, "name": "main"})

	want := []interface{}{"op", "saving diagram", "diagram", "d-1", "element", "e-1", "name", "main", "saved", 2, "err", cause}
	if got := opErr.Keyvals(); !reflect.DeepEqual(got, want) {
		t.Errorf("Keyvals() = %v, want %v", got, want)
	}

	plain := nserrors.NewOperationalError("checking diagram", "d-2", "", cause)
	if got := plain.Keyvals(); len(got) != 6 {
		t.Errorf("Expected op, diagram and err pairs, got %v", got)
	}

	if nserrors.NewOperationalErrorWithAttrs("x", "d", "", nil, map[string]interface{}{"a": 1}) != nil {
		t.Error("Expected nil for nil cause")
	}
}
