package errors

import (
	"fmt"
	"sort"
	"time"
)

// OperationalError wraps a failure with the editing context it occurred in.
//
// It records the operation, the diagram and (optionally) the element the
// operation was applied to, plus a timestamp. Storage and command-line layers
// use it so that failures can be traced back to a document.
type OperationalError struct {
	Operation  string                 // What operation was being performed
	DiagramID  string                 // Which diagram
	ElementID  string                 // Which element (if applicable)
	Timestamp  time.Time              // When error occurred
	Attributes map[string]interface{} // Additional context (optional)
	Cause      error                  // Underlying error
}

// NewOperationalError creates an OperationalError wrapping an error.
//
// Returns nil if cause is nil (no error to wrap).
//
// Example:
//
//	if err != nil {
//	    return NewOperationalError("saving diagram", diagramID, "", err)
//	}
func NewOperationalError(operation, diagramID, elementID string, cause error) *OperationalError {
	if cause == nil {
		return nil
	}

	return &OperationalError{
		Operation: operation,
		DiagramID: diagramID,
		ElementID: elementID,
		Timestamp: time.Now(),
		Cause:     cause,
	}
}

// NewOperationalErrorWithAttrs creates an OperationalError with additional attributes.
//
// Returns nil if cause is nil (no error to wrap).
func NewOperationalErrorWithAttrs(operation, diagramID, elementID string, cause error, attrs map[string]interface{}) *OperationalError {
	if cause == nil {
		return nil
	}

	err := NewOperationalError(operation, diagramID, elementID, cause)
	err.Attributes = attrs
	return err
}

// Error implements the error interface.
//
// Format: "[timestamp] operation: diagram={id} element={id}: {cause}"
// If element ID is empty, it's omitted from the message.
func (e *OperationalError) Error() string {
	if e == nil {
		return "<nil OperationalError>"
	}

	timestamp := e.Timestamp.Format(time.RFC3339)

	if e.ElementID != "" {
		return fmt.Sprintf("[%s] %s: diagram=%s element=%s: %v",
			timestamp, e.Operation, e.DiagramID, e.ElementID, e.Cause)
	}
	return fmt.Sprintf("[%s] %s: diagram=%s: %v",
		timestamp, e.Operation, e.DiagramID, e.Cause)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *OperationalError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Keyvals returns the context as alternating keys and values, the form
// structured loggers accept. Attributes follow in key order.
func (e *OperationalError) Keyvals() []interface{} {
	if e == nil {
		return nil
	}
	kv := []interface{}{"op", e.Operation, "diagram", e.DiagramID}
	if e.ElementID != "" {
		kv = append(kv, "element", e.ElementID)
	}
	keys := make([]string, 0, len(e.Attributes))
	for k := range e.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		kv = append(kv, k, e.Attributes[k])
	}
	return append(kv, "err", e.Cause)
}
