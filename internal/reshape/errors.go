package reshape

import (
	"errors"
	"fmt"
)

// Sentinels matched by SchemaError and ComputationError via errors.Is.
var (
	ErrSchema      = errors.New("schema error")
	ErrComputation = errors.New("computation error")
)

// SchemaError reports a missing, misnamed or unexpected column or category.
type SchemaError struct {
	Op     string // operation that failed, e.g. "combine"
	Rule   string // rule being applied, if any, e.g. "Cancelled"
	Name   string // offending column or category
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Rule != "" {
		return fmt.Sprintf("%s: rule %q: %q: %s", e.Op, e.Rule, e.Name, e.Reason)
	}
	return fmt.Sprintf("%s: %q: %s", e.Op, e.Name, e.Reason)
}

func (e *SchemaError) Is(target error) bool {
	return target == ErrSchema
}

// ComputationError reports an undefined derived value, such as a percentage
// whose denominator is zero or absent.
type ComputationError struct {
	Op     string
	Group  string // empty when the failure is not tied to one group
	Reason string
}

func (e *ComputationError) Error() string {
	if e.Group != "" {
		return fmt.Sprintf("%s: group %q: %s", e.Op, e.Group, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

func (e *ComputationError) Is(target error) bool {
	return target == ErrComputation
}
