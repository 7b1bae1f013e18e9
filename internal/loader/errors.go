package loader

import "fmt"

// RegionError reports a failure reading a cell rectangle.
type RegionError struct {
	Sheet string
	Cell  string // empty when the failure is not tied to one cell
	Err   error
}

func (e *RegionError) Error() string {
	if e.Cell != "" {
		return fmt.Sprintf("sheet %q cell %s: %v", e.Sheet, e.Cell, e.Err)
	}
	return fmt.Sprintf("sheet %q: %v", e.Sheet, e.Err)
}

func (e *RegionError) Unwrap() error {
	return e.Err
}
