package genworldplanar

import "fmt"

// StageError reports a corrupted cell value after a pipeline stage.
type StageError struct {
	Stage string  // Stage that produced the value
	Cell  int     // Cell index
	Field string  // Name of the corrupted field
	Value float64 // The offending value
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s: cell %d has invalid %s %v", e.Stage, e.Cell, e.Field, e.Value)
}
