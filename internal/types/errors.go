package types

import "fmt"

// DegradedError reports that a pipeline stage failed internally and returned its
// empty result instead of a computed one.
type DegradedError struct {
	Stage string
	Cause error
}

func (e *DegradedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s degraded: %v", e.Stage, e.Cause)
	}
	return fmt.Sprintf("%s degraded", e.Stage)
}

func (e *DegradedError) Unwrap() error {
	return e.Cause
}

// RecoveredPanic converts a recovered panic value into an error.
func RecoveredPanic(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("panic: %v", r)
}
