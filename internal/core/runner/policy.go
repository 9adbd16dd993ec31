package runner

// FailureMode decides what happens when an external step fails.
type FailureMode int

const (
	// Ignore drops the failure and lets the pipeline carry on (best effort).
	Ignore FailureMode = iota
	// Propagate returns the failure to the caller.
	Propagate
)

func (m FailureMode) String() string {
	switch m {
	case Ignore:
		return "ignore"
	case Propagate:
		return "propagate"
	default:
		return "unknown"
	}
}

// Apply filters err through the mode. Under Ignore it always returns nil.
func (m FailureMode) Apply(err error) error {
	if m == Propagate {
		return err
	}
	return nil
}
