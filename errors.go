package usghole

import "fmt"

// MissingPathError is returned when a file or directory that must exist at a
// checkpoint is absent. It is fatal to the run.
type MissingPathError struct {
	Path string
}

func (e *MissingPathError) Error() string {
	return fmt.Sprintf("missing required path '%s'", e.Path)
}

// MissingDependencyError is returned when an external tool the run depends on
// can't be found. It is fatal to the run.
type MissingDependencyError struct {
	Name string
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("missing required dependency '%s'", e.Name)
}

// MalformedEntryError is returned for a blacklist line that doesn't parse into
// a usable domain. Callers log and skip the line rather than emitting a broken
// resolver directive.
type MalformedEntryError struct {
	Line   string
	Reason string
}

func (e *MalformedEntryError) Error() string {
	return fmt.Sprintf("malformed blacklist entry '%s': %s", e.Line, e.Reason)
}
