package usghole

// StaticLoader holds a fixed set of entries in memory. It's used for lists
// defined inline in configuration, and in tests.
type StaticLoader struct {
	name  string
	lines []string
}

var _ Loader = &StaticLoader{}

func NewStaticLoader(name string, lines []string) *StaticLoader {
	return &StaticLoader{name, lines}
}

func (l *StaticLoader) Load() ([]string, error) {
	return l.lines, nil
}

func (l *StaticLoader) String() string {
	return l.name
}
