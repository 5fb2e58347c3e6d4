package usghole

// Loader produces the raw lines of one blacklist source.
type Loader interface {
	// Returns the lines of the list, one host entry per line.
	Load() ([]string, error)

	// Identifies the source in logs and fetch reports.
	String() string
}
