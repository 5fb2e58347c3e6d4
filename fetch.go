package usghole

import (
	"fmt"
)

// FetchReport records the per-source outcome of one fetch pass.
type FetchReport struct {
	Succeeded []string
	Failed    map[string]error
}

// FetchAll retrieves every source independently and concatenates the lines of
// the ones that succeeded. A failing source is recorded in the report and never
// aborts the pass or replaces another source's output. An error is returned
// only if every configured source failed.
func FetchAll(loaders []Loader) ([]string, *FetchReport, error) {
	report := &FetchReport{Failed: make(map[string]error)}
	var combined []string
	for _, l := range loaders {
		lines, err := l.Load()
		if err != nil {
			Log.WithField("source", l.String()).WithError(err).Warn("failed to fetch blacklist")
			report.Failed[l.String()] = err
			continue
		}
		combined = append(combined, lines...)
		report.Succeeded = append(report.Succeeded, l.String())
	}
	if len(loaders) > 0 && len(report.Succeeded) == 0 {
		return nil, report, fmt.Errorf("all %d blacklist sources failed", len(loaders))
	}
	return combined, report, nil
}
