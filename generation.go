package usghole

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Generation is one complete pair of live resolver configuration files, one
// per address family. Exactly one generation is active at a time; the previous
// ones survive only as backups.
type Generation struct {
	IPv4Path string
	IPv6Path string
}

// Exists reports whether the file for the given address family is present.
func (g Generation) Exists(family string) bool {
	_, err := os.Stat(g.path(family))
	return err == nil
}

func (g Generation) path(family string) string {
	if family == FamilyIPv6 {
		return g.IPv6Path
	}
	return g.IPv4Path
}

// Write replaces both live configuration files with the given rules. Each file
// is written to a temporary file in the target directory first and renamed into
// place, so the resolver never reads a half-written configuration during a
// reload. An empty ruleset produces empty files, which is valid.
func (g Generation) Write(v4, v6 []string) error {
	if err := writeFileAtomic(g.IPv4Path, v4); err != nil {
		return errors.Wrap(err, "failed to write ipv4 configuration")
	}
	if err := writeFileAtomic(g.IPv6Path, v6); err != nil {
		return errors.Wrap(err, "failed to write ipv6 configuration")
	}
	return nil
}

func writeFileAtomic(path string, lines []string) error {
	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, filepath.Base(path)+".tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()
	var content string
	if len(lines) > 0 {
		content = strings.Join(lines, "\n") + "\n"
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Chmod(tmp, 0644); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
