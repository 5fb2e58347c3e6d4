package usghole

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Address families tracked by the rotator.
const (
	FamilyIPv4 = "ipv4"
	FamilyIPv6 = "ipv6"
)

// Minute granularity, matching the generation cadence of a cron-driven run.
const backupTimeFormat = "200601021504"

// Rotator archives live resolver configuration files into a workspace
// directory and maintains one "@last-<family>" pointer per address family,
// always referencing the newest backup. Rotating drops the previous pointer
// and the file it referenced.
type Rotator struct {
	// Directory holding backup files and pointers.
	Dir string

	// Backup file name prefix, producing "<prefix>-<family>-<timestamp>.conf".
	Prefix string

	// Number of backups to retain per family when pruning. 0 keeps all.
	Keep int

	now func() time.Time
}

func NewRotator(dir, prefix string, keep int) *Rotator {
	return &Rotator{Dir: dir, Prefix: prefix, Keep: keep, now: time.Now}
}

func (r *Rotator) pointerPath(family string) string {
	return filepath.Join(r.Dir, "@last-"+family)
}

// Rotate archives the live configuration file for one address family and moves
// the family's pointer to the new backup. The live file and the workspace
// directory must exist. Returns the path of the new backup.
func (r *Rotator) Rotate(family, livePath string) (string, error) {
	if _, err := os.Stat(livePath); err != nil {
		if os.IsNotExist(err) {
			return "", &MissingPathError{Path: livePath}
		}
		return "", err
	}
	if _, err := os.Stat(r.Dir); err != nil {
		if os.IsNotExist(err) {
			return "", &MissingPathError{Path: r.Dir}
		}
		return "", err
	}

	// Drop the previous pointer and the backup it references. A dangling
	// pointer is cleaned up the same way.
	ptr := r.pointerPath(family)
	if target, err := os.Readlink(ptr); err == nil {
		if !filepath.IsAbs(target) {
			target = filepath.Join(r.Dir, target)
		}
		if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
			return "", errors.Wrap(err, "failed to remove previous backup")
		}
		if err := os.Remove(ptr); err != nil {
			return "", errors.Wrap(err, "failed to remove previous backup pointer")
		}
	}

	name := fmt.Sprintf("%s-%s-%s.conf", r.Prefix, family, r.now().Format(backupTimeFormat))
	dst := uniquePath(filepath.Join(r.Dir, name))
	if err := copyFile(livePath, dst); err != nil {
		return "", errors.Wrapf(err, "failed to archive '%s'", livePath)
	}
	if err := os.Symlink(filepath.Base(dst), ptr); err != nil {
		// The backup itself is in place, just unreferenced. Leave it.
		return dst, errors.Wrap(err, "failed to create backup pointer")
	}
	Log.WithField("backup", dst).Debug("archived previous configuration")
	return dst, nil
}

// Last resolves the family's pointer to the backup it references, or returns a
// MissingPathError if no pointer exists.
func (r *Rotator) Last(family string) (string, error) {
	ptr := r.pointerPath(family)
	target, err := os.Readlink(ptr)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &MissingPathError{Path: ptr}
		}
		return "", err
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(r.Dir, target)
	}
	return target, nil
}

// Prune removes historical backups for one family beyond the configured keep
// count, newest first. The backup the pointer references is always retained.
func (r *Rotator) Prune(family string) error {
	if r.Keep <= 0 {
		return nil
	}
	pattern := filepath.Join(r.Dir, fmt.Sprintf("%s-%s-*.conf", r.Prefix, family))
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return err
	}
	last, _ := r.Last(family)

	// Timestamped names sort chronologically.
	sort.Sort(sort.Reverse(sort.StringSlice(matches)))
	kept := 0
	for _, m := range matches {
		if m == last || kept < r.Keep {
			kept++
			continue
		}
		if err := os.Remove(m); err != nil {
			return errors.Wrap(err, "failed to prune backup")
		}
		Log.WithField("backup", m).Debug("pruned old backup")
	}
	return nil
}

// uniquePath appends a numeric suffix to the path until it doesn't collide
// with an existing file. Two rotations within the same minute would otherwise
// silently overwrite each other's backup.
func uniquePath(path string) string {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path
	}
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	for i := 1; ; i++ {
		p := fmt.Sprintf("%s-%d%s", base, i, ext)
		if _, err := os.Stat(p); os.IsNotExist(err) {
			return p
		}
	}
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
