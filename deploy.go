package usghole

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Install creates the workspace directory and copies the running executable
// into it. On gateways that wipe user binaries during firmware upgrades this
// keeps a cron-invocable copy in persistent storage. Returns the installed
// path.
func Install(workspace string) (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", errors.Wrap(err, "failed to locate running executable")
	}
	if err := os.MkdirAll(workspace, 0755); err != nil {
		return "", errors.Wrap(err, "failed to create workspace")
	}
	dst := filepath.Join(workspace, filepath.Base(exe))
	if err := copyFile(exe, dst); err != nil {
		return "", errors.Wrap(err, "failed to copy executable")
	}
	if err := os.Chmod(dst, 0755); err != nil {
		return "", err
	}
	return dst, nil
}

// Uninstall removes the live configuration files of the given generation and
// the whole workspace, backups and pointers included. Files already absent are
// not an error.
func Uninstall(g Generation, workspace string) error {
	for _, path := range []string{g.IPv4Path, g.IPv6Path} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return errors.Wrapf(err, "failed to remove '%s'", path)
		}
	}
	if err := os.RemoveAll(workspace); err != nil {
		return errors.Wrap(err, "failed to remove workspace")
	}
	return nil
}
