package usghole

import (
	"os/exec"
	"strings"

	"github.com/pkg/errors"
)

// Reloader makes the resolver pick up a newly written configuration
// generation.
type Reloader interface {
	// Verifies the reload mechanism is available before any files are touched.
	Check() error

	// Triggers the reload. Called after the new generation is in place.
	Reload() error
}

// CommandReloader reloads the resolver by running an external command, e.g.
// "/etc/init.d/dnsmasq force-reload".
type CommandReloader struct {
	cmd  string
	args []string
}

var _ Reloader = &CommandReloader{}

func NewCommandReloader(cmd string, args ...string) *CommandReloader {
	return &CommandReloader{cmd: cmd, args: args}
}

func (r *CommandReloader) Check() error {
	if _, err := exec.LookPath(r.cmd); err != nil {
		return &MissingDependencyError{Name: r.cmd}
	}
	return nil
}

func (r *CommandReloader) Reload() error {
	out, err := exec.Command(r.cmd, r.args...).CombinedOutput()
	if err != nil {
		return errors.Wrapf(err, "reload command failed: %s", strings.TrimSpace(string(out)))
	}
	return nil
}

func (r *CommandReloader) String() string {
	return strings.Join(append([]string{r.cmd}, r.args...), " ")
}
