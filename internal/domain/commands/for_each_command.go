package commands

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/reposync/internal/domain/entities"
)

// ForEach is the interface for the for-each command.
type ForEach interface {
	Execute(
		ctx context.Context,
		fleet *entities.FleetConfiguration,
		run *entities.RunConfiguration,
		command []string,
	) (*entities.RunReport, error)
}

// ForEachCommand runs a shell command inside every checkout.
type ForEachCommand struct {
	fleet *Fleet
}

// NewForEachCommand creates a new ForEachCommand.
func NewForEachCommand(fleet *Fleet) *ForEachCommand {
	return &ForEachCommand{fleet: fleet}
}

// Execute runs "sh -c <command>" in each checkout, streaming its output to the
// log. A non-zero exit status is logged and does not stop the run.
func (it *ForEachCommand) Execute(
	ctx context.Context,
	fleet *entities.FleetConfiguration,
	run *entities.RunConfiguration,
	command []string,
) (*entities.RunReport, error) {
	script := strings.TrimSpace(strings.Join(command, " "))
	if script == "" {
		return nil, fmt.Errorf("%w: command to run", entities.ErrMissingParameter)
	}
	gate := NewDryRunGate(run.DryRun())

	return it.fleet.Each(ctx, "for-each", fleet, run, true,
		func(ctx context.Context, descriptor entities.Descriptor) error {
			_, err := gate.Guard(
				fmt.Sprintf("run %q in %s", script, descriptor.Name()),
				func() error { return runShell(ctx, descriptor.Name(), run.RepositoryDir(descriptor.Name()), script) },
			)
			return err
		},
	)
}

func runShell(ctx context.Context, name, dir, script string) error {
	entry := logger.WithField("repository", name)
	stdout := entry.WriterLevel(logger.InfoLevel)
	stderr := entry.WriterLevel(logger.WarnLevel)
	defer stdout.Close()
	defer stderr.Close()

	cmd := exec.CommandContext(ctx, "sh", "-c", script)
	cmd.Dir = dir
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		logger.Debugf("[%s] Command finished", name)
		return nil
	case errors.As(err, &exitErr) && ctx.Err() == nil:
		logger.Warnf("[%s] Command exited with status %d", name, exitErr.ExitCode())
		return nil
	default:
		return skipOrAbort(ctx, err, "failed to run command")
	}
}
