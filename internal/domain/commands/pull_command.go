package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/reposync/internal/domain/entities"
	"github.com/rios0rios0/reposync/internal/domain/repositories"
)

// Pull is the interface for the pull command.
type Pull interface {
	Execute(
		ctx context.Context,
		fleet *entities.FleetConfiguration,
		run *entities.RunConfiguration,
	) (*entities.RunReport, error)
}

// PullCommand brings each checkout up to date with its configured branch.
type PullCommand struct {
	fleet *Fleet
	git   repositories.GitRepository
}

// NewPullCommand creates a new PullCommand.
func NewPullCommand(fleet *Fleet, git repositories.GitRepository) *PullCommand {
	return &PullCommand{fleet: fleet, git: git}
}

// Execute fetches, resets and pulls every checkout. Failures skip the repository.
func (it *PullCommand) Execute(
	ctx context.Context,
	fleet *entities.FleetConfiguration,
	run *entities.RunConfiguration,
) (*entities.RunReport, error) {
	gate := NewDryRunGate(run.DryRun())

	return it.fleet.Each(ctx, "pull", fleet, run, true,
		func(ctx context.Context, descriptor entities.Descriptor) error {
			_, err := gate.Guard(
				fmt.Sprintf("pull %s into %s", descriptor.Branch(), descriptor.Name()),
				func() error { return it.pull(ctx, descriptor, run) },
			)
			return err
		},
	)
}

func (it *PullCommand) pull(
	ctx context.Context,
	descriptor entities.Descriptor,
	run *entities.RunConfiguration,
) error {
	name := descriptor.Name()
	branch := descriptor.Branch()
	dir := run.RepositoryDir(name)
	auth := run.GitAuthFor(descriptor.Remote())

	if err := it.git.Fetch(ctx, dir, auth); err != nil {
		return skipOrAbort(ctx, err, "failed to fetch")
	}

	if err := it.git.ResetHard(dir, ""); err != nil {
		logger.Debugf("[%s] Reset of local changes failed, continuing: %v", name, err)
	}

	exists, err := it.git.BranchExists(dir, branch)
	if err != nil {
		return skipOrAbort(ctx, err, "failed to look up branch %s", branch)
	}
	if exists {
		err = it.git.Checkout(dir, branch, false)
	} else {
		err = it.git.CreateBranch(dir, branch, "origin/"+branch)
	}
	if err != nil {
		return skipOrAbort(ctx, err, "failed to check out %s", branch)
	}

	if err = it.git.Pull(ctx, dir, branch, auth); err != nil {
		return skipOrAbort(ctx, err, "failed to pull %s", branch)
	}
	logger.Infof("[%s] Up to date with origin/%s", name, branch)
	return nil
}
