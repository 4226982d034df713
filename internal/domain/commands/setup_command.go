package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/reposync/internal/domain/entities"
	"github.com/rios0rios0/reposync/internal/domain/repositories"
)

// Setup is the interface for the setup command.
type Setup interface {
	Execute(
		ctx context.Context,
		fleet *entities.FleetConfiguration,
		run *entities.RunConfiguration,
	) (*entities.RunReport, error)
}

// SetupCommand clones every selected repository that has no local checkout yet.
type SetupCommand struct {
	fleet *Fleet
	git   repositories.GitRepository
}

// NewSetupCommand creates a new SetupCommand.
func NewSetupCommand(fleet *Fleet, git repositories.GitRepository) *SetupCommand {
	return &SetupCommand{fleet: fleet, git: git}
}

// Execute clones the missing checkouts. A clone failure aborts the run.
func (it *SetupCommand) Execute(
	ctx context.Context,
	fleet *entities.FleetConfiguration,
	run *entities.RunConfiguration,
) (*entities.RunReport, error) {
	gate := NewDryRunGate(run.DryRun())

	return it.fleet.Each(ctx, "setup", fleet, run, false,
		func(ctx context.Context, descriptor entities.Descriptor) error {
			dir := run.RepositoryDir(descriptor.Name())
			if it.git.IsRepository(dir) {
				logger.Infof("[%s] Already set up at %s", descriptor.Name(), dir)
				return nil
			}

			_, err := gate.Guard(
				fmt.Sprintf("clone %s into %s", descriptor.Remote(), dir),
				func() error {
					logger.Infof("[%s] Cloning %s", descriptor.Name(), descriptor.Remote())
					return it.git.Clone(ctx, descriptor.Remote(), dir, run.GitAuthFor(descriptor.Remote()))
				},
			)
			if err != nil {
				return fmt.Errorf("failed to clone %s: %w", descriptor.Remote(), err)
			}
			return nil
		},
	)
}
