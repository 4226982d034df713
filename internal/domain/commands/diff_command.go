package commands

import (
	"context"
	"fmt"
	"io"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/reposync/internal/domain/entities"
	"github.com/rios0rios0/reposync/internal/domain/repositories"
)

// Diff is the interface for the diff command.
type Diff interface {
	Execute(
		ctx context.Context,
		fleet *entities.FleetConfiguration,
		run *entities.RunConfiguration,
		out io.Writer,
	) (*entities.RunReport, error)
}

// DiffCommand prints the unstaged changes of each checkout. It is read-only and
// ignores dry-run.
type DiffCommand struct {
	fleet *Fleet
	git   repositories.GitRepository
}

// NewDiffCommand creates a new DiffCommand.
func NewDiffCommand(fleet *Fleet, git repositories.GitRepository) *DiffCommand {
	return &DiffCommand{fleet: fleet, git: git}
}

// Execute writes one diff section per repository to out.
func (it *DiffCommand) Execute(
	ctx context.Context,
	fleet *entities.FleetConfiguration,
	run *entities.RunConfiguration,
	out io.Writer,
) (*entities.RunReport, error) {
	return it.fleet.Each(ctx, "diff", fleet, run, true,
		func(ctx context.Context, descriptor entities.Descriptor) error {
			patch, err := it.git.Diff(run.RepositoryDir(descriptor.Name()))
			if err != nil {
				return skipOrAbort(ctx, err, "failed to compute diff")
			}
			if patch == "" {
				logger.Infof("[%s] No changes", descriptor.Name())
				return nil
			}

			if _, err = fmt.Fprintf(out, "=== %s ===\n%s\n", descriptor.Name(), patch); err != nil {
				return fmt.Errorf("failed to write diff: %w", err)
			}
			return nil
		},
	)
}
