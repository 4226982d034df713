package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/reposync/internal/domain/entities"
	"github.com/rios0rios0/reposync/internal/domain/repositories"
)

// Sync is the interface for the sync command.
type Sync interface {
	Execute(
		ctx context.Context,
		fleet *entities.FleetConfiguration,
		run *entities.RunConfiguration,
	) (*entities.RunReport, error)
}

// SyncCommand resets each checkout to its branch tip and projects the master files
// into it, staging every projected file.
type SyncCommand struct {
	fleet     *Fleet
	git       repositories.GitRepository
	projector repositories.FileProjector
}

// NewSyncCommand creates a new SyncCommand.
func NewSyncCommand(
	fleet *Fleet,
	git repositories.GitRepository,
	projector repositories.FileProjector,
) *SyncCommand {
	return &SyncCommand{fleet: fleet, git: git, projector: projector}
}

// Execute projects the configured files. Running it twice leaves the same index.
func (it *SyncCommand) Execute(
	ctx context.Context,
	fleet *entities.FleetConfiguration,
	run *entities.RunConfiguration,
) (*entities.RunReport, error) {
	master := run.MasterPath()
	if info, err := os.Stat(master); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("master path %q is not a directory", master)
	}
	gate := NewDryRunGate(run.DryRun())

	return it.fleet.Each(ctx, "sync", fleet, run, true,
		func(ctx context.Context, descriptor entities.Descriptor) error {
			files := descriptor.Files()
			_, err := gate.Guard(
				fmt.Sprintf("sync %d files into %s", len(files), descriptor.Name()),
				func() error { return it.sync(ctx, descriptor, run) },
			)
			return err
		},
	)
}

func (it *SyncCommand) sync(
	ctx context.Context,
	descriptor entities.Descriptor,
	run *entities.RunConfiguration,
) error {
	name := descriptor.Name()
	dir := run.RepositoryDir(name)

	if !run.KeepChanges() {
		if err := it.git.Checkout(dir, descriptor.Branch(), false); err != nil {
			return skipOrAbort(ctx, err, "failed to check out %s", descriptor.Branch())
		}
		if err := it.git.ResetHard(dir, ""); err != nil {
			return skipOrAbort(ctx, err, "failed to reset %s", descriptor.Branch())
		}
		if err := it.git.Clean(dir); err != nil {
			return skipOrAbort(ctx, err, "failed to clean working copy")
		}
	}

	bindings := descriptor.TemplateBindings()
	for _, mapping := range descriptor.Files() {
		source := filepath.Join(run.MasterPath(), mapping.Source)
		target := filepath.Join(dir, mapping.Target)
		logger.Debugf("[%s] Projecting %s -> %s (%s)", name, mapping.Source, mapping.Target, mapping.Kind)

		if err := it.projector.Project(source, target, mapping, bindings); err != nil {
			return fmt.Errorf("failed to project %s: %w", mapping.Target, err)
		}
		if err := it.git.Add(dir, mapping.Target); err != nil {
			return skipOrAbort(ctx, err, "failed to stage %s", mapping.Target)
		}
	}

	if run.Verbose() {
		staged, err := it.git.StagedChanges(dir)
		if err != nil {
			return skipOrAbort(ctx, err, "failed to read staged changes")
		}
		for _, path := range staged {
			logger.Infof("[%s] Staged %s", name, path)
		}
	}
	return nil
}
