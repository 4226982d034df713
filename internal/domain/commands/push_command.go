package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/reposync/internal/domain/entities"
	"github.com/rios0rios0/reposync/internal/domain/repositories"
)

// Push is the interface for the push command.
type Push interface {
	Execute(
		ctx context.Context,
		fleet *entities.FleetConfiguration,
		run *entities.RunConfiguration,
	) (*entities.RunReport, error)
}

const originRemote = "origin"

// PushCommand commits the projected files on the push branch and publishes it.
type PushCommand struct {
	fleet *Fleet
	git   repositories.GitRepository
}

// NewPushCommand creates a new PushCommand.
func NewPushCommand(fleet *Fleet, git repositories.GitRepository) *PushCommand {
	return &PushCommand{fleet: fleet, git: git}
}

// Execute commits and pushes every checkout. With nothing staged the commit is
// skipped but the branch is still pushed, so a second run is a no-op remotely.
func (it *PushCommand) Execute(
	ctx context.Context,
	fleet *entities.FleetConfiguration,
	run *entities.RunConfiguration,
) (*entities.RunReport, error) {
	message, err := run.CommitMessage()
	if err != nil {
		return nil, err
	}
	branch, err := run.PushToBranch()
	if err != nil {
		return nil, err
	}
	gate := NewDryRunGate(run.DryRun())

	return it.fleet.Each(ctx, "push", fleet, run, true,
		func(ctx context.Context, descriptor entities.Descriptor) error {
			_, guardErr := gate.Guard(
				fmt.Sprintf("commit %q and push %s for %s", firstLine(message), branch, descriptor.Name()),
				func() error { return it.push(ctx, descriptor, run, message, branch) },
			)
			return guardErr
		},
	)
}

func (it *PushCommand) push(
	ctx context.Context,
	descriptor entities.Descriptor,
	run *entities.RunConfiguration,
	message, branch string,
) error {
	name := descriptor.Name()
	dir := run.RepositoryDir(name)

	remotes, err := it.git.Remotes(dir)
	if err != nil {
		return skipOrAbort(ctx, err, "failed to list remotes")
	}
	if !slices.Contains(remotes, originRemote) {
		return entities.Skip("no %s remote to push to", originRemote)
	}

	previous := ""
	if !run.KeepChanges() {
		if err = it.git.Checkout(dir, descriptor.Branch(), true); err != nil {
			return skipOrAbort(ctx, err, "failed to check out %s", descriptor.Branch())
		}
		if branch != descriptor.Branch() {
			if previous, err = it.previousTip(dir, branch); err != nil {
				return skipOrAbort(ctx, err, "failed to resolve %s", branch)
			}
			if err = it.deleteIfPresent(dir, branch); err != nil {
				return skipOrAbort(ctx, err, "failed to delete local branch %s", branch)
			}
		}
	}

	if err = it.switchTo(dir, branch); err != nil {
		return skipOrAbort(ctx, err, "failed to switch to %s", branch)
	}

	for _, mapping := range descriptor.Files() {
		if _, statErr := os.Stat(filepath.Join(dir, mapping.Target)); statErr != nil {
			continue
		}
		if err = it.git.Add(dir, mapping.Target); err != nil {
			return skipOrAbort(ctx, err, "failed to stage %s", mapping.Target)
		}
	}

	if previous != "" {
		if err = it.reuse(dir, previous); err != nil {
			return skipOrAbort(ctx, err, "failed to compare with %s", shortHash(previous))
		}
	}

	staged, err := it.git.HasStagedChanges(dir)
	if err != nil {
		return skipOrAbort(ctx, err, "failed to read staged changes")
	}
	if staged {
		hash, commitErr := it.git.Commit(dir, message)
		if commitErr != nil {
			return skipOrAbort(ctx, commitErr, "failed to commit")
		}
		logger.Infof("[%s] Committed %s on %s", name, shortHash(hash), branch)
	} else {
		logger.Infof("[%s] Nothing to commit on %s", name, branch)
	}

	err = it.git.Push(ctx, dir, branch, run.ForcePush(), run.GitAuthFor(descriptor.Remote()))
	switch {
	case err == nil:
		logger.Infof("[%s] Pushed %s", name, branch)
		return nil
	case errors.Is(err, entities.ErrPushRejected):
		return skipOrAbort(ctx, err, "push of %s rejected, remote tip diverged", branch)
	default:
		return skipOrAbort(ctx, err, "failed to push %s", branch)
	}
}

// previousTip is the commit the push branch pointed at before this run, locally
// or on origin.
func (it *PushCommand) previousTip(dir, branch string) (string, error) {
	tip, err := it.git.Tip(dir, branch)
	if err != nil || tip != "" {
		return tip, err
	}
	return it.git.Tip(dir, originRemote+"/"+branch)
}

// reuse moves the recreated branch back onto previous when the index holds the
// same tree, so an unchanged repository gets no new commit.
func (it *PushCommand) reuse(dir, previous string) error {
	matches, err := it.git.IndexMatches(dir, previous)
	if err != nil || !matches {
		return err
	}
	return it.git.ResetSoft(dir, previous)
}

func (it *PushCommand) deleteIfPresent(dir, branch string) error {
	exists, err := it.git.BranchExists(dir, branch)
	if err != nil || !exists {
		return err
	}
	return it.git.DeleteBranch(dir, branch)
}

func (it *PushCommand) switchTo(dir, branch string) error {
	current, err := it.git.Head(dir)
	if err == nil && current == branch {
		return nil
	}

	exists, err := it.git.BranchExists(dir, branch)
	if err != nil {
		return err
	}
	if exists {
		return it.git.Checkout(dir, branch, true)
	}
	return it.git.CreateBranch(dir, branch, "")
}

func firstLine(message string) string {
	for i, r := range message {
		if r == '\n' {
			return message[:i]
		}
	}
	return message
}

func shortHash(hash string) string {
	const short = 7
	if len(hash) > short {
		return hash[:short]
	}
	return hash
}
