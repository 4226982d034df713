//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/reposync/internal/domain/commands"
	"github.com/rios0rios0/reposync/internal/domain/entities"
	"github.com/rios0rios0/reposync/test/domain/entitybuilders"
	doubles "github.com/rios0rios0/reposync/test/infrastructure/repositorydoubles"
)

func TestPullCommand_Execute(t *testing.T) {
	t.Parallel()

	t.Run("should check out the existing branch and pull it", func(t *testing.T) {
		t.Parallel()

		// given
		fleet := entitybuilders.NewFleetBuilder().WithRepository("cli", "main").BuildFleet()
		run, _ := newRun(t, entities.RunSettings{})
		git := doubles.NewSpyGitRepository()
		command := commands.NewPullCommand(commands.NewFleet(git), git)

		// when
		report, err := command.Execute(context.Background(), fleet, run)

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"cli"}, report.Processed)
		assert.Equal(t, 1, git.Fetches)
		assert.Equal(t, []string{"reset ", "checkout main keep=false"}, git.Operations)
		assert.Equal(t, []string{"main"}, git.Pulls)
	})

	t.Run("should create a missing branch from its remote counterpart", func(t *testing.T) {
		t.Parallel()

		// given
		fleet := entitybuilders.NewFleetBuilder().WithRepository("cli", "develop").BuildFleet()
		run, _ := newRun(t, entities.RunSettings{})
		git := doubles.NewSpyGitRepository()
		command := commands.NewPullCommand(commands.NewFleet(git), git)

		// when
		_, err := command.Execute(context.Background(), fleet, run)

		// then
		require.NoError(t, err)
		assert.Contains(t, git.Operations, `create develop from "origin/develop"`)
		assert.Equal(t, []string{"develop"}, git.Pulls)
	})

	t.Run("should not fetch or pull in dry-run mode", func(t *testing.T) {
		t.Parallel()

		// given
		fleet := entitybuilders.NewFleetBuilder().WithRepository("cli", "main").BuildFleet()
		run, _ := newRun(t, entities.RunSettings{DryRun: ptr(true)})
		git := doubles.NewSpyGitRepository()
		command := commands.NewPullCommand(commands.NewFleet(git), git)

		// when
		report, err := command.Execute(context.Background(), fleet, run)

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"cli"}, report.Processed)
		assert.Zero(t, git.Fetches)
		assert.Empty(t, git.Operations)
		assert.Empty(t, git.Pulls)
	})

	t.Run("should skip a repository that fails to fetch", func(t *testing.T) {
		t.Parallel()

		// given
		fleet := entitybuilders.NewFleetBuilder().WithRepository("cli", "main").BuildFleet()
		run, _ := newRun(t, entities.RunSettings{})
		git := doubles.NewSpyGitRepository()
		git.FetchErr = errors.New("could not resolve host")
		command := commands.NewPullCommand(commands.NewFleet(git), git)

		// when
		report, err := command.Execute(context.Background(), fleet, run)

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"cli"}, report.Skipped)
		assert.Empty(t, git.Pulls)
	})

	t.Run("should continue when local changes cannot be reset", func(t *testing.T) {
		t.Parallel()

		// given
		fleet := entitybuilders.NewFleetBuilder().WithRepository("cli", "main").BuildFleet()
		run, _ := newRun(t, entities.RunSettings{})
		git := doubles.NewSpyGitRepository()
		git.ResetErr = errors.New("no commits yet")
		command := commands.NewPullCommand(commands.NewFleet(git), git)

		// when
		report, err := command.Execute(context.Background(), fleet, run)

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"cli"}, report.Processed)
		assert.Equal(t, []string{"main"}, git.Pulls)
	})
}
