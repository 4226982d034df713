//go:build unit

package commands_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/reposync/internal/domain/commands"
	"github.com/rios0rios0/reposync/internal/domain/entities"
	"github.com/rios0rios0/reposync/test/domain/entitybuilders"
	doubles "github.com/rios0rios0/reposync/test/infrastructure/repositorydoubles"
)

func TestFleetEach(t *testing.T) {
	t.Parallel()

	t.Run("should skip names without a descriptor and keep going", func(t *testing.T) {
		t.Parallel()

		// given
		fleet := entitybuilders.NewFleetBuilder().
			WithRepository("cli", "main").
			WithAttributes("ghost", nil).
			WithRepository("web", "main").
			BuildFleet()
		run, _ := newRun(t, entities.RunSettings{Groups: []string{"all", "typo"}})
		iterator := commands.NewFleet(doubles.NewSpyGitRepository())
		var visited []string

		// when
		report, err := iterator.Each(context.Background(), "test", fleet, run, false,
			func(_ context.Context, descriptor entities.Descriptor) error {
				visited = append(visited, descriptor.Name())
				return nil
			},
		)

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"cli", "web"}, visited)
		assert.Equal(t, []string{"cli", "web"}, report.Processed)
		assert.Equal(t, []string{"ghost", "typo"}, report.Skipped)
	})

	t.Run("should skip repositories without checkout and warn once", func(t *testing.T) {
		t.Parallel()

		// given
		fleet := entitybuilders.NewFleetBuilder().
			WithRepository("cli", "main").
			WithRepository("web", "main").
			BuildFleet()
		run, _ := newRun(t, entities.RunSettings{})
		git := doubles.NewSpyGitRepository()
		git.AllProvisioned = false
		git.Provisioned[filepath.Join(run.ReposPath(), "web")] = true
		iterator := commands.NewFleet(git)
		var visited []string

		// when
		report, err := iterator.Each(context.Background(), "test", fleet, run, true,
			func(_ context.Context, descriptor entities.Descriptor) error {
				visited = append(visited, descriptor.Name())
				return nil
			},
		)

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"web"}, visited)
		assert.Equal(t, []string{"cli"}, report.Skipped)
		assert.Contains(t, report.Warnings[0].String(), "not set up")
	})

	t.Run("should turn skip errors into warnings", func(t *testing.T) {
		t.Parallel()

		// given
		fleet := entitybuilders.NewFleetBuilder().
			WithRepository("cli", "main").
			WithRepository("web", "main").
			BuildFleet()
		run, _ := newRun(t, entities.RunSettings{})
		iterator := commands.NewFleet(doubles.NewSpyGitRepository())

		// when
		report, err := iterator.Each(context.Background(), "test", fleet, run, false,
			func(_ context.Context, descriptor entities.Descriptor) error {
				if descriptor.Name() == "cli" {
					return entities.Skip("remote tip diverged")
				}
				return nil
			},
		)

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"web"}, report.Processed)
		require.Len(t, report.Warnings, 1)
		assert.Equal(t, "[cli] remote tip diverged", report.Warnings[0].String())
	})

	t.Run("should abort on any other error", func(t *testing.T) {
		t.Parallel()

		// given
		fleet := entitybuilders.NewFleetBuilder().
			WithRepository("cli", "main").
			WithRepository("web", "main").
			BuildFleet()
		run, _ := newRun(t, entities.RunSettings{})
		iterator := commands.NewFleet(doubles.NewSpyGitRepository())
		fatal := errors.New("rate limited")
		var visited []string

		// when
		_, err := iterator.Each(context.Background(), "test", fleet, run, false,
			func(_ context.Context, descriptor entities.Descriptor) error {
				visited = append(visited, descriptor.Name())
				return fatal
			},
		)

		// then
		require.ErrorIs(t, err, fatal)
		assert.Equal(t, []string{"cli"}, visited)
	})

	t.Run("should stop when the context is canceled", func(t *testing.T) {
		t.Parallel()

		// given
		fleet := entitybuilders.NewFleetBuilder().WithRepository("cli", "main").BuildFleet()
		run, _ := newRun(t, entities.RunSettings{})
		iterator := commands.NewFleet(doubles.NewSpyGitRepository())
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		// when
		_, err := iterator.Each(ctx, "test", fleet, run, false,
			func(_ context.Context, _ entities.Descriptor) error { return nil },
		)

		// then
		require.ErrorIs(t, err, context.Canceled)
	})
}
