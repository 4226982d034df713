//go:build unit

package controllers_test

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/reposync/internal/domain/entities"
	"github.com/rios0rios0/reposync/internal/infrastructure/controllers"
	"github.com/rios0rios0/reposync/test/domain/commanddoubles"
)

func TestSetupController_Execute(t *testing.T) {
	t.Parallel()

	t.Run("should load the configuration next to the given file", func(t *testing.T) {
		t.Parallel()

		// given
		config := writeConfig(t)
		command := &commanddoubles.StubFleetCommand{}
		controller := controllers.NewSetupController(command)

		// when
		_, err := execute(t, controller, "setup", "--config", config)

		// then
		require.NoError(t, err)
		assert.Equal(t, 1, command.ExecuteCallCount)
		assert.Equal(t, []string{"cli", "web"}, command.LastFleet.RepositoryNames())
		assert.Equal(t, filepath.Join(filepath.Dir(config), "checkouts"), command.LastRun.ReposPath())
		assert.Equal(t, []string{entities.AllGroup}, command.LastRun.Groups())
		assert.False(t, command.LastRun.DryRun())
	})

	t.Run("should apply the shared flags over the settings", func(t *testing.T) {
		t.Parallel()

		// given
		config := writeConfig(t)
		command := &commanddoubles.StubFleetCommand{}
		controller := controllers.NewSetupController(command)
		repos := t.TempDir()

		// when
		_, err := execute(t, controller, "setup", "-c", config, "--dry-run", "-g", "tools,web", "--repos-path", repos)

		// then
		require.NoError(t, err)
		assert.True(t, command.LastRun.DryRun())
		assert.Equal(t, []string{"tools", "web"}, command.LastRun.Groups())
		assert.Equal(t, repos, command.LastRun.ReposPath())
	})

	t.Run("should fail when the configuration file does not exist", func(t *testing.T) {
		t.Parallel()

		// given
		command := &commanddoubles.StubFleetCommand{}
		controller := controllers.NewSetupController(command)

		// when
		_, err := execute(t, controller, "setup", "--config", filepath.Join(t.TempDir(), "missing.yaml"))

		// then
		require.Error(t, err)
		assert.Zero(t, command.ExecuteCallCount)
	})

	t.Run("should return the command error", func(t *testing.T) {
		t.Parallel()

		// given
		commandErr := errors.New("failed to clone")
		command := &commanddoubles.StubFleetCommand{ExecuteErr: commandErr}
		controller := controllers.NewSetupController(command)

		// when
		_, err := execute(t, controller, "setup", "--config", writeConfig(t))

		// then
		require.ErrorIs(t, err, commandErr)
	})
}

func TestPushController_Execute(t *testing.T) {
	t.Parallel()

	t.Run("should keep the configured branch when no flag overrides it", func(t *testing.T) {
		t.Parallel()

		// given
		command := &commanddoubles.StubFleetCommand{}
		controller := controllers.NewPushController(command)

		// when
		_, err := execute(t, controller, "push", "--config", writeConfig(t), "-m", "chore: sync")

		// then
		require.NoError(t, err)
		branch, branchErr := command.LastRun.PushToBranch()
		require.NoError(t, branchErr)
		assert.Equal(t, "from-config", branch)
		assert.False(t, command.LastRun.ForcePush())
	})

	t.Run("should pass the push flags to the run configuration", func(t *testing.T) {
		t.Parallel()

		// given
		command := &commanddoubles.StubFleetCommand{}
		controller := controllers.NewPushController(command)

		// when
		_, err := execute(t, controller, "push", "--config", writeConfig(t),
			"-m", "chore: sync", "-b", "sync", "--force", "--request-checks")

		// then
		require.NoError(t, err)
		branch, _ := command.LastRun.PushToBranch()
		message, _ := command.LastRun.CommitMessage()
		assert.Equal(t, "sync", branch)
		assert.Equal(t, "chore: sync\n\nrequest-checks: true", message)
		assert.True(t, command.LastRun.ForcePush())
	})
}

func TestOpenPRsController_Execute(t *testing.T) {
	t.Parallel()

	t.Run("should pass the pull request flags to the run configuration", func(t *testing.T) {
		t.Parallel()

		// given
		command := &commanddoubles.StubFleetCommand{}
		controller := controllers.NewOpenPRsController(command)

		// when
		_, err := execute(t, controller, "open-prs", "--config", writeConfig(t),
			"-m", "chore: sync", "--merge-branch", "main",
			"--reviewers", "alice,bob", "--assignees", "carol", "--auto-merge",
			"--cooldown-time", "90s")

		// then
		require.NoError(t, err)
		run := command.LastRun
		title, _ := run.PullRequestMessage()
		base, _ := run.MergeBranch()
		assert.Equal(t, "chore: sync", title)
		assert.Equal(t, "main", base)
		assert.Equal(t, []string{"alice", "bob"}, run.Reviewers())
		assert.Equal(t, []string{"carol"}, run.Assignees())
		assert.True(t, run.AddAutoMergeLabel())
		assert.Equal(t, 5, run.CooldownCount())
		assert.Equal(t, 90*time.Second, run.CooldownTime())
	})
}

func TestDiffController_Execute(t *testing.T) {
	t.Parallel()

	t.Run("should write the diff to the command output", func(t *testing.T) {
		t.Parallel()

		// given
		command := &commanddoubles.StubDiffCommand{Output: "=== cli ===\n"}
		controller := controllers.NewDiffController(command)

		// when
		out, err := execute(t, controller, "diff", "--config", writeConfig(t))

		// then
		require.NoError(t, err)
		assert.Equal(t, "=== cli ===\n", out)
	})
}

func TestForEachController_Execute(t *testing.T) {
	t.Parallel()

	t.Run("should hand everything after the separator to the command", func(t *testing.T) {
		t.Parallel()

		// given
		command := &commanddoubles.StubForEachCommand{}
		controller := controllers.NewForEachController(command)

		// when
		_, err := execute(t, controller, "for-each", "--config", writeConfig(t), "--", "git", "status", "--short")

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"git", "status", "--short"}, command.LastCommand)
	})
}
