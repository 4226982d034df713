//go:build unit

package commands_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/reposync/internal/domain/commands"
)

func TestDryRunGateGuard(t *testing.T) {
	t.Parallel()

	t.Run("should never call the action in dry-run mode", func(t *testing.T) {
		t.Parallel()

		// given
		gate := commands.NewDryRunGate(true)
		called := false

		// when
		executed, err := gate.Guard("clone repository", func() error {
			called = true
			return nil
		})

		// then
		require.NoError(t, err)
		assert.False(t, executed)
		assert.False(t, called)
	})

	t.Run("should run the action and return its error unchanged", func(t *testing.T) {
		t.Parallel()

		// given
		gate := commands.NewDryRunGate(false)
		actionErr := errors.New("boom")

		// when
		executed, err := gate.Guard("clone repository", func() error { return actionErr })

		// then
		assert.True(t, executed)
		assert.Same(t, actionErr, err)
	})
}
