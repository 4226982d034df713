//go:build unit

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRootCommand(t *testing.T) {
	t.Parallel()

	t.Run("should wire every operation as a subcommand", func(t *testing.T) {
		t.Parallel()

		// given
		root := buildRootCommand()

		// when
		addSubcommands(root, injectAppContext())

		// then
		var names []string
		for _, sub := range root.Commands() {
			names = append(names, sub.Name())
		}
		assert.Equal(t, []string{"diff", "for-each", "open-prs", "pull", "push", "setup", "sync"}, names)
	})

	t.Run("should expose the shared flags to every subcommand", func(t *testing.T) {
		t.Parallel()

		// given
		root := buildRootCommand()
		addSubcommands(root, injectAppContext())

		// when
		push, _, err := root.Find([]string{"push"})

		// then
		require.NoError(t, err)
		for _, flag := range []string{"config", "dry-run", "groups", "repos-path", "github-token"} {
			assert.NotNil(t, push.InheritedFlags().Lookup(flag), flag)
		}
		assert.NotNil(t, push.Flags().Lookup("push-branch"))
	})
}
