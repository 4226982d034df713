//go:build unit

package controllers_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/reposync/internal/domain/entities"
	"github.com/rios0rios0/reposync/internal/infrastructure/controllers"
)

const fleetDocument = `settings:
  push_to_branch: from-config
  repos_path: checkouts
  cooldown_count: 5
repositories:
  cli:
    remote: https://github.com/acme/cli
    branch: main
  web:
    remote: https://github.com/acme/web
    branch: main
groups:
  tools: [cli]
`

// writeConfig stores the fleet document in a temporary directory and returns its path.
func writeConfig(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "reposync.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fleetDocument), 0o600))
	return path
}

// execute mounts the controller under a root command carrying the persistent
// flags and runs it with args.
func execute(t *testing.T, controller entities.Controller, args ...string) (string, error) {
	t.Helper()

	root := &cobra.Command{Use: "reposync", SilenceUsage: true, SilenceErrors: true}
	controllers.AddPersistentFlags(root)

	bind := controller.GetBind()
	sub := &cobra.Command{Use: bind.Use, RunE: controller.Execute}
	controller.AddFlags(sub)
	root.AddCommand(sub)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}
