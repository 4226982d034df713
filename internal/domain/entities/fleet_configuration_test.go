package entities_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/reposync/internal/domain/entities"
)

const fleetDocument = `
settings:
  groups: [tools]
  reviewers: [alice, bob]
  cooldown_count: 5
  cooldown_time: 90s
repositories:
  web:
    remote: https://github.com/acme/web
    branch: main
    files:
      .github/workflows/ci.yml: workflows/node.yml
  cli:
    remote: git@github.com:acme/cli.git
    branch: develop
    files:
      README.md: {source: readme.md, template: true}
      Makefile: make/Makefile.tpl
      LICENSE: {source: LICENSE.tmpl, template: false}
    template:
      project: cli
      owners: [alice]
  archived:
groups:
  tools: [cli]
`

func TestParseFleetConfiguration(t *testing.T) {
	t.Parallel()

	t.Run("should keep repositories and files in declaration order", func(t *testing.T) {
		t.Parallel()

		// when
		fleet, err := entities.ParseFleetConfiguration([]byte(fleetDocument))

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"web", "cli", "archived"}, fleet.RepositoryNames())

		files := fleet.Descriptor("cli").Files()
		require.Len(t, files, 3)
		assert.Equal(t, "README.md", files[0].Target)
		assert.Equal(t, "Makefile", files[1].Target)
		assert.Equal(t, "LICENSE", files[2].Target)
	})

	t.Run("should decide the projection kind from suffix or explicit flag", func(t *testing.T) {
		t.Parallel()

		// when
		fleet, err := entities.ParseFleetConfiguration([]byte(fleetDocument))

		// then
		require.NoError(t, err)
		files := fleet.Descriptor("cli").Files()
		assert.Equal(t, entities.ProjectionTemplate, files[0].Kind)
		assert.Equal(t, entities.ProjectionTemplate, files[1].Kind)
		assert.Equal(t, entities.ProjectionCopy, files[2].Kind)
		assert.Equal(t, entities.ProjectionCopy, fleet.Descriptor("web").Files()[0].Kind)
	})

	t.Run("should decode settings and template bindings", func(t *testing.T) {
		t.Parallel()

		// when
		fleet, err := entities.ParseFleetConfiguration([]byte(fleetDocument))

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"tools"}, fleet.Settings.Groups)
		assert.Equal(t, []string{"alice", "bob"}, fleet.Settings.Reviewers)
		require.NotNil(t, fleet.Settings.CooldownCount)
		assert.Equal(t, 5, *fleet.Settings.CooldownCount)
		require.NotNil(t, fleet.Settings.CooldownTime)
		assert.Equal(t, 90*time.Second, time.Duration(*fleet.Settings.CooldownTime))
		assert.Equal(t, "cli", fleet.Descriptor("cli").TemplateBindings()["project"])
		assert.Equal(t, []string{"cli"}, fleet.Resolve(fleet.Settings.Groups))
	})

	t.Run("should treat a null entry and an unknown name as not configured", func(t *testing.T) {
		t.Parallel()

		// when
		fleet, err := entities.ParseFleetConfiguration([]byte(fleetDocument))

		// then
		require.NoError(t, err)
		assert.False(t, fleet.Descriptor("archived").IsConfigured())
		assert.False(t, fleet.Descriptor("missing").IsConfigured())
	})

	t.Run("should reject a redefinition of the all group", func(t *testing.T) {
		t.Parallel()

		// given
		document := "repositories:\n  cli:\n    remote: https://github.com/acme/cli\ngroups:\n  all: [cli]\n"

		// when
		_, err := entities.ParseFleetConfiguration([]byte(document))

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "reserved")
	})

	t.Run("should reject a document without repositories", func(t *testing.T) {
		t.Parallel()

		// when
		_, err := entities.ParseFleetConfiguration([]byte("settings:\n  verbose: true\n"))

		// then
		require.Error(t, err)
	})

	t.Run("should reject a file entry without source", func(t *testing.T) {
		t.Parallel()

		// given
		document := "repositories:\n  cli:\n    branch: main\n    files:\n      README.md: {template: true}\n"

		// when
		_, err := entities.ParseFleetConfiguration([]byte(document))

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "has no source")
	})
}

func TestNewFleetConfiguration(t *testing.T) {
	t.Parallel()

	t.Run("should remember the directory of the loaded file", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()
		path := filepath.Join(dir, "reposync.yaml")
		require.NoError(t, os.WriteFile(path, []byte(fleetDocument), 0o600))

		// when
		fleet, err := entities.NewFleetConfiguration(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, path, fleet.Path())
		assert.Equal(t, dir, fleet.Directory())
	})

	t.Run("should fail for a missing file", func(t *testing.T) {
		t.Parallel()

		// when
		_, err := entities.NewFleetConfiguration(filepath.Join(t.TempDir(), "nope.yaml"))

		// then
		require.Error(t, err)
	})
}
