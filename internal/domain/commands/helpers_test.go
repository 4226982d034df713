//go:build unit

package commands_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/reposync/internal/domain/entities"
)

func ptr[T any](value T) *T {
	return &value
}

// newRun builds a run configuration rooted at a temporary directory, with
// repositories under <root>/repositories and master files under <root>/master.
func newRun(t *testing.T, overrides entities.RunSettings) (*entities.RunConfiguration, string) {
	t.Helper()

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "master"), 0o750))
	if overrides.ReposPath == nil {
		overrides.ReposPath = ptr(filepath.Join(root, "repositories"))
	}
	if overrides.MasterPath == nil {
		overrides.MasterPath = ptr(filepath.Join(root, "master"))
	}
	if overrides.GitHubToken == nil {
		overrides.GitHubToken = ptr("test-token")
	}
	return entities.NewRunConfiguration(entities.RunSettings{}, overrides, root), root
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

// initCheckout creates a git repository on branch master with one commit.
func initCheckout(t *testing.T, dir string, files map[string]string) {
	t.Helper()

	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)

	for name, content := range files {
		writeFile(t, filepath.Join(dir, name), content)
		_, err = wt.Add(name)
		require.NoError(t, err)
	}

	_, err = wt.Commit("initial commit", &gogit.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err)
}

// initOrigin creates an empty bare repository at path and registers it as the
// origin remote of the checkout in dir.
func initOrigin(t *testing.T, dir, path string) string {
	t.Helper()

	_, err := gogit.PlainInit(path, true)
	require.NoError(t, err)
	repo, err := gogit.PlainOpen(dir)
	require.NoError(t, err)
	_, err = repo.CreateRemote(&config.RemoteConfig{Name: "origin", URLs: []string{path}})
	require.NoError(t, err)
	return path
}

// branchTip returns the commit hash of a branch in the repository at path.
func branchTip(t *testing.T, path, branch string) string {
	t.Helper()

	repo, err := gogit.PlainOpen(path)
	require.NoError(t, err)
	ref, err := repo.Reference(plumbing.NewBranchReferenceName(branch), true)
	require.NoError(t, err)
	return ref.Hash().String()
}
