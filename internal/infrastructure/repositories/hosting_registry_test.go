//go:build unit

package repositories_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/reposync/internal/domain/entities"
	domainRepos "github.com/rios0rios0/reposync/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/reposync/internal/infrastructure/repositories"
	doubles "github.com/rios0rios0/reposync/test/infrastructure/repositorydoubles"
)

// newRegistry registers one spy per provider and records the tokens they were built with.
func newRegistry(tokens *[]string) *infraRepos.HostingRegistry {
	registry := infraRepos.NewHostingRegistry()
	for name, host := range map[string]string{"github": "github.com", "gitlab": "gitlab.com"} {
		registry.Register(name, func(token string) domainRepos.HostingRepository {
			*tokens = append(*tokens, token)
			return &doubles.SpyHostingRepository{ProviderName: name, Host: host}
		})
	}
	return registry
}

func TestHostingRegistry(t *testing.T) {
	t.Parallel()

	t.Run("should list providers alphabetically", func(t *testing.T) {
		t.Parallel()

		// given
		registry := newRegistry(&[]string{})

		// when
		names := registry.Names()

		// then
		assert.Equal(t, []string{"github", "gitlab"}, names)
	})

	t.Run("should reject unknown provider names", func(t *testing.T) {
		t.Parallel()

		// given
		registry := newRegistry(&[]string{})

		// when
		_, err := registry.Get("bitbucket", "token")

		// then
		require.ErrorIs(t, err, entities.ErrUnsupportedHost)
	})

	t.Run("should build the provider matching the remote with its own token", func(t *testing.T) {
		t.Parallel()

		// given
		var built []string
		registry := newRegistry(&built)
		tokens := func(provider string) (string, error) { return provider + "-token", nil }

		// when
		hosting, err := registry.ForRemote("git@gitlab.com:acme/infra/cli.git", tokens)

		// then
		require.NoError(t, err)
		assert.Equal(t, "gitlab", hosting.Name())
		assert.Equal(t, "gitlab-token", built[len(built)-1])
	})

	t.Run("should surface a missing token", func(t *testing.T) {
		t.Parallel()

		// given
		registry := newRegistry(&[]string{})
		tokens := func(string) (string, error) { return "", entities.ErrMissingToken }

		// when
		_, err := registry.ForRemote("https://github.com/acme/cli", tokens)

		// then
		require.ErrorIs(t, err, entities.ErrMissingToken)
	})

	t.Run("should report unsupported remotes", func(t *testing.T) {
		t.Parallel()

		// given
		registry := newRegistry(&[]string{})
		tokens := func(string) (string, error) { return "", errors.New("not called") }

		// when
		_, err := registry.ForRemote("https://bitbucket.org/acme/cli", tokens)

		// then
		require.ErrorIs(t, err, entities.ErrUnsupportedHost)
	})
}
