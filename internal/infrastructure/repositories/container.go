package repositories

import (
	"go.uber.org/dig"

	domainRepos "github.com/rios0rios0/reposync/internal/domain/repositories"
	gitRepo "github.com/rios0rios0/reposync/internal/infrastructure/repositories/git"
	ghRepo "github.com/rios0rios0/reposync/internal/infrastructure/repositories/github"
	glRepo "github.com/rios0rios0/reposync/internal/infrastructure/repositories/gitlab"
	"github.com/rios0rios0/reposync/internal/infrastructure/repositories/projection"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register hosting registry with all hosting factories
	if err := container.Provide(func() *HostingRegistry {
		reg := NewHostingRegistry()
		reg.Register("github", ghRepo.NewHostingRepository)
		reg.Register("gitlab", glRepo.NewHostingRepository)
		return reg
	}); err != nil {
		return err
	}

	// Register local capabilities
	if err := container.Provide(gitRepo.NewGitRepository); err != nil {
		return err
	}
	if err := container.Provide(projection.NewFileProjector); err != nil {
		return err
	}

	// Bind interfaces to implementations
	if err := container.Provide(func(impl *gitRepo.GitRepository) domainRepos.GitRepository {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *projection.FileProjector) domainRepos.FileProjector {
		return impl
	}); err != nil {
		return err
	}

	return nil
}
