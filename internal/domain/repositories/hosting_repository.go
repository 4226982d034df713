package repositories

import (
	"context"

	"github.com/rios0rios0/reposync/internal/domain/entities"
)

// HostingRepository is the hosting-service API used by the pull request lifecycle.
type HostingRepository interface {
	// Name returns the provider identifier (e.g. "github", "gitlab").
	Name() string

	// MatchesURL returns true if the given remote URL belongs to this provider.
	MatchesURL(rawURL string) bool

	// CreatePullRequest opens a pull request. A nil pull request with a nil error
	// means the service accepted the call without returning the created entity.
	CreatePullRequest(
		ctx context.Context,
		repo entities.Repository,
		input entities.PullRequestInput,
	) (*entities.PullRequest, error)

	// ListPullRequestsByHead lists open pull requests whose head is owner:branch.
	ListPullRequestsByHead(
		ctx context.Context,
		repo entities.Repository,
		head string,
	) ([]entities.PullRequest, error)

	// RequestReviewers asks the given users to review a pull request.
	RequestReviewers(
		ctx context.Context,
		repo entities.Repository,
		pr entities.PullRequest,
		reviewers []string,
	) error

	// AddAssignees assigns users to a pull request.
	AddAssignees(
		ctx context.Context,
		repo entities.Repository,
		pr entities.PullRequest,
		assignees []string,
	) error

	// AddLabels attaches labels to a pull request.
	AddLabels(
		ctx context.Context,
		repo entities.Repository,
		pr entities.PullRequest,
		labels []string,
	) error
}
