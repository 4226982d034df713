package github

import (
	"context"
	"fmt"
	"strings"

	gh "github.com/google/go-github/v66/github"

	"github.com/rios0rios0/reposync/internal/domain/entities"
	"github.com/rios0rios0/reposync/internal/domain/repositories"
)

const (
	providerName = "github"
	perPage      = 100
)

// GitHubHostingRepository implements repositories.HostingRepository for GitHub.
type GitHubHostingRepository struct {
	token  string
	client *gh.Client
}

// NewHostingRepository creates a new GitHub hosting repository with the given token.
func NewHostingRepository(token string) repositories.HostingRepository {
	return NewHostingRepositoryWithClient(token, gh.NewClient(nil).WithAuthToken(token))
}

// NewHostingRepositoryWithClient uses a preconfigured client, e.g. one pointing
// at a GitHub Enterprise or test server.
func NewHostingRepositoryWithClient(token string, client *gh.Client) *GitHubHostingRepository {
	return &GitHubHostingRepository{
		token:  token,
		client: client,
	}
}

func (p *GitHubHostingRepository) Name() string { return providerName }

func (p *GitHubHostingRepository) MatchesURL(rawURL string) bool {
	return strings.Contains(rawURL, "github.com")
}

func (p *GitHubHostingRepository) CreatePullRequest(
	ctx context.Context,
	repo entities.Repository,
	input entities.PullRequestInput,
) (*entities.PullRequest, error) {
	sourceBranch := strings.TrimPrefix(input.SourceBranch, "refs/heads/")
	targetBranch := strings.TrimPrefix(input.TargetBranch, "refs/heads/")

	maintainerCanModify := true
	pr, _, err := p.client.PullRequests.Create(
		ctx, repo.Organization, repo.Name,
		&gh.NewPullRequest{
			Title:               &input.Title,
			Head:                &sourceBranch,
			Base:                &targetBranch,
			Body:                &input.Description,
			MaintainerCanModify: &maintainerCanModify,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create pull request: %w", err)
	}
	if pr == nil {
		return nil, nil //nolint:nilnil // accepted without a body, caller looks it up
	}

	return toPullRequest(pr), nil
}

func (p *GitHubHostingRepository) ListPullRequestsByHead(
	ctx context.Context,
	repo entities.Repository,
	head string,
) ([]entities.PullRequest, error) {
	prs, _, err := p.client.PullRequests.List(
		ctx, repo.Organization, repo.Name,
		&gh.PullRequestListOptions{
			State:       "open",
			Head:        head,
			ListOptions: gh.ListOptions{PerPage: perPage},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list pull requests: %w", err)
	}

	result := make([]entities.PullRequest, 0, len(prs))
	for _, pr := range prs {
		result = append(result, *toPullRequest(pr))
	}
	return result, nil
}

func (p *GitHubHostingRepository) RequestReviewers(
	ctx context.Context,
	repo entities.Repository,
	pr entities.PullRequest,
	reviewers []string,
) error {
	//nolint:exhaustruct // user reviewers only
	_, _, err := p.client.PullRequests.RequestReviewers(
		ctx, repo.Organization, repo.Name, pr.ID,
		gh.ReviewersRequest{Reviewers: reviewers},
	)
	if err != nil {
		return fmt.Errorf("failed to request reviewers: %w", err)
	}
	return nil
}

func (p *GitHubHostingRepository) AddAssignees(
	ctx context.Context,
	repo entities.Repository,
	pr entities.PullRequest,
	assignees []string,
) error {
	if _, _, err := p.client.Issues.AddAssignees(
		ctx, repo.Organization, repo.Name, pr.ID, assignees,
	); err != nil {
		return fmt.Errorf("failed to add assignees: %w", err)
	}
	return nil
}

func (p *GitHubHostingRepository) AddLabels(
	ctx context.Context,
	repo entities.Repository,
	pr entities.PullRequest,
	labels []string,
) error {
	if _, _, err := p.client.Issues.AddLabelsToIssue(
		ctx, repo.Organization, repo.Name, pr.ID, labels,
	); err != nil {
		return fmt.Errorf("failed to add labels: %w", err)
	}
	return nil
}

func toPullRequest(pr *gh.PullRequest) *entities.PullRequest {
	return &entities.PullRequest{
		ID:     pr.GetNumber(),
		Title:  pr.GetTitle(),
		URL:    pr.GetHTMLURL(),
		Status: pr.GetState(),
	}
}
