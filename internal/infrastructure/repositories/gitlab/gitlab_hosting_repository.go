package gitlab

import (
	"context"
	"fmt"
	"strings"
	"sync"

	gl "gitlab.com/gitlab-org/api/client-go"

	"github.com/rios0rios0/reposync/internal/domain/entities"
	"github.com/rios0rios0/reposync/internal/domain/repositories"
)

const (
	providerName = "gitlab"
	defaultHost  = "gitlab.com"
	stateOpened  = "opened"
)

// GitLabHostingRepository implements repositories.HostingRepository for GitLab
// merge requests on gitlab.com and self-managed instances. Reviewers, assignees
// and labels are applied through quick actions posted as merge request notes.
type GitLabHostingRepository struct {
	token   string
	baseURL string

	mu      sync.Mutex
	clients map[string]*gl.Client
}

// NewHostingRepository creates a new GitLab hosting repository with the given token.
func NewHostingRepository(token string) repositories.HostingRepository {
	return &GitLabHostingRepository{
		token:   token,
		clients: make(map[string]*gl.Client),
	}
}

// NewHostingRepositoryWithBaseURL sends every API call to baseURL instead of
// https://<remote host>/api/v4.
func NewHostingRepositoryWithBaseURL(token, baseURL string) *GitLabHostingRepository {
	return &GitLabHostingRepository{
		token:   token,
		baseURL: baseURL,
		clients: make(map[string]*gl.Client),
	}
}

func (p *GitLabHostingRepository) Name() string { return providerName }

func (p *GitLabHostingRepository) MatchesURL(rawURL string) bool {
	remote, err := entities.ParseRemote(rawURL)
	if err != nil {
		return strings.Contains(rawURL, "gitlab")
	}
	return strings.HasPrefix(remote.Host, "gitlab.") || strings.Contains(remote.Host, ".gitlab.")
}

func (p *GitLabHostingRepository) CreatePullRequest(
	ctx context.Context,
	repo entities.Repository,
	input entities.PullRequestInput,
) (*entities.PullRequest, error) {
	client, err := p.client(repo)
	if err != nil {
		return nil, err
	}

	pid := projectID(repo)
	sourceBranch := strings.TrimPrefix(input.SourceBranch, "refs/heads/")
	targetBranch := strings.TrimPrefix(input.TargetBranch, "refs/heads/")

	//nolint:exhaustruct // only the fields reposync sets
	mr, _, err := client.MergeRequests.CreateMergeRequest(
		pid,
		&gl.CreateMergeRequestOptions{
			Title:              gl.Ptr(input.Title),
			Description:        gl.Ptr(input.Description),
			SourceBranch:       gl.Ptr(sourceBranch),
			TargetBranch:       gl.Ptr(targetBranch),
			RemoveSourceBranch: gl.Ptr(true),
		},
		gl.WithContext(ctx),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create merge request: %w", err)
	}
	if mr == nil {
		return nil, nil //nolint:nilnil // accepted without a body, caller looks it up
	}

	return &entities.PullRequest{
		ID:     int(mr.IID),
		Title:  mr.Title,
		URL:    mr.WebURL,
		Status: mr.State,
	}, nil
}

// ListPullRequestsByHead accepts "owner:branch" like GitHub does; only the
// branch part is relevant to GitLab.
func (p *GitLabHostingRepository) ListPullRequestsByHead(
	ctx context.Context,
	repo entities.Repository,
	head string,
) ([]entities.PullRequest, error) {
	client, err := p.client(repo)
	if err != nil {
		return nil, err
	}

	pid := projectID(repo)
	branch := head
	if _, after, found := strings.Cut(head, ":"); found {
		branch = after
	}

	//nolint:exhaustruct // filter by source branch and state
	mrs, _, err := client.MergeRequests.ListProjectMergeRequests(
		pid,
		&gl.ListProjectMergeRequestsOptions{
			SourceBranch: gl.Ptr(branch),
			State:        gl.Ptr(stateOpened),
		},
		gl.WithContext(ctx),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list merge requests: %w", err)
	}

	result := make([]entities.PullRequest, 0, len(mrs))
	for _, mr := range mrs {
		result = append(result, entities.PullRequest{
			ID:     int(mr.IID),
			Title:  mr.Title,
			URL:    mr.WebURL,
			Status: mr.State,
		})
	}
	return result, nil
}

func (p *GitLabHostingRepository) RequestReviewers(
	ctx context.Context,
	repo entities.Repository,
	pr entities.PullRequest,
	reviewers []string,
) error {
	if err := p.quickAction(ctx, repo, pr, "/assign_reviewer", mentions(reviewers)); err != nil {
		return fmt.Errorf("failed to request reviewers: %w", err)
	}
	return nil
}

func (p *GitLabHostingRepository) AddAssignees(
	ctx context.Context,
	repo entities.Repository,
	pr entities.PullRequest,
	assignees []string,
) error {
	if err := p.quickAction(ctx, repo, pr, "/assign", mentions(assignees)); err != nil {
		return fmt.Errorf("failed to add assignees: %w", err)
	}
	return nil
}

func (p *GitLabHostingRepository) AddLabels(
	ctx context.Context,
	repo entities.Repository,
	pr entities.PullRequest,
	labels []string,
) error {
	quoted := make([]string, 0, len(labels))
	for _, label := range labels {
		quoted = append(quoted, fmt.Sprintf("~%q", label))
	}
	if err := p.quickAction(ctx, repo, pr, "/label", quoted); err != nil {
		return fmt.Errorf("failed to add labels: %w", err)
	}
	return nil
}

func (p *GitLabHostingRepository) quickAction(
	ctx context.Context,
	repo entities.Repository,
	pr entities.PullRequest,
	action string,
	arguments []string,
) error {
	client, err := p.client(repo)
	if err != nil {
		return err
	}

	//nolint:exhaustruct // body only
	_, _, err = client.Notes.CreateMergeRequestNote(
		projectID(repo),
		int64(pr.ID),
		&gl.CreateMergeRequestNoteOptions{Body: gl.Ptr(action + " " + strings.Join(arguments, " "))},
		gl.WithContext(ctx),
	)
	return err
}

// client returns the API client of the repository host, creating it on first use.
func (p *GitLabHostingRepository) client(repo entities.Repository) (*gl.Client, error) {
	host := repo.ProviderName
	if host == "" || host == providerName {
		host = defaultHost
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if client, ok := p.clients[host]; ok {
		return client, nil
	}

	baseURL := p.baseURL
	if baseURL == "" {
		baseURL = "https://" + host + "/api/v4"
	}
	client, err := gl.NewClient(p.token, gl.WithBaseURL(baseURL))
	if err != nil {
		return nil, fmt.Errorf("failed to create GitLab client for %s: %w", host, err)
	}
	p.clients[host] = client
	return client, nil
}

func projectID(repo entities.Repository) string {
	return repo.Organization + "/" + repo.Name
}

func mentions(users []string) []string {
	result := make([]string, 0, len(users))
	for _, user := range users {
		result = append(result, "@"+strings.TrimPrefix(user, "@"))
	}
	return result
}
