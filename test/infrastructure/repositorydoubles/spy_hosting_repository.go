//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"strings"

	"github.com/rios0rios0/reposync/internal/domain/entities"
	"github.com/rios0rios0/reposync/internal/domain/repositories"
)

// UsersCall records a call that targets users or labels on a pull request.
type UsersCall struct {
	Repository string
	PR         int
	Values     []string
}

// SpyHostingRepository implements repositories.HostingRepository as a configurable spy.
type SpyHostingRepository struct {
	// --- identity ---
	ProviderName string
	Host         string // MatchesURL accepts remotes containing it; default github.com

	// --- CreatePullRequest ---
	CreatedPR   *entities.PullRequest
	ReturnNilPR bool
	CreatePRErr error
	PRInputs    []entities.PullRequestInput

	// --- ListPullRequestsByHead ---
	ExistingPRs []entities.PullRequest
	ListErr     error
	ListedHeads []string

	// --- RequestReviewers ---
	ReviewErr      error
	ReviewRequests []UsersCall

	// --- AddAssignees ---
	AssignErr   error
	Assignments []UsersCall

	// --- AddLabels ---
	LabelErr error
	Labels   []UsersCall
}

var _ repositories.HostingRepository = (*SpyHostingRepository)(nil)

func (p *SpyHostingRepository) Name() string { return p.ProviderName }

func (p *SpyHostingRepository) MatchesURL(rawURL string) bool {
	host := p.Host
	if host == "" {
		host = "github.com"
	}
	return strings.Contains(rawURL, host)
}

func (p *SpyHostingRepository) CreatePullRequest(
	_ context.Context, _ entities.Repository, input entities.PullRequestInput,
) (*entities.PullRequest, error) {
	p.PRInputs = append(p.PRInputs, input)
	if p.CreatePRErr != nil {
		return nil, p.CreatePRErr
	}
	if p.ReturnNilPR {
		return nil, nil //nolint:nilnil // ambiguous success
	}
	if p.CreatedPR != nil {
		return p.CreatedPR, nil
	}
	return &entities.PullRequest{
		ID:    len(p.PRInputs),
		Title: input.Title,
		URL:   "https://example.com/pr/1",
	}, nil
}

func (p *SpyHostingRepository) ListPullRequestsByHead(
	_ context.Context, _ entities.Repository, head string,
) ([]entities.PullRequest, error) {
	p.ListedHeads = append(p.ListedHeads, head)
	return p.ExistingPRs, p.ListErr
}

func (p *SpyHostingRepository) RequestReviewers(
	_ context.Context, repo entities.Repository, pr entities.PullRequest, reviewers []string,
) error {
	p.ReviewRequests = append(p.ReviewRequests, UsersCall{Repository: repo.ID, PR: pr.ID, Values: reviewers})
	return p.ReviewErr
}

func (p *SpyHostingRepository) AddAssignees(
	_ context.Context, repo entities.Repository, pr entities.PullRequest, assignees []string,
) error {
	p.Assignments = append(p.Assignments, UsersCall{Repository: repo.ID, PR: pr.ID, Values: assignees})
	return p.AssignErr
}

func (p *SpyHostingRepository) AddLabels(
	_ context.Context, repo entities.Repository, pr entities.PullRequest, labels []string,
) error {
	p.Labels = append(p.Labels, UsersCall{Repository: repo.ID, PR: pr.ID, Values: labels})
	return p.LabelErr
}
