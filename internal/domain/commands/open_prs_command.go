package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/reposync/internal/domain/entities"
	"github.com/rios0rios0/reposync/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/reposync/internal/infrastructure/repositories"
)

// OpenPRs is the interface for the open-prs command.
type OpenPRs interface {
	Execute(
		ctx context.Context,
		fleet *entities.FleetConfiguration,
		run *entities.RunConfiguration,
	) (*entities.RunReport, error)
}

// Sleeper blocks for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// SleepContext is the default Sleeper.
func SleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// OpenPRsCommand opens one pull request per repository from the push branch into
// the merge branch, then requests reviews and assigns it.
type OpenPRsCommand struct {
	fleet           *Fleet
	hostingRegistry *infraRepos.HostingRegistry
	sleep           Sleeper
}

// NewOpenPRsCommand creates a new OpenPRsCommand.
func NewOpenPRsCommand(fleet *Fleet, hostingRegistry *infraRepos.HostingRegistry) *OpenPRsCommand {
	return &OpenPRsCommand{
		fleet:           fleet,
		hostingRegistry: hostingRegistry,
		sleep:           SleepContext,
	}
}

// Execute opens the pull requests, cooling down every CooldownCount repositories
// to stay under the API rate limits.
func (it *OpenPRsCommand) Execute(
	ctx context.Context,
	fleet *entities.FleetConfiguration,
	run *entities.RunConfiguration,
) (*entities.RunReport, error) {
	title, err := run.PullRequestMessage()
	if err != nil {
		return nil, err
	}
	head, err := run.PushToBranch()
	if err != nil {
		return nil, err
	}
	base, err := run.MergeBranch()
	if err != nil {
		return nil, err
	}

	gate := NewDryRunGate(run.DryRun())
	input := entities.PullRequestInput{
		SourceBranch: head,
		TargetBranch: base,
		Title:        title,
		Description:  entities.PullRequestBody,
	}
	opened := 0

	return it.fleet.Each(ctx, "open-prs", fleet, run, true,
		func(ctx context.Context, descriptor entities.Descriptor) error {
			repo, repoErr := descriptor.HostingRepository()
			if repoErr != nil {
				return entities.Skip("%v", repoErr)
			}

			hosting, hostErr := it.hostingRegistry.ForRemote(descriptor.Remote(), run.TokenFor)
			if hostErr != nil {
				if errors.Is(hostErr, entities.ErrUnsupportedHost) {
					return entities.Skip("%v", hostErr)
				}
				return hostErr
			}

			executed, openErr := gate.Guard(
				fmt.Sprintf("open pull request %q from %s into %s on %s", title, head, base, repo.ID),
				func() error { return it.open(ctx, hosting, repo, input, run) },
			)
			if openErr != nil && !entities.IsSkipped(openErr) {
				return openErr
			}

			if executed {
				opened++
				if cooldownErr := it.cooldown(ctx, opened, run); cooldownErr != nil {
					return cooldownErr
				}
			}
			return openErr
		},
	)
}

func (it *OpenPRsCommand) open(
	ctx context.Context,
	hosting repositories.HostingRepository,
	repo entities.Repository,
	input entities.PullRequestInput,
	run *entities.RunConfiguration,
) error {
	pr, err := hosting.CreatePullRequest(ctx, repo, input)
	if err != nil {
		outcome := entities.ClassifyPullRequestError(err)
		switch {
		case !outcome.IsRecoverable():
			return fmt.Errorf("failed to open pull request on %s: %w", repo.ID, err)
		case outcome == entities.OutcomeAlreadyExists:
			logger.Warnf("[%s] Pull request from %s already exists", repo.ID, input.SourceBranch)
		default:
			return entities.Skip("cannot open pull request (%s): %v", outcome, err)
		}
	} else if pr != nil {
		logger.Infof("[%s] Created PR #%d: %s", repo.ID, pr.ID, pr.URL)
		if run.AddAutoMergeLabel() {
			if err = hosting.AddLabels(ctx, repo, *pr, []string{run.AutoMergeLabel()}); err != nil {
				return fmt.Errorf("failed to label PR #%d on %s: %w", pr.ID, repo.ID, err)
			}
		}
	}

	if pr == nil {
		if pr, err = it.lookup(ctx, hosting, repo, input.SourceBranch); err != nil {
			return err
		}
	}

	if reviewers := run.Reviewers(); len(reviewers) > 0 {
		if err = hosting.RequestReviewers(ctx, repo, *pr, reviewers); err != nil {
			if entities.ClassifyPullRequestError(err) == entities.OutcomeReviewFromAuthor {
				return entities.Skip("cannot request reviews on PR #%d: %v", pr.ID, err)
			}
			return fmt.Errorf("failed to request reviews on PR #%d of %s: %w", pr.ID, repo.ID, err)
		}
	}

	if assignees := run.Assignees(); len(assignees) > 0 {
		if err = hosting.AddAssignees(ctx, repo, *pr, assignees); err != nil {
			return fmt.Errorf("failed to assign PR #%d of %s: %w", pr.ID, repo.ID, err)
		}
	}
	return nil
}

// lookup finds the open pull request whose head is owner:branch.
func (it *OpenPRsCommand) lookup(
	ctx context.Context,
	hosting repositories.HostingRepository,
	repo entities.Repository,
	branch string,
) (*entities.PullRequest, error) {
	head := repo.Organization + ":" + branch
	prs, err := hosting.ListPullRequestsByHead(ctx, repo, head)
	if err != nil {
		return nil, fmt.Errorf("failed to list pull requests of %s: %w", repo.ID, err)
	}
	if len(prs) == 0 {
		return nil, entities.Skip("no open pull request found for %s", head)
	}
	logger.Infof("[%s] Using existing PR #%d: %s", repo.ID, prs[0].ID, prs[0].URL)
	return &prs[0], nil
}

func (it *OpenPRsCommand) cooldown(ctx context.Context, opened int, run *entities.RunConfiguration) error {
	every := run.CooldownCount()
	if every <= 0 || opened%every != 0 {
		return nil
	}
	logger.Infof("Opened %d pull requests, cooling down for %s", opened, run.CooldownTime())
	if err := it.sleep(ctx, run.CooldownTime()); err != nil {
		return fmt.Errorf("cooldown interrupted: %w", err)
	}
	return nil
}
