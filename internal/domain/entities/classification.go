package entities

import (
	"regexp"
)

// PullRequestOutcome classifies a hosting API failure raised while opening a pull
// request or requesting reviews on it.
type PullRequestOutcome int

const (
	// OutcomeFatal aborts the whole run.
	OutcomeFatal PullRequestOutcome = iota
	// OutcomeAlreadyExists means an open pull request for the same head is already there.
	OutcomeAlreadyExists
	// OutcomeHeadMissing means the head branch was never pushed.
	OutcomeHeadMissing
	// OutcomeNoCommits means head and base point to the same history.
	OutcomeNoCommits
	// OutcomeArchived means the repository is read-only.
	OutcomeArchived
	// OutcomeReviewFromAuthor means a reviewer is also the author of the pull request.
	OutcomeReviewFromAuthor
)

func (o PullRequestOutcome) String() string {
	switch o {
	case OutcomeAlreadyExists:
		return "already exists"
	case OutcomeHeadMissing:
		return "head branch missing"
	case OutcomeNoCommits:
		return "no commits"
	case OutcomeArchived:
		return "repository archived"
	case OutcomeReviewFromAuthor:
		return "review requested from author"
	case OutcomeFatal:
		return "fatal"
	}
	return "unknown"
}

// IsRecoverable reports whether the repository can be skipped with a warning.
func (o PullRequestOutcome) IsRecoverable() bool {
	return o != OutcomeFatal
}

type outcomeRule struct {
	outcome PullRequestOutcome
	pattern *regexp.Regexp
}

// Phrases returned by the GitHub and GitLab APIs.
//
//nolint:gochecknoglobals // fixed phrase table
var outcomeRules = []outcomeRule{
	{OutcomeAlreadyExists, regexp.MustCompile(`(?i)a pull request already exists`)},
	{OutcomeAlreadyExists, regexp.MustCompile(`(?i)another open merge request already exists`)},
	{OutcomeReviewFromAuthor, regexp.MustCompile(`(?i)review cannot be requested from pull request author`)},
	{OutcomeNoCommits, regexp.MustCompile(`(?i)no commits between`)},
	{OutcomeArchived, regexp.MustCompile(`(?i)archived so is read-only`)},
	{OutcomeArchived, regexp.MustCompile(`(?i)project is archived`)},
	{OutcomeHeadMissing, regexp.MustCompile(`(?i)field:\s*head\s+code:\s*invalid`)},
	{OutcomeHeadMissing, regexp.MustCompile(`(?i)source branch .*does not exist`)},
}

// ClassifyPullRequestError maps an API error onto a pull request outcome. Errors
// that match no known phrase, nil included, are fatal.
func ClassifyPullRequestError(err error) PullRequestOutcome {
	if err == nil {
		return OutcomeFatal
	}
	message := err.Error()
	for _, rule := range outcomeRules {
		if rule.pattern.MatchString(message) {
			return rule.outcome
		}
	}
	return OutcomeFatal
}
