package entities

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	defaultCooldownCount  = 20
	defaultCooldownTime   = 60 * time.Second
	defaultAutoMergeLabel = "automerge"
	defaultReposPath      = "repositories"

	requestChecksKey     = "request-checks:"
	requestChecksTrailer = "request-checks: true"
)

// Hosting provider names used to look up API tokens.
const (
	ProviderGitHub = "github"
	ProviderGitLab = "gitlab"
)

// RunConfiguration is the immutable set of options for one invocation. It is
// built once from defaults, the configuration settings and the operator overrides.
type RunConfiguration struct {
	dryRun            bool
	verbose           bool
	keepChanges       bool
	forcePush         bool
	addAutoMergeLabel bool
	requestChecks     bool
	groups            []string
	assignees         []string
	reviewers         []string
	cooldownCount     int
	cooldownTime      time.Duration
	autoMergeLabel    string
	commitMessage     string
	prMessage         string
	pushToBranch      string
	mergeBranch       string
	reposPath         string
	masterPath        string
	tokens            map[string]string
}

// NewRunConfiguration merges defaults < settings < overrides. Relative repository
// and master paths are anchored at baseDir (the configuration file directory).
// Tokens absent from both layers are read from the environment once, here.
func NewRunConfiguration(settings, overrides RunSettings, baseDir string) *RunConfiguration {
	run := &RunConfiguration{
		groups:         []string{AllGroup},
		cooldownCount:  defaultCooldownCount,
		cooldownTime:   defaultCooldownTime,
		autoMergeLabel: defaultAutoMergeLabel,
		reposPath:      defaultReposPath,
		masterPath:     ".",
	}

	for _, layer := range []RunSettings{settings, overrides} {
		run.apply(layer)
	}

	run.reposPath = anchor(baseDir, run.reposPath)
	run.masterPath = anchor(baseDir, run.masterPath)

	run.tokens = map[string]string{
		ProviderGitHub: firstNonEmpty(
			deref(overrides.GitHubToken), deref(settings.GitHubToken),
			os.Getenv("GITHUB_TOKEN"), os.Getenv("GH_TOKEN"),
		),
		ProviderGitLab: firstNonEmpty(
			deref(overrides.GitLabToken), deref(settings.GitLabToken),
			os.Getenv("GITLAB_TOKEN"), os.Getenv("GL_TOKEN"),
		),
	}
	return run
}

func (r *RunConfiguration) apply(layer RunSettings) {
	setBool(&r.dryRun, layer.DryRun)
	setBool(&r.verbose, layer.Verbose)
	setBool(&r.keepChanges, layer.KeepChanges)
	setBool(&r.forcePush, layer.ForcePush)
	setBool(&r.addAutoMergeLabel, layer.AddAutoMergeLabel)
	setBool(&r.requestChecks, layer.RequestChecks)
	setSlice(&r.groups, layer.Groups)
	setSlice(&r.assignees, layer.Assignees)
	setSlice(&r.reviewers, layer.Reviewers)
	if layer.CooldownCount != nil {
		r.cooldownCount = *layer.CooldownCount
	}
	if layer.CooldownTime != nil {
		r.cooldownTime = time.Duration(*layer.CooldownTime)
	}
	setString(&r.autoMergeLabel, layer.AutoMergeLabel)
	setString(&r.commitMessage, layer.CommitMessage)
	setString(&r.prMessage, layer.PRMessage)
	setString(&r.pushToBranch, layer.PushToBranch)
	setString(&r.mergeBranch, layer.MergeBranch)
	setString(&r.reposPath, layer.ReposPath)
	setString(&r.masterPath, layer.MasterPath)
}

func (r *RunConfiguration) DryRun() bool            { return r.dryRun }
func (r *RunConfiguration) Verbose() bool           { return r.verbose }
func (r *RunConfiguration) KeepChanges() bool       { return r.keepChanges }
func (r *RunConfiguration) ForcePush() bool         { return r.forcePush }
func (r *RunConfiguration) AddAutoMergeLabel() bool { return r.addAutoMergeLabel }
func (r *RunConfiguration) RequestChecks() bool     { return r.requestChecks }
func (r *RunConfiguration) Groups() []string        { return append([]string(nil), r.groups...) }
func (r *RunConfiguration) Assignees() []string     { return append([]string(nil), r.assignees...) }
func (r *RunConfiguration) Reviewers() []string     { return append([]string(nil), r.reviewers...) }
func (r *RunConfiguration) CooldownCount() int      { return r.cooldownCount }
func (r *RunConfiguration) CooldownTime() time.Duration {
	return r.cooldownTime
}
func (r *RunConfiguration) AutoMergeLabel() string { return r.autoMergeLabel }
func (r *RunConfiguration) ReposPath() string      { return r.reposPath }
func (r *RunConfiguration) MasterPath() string     { return r.masterPath }

// RepositoryDir returns the working directory of the named repository.
func (r *RunConfiguration) RepositoryDir(name string) string {
	return filepath.Join(r.reposPath, name)
}

// CommitMessage returns the commit message, with the request-checks trailer
// appended when enabled and not already present.
func (r *RunConfiguration) CommitMessage() (string, error) {
	if r.commitMessage == "" {
		return "", missing("commit message", "-m/--message")
	}
	if r.requestChecks {
		return WithRequestChecksTrailer(r.commitMessage), nil
	}
	return r.commitMessage, nil
}

// PullRequestMessage returns the pull request title.
func (r *RunConfiguration) PullRequestMessage() (string, error) {
	if r.prMessage == "" {
		return "", missing("pull request message", "-m/--message")
	}
	return r.prMessage, nil
}

// PushToBranch returns the branch pushed to and used as pull request head.
func (r *RunConfiguration) PushToBranch() (string, error) {
	if r.pushToBranch == "" {
		return "", missing("push branch", "-b/--push-branch")
	}
	return r.pushToBranch, nil
}

// MergeBranch returns the branch pull requests are opened against.
func (r *RunConfiguration) MergeBranch() (string, error) {
	if r.mergeBranch == "" {
		return "", missing("merge branch", "--merge-branch")
	}
	return r.mergeBranch, nil
}

// TokenFor returns the API token of a hosting provider. A missing token is only
// an error once an API operation asks for it.
func (r *RunConfiguration) TokenFor(provider string) (string, error) {
	token := r.tokens[provider]
	if token == "" {
		return "", fmt.Errorf(
			"%w for %s: set --%s-token, settings.%s_token or the %s environment variable",
			ErrMissingToken, provider, provider, provider, strings.ToUpper(provider)+"_TOKEN",
		)
	}
	return token, nil
}

// GitAuthFor returns credentials for git transport against the given remote.
// HTTPS remotes on a known host use the provider token when one is available;
// everything else relies on ambient credentials (ssh-agent, credential helpers).
func (r *RunConfiguration) GitAuthFor(remote string) GitAuth {
	if !strings.HasPrefix(remote, "https://") {
		return GitAuth{}
	}
	parsed, err := ParseRemote(remote)
	if err != nil {
		return GitAuth{}
	}

	switch {
	case strings.Contains(parsed.Host, ProviderGitHub):
		if token := r.tokens[ProviderGitHub]; token != "" {
			return GitAuth{Username: "x-access-token", Password: token}
		}
	case strings.Contains(parsed.Host, ProviderGitLab):
		if token := r.tokens[ProviderGitLab]; token != "" {
			return GitAuth{Username: "oauth2", Password: token}
		}
	}
	return GitAuth{}
}

// GitAuth carries HTTP basic credentials for git transport. The zero value means
// "use ambient credentials".
type GitAuth struct {
	Username string
	Password string
}

// IsZero reports whether no credentials are set.
func (a GitAuth) IsZero() bool {
	return a.Username == "" && a.Password == ""
}

// WithRequestChecksTrailer appends "request-checks: true" unless the message
// already carries a request-checks line.
func WithRequestChecksTrailer(message string) string {
	for _, line := range strings.Split(message, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), requestChecksKey) {
			return message
		}
	}
	return strings.TrimRight(message, "\n") + "\n\n" + requestChecksTrailer
}

func missing(what, flag string) error {
	return fmt.Errorf("%w: %s (%s)", ErrMissingParameter, what, flag)
}

func anchor(baseDir, path string) string {
	if path == "" || filepath.IsAbs(path) || baseDir == "" {
		return path
	}
	return filepath.Join(baseDir, path)
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setSlice(dst *[]string, src []string) {
	if src != nil {
		*dst = append([]string(nil), src...)
	}
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
