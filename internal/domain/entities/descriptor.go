package entities

import (
	"fmt"
	"maps"
	"net/url"
	"strings"
)

// Descriptor describes one fleet member. It is built fresh from the fleet
// configuration on every lookup and never mutated afterwards.
type Descriptor struct {
	name     string
	remote   string
	branch   string
	files    []FileMapping
	bindings map[string]any
}

// NewDescriptor materializes a descriptor from raw repository attributes.
// Nil attributes produce a descriptor that reports itself as not configured.
func NewDescriptor(name string, attributes *RepositoryAttributes) Descriptor {
	descriptor := Descriptor{name: name, bindings: map[string]any{}}
	if attributes == nil {
		return descriptor
	}

	descriptor.remote = attributes.Remote
	descriptor.branch = attributes.Branch
	descriptor.files = append([]FileMapping(nil), attributes.Files...)
	if attributes.Template != nil {
		descriptor.bindings = maps.Clone(attributes.Template)
	}
	return descriptor
}

func (d Descriptor) Name() string   { return d.name }
func (d Descriptor) Remote() string { return d.remote }
func (d Descriptor) Branch() string { return d.branch }

// Files returns the ordered file mappings.
func (d Descriptor) Files() []FileMapping {
	return append([]FileMapping(nil), d.files...)
}

// TemplateBindings returns the values available to rendered files.
func (d Descriptor) TemplateBindings() map[string]any {
	return maps.Clone(d.bindings)
}

// IsConfigured is false when neither remote nor branch is set.
func (d Descriptor) IsConfigured() bool {
	return d.remote != "" || d.branch != ""
}

// HostingRepository converts the descriptor into the gitforge repository shape.
func (d Descriptor) HostingRepository() (Repository, error) {
	remote, err := ParseRemote(d.remote)
	if err != nil {
		return Repository{}, err
	}
	return Repository{
		ID:            remote.Slug(),
		Name:          remote.Name,
		Organization:  remote.Owner,
		DefaultBranch: "refs/heads/" + d.branch,
		RemoteURL:     d.remote,
		ProviderName:  remote.Host,
	}, nil
}

// Remote holds the parsed components of a git remote URL.
type Remote struct {
	Host  string
	Owner string // may contain "/" for nested GitLab groups
	Name  string
}

// Slug returns "owner/name".
func (r Remote) Slug() string {
	return r.Owner + "/" + r.Name
}

// ParseRemote extracts host, owner and repository name from HTTPS, ssh:// and
// scp-like (git@host:org/repo) remotes.
func ParseRemote(rawURL string) (Remote, error) {
	cleaned := strings.TrimSuffix(strings.TrimSpace(rawURL), "/")
	cleaned = strings.TrimSuffix(cleaned, ".git")
	if cleaned == "" {
		return Remote{}, fmt.Errorf("%w: empty remote", ErrInvalidRemote)
	}

	var host, pathPart string
	switch {
	case strings.Contains(cleaned, "://"):
		parsed, err := url.Parse(cleaned)
		if err != nil {
			return Remote{}, fmt.Errorf("%w: %s: %w", ErrInvalidRemote, rawURL, err)
		}
		host = parsed.Hostname()
		pathPart = parsed.Path
	case strings.Contains(cleaned, "@") && strings.Contains(cleaned, ":"):
		_, afterAt, _ := strings.Cut(cleaned, "@")
		host, pathPart, _ = strings.Cut(afterAt, ":")
	default:
		host, pathPart, _ = strings.Cut(cleaned, "/")
	}

	segments := strings.Split(strings.Trim(pathPart, "/"), "/")
	if host == "" || len(segments) < 2 { //nolint:mnd // need owner + repo
		return Remote{}, fmt.Errorf("%w: cannot extract org/repo from %q", ErrInvalidRemote, rawURL)
	}

	return Remote{
		Host:  host,
		Owner: strings.Join(segments[:len(segments)-1], "/"),
		Name:  segments[len(segments)-1],
	}, nil
}
