package repositories

import (
	"fmt"
	"sort"

	"github.com/rios0rios0/reposync/internal/domain/entities"
	domainRepos "github.com/rios0rios0/reposync/internal/domain/repositories"
)

// HostingFactory is a constructor function that creates a HostingRepository given an auth token.
type HostingFactory func(token string) domainRepos.HostingRepository

// TokenSource returns the API token of a provider.
type TokenSource func(provider string) (string, error)

// HostingRegistry manages all registered hosting service implementations.
type HostingRegistry struct {
	providers map[string]HostingFactory
}

// NewHostingRegistry creates an empty hosting registry.
func NewHostingRegistry() *HostingRegistry {
	return &HostingRegistry{
		providers: make(map[string]HostingFactory),
	}
}

// Register adds a hosting factory under the given name (e.g. "github").
func (r *HostingRegistry) Register(name string, factory HostingFactory) {
	r.providers[name] = factory
}

// Get returns a configured hosting instance for the given name and token.
func (r *HostingRegistry) Get(name, token string) (domainRepos.HostingRepository, error) {
	factory, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", entities.ErrUnsupportedHost, name)
	}
	return factory(token), nil
}

// ForRemote picks the implementation whose MatchesURL accepts remote and builds it
// with the token of that provider.
func (r *HostingRegistry) ForRemote(remote string, tokens TokenSource) (domainRepos.HostingRepository, error) {
	for _, name := range r.Names() {
		if !r.providers[name]("").MatchesURL(remote) {
			continue
		}
		token, err := tokens(name)
		if err != nil {
			return nil, err
		}
		return r.Get(name, token)
	}
	return nil, fmt.Errorf("%w: %s", entities.ErrUnsupportedHost, remote)
}

// Names returns the registered provider names in alphabetical order.
func (r *HostingRegistry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
