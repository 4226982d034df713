//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/reposync/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// FleetBuilder helps create fleet configurations with a fluent interface.
type FleetBuilder struct {
	*testkit.BaseBuilder
	settings entities.RunSettings
	names    []string
	entries  map[string]*entities.RepositoryAttributes
	groups   map[string][]string
}

// NewFleetBuilder creates a new fleet builder with no repositories.
func NewFleetBuilder() *FleetBuilder {
	return &FleetBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		entries:     map[string]*entities.RepositoryAttributes{},
		groups:      map[string][]string{},
	}
}

// WithRepository adds a GitHub repository named after its slug, with the given
// target -> source file pairs.
func (b *FleetBuilder) WithRepository(name, branch string, files ...string) *FleetBuilder {
	attributes := &entities.RepositoryAttributes{
		Remote: "https://github.com/acme/" + name,
		Branch: branch,
	}
	for i := 0; i+1 < len(files); i += 2 {
		attributes.Files = append(attributes.Files, entities.NewFileMapping(files[i], files[i+1]))
	}
	return b.WithAttributes(name, attributes)
}

// WithAttributes adds a repository with raw attributes; nil leaves it unconfigured.
func (b *FleetBuilder) WithAttributes(name string, attributes *entities.RepositoryAttributes) *FleetBuilder {
	if _, ok := b.entries[name]; !ok {
		b.names = append(b.names, name)
	}
	b.entries[name] = attributes
	return b
}

// WithGroup declares a named group.
func (b *FleetBuilder) WithGroup(name string, members ...string) *FleetBuilder {
	b.groups[name] = members
	return b
}

// WithSettings sets the settings section.
func (b *FleetBuilder) WithSettings(settings entities.RunSettings) *FleetBuilder {
	b.settings = settings
	return b
}

// Build creates the fleet (satisfies testkit.Builder interface).
func (b *FleetBuilder) Build() interface{} {
	return b.BuildFleet()
}

// BuildFleet creates the fleet with a concrete return type.
func (b *FleetBuilder) BuildFleet() *entities.FleetConfiguration {
	groups := make(map[string][]string, len(b.groups))
	for name, members := range b.groups {
		groups[name] = append([]string(nil), members...)
	}
	return &entities.FleetConfiguration{
		Settings:     b.settings,
		Repositories: entities.NewRepositoryTable(b.names, b.entries),
		Groups:       groups,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *FleetBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.settings = entities.RunSettings{}
	b.names = nil
	b.entries = map[string]*entities.RepositoryAttributes{}
	b.groups = map[string][]string{}
	return b
}

// Clone creates a deep copy of the FleetBuilder.
func (b *FleetBuilder) Clone() testkit.Builder {
	entries := make(map[string]*entities.RepositoryAttributes, len(b.entries))
	for name, attributes := range b.entries {
		entries[name] = attributes
	}
	groups := make(map[string][]string, len(b.groups))
	for name, members := range b.groups {
		groups[name] = append([]string(nil), members...)
	}
	return &FleetBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		settings:    b.settings,
		names:       append([]string(nil), b.names...),
		entries:     entries,
		groups:      groups,
	}
}
