package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// FleetConfiguration is the parsed configuration document: run defaults, the
// repositories of the fleet and the named groups selecting them.
type FleetConfiguration struct {
	Settings     RunSettings         `yaml:"settings"`
	Repositories RepositoryTable     `yaml:"repositories"`
	Groups       map[string][]string `yaml:"groups"`

	path string
}

// RepositoryAttributes are the raw attributes of one repository entry.
type RepositoryAttributes struct {
	Remote   string         `yaml:"remote"`
	Branch   string         `yaml:"branch"`
	Files    FileMappings   `yaml:"files"`
	Template map[string]any `yaml:"template"`
}

// NewFleetConfiguration reads and parses a configuration file, expanding
// environment variables in tokens and checking the document shape.
func NewFleetConfiguration(path string) (*FleetConfiguration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	fleet, err := ParseFleetConfiguration(data)
	if err != nil {
		return nil, err
	}
	fleet.path = path
	return fleet, nil
}

// ParseFleetConfiguration parses a configuration document held in memory.
func ParseFleetConfiguration(data []byte) (*FleetConfiguration, error) {
	var fleet FleetConfiguration
	if err := yaml.Unmarshal(data, &fleet); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	fleet.Settings.GitHubToken = resolveTokenPointer(fleet.Settings.GitHubToken)
	fleet.Settings.GitLabToken = resolveTokenPointer(fleet.Settings.GitLabToken)

	if err := validateFleet(&fleet); err != nil {
		return nil, err
	}
	return &fleet, nil
}

// Path returns the file the configuration was loaded from, if any.
func (f *FleetConfiguration) Path() string {
	return f.path
}

// Directory returns the directory holding the configuration file.
func (f *FleetConfiguration) Directory() string {
	if f.path == "" {
		return "."
	}
	return filepath.Dir(f.path)
}

// RepositoryNames returns every configured repository name in declaration order.
func (f *FleetConfiguration) RepositoryNames() []string {
	return append([]string(nil), f.Repositories.names...)
}

// Descriptor builds a fresh descriptor for the given name. Unknown names yield a
// descriptor that reports itself as not configured.
func (f *FleetConfiguration) Descriptor(name string) Descriptor {
	return NewDescriptor(name, f.Repositories.entries[name])
}

// Resolve expands the selected groups against this configuration.
func (f *FleetConfiguration) Resolve(selected []string) []string {
	return ResolveGroups(selected, f.Groups, f.RepositoryNames())
}

func validateFleet(fleet *FleetConfiguration) error {
	if len(fleet.Repositories.names) == 0 {
		return errors.New("at least one repository must be configured")
	}

	for group, members := range fleet.Groups {
		if group == AllGroup {
			return fmt.Errorf("groups.%s is reserved and cannot be redefined", AllGroup)
		}
		for _, member := range members {
			if _, ok := fleet.Repositories.entries[member]; !ok {
				logger.Warnf("Group %q references unknown repository %q", group, member)
			}
		}
	}

	return nil
}

// RepositoryTable keeps repository entries in the order they were declared.
type RepositoryTable struct {
	names   []string
	entries map[string]*RepositoryAttributes
}

// NewRepositoryTable builds a table from names and attributes, preserving order.
func NewRepositoryTable(names []string, entries map[string]*RepositoryAttributes) RepositoryTable {
	table := RepositoryTable{entries: make(map[string]*RepositoryAttributes, len(names))}
	for _, name := range names {
		table.names = append(table.names, name)
		table.entries[name] = entries[name]
	}
	return table
}

// UnmarshalYAML walks the mapping node so declaration order survives decoding.
func (t *RepositoryTable) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: repositories must be a mapping", node.Line)
	}

	t.names = make([]string, 0, len(node.Content)/2) //nolint:mnd // key/value pairs
	t.entries = make(map[string]*RepositoryAttributes, len(node.Content)/2)

	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		value := node.Content[i+1]
		if _, dup := t.entries[name]; dup {
			return fmt.Errorf("line %d: repository %q declared twice", node.Content[i].Line, name)
		}

		var attributes *RepositoryAttributes
		if value.ShortTag() != "!!null" {
			attributes = &RepositoryAttributes{}
			if err := value.Decode(attributes); err != nil {
				return fmt.Errorf("repository %q: %w", name, err)
			}
		}

		t.names = append(t.names, name)
		t.entries[name] = attributes
	}
	return nil
}

// FileMappings is the ordered target → source table of one repository.
type FileMappings []FileMapping

type fileMappingEntry struct {
	Source   string `yaml:"source"`
	Template *bool  `yaml:"template"`
}

// UnmarshalYAML accepts "target: source" pairs and "target: {source, template}" entries.
func (m *FileMappings) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: files must be a mapping of target to source", node.Line)
	}

	seen := make(map[string]struct{}, len(node.Content)/2) //nolint:mnd // key/value pairs
	mappings := make(FileMappings, 0, len(node.Content)/2) //nolint:mnd // key/value pairs

	for i := 0; i+1 < len(node.Content); i += 2 {
		target := node.Content[i].Value
		value := node.Content[i+1]
		if _, dup := seen[target]; dup {
			return fmt.Errorf("line %d: target %q mapped twice", node.Content[i].Line, target)
		}
		seen[target] = struct{}{}

		if value.Kind == yaml.ScalarNode {
			mappings = append(mappings, NewFileMapping(target, value.Value))
			continue
		}

		var entry fileMappingEntry
		if err := value.Decode(&entry); err != nil {
			return fmt.Errorf("target %q: %w", target, err)
		}
		if entry.Source == "" {
			return fmt.Errorf("line %d: target %q has no source", value.Line, target)
		}

		mapping := NewFileMapping(target, entry.Source)
		if entry.Template != nil {
			mapping.Kind = ProjectionCopy
			if *entry.Template {
				mapping.Kind = ProjectionTemplate
			}
		}
		mappings = append(mappings, mapping)
	}

	*m = mappings
	return nil
}
