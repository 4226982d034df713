package entities

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// RunSettings holds run options as they appear in the "settings" section or on
// the command line. Nil fields are unset and fall through to the next layer.
type RunSettings struct {
	DryRun            *bool     `yaml:"dry_run"`
	Verbose           *bool     `yaml:"verbose"`
	KeepChanges       *bool     `yaml:"keep_changes"`
	ForcePush         *bool     `yaml:"force_push"`
	AddAutoMergeLabel *bool     `yaml:"add_auto_merge_label"`
	RequestChecks     *bool     `yaml:"request_checks"`
	Groups            []string  `yaml:"groups"`
	Assignees         []string  `yaml:"assignees"`
	Reviewers         []string  `yaml:"reviewers"`
	CooldownCount     *int      `yaml:"cooldown_count"`
	CooldownTime      *Duration `yaml:"cooldown_time"`
	AutoMergeLabel    *string   `yaml:"auto_merge_label"`
	CommitMessage     *string   `yaml:"commit_message"`
	PRMessage         *string   `yaml:"pr_message"`
	PushToBranch      *string   `yaml:"push_to_branch"`
	MergeBranch       *string   `yaml:"merge_branch"`
	ReposPath         *string   `yaml:"repos_path"`
	MasterPath        *string   `yaml:"master_path"`
	GitHubToken       *string   `yaml:"github_token"`
	GitLabToken       *string   `yaml:"gitlab_token"`
}

// Duration accepts Go duration strings ("90s", "2m") or a bare number of seconds.
type Duration time.Duration

// UnmarshalYAML parses a duration scalar.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: duration must be a scalar", node.Line)
	}

	raw := strings.TrimSpace(node.Value)
	if seconds, err := strconv.Atoi(raw); err == nil {
		*d = Duration(time.Duration(seconds) * time.Second)
		return nil
	}

	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("line %d: invalid duration %q: %w", node.Line, raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or ErrConfigNotFound.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".reposync.yaml",
		".reposync.yml",
		"reposync.yaml",
		"reposync.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", fmt.Errorf("%w in default locations", ErrConfigNotFound)
}

func resolveTokenPointer(raw *string) *string {
	if raw == nil {
		return nil
	}
	resolved := resolveToken(*raw)
	return &resolved
}

// resolveToken expands environment variable references (${VAR}) and, if the
// resulting string is a path to an existing file, reads the token from the file.
func resolveToken(raw string) string {
	if raw == "" {
		return raw
	}

	resolved := envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})

	if info, statErr := os.Stat(resolved); statErr == nil && !info.IsDir() {
		data, readErr := os.ReadFile(resolved)
		if readErr != nil {
			logger.Warnf("Failed to read token file %q: %v", resolved, readErr)
			return resolved
		}
		logger.Debugf("Read token from file %q", resolved)
		return strings.TrimSpace(string(data))
	}

	return resolved
}
