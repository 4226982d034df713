package controllers

import (
	"context"
	"path/filepath"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/reposync/internal/domain/entities"
)

// Persistent flag names shared by every subcommand.
const (
	flagConfig      = "config"
	flagDryRun      = "dry-run"
	flagVerbose     = "verbose"
	flagGroups      = "groups"
	flagKeepChanges = "keep-changes"
	flagReposPath   = "repos-path"
	flagMasterPath  = "master-path"
	flagGitHubToken = "github-token"
	flagGitLabToken = "gitlab-token"
)

// AddPersistentFlags registers the flags shared by every subcommand on root.
func AddPersistentFlags(root *cobra.Command) {
	flags := root.PersistentFlags()
	flags.StringP(flagConfig, "c", "", "Path to config file (default: auto-detect)")
	flags.Bool(flagDryRun, false, "Show what would be done without making changes")
	flags.BoolP(flagVerbose, "v", false, "Enable verbose output")
	flags.StringSliceP(flagGroups, "g", nil, "Groups or repository names to operate on (default: all)")
	flags.Bool(flagKeepChanges, false, "Do not reset working copies before syncing or pushing")
	flags.String(flagReposPath, "", "Directory holding the repository checkouts")
	flags.String(flagMasterPath, "", "Directory holding the master files")
	flags.String(flagGitHubToken, "", "GitHub API token (default: $GITHUB_TOKEN)")
	flags.String(flagGitLabToken, "", "GitLab API token (default: $GITLAB_TOKEN)")
}

// execution is what a controller hands over to its command once the
// configuration is loaded.
type execution func(
	ctx context.Context,
	fleet *entities.FleetConfiguration,
	run *entities.RunConfiguration,
) (*entities.RunReport, error)

// runFleet loads the configuration, merges the command line over it and runs
// the operation.
func runFleet(cmd *cobra.Command, overrides entities.RunSettings, operation execution) error {
	fleet, run, err := loadRun(cmd, overrides)
	if err != nil {
		return err
	}

	report, err := operation(contextOf(cmd), fleet, run)
	if err != nil {
		return err
	}
	if len(report.Warnings) > 0 {
		logger.Warnf("%d warnings during %s", len(report.Warnings), report.Operation)
		for _, warning := range report.Warnings {
			logger.Debugf("  %s", warning)
		}
	}
	return nil
}

func loadRun(
	cmd *cobra.Command,
	overrides entities.RunSettings,
) (*entities.FleetConfiguration, *entities.RunConfiguration, error) {
	configPath, _ := cmd.Flags().GetString(flagConfig)
	if configPath == "" {
		var err error
		if configPath, err = entities.FindConfigFile(); err != nil {
			return nil, nil, err
		}
	}
	logger.Infof("Using config file: %s", configPath)

	fleet, err := entities.NewFleetConfiguration(configPath)
	if err != nil {
		return nil, nil, err
	}

	overrides.DryRun = boolFlag(cmd, flagDryRun)
	overrides.Verbose = boolFlag(cmd, flagVerbose)
	overrides.KeepChanges = boolFlag(cmd, flagKeepChanges)
	overrides.Groups = sliceFlag(cmd, flagGroups)
	overrides.ReposPath = pathFlag(cmd, flagReposPath)
	overrides.MasterPath = pathFlag(cmd, flagMasterPath)
	overrides.GitHubToken = stringFlag(cmd, flagGitHubToken)
	overrides.GitLabToken = stringFlag(cmd, flagGitLabToken)

	run := entities.NewRunConfiguration(fleet.Settings, overrides, fleet.Directory())
	if run.Verbose() {
		logger.SetLevel(logger.DebugLevel)
	}
	return fleet, run, nil
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// The helpers below return nil for flags the operator did not set, so the
// configuration settings underneath stay in effect.

func boolFlag(cmd *cobra.Command, name string) *bool {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	value, err := cmd.Flags().GetBool(name)
	if err != nil {
		return nil
	}
	return &value
}

func stringFlag(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	value, err := cmd.Flags().GetString(name)
	if err != nil {
		return nil
	}
	return &value
}

// pathFlag resolves a path flag against the working directory, since relative
// configuration paths are anchored at the config file instead.
func pathFlag(cmd *cobra.Command, name string) *string {
	value := stringFlag(cmd, name)
	if value == nil || *value == "" {
		return value
	}
	if absolute, err := filepath.Abs(*value); err == nil {
		return &absolute
	}
	return value
}

func sliceFlag(cmd *cobra.Command, name string) []string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	value, err := cmd.Flags().GetStringSlice(name)
	if err != nil {
		return nil
	}
	return value
}

func intFlag(cmd *cobra.Command, name string) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	value, err := cmd.Flags().GetInt(name)
	if err != nil {
		return nil
	}
	return &value
}

func durationFlag(cmd *cobra.Command, name string) *entities.Duration {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	value, err := cmd.Flags().GetDuration(name)
	if err != nil {
		return nil
	}
	duration := entities.Duration(value)
	return &duration
}
