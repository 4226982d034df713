package controllers

import (
	"github.com/spf13/cobra"

	"github.com/rios0rios0/reposync/internal/domain/commands"
	"github.com/rios0rios0/reposync/internal/domain/entities"
)

// OpenPRsController handles the "open-prs" subcommand.
type OpenPRsController struct {
	command commands.OpenPRs
}

// NewOpenPRsController creates a new OpenPRsController.
func NewOpenPRsController(command commands.OpenPRs) *OpenPRsController {
	return &OpenPRsController{command: command}
}

// GetBind returns the Cobra command metadata for the open-prs controller.
func (it *OpenPRsController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "open-prs",
		Short: "Open a pull request per repository from the pushed branch",
		Long: `Open a pull request from the push branch into the merge branch on
GitHub or GitLab, then request reviews and add assignees.

Existing pull requests for the same branch are reused. After every
--cooldown-count pull requests the run pauses for --cooldown-time to
stay under the API rate limits.`,
	}
}

// Execute opens the pull requests.
func (it *OpenPRsController) Execute(cmd *cobra.Command, _ []string) error {
	overrides := entities.RunSettings{
		PRMessage:         stringFlag(cmd, "message"),
		PushToBranch:      stringFlag(cmd, "push-branch"),
		MergeBranch:       stringFlag(cmd, "merge-branch"),
		Reviewers:         sliceFlag(cmd, "reviewers"),
		Assignees:         sliceFlag(cmd, "assignees"),
		AddAutoMergeLabel: boolFlag(cmd, "auto-merge"),
		CooldownCount:     intFlag(cmd, "cooldown-count"),
		CooldownTime:      durationFlag(cmd, "cooldown-time"),
	}
	return runFleet(cmd, overrides, it.command.Execute)
}

// AddFlags adds the open-prs-specific flags to the given Cobra command.
func (it *OpenPRsController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("message", "m", "", "Pull request title")
	cmd.Flags().StringP("push-branch", "b", "", "Head branch of the pull request")
	cmd.Flags().String("merge-branch", "", "Base branch of the pull request")
	cmd.Flags().StringSlice("reviewers", nil, "Users to request reviews from")
	cmd.Flags().StringSlice("assignees", nil, "Users to assign")
	cmd.Flags().Bool("auto-merge", false, "Add the auto-merge label to new pull requests")
	cmd.Flags().Int("cooldown-count", 0, "Pause after this many pull requests (0 disables)")
	cmd.Flags().Duration("cooldown-time", 0, "Length of each pause")
}
