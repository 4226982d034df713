package controllers

import (
	"github.com/spf13/cobra"

	"github.com/rios0rios0/reposync/internal/domain/commands"
	"github.com/rios0rios0/reposync/internal/domain/entities"
)

// PushController handles the "push" subcommand.
type PushController struct {
	command commands.Push
}

// NewPushController creates a new PushController.
func NewPushController(command commands.Push) *PushController {
	return &PushController{command: command}
}

// GetBind returns the Cobra command metadata for the push controller.
func (it *PushController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "push",
		Short: "Commit the synced files and push them to a branch",
		Long: `Switch every checkout to the push branch, commit the staged files
with the given message and push the branch to origin.

Running it again without new changes pushes without committing.`,
	}
}

// Execute commits and pushes the selected repositories.
func (it *PushController) Execute(cmd *cobra.Command, _ []string) error {
	overrides := entities.RunSettings{
		CommitMessage: stringFlag(cmd, "message"),
		PushToBranch:  stringFlag(cmd, "push-branch"),
		ForcePush:     boolFlag(cmd, "force"),
		RequestChecks: boolFlag(cmd, "request-checks"),
	}
	return runFleet(cmd, overrides, it.command.Execute)
}

// AddFlags adds the push-specific flags to the given Cobra command.
func (it *PushController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("message", "m", "", "Commit message")
	cmd.Flags().StringP("push-branch", "b", "", "Branch to commit on and push")
	cmd.Flags().Bool("force", false, "Force-push the branch")
	cmd.Flags().Bool("request-checks", false, "Append a 'request-checks: true' trailer to the commit message")
}
