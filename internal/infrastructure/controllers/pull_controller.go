package controllers

import (
	"github.com/spf13/cobra"

	"github.com/rios0rios0/reposync/internal/domain/commands"
	"github.com/rios0rios0/reposync/internal/domain/entities"
)

// PullController handles the "pull" subcommand.
type PullController struct {
	command commands.Pull
}

// NewPullController creates a new PullController.
func NewPullController(command commands.Pull) *PullController {
	return &PullController{command: command}
}

// GetBind returns the Cobra command metadata for the pull controller.
func (it *PullController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "pull",
		Short: "Update every checkout from its remote branch",
		Long: `Fetch origin, discard local changes, check out the configured branch
and pull it. Repositories that fail are skipped with a warning.`,
	}
}

// Execute pulls the selected repositories.
func (it *PullController) Execute(cmd *cobra.Command, _ []string) error {
	return runFleet(cmd, entities.RunSettings{}, it.command.Execute)
}

// AddFlags adds no flags beyond the persistent ones.
func (it *PullController) AddFlags(_ *cobra.Command) {}
