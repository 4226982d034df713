package controllers

import (
	"github.com/spf13/cobra"

	"github.com/rios0rios0/reposync/internal/domain/commands"
	"github.com/rios0rios0/reposync/internal/domain/entities"
)

// SetupController handles the "setup" subcommand.
type SetupController struct {
	command commands.Setup
}

// NewSetupController creates a new SetupController.
func NewSetupController(command commands.Setup) *SetupController {
	return &SetupController{command: command}
}

// GetBind returns the Cobra command metadata for the setup controller.
func (it *SetupController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "setup",
		Short: "Clone repositories that are not set up yet",
		Long: `Clone every selected repository into the repositories path.
Repositories that already have a checkout are left untouched.`,
	}
}

// Execute clones the missing repositories.
func (it *SetupController) Execute(cmd *cobra.Command, _ []string) error {
	return runFleet(cmd, entities.RunSettings{}, it.command.Execute)
}

// AddFlags adds no flags beyond the persistent ones.
func (it *SetupController) AddFlags(_ *cobra.Command) {}
