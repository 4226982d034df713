package controllers

import (
	"github.com/spf13/cobra"

	"github.com/rios0rios0/reposync/internal/domain/commands"
	"github.com/rios0rios0/reposync/internal/domain/entities"
)

// SyncController handles the "sync" subcommand.
type SyncController struct {
	command commands.Sync
}

// NewSyncController creates a new SyncController.
func NewSyncController(command commands.Sync) *SyncController {
	return &SyncController{command: command}
}

// GetBind returns the Cobra command metadata for the sync controller.
func (it *SyncController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "sync",
		Short: "Copy the master files into every repository and stage them",
		Long: `Reset each checkout to the tip of its configured branch, project the
configured files from the master path into it and stage them.

Template sources (.tpl, .tmpl, .template, .erb) are rendered with the
repository's template values. Use --keep-changes to skip the reset.`,
	}
}

// Execute syncs the selected repositories.
func (it *SyncController) Execute(cmd *cobra.Command, _ []string) error {
	return runFleet(cmd, entities.RunSettings{}, it.command.Execute)
}

// AddFlags adds no flags beyond the persistent ones.
func (it *SyncController) AddFlags(_ *cobra.Command) {}
