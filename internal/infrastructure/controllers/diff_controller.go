package controllers

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/reposync/internal/domain/commands"
	"github.com/rios0rios0/reposync/internal/domain/entities"
)

// DiffController handles the "diff" subcommand.
type DiffController struct {
	command commands.Diff
}

// NewDiffController creates a new DiffController.
func NewDiffController(command commands.Diff) *DiffController {
	return &DiffController{command: command}
}

// GetBind returns the Cobra command metadata for the diff controller.
func (it *DiffController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "diff",
		Short: "Show unstaged changes of every repository",
	}
}

// Execute prints the diff of each selected repository to standard output.
func (it *DiffController) Execute(cmd *cobra.Command, _ []string) error {
	return runFleet(cmd, entities.RunSettings{},
		func(
			ctx context.Context,
			fleet *entities.FleetConfiguration,
			run *entities.RunConfiguration,
		) (*entities.RunReport, error) {
			return it.command.Execute(ctx, fleet, run, cmd.OutOrStdout())
		},
	)
}

// AddFlags adds no flags beyond the persistent ones.
func (it *DiffController) AddFlags(_ *cobra.Command) {}
