package controllers

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/reposync/internal/domain/commands"
	"github.com/rios0rios0/reposync/internal/domain/entities"
)

// ForEachController handles the "for-each" subcommand.
type ForEachController struct {
	command commands.ForEach
}

// NewForEachController creates a new ForEachController.
func NewForEachController(command commands.ForEach) *ForEachController {
	return &ForEachController{command: command}
}

// GetBind returns the Cobra command metadata for the for-each controller.
func (it *ForEachController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "for-each -- COMMAND...",
		Short: "Run a shell command in every checkout",
		Long: `Run "sh -c COMMAND" inside every selected checkout, one at a time.
The output is streamed to the log and a failing command does not stop the run.`,
	}
}

// Execute runs the command given after "--" in each repository.
func (it *ForEachController) Execute(cmd *cobra.Command, args []string) error {
	return runFleet(cmd, entities.RunSettings{},
		func(
			ctx context.Context,
			fleet *entities.FleetConfiguration,
			run *entities.RunConfiguration,
		) (*entities.RunReport, error) {
			return it.command.Execute(ctx, fleet, run, args)
		},
	)
}

// AddFlags stops flag parsing at the first positional argument so the command
// keeps its own flags.
func (it *ForEachController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().SetInterspersed(false)
}
