package commands

import (
	"go.uber.org/dig"
)

// RegisterProviders registers all command providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register command constructors
	constructors := []any{
		NewFleet,
		NewSetupCommand,
		NewSyncCommand,
		NewDiffCommand,
		NewPullCommand,
		NewPushCommand,
		NewOpenPRsCommand,
		NewForEachCommand,
	}
	for _, constructor := range constructors {
		if err := container.Provide(constructor); err != nil {
			return err
		}
	}

	// Bind interfaces to implementations
	bindings := []any{
		func(impl *SetupCommand) Setup { return impl },
		func(impl *SyncCommand) Sync { return impl },
		func(impl *DiffCommand) Diff { return impl },
		func(impl *PullCommand) Pull { return impl },
		func(impl *PushCommand) Push { return impl },
		func(impl *OpenPRsCommand) OpenPRs { return impl },
		func(impl *ForEachCommand) ForEach { return impl },
	}
	for _, binding := range bindings {
		if err := container.Provide(binding); err != nil {
			return err
		}
	}

	return nil
}
