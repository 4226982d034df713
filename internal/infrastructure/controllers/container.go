package controllers

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/reposync/internal/domain/entities"
)

// RegisterProviders registers all controller providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register controller constructors
	constructors := []any{
		NewSetupController,
		NewSyncController,
		NewDiffController,
		NewPullController,
		NewPushController,
		NewOpenPRsController,
		NewForEachController,
		NewControllers,
	}
	for _, constructor := range constructors {
		if err := container.Provide(constructor); err != nil {
			return err
		}
	}

	return nil
}

// NewControllers aggregates all controllers into a slice for the AppInternal.
func NewControllers(
	setupController *SetupController,
	syncController *SyncController,
	diffController *DiffController,
	pullController *PullController,
	pushController *PushController,
	openPRsController *OpenPRsController,
	forEachController *ForEachController,
) *[]entities.Controller {
	return &[]entities.Controller{
		setupController,
		syncController,
		diffController,
		pullController,
		pushController,
		openPRsController,
		forEachController,
	}
}
