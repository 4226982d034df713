package commands

import (
	logger "github.com/sirupsen/logrus"
)

// DryRunGate decides whether a side-effecting action runs or is only announced.
type DryRunGate struct {
	dryRun bool
}

// NewDryRunGate creates a gate for the given mode.
func NewDryRunGate(dryRun bool) DryRunGate {
	return DryRunGate{dryRun: dryRun}
}

// Guard runs action unless dry-run is enabled, in which case the description is
// logged and the action is never called. The action error is returned unchanged.
func (g DryRunGate) Guard(description string, action func() error) (bool, error) {
	if g.dryRun {
		logger.Infof("[DRY RUN] %s", description)
		return false, nil
	}
	return true, action()
}
