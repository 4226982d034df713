//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"io"

	"github.com/rios0rios0/reposync/internal/domain/commands"
	"github.com/rios0rios0/reposync/internal/domain/entities"
)

// StubFleetCommand is a stub implementation of every fleet command interface
// that takes no extra arguments (setup, sync, pull, push, open-prs).
type StubFleetCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	Report           *entities.RunReport
	LastFleet        *entities.FleetConfiguration
	LastRun          *entities.RunConfiguration
}

var (
	_ commands.Setup   = (*StubFleetCommand)(nil)
	_ commands.Sync    = (*StubFleetCommand)(nil)
	_ commands.Pull    = (*StubFleetCommand)(nil)
	_ commands.Push    = (*StubFleetCommand)(nil)
	_ commands.OpenPRs = (*StubFleetCommand)(nil)
)

func (s *StubFleetCommand) Execute(
	_ context.Context,
	fleet *entities.FleetConfiguration,
	run *entities.RunConfiguration,
) (*entities.RunReport, error) {
	s.ExecuteCallCount++
	s.LastFleet = fleet
	s.LastRun = run
	return s.report(), s.ExecuteErr
}

func (s *StubFleetCommand) report() *entities.RunReport {
	if s.Report != nil {
		return s.Report
	}
	return entities.NewRunReport("stub")
}

// StubDiffCommand is a stub implementation of commands.Diff.
type StubDiffCommand struct {
	StubFleetCommand
	Output string
}

var _ commands.Diff = (*StubDiffCommand)(nil)

func (s *StubDiffCommand) Execute(
	_ context.Context,
	fleet *entities.FleetConfiguration,
	run *entities.RunConfiguration,
	out io.Writer,
) (*entities.RunReport, error) {
	s.ExecuteCallCount++
	s.LastFleet = fleet
	s.LastRun = run
	if _, err := io.WriteString(out, s.Output); err != nil {
		return nil, err
	}
	return s.report(), s.ExecuteErr
}

// StubForEachCommand is a stub implementation of commands.ForEach.
type StubForEachCommand struct {
	StubFleetCommand
	LastCommand []string
}

var _ commands.ForEach = (*StubForEachCommand)(nil)

func (s *StubForEachCommand) Execute(
	_ context.Context,
	fleet *entities.FleetConfiguration,
	run *entities.RunConfiguration,
	command []string,
) (*entities.RunReport, error) {
	s.ExecuteCallCount++
	s.LastFleet = fleet
	s.LastRun = run
	s.LastCommand = command
	return s.report(), s.ExecuteErr
}
