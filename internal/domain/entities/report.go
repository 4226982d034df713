package entities

import (
	"fmt"
)

// Warning records a repository skipped during a run and the reason for it.
type Warning struct {
	Repository string
	Reason     string
}

func (w Warning) String() string {
	if w.Repository == "" {
		return w.Reason
	}
	return fmt.Sprintf("[%s] %s", w.Repository, w.Reason)
}

// RunReport summarizes one operation across the fleet.
type RunReport struct {
	Operation string
	Processed []string
	Skipped   []string
	Warnings  []Warning
}

// NewRunReport creates an empty report for the named operation.
func NewRunReport(operation string) *RunReport {
	return &RunReport{Operation: operation}
}

// MarkProcessed records a repository whose workflow completed.
func (r *RunReport) MarkProcessed(name string) {
	r.Processed = append(r.Processed, name)
}

// MarkSkipped records a skipped repository together with the reason.
func (r *RunReport) MarkSkipped(name, reason string) {
	r.Skipped = append(r.Skipped, name)
	r.Warnings = append(r.Warnings, Warning{Repository: name, Reason: reason})
}

// Warn records a warning that is not tied to one repository outcome.
func (r *RunReport) Warn(reason string) {
	r.Warnings = append(r.Warnings, Warning{Reason: reason})
}

// Summary renders a one-line summary for the log.
func (r *RunReport) Summary() string {
	return fmt.Sprintf(
		"%s complete: %d repositories processed, %d skipped, %d warnings",
		r.Operation, len(r.Processed), len(r.Skipped), len(r.Warnings),
	)
}
