package commands

import (
	"context"
	"fmt"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/reposync/internal/domain/entities"
	"github.com/rios0rios0/reposync/internal/domain/repositories"
)

// Visit runs one workflow against one repository. Errors wrapping
// entities.ErrSkipped skip the repository; any other error aborts the run.
type Visit func(ctx context.Context, descriptor entities.Descriptor) error

// Fleet iterates the resolved repositories of an operation one at a time.
type Fleet struct {
	git repositories.GitRepository
}

// NewFleet creates a fleet iterator that checks checkouts through git.
func NewFleet(git repositories.GitRepository) *Fleet {
	return &Fleet{git: git}
}

// Each resolves the selected groups and calls visit for every usable repository.
// Names without a descriptor are skipped, as are repositories without a local
// checkout when requireCheckout is set.
func (it *Fleet) Each(
	ctx context.Context,
	operation string,
	fleet *entities.FleetConfiguration,
	run *entities.RunConfiguration,
	requireCheckout bool,
	visit Visit,
) (*entities.RunReport, error) {
	report := entities.NewRunReport(operation)
	names := fleet.Resolve(run.Groups())
	logger.Infof("Running %s on %d repositories", operation, len(names))

	if requireCheckout {
		it.SanityCheck(names, run, report)
	}

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("%s interrupted: %w", operation, err)
		}

		descriptor := fleet.Descriptor(name)
		if !descriptor.IsConfigured() {
			logger.Warnf("[%s] %v, skipping", name, entities.ErrNotConfigured)
			report.MarkSkipped(name, entities.ErrNotConfigured.Error())
			continue
		}

		if requireCheckout && !it.git.IsRepository(run.RepositoryDir(name)) {
			logger.Warnf("[%s] %v, skipping", name, entities.ErrNotProvisioned)
			report.MarkSkipped(name, entities.ErrNotProvisioned.Error())
			continue
		}

		err := visit(ctx, descriptor)
		switch {
		case err == nil:
			report.MarkProcessed(name)
		case entities.IsSkipped(err):
			reason := entities.SkipReason(err)
			logger.Warnf("[%s] %s", name, reason)
			report.MarkSkipped(name, reason)
		default:
			return report, fmt.Errorf("[%s] %s failed: %w", name, operation, err)
		}
	}

	logger.Info(report.Summary())
	return report, nil
}

// SanityCheck warns once about every resolved repository that has no local
// checkout. It never fails the run.
func (it *Fleet) SanityCheck(names []string, run *entities.RunConfiguration, report *entities.RunReport) {
	var missing []string
	for _, name := range names {
		if !it.git.IsRepository(run.RepositoryDir(name)) {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return
	}

	message := fmt.Sprintf(
		"%d repositories are not set up (run 'reposync setup' first): %s",
		len(missing), strings.Join(missing, ", "),
	)
	logger.Warn(message)
	report.Warn(message)
}

// skipOrAbort turns a git failure into a per-repository skip, unless the run was
// canceled, in which case the cancellation aborts the run.
func skipOrAbort(ctx context.Context, err error, format string, args ...any) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return entities.Skip("%s: %v", fmt.Sprintf(format, args...), err)
}
