//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/reposync/internal/domain/entities"
	"github.com/rios0rios0/reposync/internal/domain/repositories"
)

// Projection records a single invocation of Project.
type Projection struct {
	Source   string
	Target   string
	Mapping  entities.FileMapping
	Bindings map[string]any
}

// SpyFileProjector implements repositories.FileProjector without touching the disk.
type SpyFileProjector struct {
	ProjectErr  error
	Projections []Projection
}

var _ repositories.FileProjector = (*SpyFileProjector)(nil)

func (p *SpyFileProjector) Project(
	source, target string, mapping entities.FileMapping, bindings map[string]any,
) error {
	p.Projections = append(p.Projections, Projection{
		Source: source, Target: target, Mapping: mapping, Bindings: bindings,
	})
	return p.ProjectErr
}
