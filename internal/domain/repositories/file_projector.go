package repositories

import (
	"github.com/rios0rios0/reposync/internal/domain/entities"
)

// FileProjector writes one master file into a repository working copy.
type FileProjector interface {
	// Project materializes source at target according to mapping.Kind, prefixed
	// with the generated-file banner. Intermediate directories are created.
	Project(source, target string, mapping entities.FileMapping, bindings map[string]any) error
}
