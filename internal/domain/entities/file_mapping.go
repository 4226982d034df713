package entities

import (
	"path/filepath"
	"strings"
)

// ProjectionKind tells the file projector how to materialize a source file.
type ProjectionKind int

const (
	// ProjectionCopy copies the source byte-for-byte.
	ProjectionCopy ProjectionKind = iota
	// ProjectionTemplate renders the source against the repository template bindings.
	ProjectionTemplate
)

func (k ProjectionKind) String() string {
	if k == ProjectionTemplate {
		return "template"
	}
	return "copy"
}

//nolint:gochecknoglobals // fixed suffix table
var templateSuffixes = []string{".erb", ".tpl", ".tmpl", ".template"}

// FileMapping projects one master source file onto a target path inside a repository.
type FileMapping struct {
	Target string // relative to the repository root
	Source string // relative to the master configuration root
	Kind   ProjectionKind
}

// NewFileMapping builds a mapping whose kind is inferred from the source suffix.
func NewFileMapping(target, source string) FileMapping {
	return FileMapping{
		Target: target,
		Source: source,
		Kind:   ClassifyProjection(source),
	}
}

// ClassifyProjection returns ProjectionTemplate for sources with a template suffix.
func ClassifyProjection(source string) ProjectionKind {
	ext := strings.ToLower(filepath.Ext(source))
	for _, suffix := range templateSuffixes {
		if ext == suffix {
			return ProjectionTemplate
		}
	}
	return ProjectionCopy
}
