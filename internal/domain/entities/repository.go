package entities

import (
	gitforgeEntities "github.com/rios0rios0/gitforge/pkg/global/domain/entities"
)

// Repository is re-exported from gitforge. It addresses a fleet member through
// the hosting API and is derived from a Descriptor.
type Repository = gitforgeEntities.Repository
