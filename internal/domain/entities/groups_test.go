package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rios0rios0/reposync/internal/domain/entities"
)

func TestResolveGroups(t *testing.T) {
	t.Parallel()

	allNames := []string{"cli", "api", "web"}
	groups := map[string][]string{
		"backend":  {"api", "cli"},
		"frontend": {"web"},
	}

	t.Run("should expand all to every repository in declaration order", func(t *testing.T) {
		t.Parallel()

		// given
		selected := []string{entities.AllGroup}

		// when
		result := entities.ResolveGroups(selected, groups, allNames)

		// then
		assert.Equal(t, []string{"cli", "api", "web"}, result)
	})

	t.Run("should concatenate groups and drop duplicates by first occurrence", func(t *testing.T) {
		t.Parallel()

		// given
		selected := []string{"backend", "frontend", "cli"}

		// when
		result := entities.ResolveGroups(selected, groups, allNames)

		// then
		assert.Equal(t, []string{"api", "cli", "web"}, result)
	})

	t.Run("should take unknown names literally", func(t *testing.T) {
		t.Parallel()

		// given
		selected := []string{"docs", "frontend"}

		// when
		result := entities.ResolveGroups(selected, groups, allNames)

		// then
		assert.Equal(t, []string{"docs", "web"}, result)
	})

	t.Run("should return an empty fleet for an empty selection", func(t *testing.T) {
		t.Parallel()

		// when
		result := entities.ResolveGroups(nil, groups, allNames)

		// then
		assert.Empty(t, result)
	})
}
