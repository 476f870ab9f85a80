package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltInCategories(t *testing.T) {
	categories, err := BuiltInCategories()
	require.NoError(t, err)
	require.NotEmpty(t, categories)

	slugs := make(map[string]bool, len(categories))
	for _, c := range categories {
		assert.NotEmpty(t, c.Name)
		assert.NotEmpty(t, c.Slug)
		assert.False(t, slugs[c.Slug], "duplicate slug %q", c.Slug)
		slugs[c.Slug] = true
	}

	// Display order must be stable and strictly increasing in the manifest.
	for i := 1; i < len(categories); i++ {
		assert.Greater(t, categories[i].SortOrder, categories[i-1].SortOrder)
	}

	assert.True(t, slugs["general"], "the general category anchors the forum")
	assert.True(t, slugs["wiki"], "wiki topics need a home category")
}
