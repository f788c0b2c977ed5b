package checklist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTemplateVariants(t *testing.T) {
	res := Template(PropertyTypeResidential)
	com := Template(PropertyTypeCommercial)

	assert.NotEmpty(t, res)
	assert.NotEmpty(t, com)
	assert.NotEqual(t, CountItems(res), CountItems(com))

	// unknown and empty types fall back to the residential template
	assert.Equal(t, res, Template(""))
	assert.Equal(t, res, Template("Houseboat"))
}

func TestTemplateItemIDsUnique(t *testing.T) {
	for _, pt := range []string{PropertyTypeResidential, PropertyTypeCommercial} {
		seen := map[string]bool{}
		for _, cat := range Template(pt) {
			for _, item := range cat.Items {
				assert.False(t, seen[item.ID], "duplicate item id %q in %s", item.ID, pt)
				seen[item.ID] = true
				assert.NotEmpty(t, item.Text)
			}
		}
	}
}
