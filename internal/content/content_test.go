package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOr(t *testing.T) {
	blank := "   "
	value := " Our story "
	assert.Equal(t, "fallback", Or(nil, "fallback"))
	assert.Equal(t, "fallback", Or(&blank, "fallback"))
	assert.Equal(t, "Our story", Or(&value, "fallback"))
}

func TestCompiledContentIsComplete(t *testing.T) {
	assert.Len(t, MissionPoints, 5)
	assert.Len(t, DefaultCoreValues, 3)
	assert.Len(t, HomeHighlights, 4)
	assert.Len(t, Scholarships, 3)
	assert.Equal(t, "₱9,000.00", Scholarships[0].Coverage)
	for _, v := range DefaultCoreValues {
		assert.NotEmpty(t, v.Name)
		assert.NotEmpty(t, v.Description)
	}
}
