package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bnema/sidebar/internal/domain/entity"
)

func TestRect_ContainsExcludesFarEdges(t *testing.T) {
	r := entity.Rect{X: 0, Y: 10, W: 40, H: 2}

	assert.True(t, r.Contains(0, 10))
	assert.True(t, r.Contains(39.9, 11.9))
	assert.False(t, r.Contains(40, 11))
	assert.False(t, r.Contains(5, 12))
	assert.False(t, entity.Rect{W: 0, H: 5}.Contains(0, 0))
}

func TestRect_Distances(t *testing.T) {
	r := entity.Rect{X: 0, Y: 0, W: 10, H: 4}

	assert.Equal(t, 0.0, r.DistanceSq(5, 2))
	assert.Equal(t, 9.0, r.DistanceSq(5, 7))
	assert.Equal(t, 25.0, r.DistanceSq(13, 8))
	assert.Equal(t, 0.0, r.CenterDistanceSq(5, 2))
	assert.Equal(t, 4.0, r.CenterDistanceSq(5, 4))
}
