package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVecArithmetic(t *testing.T) {
	v := Vec{1, 2, 3}
	u := Vec{4, -2, 0.5}

	assert.Equal(t, Vec{5, 0, 3.5}, v.Add(u), "add")
	assert.Equal(t, Vec{-3, 4, 2.5}, v.Sub(u), "sub")
	assert.Equal(t, Vec{2, 4, 6}, v.Scale(2), "scale")
	assert.Equal(t, 5.0, Vec{3, 4, 0}.Len(), "len")
}

func TestVecValueSemantics(t *testing.T) {
	v := Vec{1, 1, 1}
	v.Add(Vec{2, 2, 2})
	v.Scale(10)
	v.Sub(v)

	assert.Equal(t, Vec{1, 1, 1}, v, "operands are never written through")
}
