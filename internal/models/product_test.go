package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProductUpdate_ApplyOnlySuppliedFields(t *testing.T) {
	p := Product{Name: "Apple", Category: "fruit", Description: "fresh", Price: 2, Stock: 100, Photo: "p", PhotoPublicID: "h"}
	stock := 0
	category := "Citrus"

	ProductUpdate{Stock: &stock, Category: &category}.Apply(&p)

	assert.Equal(t, 0, p.Stock)
	assert.Equal(t, "citrus", p.Category)
	assert.Equal(t, "Apple", p.Name)
	assert.Equal(t, 2.0, p.Price)
	assert.Equal(t, "p", p.Photo)
	assert.Equal(t, "h", p.PhotoPublicID)
}

func TestProductUpdate_Empty(t *testing.T) {
	assert.True(t, ProductUpdate{}.Empty())
	name := "x"
	assert.False(t, ProductUpdate{Name: &name}.Empty())
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total int64
		size  int
		want  int64
	}{
		{0, 8, 0},
		{1, 8, 1},
		{8, 8, 1},
		{9, 8, 2},
		{17, 6, 3},
		{5, 0, 0},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, TotalPages(c.total, c.size), "total=%d size=%d", c.total, c.size)
	}
}

func TestSkip(t *testing.T) {
	assert.Equal(t, int64(0), Skip(1, 8))
	assert.Equal(t, int64(16), Skip(3, 8))
	assert.Equal(t, int64(0), Skip(0, 8))
	assert.Equal(t, int64(math.MaxInt64), Skip(math.MaxInt64, 8))
	assert.Equal(t, int64(0), Skip(5, 0))
}
