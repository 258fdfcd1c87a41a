package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageQueryNormalize(t *testing.T) {
	cases := []struct {
		name     string
		in       PageQuery
		wantPage int
		wantSize int
	}{
		{"zero values get defaults", PageQuery{}, 1, 20},
		{"negative page clamps to 1", PageQuery{Page: -3, Size: 10}, 1, 10},
		{"oversized page size clamps to 100", PageQuery{Page: 2, Size: 500}, 2, 100},
		{"valid values untouched", PageQuery{Page: 4, Size: 25}, 4, 25},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.in.Normalize()
			assert.Equal(t, tc.wantPage, tc.in.Page)
			assert.Equal(t, tc.wantSize, tc.in.Size)
		})
	}
}

func TestPageQueryOffset(t *testing.T) {
	assert.Equal(t, 0, PageQuery{Page: 1, Size: 20}.Offset())
	assert.Equal(t, 40, PageQuery{Page: 3, Size: 20}.Offset())
}

func TestPages(t *testing.T) {
	assert.Equal(t, 0, Pages(0, 20), "no rows, no pages")
	assert.Equal(t, 1, Pages(1, 20))
	assert.Equal(t, 1, Pages(20, 20))
	assert.Equal(t, 2, Pages(21, 20), "a partial page still counts")
	assert.Equal(t, 0, Pages(10, 0), "zero size must not divide")
}
