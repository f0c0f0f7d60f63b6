package app

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePageNumber(t *testing.T) {
	tests := map[string]int{
		"":                      1,
		"1":                     1,
		"2":                     2,
		" 3 ":                   3,
		"0":                     1,
		"-4":                    1,
		"abc":                   1,
		"2.5":                   1,
		"99999999999999999999":  math.MaxInt,
		"+99999999999999999999": math.MaxInt,
		"-99999999999999999999": 1,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParsePageNumber(in), "page %q", in)
	}
}

func TestResolvePage(t *testing.T) {
	t.Run("empty sequence has one page", func(t *testing.T) {
		bounds := ResolvePage(0, 10, "5")
		assert.Equal(t, 1, bounds.Number)
		assert.Equal(t, 1, bounds.NumPages)
		assert.Equal(t, 0, bounds.Offset)
	})

	t.Run("too high clamps to the last page", func(t *testing.T) {
		bounds := ResolvePage(25, 10, "99")
		assert.Equal(t, 3, bounds.Number)
		assert.Equal(t, 3, bounds.NumPages)
		assert.Equal(t, 20, bounds.Offset)
		assert.Equal(t, 10, bounds.Limit)
	})

	t.Run("page overflowing int clamps to the last page", func(t *testing.T) {
		bounds := ResolvePage(25, 10, "99999999999999999999")
		assert.Equal(t, 3, bounds.Number)
		assert.Equal(t, 20, bounds.Offset)
	})

	t.Run("exact multiple", func(t *testing.T) {
		bounds := ResolvePage(20, 10, "2")
		assert.Equal(t, 2, bounds.NumPages)
		assert.Equal(t, 2, bounds.Number)
	})

	t.Run("non positive page size uses the default", func(t *testing.T) {
		bounds := ResolvePage(11, 0, "")
		assert.Equal(t, DefaultPageSize, bounds.Limit)
		assert.Equal(t, 2, bounds.NumPages)
	})
}

func TestPaginate(t *testing.T) {
	items := make([]int, 12)
	for i := range items {
		items[i] = i
	}

	first := Paginate(items, 10, "")
	assert.Len(t, first.Items, 10)
	assert.Equal(t, 1, first.Number)
	assert.Equal(t, 2, first.NumPages)
	assert.Equal(t, 12, first.Count)
	assert.True(t, first.HasNext)
	assert.False(t, first.HasPrevious)
	assert.Equal(t, 2, first.NextPageNumber())

	second := Paginate(items, 10, "2")
	assert.Equal(t, []int{10, 11}, second.Items)
	assert.False(t, second.HasNext)
	assert.True(t, second.HasPrevious)
	assert.Equal(t, 1, second.PreviousPageNumber())

	assert.Equal(t, second.Items, Paginate(items, 10, "7").Items)
	assert.Equal(t, first.Items, Paginate(items, 10, "nope").Items)
	assert.Equal(t, first.Items, Paginate(items, 10, "0").Items)
	assert.Equal(t, second.Items, Paginate(items, 10, "99999999999999999999").Items)
}

func TestPaginateEmpty(t *testing.T) {
	page := Paginate([]string(nil), 10, "3")
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.Equal(t, 1, page.Number)
	assert.Equal(t, 1, page.NumPages)
	assert.False(t, page.HasNext)
	assert.False(t, page.HasPrevious)
}
