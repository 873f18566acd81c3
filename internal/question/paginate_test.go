package question

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginateNineteenItems(t *testing.T) {
	items := numbered(19)

	page, total := Paginate(items, 1, 10)
	assert.Len(t, page, 10)
	assert.Equal(t, 19, total)
	assert.Equal(t, 1, page[0].ID)
	assert.Equal(t, 10, page[9].ID)

	page, total = Paginate(items, 2, 10)
	assert.Len(t, page, 9)
	assert.Equal(t, 19, total)
	assert.Equal(t, 11, page[0].ID)

	page, total = Paginate(items, 3, 10)
	assert.Empty(t, page)
	assert.NotNil(t, page)
	assert.Equal(t, 19, total)
}

func TestPaginateTotalIndependentOfPage(t *testing.T) {
	items := numbered(23)
	for page := -2; page <= 5; page++ {
		_, total := Paginate(items, page, 10)
		assert.Equal(t, 23, total, "page %d", page)
	}
}

func TestPaginateClampsLowPages(t *testing.T) {
	items := numbered(15)
	first, _ := Paginate(items, 1, 10)
	for _, page := range []int{0, -1, -100} {
		got, _ := Paginate(items, page, 10)
		assert.Equal(t, first, got, "page %d", page)
	}
}

func TestPaginateEmptyInput(t *testing.T) {
	page, total := Paginate([]Question(nil), 1, 10)
	assert.Empty(t, page)
	assert.Equal(t, 0, total)
}

func TestParsePage(t *testing.T) {
	cases := map[string]int{
		"":     1,
		"abc":  1,
		"1":    1,
		"2":    2,
		"0":    1,
		"-4":   1,
		"1000": 1000,
		"2.5":  1,
	}
	for raw, want := range cases {
		assert.Equal(t, want, ParsePage(raw), "raw %q", raw)
	}
}
