package paginator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumPages(t *testing.T) {
	tests := []struct {
		count int64
		want  int
	}{
		{0, 1},
		{1, 1},
		{10, 1},
		{11, 2},
		{13, 2},
		{20, 2},
		{21, 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, New(tt.count, 10).NumPages(), "count=%d", tt.count)
	}
}

func TestPage_Resolution(t *testing.T) {
	p := New(13, 10)

	tests := []struct {
		raw  string
		want int
	}{
		{"", 1},
		{"1", 1},
		{"2", 2},
		{"abc", 1},
		{"3", 2},
		{"999", 2},
		{"0", 2},
		{"-1", 2},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Page(tt.raw).Number)
		})
	}
}

func TestPage_Navigation(t *testing.T) {
	p := New(13, 10)

	first := p.Page("1")
	assert.Equal(t, 0, first.Offset())
	assert.Equal(t, 10, first.Limit())
	assert.True(t, first.HasNext())
	assert.False(t, first.HasPrevious())
	assert.Equal(t, 2, first.NextNumber())
	assert.EqualValues(t, 1, first.StartIndex())
	assert.EqualValues(t, 10, first.EndIndex())

	last := p.Page("2")
	assert.Equal(t, 10, last.Offset())
	assert.False(t, last.HasNext())
	assert.True(t, last.HasPrevious())
	assert.Equal(t, 1, last.PreviousNumber())
	assert.EqualValues(t, 11, last.StartIndex())
	assert.EqualValues(t, 13, last.EndIndex())
	assert.Equal(t, []int{1, 2}, last.Range())
}

func TestPage_Empty(t *testing.T) {
	pg := New(0, 10).Page("5")

	assert.Equal(t, 1, pg.Number)
	assert.False(t, pg.HasOtherPages())
	assert.EqualValues(t, 0, pg.StartIndex())
	assert.Empty(t, Slice([]string{}, pg))
}

func TestSlice(t *testing.T) {
	items := make([]int, 13)
	for i := range items {
		items[i] = i
	}
	p := New(int64(len(items)), 10)

	assert.Len(t, Slice(items, p.Page("1")), 10)
	assert.Equal(t, []int{10, 11, 12}, Slice(items, p.Page("2")))
}
