package window

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute_Scenarios(t *testing.T) {
	tests := []struct {
		name string
		p    Params
		want Range
	}{
		{
			name: "top of a long list",
			p:    Params{ScrollOffset: 0, ContainerHeight: 500, ItemHeight: 50, ItemCount: 1000, Buffer: 3},
			want: Range{Start: 0, End: 12},
		},
		{
			name: "scrolled to the 50th item",
			p:    Params{ScrollOffset: 2500, ContainerHeight: 500, ItemHeight: 50, ItemCount: 1000, Buffer: 3},
			want: Range{Start: 47, End: 62},
		},
		{
			name: "fewer items than fit",
			p:    Params{ScrollOffset: 0, ContainerHeight: 500, ItemHeight: 50, ItemCount: 5, Buffer: 3},
			want: Range{Start: 0, End: 4},
		},
		{
			name: "partial row at both edges",
			p:    Params{ScrollOffset: 25, ContainerHeight: 100, ItemHeight: 50, ItemCount: 100, Buffer: 0},
			want: Range{Start: 0, End: 2},
		},
		{
			name: "bottom of the list",
			p:    Params{ScrollOffset: 49500, ContainerHeight: 500, ItemHeight: 50, ItemCount: 1000, Buffer: 3},
			want: Range{Start: 987, End: 999},
		},
		{
			name: "negative buffer treated as zero",
			p:    Params{ScrollOffset: 100, ContainerHeight: 100, ItemHeight: 50, ItemCount: 100, Buffer: -4},
			want: Range{Start: 2, End: 3},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Compute(tc.p))
		})
	}
}

func TestCompute_EmptyAndInvalid(t *testing.T) {
	tests := []struct {
		name string
		p    Params
	}{
		{"empty collection", Params{ContainerHeight: 500, ItemHeight: 50}},
		{"zero item height", Params{ContainerHeight: 500, ItemHeight: 0, ItemCount: 10}},
		{"negative item height", Params{ContainerHeight: 500, ItemHeight: -5, ItemCount: 10}},
		{"negative container", Params{ContainerHeight: -1, ItemHeight: 50, ItemCount: 10}},
		{"unmounted container", Params{ContainerHeight: 0, ItemHeight: 50, ItemCount: 10}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := Compute(tc.p)
			assert.Equal(t, EmptyRange, r)
			assert.True(t, r.IsEmpty())
			assert.Zero(t, r.Len())
		})
	}
}

func TestCompute_Boundedness(t *testing.T) {
	offsets := []int{-1 << 20, -5000, -51, -1, 0, 1, 49, 50, 999, 49999, 50000, 1 << 20}
	counts := []int{1, 2, 7, 1000}
	for _, count := range counts {
		for _, off := range offsets {
			for buf := 0; buf <= 5; buf++ {
				r := Compute(Params{ScrollOffset: off, ContainerHeight: 500, ItemHeight: 50, ItemCount: count, Buffer: buf})
				require.False(t, r.IsEmpty(), "count=%d off=%d", count, off)
				require.GreaterOrEqual(t, r.Start, 0)
				require.LessOrEqual(t, r.Start, r.End)
				require.LessOrEqual(t, r.End, count-1)
				require.LessOrEqual(t, r.Len(), VisibleCount(500, 50)+2*buf)
			}
		}
	}
}

func TestCompute_StartIsMonotonic(t *testing.T) {
	for _, buf := range []int{0, 3, 5} {
		prev := -1
		for off := -200; off <= 60000; off += 7 {
			r := Compute(Params{ScrollOffset: off, ContainerHeight: 500, ItemHeight: 50, ItemCount: 1000, Buffer: buf})
			require.GreaterOrEqual(t, r.Start, prev, "buffer=%d offset=%d", buf, off)
			prev = r.Start
		}
	}
}

func TestCompute_CoversViewport(t *testing.T) {
	const (
		itemHeight = 7
		container  = 40
		count      = 300
	)
	for buf := 0; buf <= 4; buf++ {
		for off := 0; off <= count*itemHeight-container; off++ {
			r := Compute(Params{ScrollOffset: off, ContainerHeight: container, ItemHeight: itemHeight, ItemCount: count, Buffer: buf})
			for i := 0; i < count; i++ {
				top := i * itemHeight
				bottom := top + itemHeight
				// Any row intersecting [off, off+container) must be materialized.
				if bottom > off && top < off+container {
					require.True(t, r.Contains(i), "buf=%d off=%d row=%d window=%v", buf, off, i, r)
				}
				// With a buffer, even a row starting on the bottom edge is covered.
				if buf >= 1 && top >= off && top <= off+container {
					require.True(t, r.Contains(i), "buf=%d off=%d row=%d window=%v", buf, off, i, r)
				}
			}
		}
	}
}

func TestCompute_Idempotent(t *testing.T) {
	p := Params{ScrollOffset: 1234, ContainerHeight: 321, ItemHeight: 9, ItemCount: 555, Buffer: 4}
	first := Compute(p)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Compute(p))
	}
}

func TestVisibleCount(t *testing.T) {
	assert.Equal(t, 11, VisibleCount(500, 50))
	assert.Equal(t, 12, VisibleCount(501, 50))
	assert.Zero(t, VisibleCount(0, 50))
	assert.Zero(t, VisibleCount(500, 0))
}

func TestRange_Contains(t *testing.T) {
	r := Range{Start: 3, End: 5}
	assert.False(t, r.Contains(2))
	assert.True(t, r.Contains(3))
	assert.True(t, r.Contains(5))
	assert.False(t, r.Contains(6))
	assert.False(t, EmptyRange.Contains(-1))
}

func TestFloorCeilDiv(t *testing.T) {
	cases := []struct{ a, b, floor, ceil int }{
		{7, 2, 3, 4},
		{-7, 2, -4, -3},
		{6, 3, 2, 2},
		{-6, 3, -2, -2},
		{0, 5, 0, 0},
	}
	for _, c := range cases {
		t.Run(fmt.Sprintf("%d/%d", c.a, c.b), func(t *testing.T) {
			assert.Equal(t, c.floor, floorDiv(c.a, c.b))
			assert.Equal(t, c.ceil, ceilDiv(c.a, c.b))
		})
	}
}
