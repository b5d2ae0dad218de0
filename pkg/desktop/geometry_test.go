package desktop

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegionAddDeduplicatesAndDropsEmpty(t *testing.T) {
	var reg Region
	reg.Add(Rect{X: 0, Y: 0, Width: 4, Height: 2})
	reg.Add(Rect{X: 0, Y: 0, Width: 4, Height: 2})
	reg.Add(Rect{X: 2, Y: 1, Width: 0, Height: 5})
	reg.Add(Rect{X: 5, Y: 5, Width: 2, Height: 1})

	require.Equal(t, []Rect{
		{X: 0, Y: 0, Width: 4, Height: 2},
		{X: 5, Y: 5, Width: 2, Height: 1},
	}, reg.Rects())
}

func TestRegionIsEmpty(t *testing.T) {
	var reg Region
	require.True(t, reg.IsEmpty())

	reg.Add(Rect{X: 0, Y: 0, Width: 1, Height: 1})
	require.False(t, reg.IsEmpty())
}

func TestRectIntersects(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	b := Rect{X: 5, Y: 5, Width: 10, Height: 10}
	c := Rect{X: 20, Y: 20, Width: 5, Height: 5}

	require.True(t, a.Intersects(b))
	require.False(t, a.Intersects(c))
	require.False(t, a.Intersects(Rect{}))
}

func TestFrameRectDataRespectsStride(t *testing.T) {
	f := NewFrame(4, 2, PixelFormatBGRA32)
	// pad the stride artificially to simulate capture-side alignment.
	f.Stride = 20
	f.Data = make([]byte, int(f.Stride)*int(f.Height))
	for i := range f.Data {
		f.Data[i] = byte(i)
	}

	rows := f.RectData(Rect{X: 1, Y: 0, Width: 2, Height: 2})
	require.Len(t, rows, 2)
	require.Equal(t, f.Data[4:12], rows[0])
	require.Equal(t, f.Data[24:32], rows[1])
}
