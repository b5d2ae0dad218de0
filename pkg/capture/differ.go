package capture

import "github.com/aspia-go/core/pkg/desktop"

// DefaultBlockSize is the edge length of the square blocks RegionDiffer
// compares; a changed pixel anywhere in a block marks the whole block
// dirty. This is a reference/test differ, not a platform-tuned one.
const DefaultBlockSize = 32

// RegionDiffer computes the dirty Region between two same-sized,
// same-format frames by comparing fixed-size blocks of pixel bytes.
type RegionDiffer struct {
	blockSize int32
}

// NewRegionDiffer builds a RegionDiffer with the given block size in
// pixels. A blockSize <= 0 uses DefaultBlockSize.
func NewRegionDiffer(blockSize int32) *RegionDiffer {
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}
	return &RegionDiffer{blockSize: blockSize}
}

// Diff returns the Region covering every block where prev and cur differ.
// prev and cur must share Width, Height, Stride and Format; Diff panics
// (via index out of range) on mismatched dimensions, since a capturer
// producing mismatched frames back-to-back is a caller bug, not a runtime
// condition to recover from.
func (d *RegionDiffer) Diff(prev, cur *desktop.Frame) desktop.Region {
	var region desktop.Region
	bpp := cur.Format.BytesPerPixel()

	for y := int32(0); y < cur.Height; y += d.blockSize {
		blockHeight := d.blockSize
		if y+blockHeight > cur.Height {
			blockHeight = cur.Height - y
		}
		for x := int32(0); x < cur.Width; x += d.blockSize {
			blockWidth := d.blockSize
			if x+blockWidth > cur.Width {
				blockWidth = cur.Width - x
			}

			if blockChanged(prev, cur, x, y, blockWidth, blockHeight, bpp) {
				region.Add(desktop.Rect{X: x, Y: y, Width: blockWidth, Height: blockHeight})
			}
		}
	}

	return region
}

func blockChanged(prev, cur *desktop.Frame, x, y, width, height int32, bpp int) bool {
	rowBytes := int(width) * bpp
	for row := int32(0); row < height; row++ {
		prevStart := int(y+row)*int(prev.Stride) + int(x)*bpp
		curStart := int(y+row)*int(cur.Stride) + int(x)*bpp

		prevRow := prev.Data[prevStart : prevStart+rowBytes]
		curRow := cur.Data[curStart : curStart+rowBytes]

		for i := range curRow {
			if prevRow[i] != curRow[i] {
				return true
			}
		}
	}
	return false
}
