package desktop

// Frame is a single captured desktop image: pixel data in row-major order,
// a stride (bytes per row, which may exceed Width*BytesPerPixel to account
// for capture-side alignment padding), a PixelFormat, and the dirty Region
// computed against the previously captured frame.
type Frame struct {
	Width, Height int32
	Stride        int32
	Format        PixelFormat
	Data          []byte
	Dirty         Region
}

// NewFrame allocates a Frame with a tightly packed stride
// (Width*BytesPerPixel) and zeroed pixel data.
func NewFrame(width, height int32, format PixelFormat) *Frame {
	stride := width * int32(format.BytesPerPixel())
	return &Frame{
		Width:  width,
		Height: height,
		Stride: stride,
		Format: format,
		Data:   make([]byte, int(stride)*int(height)),
	}
}

// RectData returns the sub-slice of Data covering r, one row at a time,
// as a slice of row slices (each Width(r)*BytesPerPixel bytes), since rows
// are not contiguous in memory when Stride exceeds the tight row width.
func (f *Frame) RectData(r Rect) [][]byte {
	bpp := f.Format.BytesPerPixel()
	rows := make([][]byte, 0, r.Height)
	for y := r.Y; y < r.Bottom(); y++ {
		rowStart := int(y)*int(f.Stride) + int(r.X)*bpp
		rowEnd := rowStart + int(r.Width)*bpp
		rows = append(rows, f.Data[rowStart:rowEnd])
	}
	return rows
}
