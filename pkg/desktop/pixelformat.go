package desktop

// PixelFormat describes how one pixel is laid out in memory: bits per
// pixel and, for each of the three colour channels, the channel's maximum
// value and its bit shift within the pixel word. This is the layout a
// VideoPacket's format descriptor names.
type PixelFormat struct {
	BitsPerPixel uint8

	RedMax, GreenMax, BlueMax          uint16
	RedShift, GreenShift, BlueShift uint8
}

// BytesPerPixel returns BitsPerPixel rounded up to a whole byte, the unit
// pkg/codec uses when sizing its translate buffer.
func (f PixelFormat) BytesPerPixel() int {
	return (int(f.BitsPerPixel) + 7) / 8
}

// PixelFormatBGRA32 is the 32-bit BGRA format the host demo passes to
// codec.NewVideoEncoderZstd as its target format.
var PixelFormatBGRA32 = PixelFormat{
	BitsPerPixel: 32,
	RedMax:       255, RedShift: 16,
	GreenMax: 255, GreenShift: 8,
	BlueMax: 255, BlueShift: 0,
}

// PixelFormatRGB565 is a common capture-side 16-bit format.
var PixelFormatRGB565 = PixelFormat{
	BitsPerPixel: 16,
	RedMax:       31, RedShift: 11,
	GreenMax: 63, GreenShift: 5,
	BlueMax: 31, BlueShift: 0,
}
