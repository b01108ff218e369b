package common

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// PixelsPerUnit maps one world unit (one level tile) to screen pixels.
	PixelsPerUnit = 32
)
