package ffi

// Pixel packing helpers for the three negotiable framebuffer formats.
// Each takes full 8-bit channels and truncates to the format's channel
// widths; cores write the results into their frame buffer in the
// platform's native byte order, which is what frontends expect.

// PackXRGB8888 packs channels into a 32-bit XRGB8888 pixel. The top
// byte is ignored by frontends.
func PackXRGB8888(r, g, b uint8) uint32 {
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// PackRGB565 packs channels into a 16-bit RGB565 pixel.
func PackRGB565(r, g, b uint8) uint16 {
	return uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3)
}

// Pack0RGB1555 packs channels into a 16-bit 0RGB1555 pixel. The top
// bit stays clear per the format's name.
func Pack0RGB1555(r, g, b uint8) uint16 {
	return uint16(r>>3)<<10 | uint16(g>>3)<<5 | uint16(b>>3)
}

// UnpackXRGB8888 splits a 32-bit XRGB8888 pixel back into channels.
func UnpackXRGB8888(px uint32) (r, g, b uint8) {
	return uint8(px >> 16), uint8(px >> 8), uint8(px)
}

// UnpackRGB565 splits a 16-bit RGB565 pixel back into channels,
// replicating the high bits so full-scale values survive a round trip.
func UnpackRGB565(px uint16) (r, g, b uint8) {
	r = uint8(px>>11) << 3
	g = uint8(px>>5&0x3F) << 2
	b = uint8(px&0x1F) << 3
	return r | r>>5, g | g>>6, b | b>>5
}

// Unpack0RGB1555 splits a 16-bit 0RGB1555 pixel back into channels.
func Unpack0RGB1555(px uint16) (r, g, b uint8) {
	r = uint8(px>>10&0x1F) << 3
	g = uint8(px>>5&0x1F) << 3
	b = uint8(px&0x1F) << 3
	return r | r>>5, g | g>>5, b | b>>5
}
