package ffi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPackXRGB8888(t *testing.T) {
	assert.Equal(t, uint32(0x00FFFFFF), PackXRGB8888(0xFF, 0xFF, 0xFF))
	assert.Equal(t, uint32(0x00000000), PackXRGB8888(0, 0, 0))
	assert.Equal(t, uint32(0x00FF0000), PackXRGB8888(0xFF, 0, 0))
	assert.Equal(t, uint32(0x0000FF00), PackXRGB8888(0, 0xFF, 0))
	assert.Equal(t, uint32(0x000000FF), PackXRGB8888(0, 0, 0xFF))
}

func TestPackRGB565(t *testing.T) {
	assert.Equal(t, uint16(0xFFFF), PackRGB565(0xFF, 0xFF, 0xFF))
	assert.Equal(t, uint16(0x0000), PackRGB565(0, 0, 0))
	assert.Equal(t, uint16(0xF800), PackRGB565(0xFF, 0, 0))
	assert.Equal(t, uint16(0x07E0), PackRGB565(0, 0xFF, 0))
	assert.Equal(t, uint16(0x001F), PackRGB565(0, 0, 0xFF))
}

func TestPack0RGB1555(t *testing.T) {
	assert.Equal(t, uint16(0x7FFF), Pack0RGB1555(0xFF, 0xFF, 0xFF))
	assert.Equal(t, uint16(0x0000), Pack0RGB1555(0, 0, 0))
	assert.Equal(t, uint16(0x7C00), Pack0RGB1555(0xFF, 0, 0))
	assert.Equal(t, uint16(0x03E0), Pack0RGB1555(0, 0xFF, 0))
	assert.Equal(t, uint16(0x001F), Pack0RGB1555(0, 0, 0xFF))
}

func TestPixelRoundTrips(t *testing.T) {
	// Full-scale and zero channels survive a pack/unpack round trip in
	// every format; mid-range values round to the format's precision.
	for _, c := range [][3]uint8{{0, 0, 0}, {0xFF, 0xFF, 0xFF}, {0xFF, 0, 0xFF}} {
		r, g, b := UnpackXRGB8888(PackXRGB8888(c[0], c[1], c[2]))
		assert.Equal(t, c, [3]uint8{r, g, b})

		r, g, b = UnpackRGB565(PackRGB565(c[0], c[1], c[2]))
		assert.Equal(t, c, [3]uint8{r, g, b})

		r, g, b = Unpack0RGB1555(Pack0RGB1555(c[0], c[1], c[2]))
		assert.Equal(t, c, [3]uint8{r, g, b})
	}
}
