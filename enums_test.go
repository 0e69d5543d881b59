package libretro_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/libretro"
)

func TestPixelFormatFromCode(t *testing.T) {
	tests := []struct {
		name    string
		code    uint32
		want    libretro.PixelFormat
		wantErr bool
	}{
		{name: "0RGB1555", code: 0, want: libretro.Pixel0RGB1555},
		{name: "XRGB8888", code: 1, want: libretro.PixelXRGB8888},
		{name: "RGB565", code: 2, want: libretro.PixelRGB565},
		{name: "unknown", code: 3, wantErr: true},
		{name: "garbage", code: 0xFFFF, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := libretro.PixelFormatFromCode(tt.code)
			if tt.wantErr {
				require.ErrorIs(t, err, libretro.ErrUnknownCode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPixelFormatBytesPerPixel(t *testing.T) {
	assert.Equal(t, 2, libretro.Pixel0RGB1555.BytesPerPixel())
	assert.Equal(t, 4, libretro.PixelXRGB8888.BytesPerPixel())
	assert.Equal(t, 2, libretro.PixelRGB565.BytesPerPixel())
}

func TestDeviceFromCode(t *testing.T) {
	dev, err := libretro.DeviceFromCode(1)
	require.NoError(t, err)
	assert.Equal(t, libretro.DeviceJoypad, dev)

	dev, err = libretro.DeviceFromCode(6)
	require.NoError(t, err)
	assert.Equal(t, libretro.DevicePointer, dev)

	_, err = libretro.DeviceFromCode(7)
	require.ErrorIs(t, err, libretro.ErrUnknownCode)
}

func TestMemoryIDFromCode(t *testing.T) {
	id, err := libretro.MemoryIDFromCode(0)
	require.NoError(t, err)
	assert.Equal(t, libretro.MemorySaveRAM, id)

	id, err = libretro.MemoryIDFromCode(3)
	require.NoError(t, err)
	assert.Equal(t, libretro.MemoryVideoRAM, id)

	_, err = libretro.MemoryIDFromCode(4)
	require.ErrorIs(t, err, libretro.ErrUnknownCode)
}

func TestLanguageFromCode(t *testing.T) {
	lang, err := libretro.LanguageFromCode(0)
	require.NoError(t, err)
	assert.Equal(t, libretro.LangEnglish, lang)

	lang, err = libretro.LanguageFromCode(23)
	require.NoError(t, err)
	assert.Equal(t, libretro.LangFinnish, lang)

	_, err = libretro.LanguageFromCode(24)
	require.ErrorIs(t, err, libretro.ErrUnknownCode)
}

func TestEnumStrings(t *testing.T) {
	assert.Equal(t, "RGB565", libretro.PixelRGB565.String())
	assert.Equal(t, "joypad", libretro.DeviceJoypad.String())
	assert.Equal(t, "save-ram", libretro.MemorySaveRAM.String())
	assert.Equal(t, "PAL", libretro.RegionPAL.String())
	assert.Equal(t, "NTSC", libretro.RegionNTSC.String())
	assert.Equal(t, "unloaded", libretro.StateUnloaded.String())
	assert.Equal(t, "defunct", libretro.StateDefunct.String())
}

func TestSystemInfoExtensionString(t *testing.T) {
	si := libretro.SystemInfo{ValidExtensions: []string{"smc", "sfc", "fig"}}
	assert.Equal(t, "smc|sfc|fig", si.ExtensionString())
	assert.Empty(t, libretro.SystemInfo{}.ExtensionString())
}

func TestFormatVariable(t *testing.T) {
	assert.Equal(t, "Speed; 1|2|4", libretro.FormatVariable("Speed", "1", "2", "4"))
	assert.Equal(t, "Skin; classic", libretro.FormatVariable("Skin", "classic"))
}
