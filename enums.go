package libretro

import (
	"fmt"

	"github.com/opd-ai/libretro/ffi"
)

// PixelFormat identifies the framebuffer encoding negotiated with the
// frontend via Environment.SetPixelFormat.
type PixelFormat uint32

const (
	Pixel0RGB1555 PixelFormat = ffi.PixelFormat0RGB1555
	PixelXRGB8888 PixelFormat = ffi.PixelFormatXRGB8888
	PixelRGB565   PixelFormat = ffi.PixelFormatRGB565
)

// BytesPerPixel returns the storage width of one pixel.
func (p PixelFormat) BytesPerPixel() int {
	if p == PixelXRGB8888 {
		return 4
	}
	return 2
}

func (p PixelFormat) String() string {
	switch p {
	case Pixel0RGB1555:
		return "0RGB1555"
	case PixelXRGB8888:
		return "XRGB8888"
	case PixelRGB565:
		return "RGB565"
	}
	return fmt.Sprintf("PixelFormat(%d)", uint32(p))
}

// PixelFormatFromCode maps a raw protocol value to a PixelFormat.
// Unknown values are rejected, never coerced.
func PixelFormatFromCode(v uint32) (PixelFormat, error) {
	switch v {
	case ffi.PixelFormat0RGB1555, ffi.PixelFormatXRGB8888, ffi.PixelFormatRGB565:
		return PixelFormat(v), nil
	}
	return 0, fmt.Errorf("%w: pixel format %d", ErrUnknownCode, v)
}

// Device identifies an input device class on a controller port.
type Device uint32

const (
	DeviceNone     Device = ffi.DeviceNone
	DeviceJoypad   Device = ffi.DeviceJoypad
	DeviceMouse    Device = ffi.DeviceMouse
	DeviceKeyboard Device = ffi.DeviceKeyboard
	DeviceLightgun Device = ffi.DeviceLightgun
	DeviceAnalog   Device = ffi.DeviceAnalog
	DevicePointer  Device = ffi.DevicePointer
)

func (d Device) String() string {
	switch d {
	case DeviceNone:
		return "none"
	case DeviceJoypad:
		return "joypad"
	case DeviceMouse:
		return "mouse"
	case DeviceKeyboard:
		return "keyboard"
	case DeviceLightgun:
		return "lightgun"
	case DeviceAnalog:
		return "analog"
	case DevicePointer:
		return "pointer"
	}
	return fmt.Sprintf("Device(%d)", uint32(d))
}

// DeviceFromCode maps a raw protocol value to a Device. Frontends may
// pass subclassed device IDs (base class in the low byte); the base
// class is what cores dispatch on.
func DeviceFromCode(v uint32) (Device, error) {
	if v > ffi.DevicePointer {
		return 0, fmt.Errorf("%w: device %d", ErrUnknownCode, v)
	}
	return Device(v), nil
}

// JoypadButton is a RetroPad button ID for input-state queries.
type JoypadButton uint32

const (
	JoypadB      JoypadButton = ffi.DeviceIDJoypadB
	JoypadY      JoypadButton = ffi.DeviceIDJoypadY
	JoypadSelect JoypadButton = ffi.DeviceIDJoypadSelect
	JoypadStart  JoypadButton = ffi.DeviceIDJoypadStart
	JoypadUp     JoypadButton = ffi.DeviceIDJoypadUp
	JoypadDown   JoypadButton = ffi.DeviceIDJoypadDown
	JoypadLeft   JoypadButton = ffi.DeviceIDJoypadLeft
	JoypadRight  JoypadButton = ffi.DeviceIDJoypadRight
	JoypadA      JoypadButton = ffi.DeviceIDJoypadA
	JoypadX      JoypadButton = ffi.DeviceIDJoypadX
	JoypadL      JoypadButton = ffi.DeviceIDJoypadL
	JoypadR      JoypadButton = ffi.DeviceIDJoypadR
	JoypadL2     JoypadButton = ffi.DeviceIDJoypadL2
	JoypadR2     JoypadButton = ffi.DeviceIDJoypadR2
	JoypadL3     JoypadButton = ffi.DeviceIDJoypadL3
	JoypadR3     JoypadButton = ffi.DeviceIDJoypadR3
)

// MemoryID names a core memory region exposed through
// retro_get_memory_data/size.
type MemoryID uint32

const (
	MemorySaveRAM   MemoryID = ffi.MemorySaveRAM
	MemoryRTC       MemoryID = ffi.MemoryRTC
	MemorySystemRAM MemoryID = ffi.MemorySystemRAM
	MemoryVideoRAM  MemoryID = ffi.MemoryVideoRAM
)

func (m MemoryID) String() string {
	switch m {
	case MemorySaveRAM:
		return "save-ram"
	case MemoryRTC:
		return "rtc"
	case MemorySystemRAM:
		return "system-ram"
	case MemoryVideoRAM:
		return "video-ram"
	}
	return fmt.Sprintf("MemoryID(%d)", uint32(m))
}

// MemoryIDFromCode maps a raw protocol value to a MemoryID.
func MemoryIDFromCode(v uint32) (MemoryID, error) {
	if v > ffi.MemoryVideoRAM {
		return 0, fmt.Errorf("%w: memory id %d", ErrUnknownCode, v)
	}
	return MemoryID(v), nil
}

// Region is the video standard a core reports for the loaded content.
type Region uint32

const (
	RegionNTSC Region = ffi.RegionNTSC
	RegionPAL  Region = ffi.RegionPAL
)

func (r Region) String() string {
	if r == RegionPAL {
		return "PAL"
	}
	return "NTSC"
}

// LogLevel classifies frontend-visible messages and log lines.
type LogLevel uint32

const (
	LogDebug LogLevel = ffi.LogDebug
	LogInfo  LogLevel = ffi.LogInfo
	LogWarn  LogLevel = ffi.LogWarn
	LogError LogLevel = ffi.LogError
)

func (l LogLevel) String() string {
	switch l {
	case LogDebug:
		return "debug"
	case LogInfo:
		return "info"
	case LogWarn:
		return "warn"
	case LogError:
		return "error"
	}
	return fmt.Sprintf("LogLevel(%d)", uint32(l))
}

// Language is the frontend UI language reported by the environment.
type Language uint32

const (
	LangEnglish            Language = ffi.LanguageEnglish
	LangJapanese           Language = ffi.LanguageJapanese
	LangFrench             Language = ffi.LanguageFrench
	LangSpanish            Language = ffi.LanguageSpanish
	LangGerman             Language = ffi.LanguageGerman
	LangItalian            Language = ffi.LanguageItalian
	LangDutch              Language = ffi.LanguageDutch
	LangPortugueseBrazil   Language = ffi.LanguagePortugueseBrazil
	LangPortuguesePortugal Language = ffi.LanguagePortuguesePortugal
	LangRussian            Language = ffi.LanguageRussian
	LangKorean             Language = ffi.LanguageKorean
	LangChineseTraditional Language = ffi.LanguageChineseTraditional
	LangChineseSimplified  Language = ffi.LanguageChineseSimplified
	LangEsperanto          Language = ffi.LanguageEsperanto
	LangPolish             Language = ffi.LanguagePolish
	LangVietnamese         Language = ffi.LanguageVietnamese
	LangArabic             Language = ffi.LanguageArabic
	LangGreek              Language = ffi.LanguageGreek
	LangTurkish            Language = ffi.LanguageTurkish
	LangSlovak             Language = ffi.LanguageSlovak
	LangPersian            Language = ffi.LanguagePersian
	LangHebrew             Language = ffi.LanguageHebrew
	LangAsturian           Language = ffi.LanguageAsturian
	LangFinnish            Language = ffi.LanguageFinnish
)

// LanguageFromCode maps a raw protocol value to a Language.
func LanguageFromCode(v uint32) (Language, error) {
	if v >= ffi.LanguageLast {
		return 0, fmt.Errorf("%w: language %d", ErrUnknownCode, v)
	}
	return Language(v), nil
}
