package ffi

// APIVersion is the libretro API revision reported by retro_api_version.
// The protocol has kept this at 1 since its inception; compatibility is
// negotiated per-command through the environment callback instead.
const APIVersion = 1

// EnvExperimental flags a command code as experimental. Frontends that do
// not recognise an experimental command must return false from the
// environment callback rather than act on it.
const EnvExperimental = 0x10000

// EnvPrivate marks frontend-private command space.
const EnvPrivate = 0x20000

// Environment command codes. Values are fixed by the protocol and must
// never be renumbered.
const (
	EnvSetRotation              = 1
	EnvGetOverscan              = 2
	EnvGetCanDupe               = 3
	EnvSetMessage               = 6
	EnvShutdown                 = 7
	EnvSetPerformanceLevel      = 8
	EnvGetSystemDirectory       = 9
	EnvSetPixelFormat           = 10
	EnvSetInputDescriptors      = 11
	EnvSetDiskControlInterface  = 13
	EnvGetVariable              = 15
	EnvSetVariables             = 16
	EnvGetVariableUpdate        = 17
	EnvSetSupportNoGame         = 18
	EnvGetLibretroPath          = 19
	EnvSetFrameTimeCallback     = 21
	EnvGetRumbleInterface       = 23
	EnvGetInputDeviceCaps       = 24
	EnvGetLogInterface          = 27
	EnvGetPerfInterface         = 28
	EnvGetCoreAssetsDirectory   = 30
	EnvGetSaveDirectory         = 31
	EnvSetSystemAVInfo          = 32
	EnvSetSubsystemInfo         = 34
	EnvSetControllerInfo        = 35
	EnvSetMemoryMaps            = 36 | EnvExperimental
	EnvSetGeometry              = 37
	EnvGetUsername              = 38
	EnvGetLanguage              = 39
	EnvSetSupportAchievements   = 42 | EnvExperimental
	EnvGetAudioVideoEnable      = 47 | EnvExperimental
	EnvGetFastforwarding        = 49 | EnvExperimental
	EnvGetInputBitmasks         = 51 | EnvExperimental
	EnvGetCoreOptionsVersion    = 52
	EnvSetCoreOptions           = 53
	EnvSetCoreOptionsIntl       = 54
	EnvSetCoreOptionsDisplay    = 55 | EnvExperimental
	EnvGetDiskControlIfaceVer   = 57
	EnvSetDiskControlExtIface   = 58
	EnvGetMessageInterfaceVer   = 59
	EnvSetMessageExt            = 60
)

// Input device classes.
const (
	DeviceNone     = 0
	DeviceJoypad   = 1
	DeviceMouse    = 2
	DeviceKeyboard = 3
	DeviceLightgun = 4
	DeviceAnalog   = 5
	DevicePointer  = 6
)

// RetroPad button IDs (device RETRO_DEVICE_JOYPAD).
const (
	DeviceIDJoypadB      = 0
	DeviceIDJoypadY      = 1
	DeviceIDJoypadSelect = 2
	DeviceIDJoypadStart  = 3
	DeviceIDJoypadUp     = 4
	DeviceIDJoypadDown   = 5
	DeviceIDJoypadLeft   = 6
	DeviceIDJoypadRight  = 7
	DeviceIDJoypadA      = 8
	DeviceIDJoypadX      = 9
	DeviceIDJoypadL      = 10
	DeviceIDJoypadR      = 11
	DeviceIDJoypadL2     = 12
	DeviceIDJoypadR2     = 13
	DeviceIDJoypadL3     = 14
	DeviceIDJoypadR3     = 15
	DeviceIDJoypadMask   = 256
)

// Framebuffer pixel formats negotiated via EnvSetPixelFormat.
const (
	PixelFormat0RGB1555 = 0
	PixelFormatXRGB8888 = 1
	PixelFormatRGB565   = 2
)

// Memory region IDs for retro_get_memory_data/size.
const (
	MemorySaveRAM   = 0
	MemoryRTC       = 1
	MemorySystemRAM = 2
	MemoryVideoRAM  = 3
)

// Region codes returned by retro_get_region.
const (
	RegionNTSC = 0
	RegionPAL  = 1
)

// Frontend languages reported by EnvGetLanguage.
const (
	LanguageEnglish            = 0
	LanguageJapanese           = 1
	LanguageFrench             = 2
	LanguageSpanish            = 3
	LanguageGerman             = 4
	LanguageItalian            = 5
	LanguageDutch              = 6
	LanguagePortugueseBrazil   = 7
	LanguagePortuguesePortugal = 8
	LanguageRussian            = 9
	LanguageKorean             = 10
	LanguageChineseTraditional = 11
	LanguageChineseSimplified  = 12
	LanguageEsperanto          = 13
	LanguagePolish             = 14
	LanguageVietnamese         = 15
	LanguageArabic             = 16
	LanguageGreek              = 17
	LanguageTurkish            = 18
	LanguageSlovak             = 19
	LanguagePersian            = 20
	LanguageHebrew             = 21
	LanguageAsturian           = 22
	LanguageFinnish            = 23
	LanguageLast               = 24
)

// Log levels used by the frontend log interface.
const (
	LogDebug = 0
	LogInfo  = 1
	LogWarn  = 2
	LogError = 3
)

// Routing targets for EnvSetMessageExt.
const (
	MessageTargetAll = 0
	MessageTargetOSD = 1
	MessageTargetLog = 2
)

// Presentation types for EnvSetMessageExt.
const (
	MessageTypeNotification    = 0
	MessageTypeNotificationAlt = 1
	MessageTypeStatus          = 2
	MessageTypeProgress        = 3
)

// Bits reported by EnvGetAudioVideoEnable.
const (
	AVEnableVideo            = 1 << 0
	AVEnableAudio            = 1 << 1
	AVEnableFastSavestates   = 1 << 2
	AVEnableHardDisableAudio = 1 << 3
)
