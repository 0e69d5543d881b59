package libretro_test

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/libretro"
	"github.com/opd-ai/libretro/envtest"
)

func newEnv(f *envtest.Frontend) *libretro.Environment {
	return libretro.NewEnvironment(f.Callback)
}

func TestEnvironmentNilCallbackIsInert(t *testing.T) {
	env := libretro.NewEnvironment(nil)

	assert.False(t, env.SetPixelFormat(libretro.PixelRGB565))
	assert.False(t, env.CanDupe())
	assert.False(t, env.Shutdown())
	_, ok := env.SystemDirectory()
	assert.False(t, ok)
	assert.Zero(t, env.CoreOptionsVersion())

	var nilEnv *libretro.Environment
	assert.False(t, nilEnv.Call(1, nil))
}

func TestEnvironmentPixelFormat(t *testing.T) {
	f := envtest.New()
	env := newEnv(f)

	require.True(t, env.SetPixelFormat(libretro.PixelRGB565))
	assert.True(t, f.PixelFormatSet)
	assert.Equal(t, uint32(libretro.PixelRGB565), f.PixelFormat)
}

func TestEnvironmentVariablesRoundTrip(t *testing.T) {
	f := envtest.New()
	env := newEnv(f)

	vars := []libretro.Variable{
		{Key: "core_speed", Value: libretro.FormatVariable("Speed", "1", "2", "4")},
		{Key: "core_skin", Value: libretro.FormatVariable("Skin", "classic", "dark")},
	}
	require.True(t, env.SetVariables(vars))
	require.Equal(t, vars, f.Options)

	// Registration seeds defaults; a get observes what the set wrote.
	v, ok := env.Variable("core_speed")
	require.True(t, ok)
	assert.Equal(t, "1", v)

	// No edit yet, so no update is pending.
	assert.False(t, env.VariableUpdate())

	f.SetValue("core_speed", "4")
	assert.True(t, env.VariableUpdate())
	assert.False(t, env.VariableUpdate(), "update flag is edge-triggered")

	v, ok = env.Variable("core_speed")
	require.True(t, ok)
	assert.Equal(t, "4", v)

	_, ok = env.Variable("core_missing")
	assert.False(t, ok)
}

func TestEnvironmentUnknownCommandLeavesPayloadUntouched(t *testing.T) {
	f := envtest.New()
	env := newEnv(f)

	payload := uint64(0xDEADBEEF)
	const bogusCmd = 9999

	assert.False(t, env.Call(bogusCmd, unsafe.Pointer(&payload)))
	assert.Equal(t, uint64(0xDEADBEEF), payload)
	assert.Equal(t, []uint32{bogusCmd}, f.Probes)
}

func TestEnvironmentDirectoriesAndUser(t *testing.T) {
	f := envtest.New()
	f.SystemDir = "/fe/system"
	f.SaveDir = "/fe/saves"
	f.AssetsDir = "/fe/assets"
	f.CorePath = "/fe/cores/fake_libretro.so"
	f.User = "player1"
	env := newEnv(f)

	dir, ok := env.SystemDirectory()
	require.True(t, ok)
	assert.Equal(t, "/fe/system", dir)

	dir, ok = env.SaveDirectory()
	require.True(t, ok)
	assert.Equal(t, "/fe/saves", dir)

	dir, ok = env.CoreAssetsDirectory()
	require.True(t, ok)
	assert.Equal(t, "/fe/assets", dir)

	path, ok := env.LibretroPath()
	require.True(t, ok)
	assert.Equal(t, "/fe/cores/fake_libretro.so", path)

	user, ok := env.Username()
	require.True(t, ok)
	assert.Equal(t, "player1", user)

	// An old frontend without a save directory answers unhandled.
	bare := envtest.New()
	_, ok = newEnv(bare).SaveDirectory()
	assert.False(t, ok)
}

func TestEnvironmentCapabilityQueries(t *testing.T) {
	f := envtest.New()
	f.AnswerCanDupe = true
	f.AnswerBitmasks = true
	f.AnswerFastforward = true
	f.AnswerAVEnable = 0b11
	f.AnswerInputCaps = 1 << uint32(libretro.DeviceJoypad)
	env := newEnv(f)

	assert.True(t, env.CanDupe())
	assert.True(t, env.InputBitmasks())

	ff, ok := env.Fastforwarding()
	require.True(t, ok)
	assert.True(t, ff)

	av, ok := env.AudioVideoEnable()
	require.True(t, ok)
	assert.Equal(t, uint32(0b11), av)

	caps, ok := env.InputDeviceCapabilities()
	require.True(t, ok)
	assert.NotZero(t, caps&(1<<uint32(libretro.DeviceJoypad)))

	conservative := newEnv(envtest.New())
	assert.False(t, conservative.CanDupe())
	assert.False(t, conservative.InputBitmasks())
}

func TestEnvironmentLanguage(t *testing.T) {
	f := envtest.New()
	f.Lang = uint32(libretro.LangJapanese)
	env := newEnv(f)

	lang, ok := env.Language()
	require.True(t, ok)
	assert.Equal(t, libretro.LangJapanese, lang)

	// Out-of-range answers fall back to English, reported as unknown.
	f.Lang = 9000
	lang, ok = env.Language()
	assert.False(t, ok)
	assert.Equal(t, libretro.LangEnglish, lang)
}

func TestEnvironmentGeometryAndAVInfo(t *testing.T) {
	f := envtest.New()
	env := newEnv(f)

	g := libretro.GameGeometry{BaseWidth: 256, BaseHeight: 224, MaxWidth: 512, MaxHeight: 448, AspectRatio: 8.0 / 7.0}
	require.True(t, env.SetGeometry(g))
	require.True(t, f.GeometrySet)
	assert.Equal(t, uint32(256), f.Geometry.BaseWidth)
	assert.Equal(t, float32(8.0/7.0), f.Geometry.AspectRatio)

	av := libretro.SystemAVInfo{
		Geometry: g,
		Timing:   libretro.SystemTiming{FPS: 60.0988, SampleRate: 32040.5},
	}
	require.True(t, env.SetSystemAVInfo(av))
	require.True(t, f.AVInfoSet)
	assert.Equal(t, 60.0988, f.AVInfo.Timing.FPS)
}

func TestEnvironmentSessionAnnouncements(t *testing.T) {
	f := envtest.New()
	env := newEnv(f)

	require.True(t, env.SetRotation(3))
	assert.Equal(t, uint32(3), f.Rotation)

	require.True(t, env.SetPerformanceLevel(7))
	assert.Equal(t, uint32(7), f.PerformanceLevel)

	require.True(t, env.SetSupportNoGame(true))
	assert.True(t, f.SupportsNoGame)

	require.True(t, env.SetSupportAchievements(true))
	assert.True(t, f.Achievements)

	require.True(t, env.ShowMessage("hello", 120))
	assert.Equal(t, []string{"hello"}, f.Messages)

	require.True(t, env.Shutdown())
	assert.True(t, f.ShutdownSeen)
}

func TestEnvironmentShowMessageExt(t *testing.T) {
	t.Run("versioned frontend gets the full message", func(t *testing.T) {
		f := envtest.New()
		f.AnswerMessageVersion = 1
		env := newEnv(f)

		msg := libretro.MessageExt{
			Text:       "disc 2 inserted",
			DurationMs: 3000,
			Priority:   5,
			Level:      libretro.LogInfo,
			Target:     libretro.MessageTargetOSD,
			Type:       libretro.MessageTypeNotification,
			Progress:   -1,
		}
		require.True(t, env.ShowMessageExt(msg))
		require.Equal(t, []libretro.MessageExt{msg}, f.MessageExts)
		assert.Empty(t, f.Messages)
	})

	t.Run("v0 frontend falls back to plain message", func(t *testing.T) {
		f := envtest.New()
		env := newEnv(f)

		require.True(t, env.ShowMessageExt(libretro.MessageExt{Text: "hello", DurationMs: 1000}))
		assert.Equal(t, []string{"hello"}, f.Messages)
		assert.Empty(t, f.MessageExts)
	})
}

func TestEnvironmentInterfaceVersionQueries(t *testing.T) {
	f := envtest.New()
	f.AnswerMessageVersion = 1
	env := newEnv(f)

	v, ok := env.MessageInterfaceVersion()
	require.True(t, ok)
	assert.Equal(t, uint32(1), v)

	// The fake frontend leaves disk control and rumble unanswered.
	_, ok = env.DiskControlInterfaceVersion()
	assert.False(t, ok)
	_, ok = env.RumbleInterface()
	assert.False(t, ok)
}

func TestEnvironmentInputDescriptors(t *testing.T) {
	f := envtest.New()
	env := newEnv(f)

	descs := []libretro.InputDescriptor{
		{Port: 0, Device: libretro.DeviceJoypad, ID: uint32(libretro.JoypadA), Description: "Jump"},
		{Port: 0, Device: libretro.DeviceJoypad, ID: uint32(libretro.JoypadB), Description: "Fire"},
	}
	require.True(t, env.SetInputDescriptors(descs))
	require.Equal(t, descs, f.Descriptors)
}

func TestEnvironmentControllerInfo(t *testing.T) {
	f := envtest.New()
	env := newEnv(f)

	ports := [][]libretro.ControllerDescription{
		{
			{Desc: "Gamepad", ID: uint32(libretro.DeviceJoypad)},
			{Desc: "Analog Gamepad", ID: uint32(libretro.DeviceAnalog)},
		},
		{
			{Desc: "Gamepad", ID: uint32(libretro.DeviceJoypad)},
		},
	}
	require.True(t, env.SetControllerInfo(ports))
	require.Equal(t, ports, f.Controllers)
}

func TestEnvironmentControllerInfoEmptyPort(t *testing.T) {
	f := envtest.New()
	env := newEnv(f)

	// A port with no selectable devices must not truncate the ports
	// after it.
	ports := [][]libretro.ControllerDescription{
		{{Desc: "Gamepad", ID: uint32(libretro.DeviceJoypad)}},
		{},
		{{Desc: "Light Gun", ID: uint32(libretro.DeviceLightgun)}},
	}
	require.True(t, env.SetControllerInfo(ports))
	require.Len(t, f.Controllers, 3)
	assert.Empty(t, f.Controllers[1])
	assert.Equal(t, ports[0], f.Controllers[0])
	assert.Equal(t, ports[2], f.Controllers[2])
}

func TestEnvironmentCoreOptionsVersionGating(t *testing.T) {
	t.Run("v0 frontend refuses option display locally", func(t *testing.T) {
		f := envtest.New()
		f.AnswerOptionsVersion = 0
		env := newEnv(f)

		assert.Zero(t, env.CoreOptionsVersion())
		assert.False(t, env.SetCoreOptionDisplay("core_speed", false))
		// The refusal is local: the frontend never saw the command.
		assert.Empty(t, f.HiddenOptions)
	})

	t.Run("v1 frontend accepts option display", func(t *testing.T) {
		f := envtest.New()
		f.AnswerOptionsVersion = 1
		env := newEnv(f)

		assert.Equal(t, uint32(1), env.CoreOptionsVersion())
		require.True(t, env.SetCoreOptionDisplay("core_speed", false))
		assert.True(t, f.HiddenOptions["core_speed"])
	})

	t.Run("answer is cached for the session", func(t *testing.T) {
		f := envtest.New()
		f.AnswerOptionsVersion = 2
		env := newEnv(f)

		require.Equal(t, uint32(2), env.CoreOptionsVersion())
		f.AnswerOptionsVersion = 0
		assert.Equal(t, uint32(2), env.CoreOptionsVersion())
	})
}
