package libretro

import "strings"

// SystemInfo describes a core to the frontend before any content is
// loaded. The values are static for the lifetime of the loaded module.
type SystemInfo struct {
	// LibraryName is the human-readable core name, e.g. "chip8-go".
	LibraryName string

	// LibraryVersion is the core's own version string.
	LibraryVersion string

	// ValidExtensions lists the content file extensions the core
	// accepts, without leading dots. They cross the boundary as the
	// protocol's pipe-delimited string.
	ValidExtensions []string

	// NeedFullpath asks the frontend to pass a filesystem path instead
	// of loading content into memory.
	NeedFullpath bool

	// BlockExtract stops the frontend from extracting archives before
	// handing content over, for cores that parse archives themselves.
	BlockExtract bool
}

// ExtensionString returns ValidExtensions in the protocol's
// pipe-delimited form ("smc|sfc").
func (si SystemInfo) ExtensionString() string {
	return strings.Join(si.ValidExtensions, "|")
}

// GameGeometry declares the core's video dimensions.
type GameGeometry struct {
	BaseWidth   uint32
	BaseHeight  uint32
	MaxWidth    uint32
	MaxHeight   uint32
	AspectRatio float32
}

// SystemTiming declares the core's frame rate and audio sample rate.
type SystemTiming struct {
	FPS        float64
	SampleRate float64
}

// SystemAVInfo combines geometry and timing. It is produced once per
// loaded game and stays fixed until the game is unloaded or the core
// renegotiates geometry through the environment bridge.
type SystemAVInfo struct {
	Geometry GameGeometry
	Timing   SystemTiming
}

// GameInfo describes content handed to LoadGame. Data is a copy owned by
// the Go side, but by protocol convention it is only meaningful during
// the load call; cores that keep content around should retain their own
// reference deliberately.
type GameInfo struct {
	// Path is the content's filesystem path. Empty when the frontend
	// loaded the data itself, or when no content is used at all.
	Path string

	// Data holds the raw content bytes. Nil when NeedFullpath was
	// requested or the core runs without content.
	Data []byte

	// Meta carries frontend-specific metadata, usually empty.
	Meta string
}
