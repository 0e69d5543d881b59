package libretro

// CoreProvider is what a core author registers with the trampoline. It
// describes the core before content exists and constructs a Core when
// the frontend loads a game.
type CoreProvider interface {
	// SystemInfo must return the same values on every call; frontends
	// query it before retro_init and cache it.
	SystemInfo() SystemInfo

	// LoadGame builds a running core instance for the given content.
	// The environment is valid for the whole session and may be
	// retained by the returned Core. Returning an error refuses the
	// load; the frontend sees a plain failure.
	LoadGame(game GameInfo, env *Environment) (Core, error)
}

// NoContentProvider is implemented by providers that can start without
// any content, after negotiating support-no-game with the frontend.
type NoContentProvider interface {
	LoadWithoutGame(env *Environment) (Core, error)
}

// OptionProvider is implemented by providers that publish core options.
// The trampoline registers them with the frontend as soon as the
// environment channel exists, before retro_init.
type OptionProvider interface {
	Variables() []Variable
}

// Core is one loaded instance of a game/emulation session. Exactly one
// Core is live per handle, between load_game and unload_game.
type Core interface {
	// AVInfo reports the geometry and timing for the loaded content.
	// The values must stay fixed until Unload, unless the core itself
	// renegotiates via Environment.SetGeometry or SetSystemAVInfo.
	AVInfo() SystemAVInfo

	// Run produces exactly one frame: poll input through cb, mutate
	// state, then emit video and audio through cb. It must not block.
	Run(cb *Callbacks)

	// Reset performs the equivalent of a console reset button press.
	Reset()

	// Unload releases any resources tied to the loaded content. The
	// instance is discarded afterwards.
	Unload()
}

// Serializer is implemented by cores that support save states.
type Serializer interface {
	// SerializeSize reports the byte size of a serialized state. While
	// a game is loaded the size must never grow past a previously
	// reported value, so frontends can allocate once.
	SerializeSize() int

	// Serialize writes the complete state into buf, which is exactly
	// SerializeSize bytes long.
	Serialize(buf []byte) error

	// Unserialize restores state previously produced by Serialize.
	Unserialize(buf []byte) error
}

// MemoryMapper is implemented by cores that expose memory regions
// (save RAM, system RAM) to the frontend.
type MemoryMapper interface {
	// MemoryRegion returns the region's current contents, or nil if the
	// core has no such region. The returned slice is read by the
	// trampoline during the producing call only.
	MemoryRegion(id MemoryID) []byte

	// WriteMemoryRegion replaces the region's contents, used when the
	// frontend restores save RAM. Data it does not recognise is
	// ignored.
	WriteMemoryRegion(id MemoryID, data []byte)
}

// CheatHandler is implemented by cores that apply cheat codes.
type CheatHandler interface {
	CheatReset()
	CheatSet(index uint32, enabled bool, code string)
}

// PortDeviceAware is implemented by cores that care which device class
// the frontend plugs into a controller port.
type PortDeviceAware interface {
	SetPortDevice(port uint32, device Device)
}

// RegionReporter is implemented by cores whose content can be PAL.
// Without it the trampoline reports NTSC.
type RegionReporter interface {
	Region() Region
}
