package libretro

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/libretro/content"
)

// State is a position in the core lifecycle. The frontend drives the
// machine forward through the trampoline entry points; any call that is
// not legal in the current state is refused with ErrWrongState and the
// state is left untouched. That refusal is the whole point of this
// layer: what would be undefined behavior at the C level becomes a
// typed no.
type State int

const (
	// StateUnloaded is the initial state, before retro_init.
	StateUnloaded State = iota

	// StateInitialized means retro_init ran; the environment channel is
	// available and content can be loaded.
	StateInitialized

	// StateGameLoaded means content was accepted and AV info exists.
	StateGameLoaded

	// StateRunning means at least one frame ran since the last
	// load/reset/unserialize checkpoint.
	StateRunning

	// StateShutdown is terminal: retro_deinit ran and every further
	// call is refused.
	StateShutdown

	// StateDefunct is terminal: a core panic was caught at the
	// boundary; the instance can no longer be trusted and every
	// further call is refused.
	StateDefunct
)

func (s State) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateInitialized:
		return "initialized"
	case StateGameLoaded:
		return "game-loaded"
	case StateRunning:
		return "running"
	case StateShutdown:
		return "shutdown"
	case StateDefunct:
		return "defunct"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Handle is the single live instance of "the loaded core": the
// lifecycle state machine plus exclusive ownership of the user core.
// The trampoline owns exactly one Handle per process (the protocol is a
// non-reentrant singleton C ABI) and borrows the core to it for the
// duration of each entry point only.
//
// Handle is not safe for concurrent use; the protocol is synchronous
// and single-threaded by contract.
type Handle struct {
	provider CoreProvider
	state    State
	env      *Environment
	cb       Callbacks
	log      *logrus.Entry

	core       Core
	serializer Serializer
	memory     MemoryMapper
	cheats     CheatHandler
	ports      PortDeviceAware
	regions    RegionReporter

	// stateSize latches the first SerializeSize answer per loaded game;
	// the protocol forbids the size growing past it.
	stateSize int
}

// NewHandle wraps a provider in an unloaded lifecycle handle.
func NewHandle(provider CoreProvider) *Handle {
	return &Handle{
		provider: provider,
		state:    StateUnloaded,
		log: logrus.WithFields(logrus.Fields{
			"component": "lifecycle",
		}),
	}
}

// State returns the current lifecycle position.
func (h *Handle) State() State {
	return h.state
}

// Environment returns the negotiation channel, nil before the frontend
// registers one.
func (h *Handle) Environment() *Environment {
	return h.env
}

// FrameCallbacks exposes the callback bundle so the trampoline can fill
// in the frontend's function pointers as they arrive.
func (h *Handle) FrameCallbacks() *Callbacks {
	return &h.cb
}

// SetEnvironment stores the frontend's environment callback. The
// protocol delivers it before retro_init, so this is legal in
// StateUnloaded only, and only once per session.
func (h *Handle) SetEnvironment(call EnvCallback) error {
	if err := h.guard("set_environment", StateUnloaded); err != nil {
		return err
	}
	if h.env != nil {
		h.env.Close()
	}
	h.env = NewEnvironment(call)
	return nil
}

// SystemInfo reports the provider's static description. Legal in every
// state; frontends query it before retro_init.
func (h *Handle) SystemInfo() SystemInfo {
	if h.provider == nil {
		return SystemInfo{}
	}
	return h.provider.SystemInfo()
}

// Init moves Unloaded → Initialized.
func (h *Handle) Init() (err error) {
	defer h.recoverPanic("init", &err)
	if err := h.guard("init", StateUnloaded); err != nil {
		return err
	}
	if h.provider == nil {
		return fmt.Errorf("init: no core provider registered: %w", ErrWrongState)
	}
	h.state = StateInitialized
	h.log.WithField("core", h.provider.SystemInfo().LibraryName).Info("core initialized")
	return nil
}

// Deinit tears the session down from any live state. The handle is
// retired afterwards; a terminated session is never restarted.
func (h *Handle) Deinit() (err error) {
	defer h.recoverPanic("deinit", &err)
	if h.state == StateShutdown || h.state == StateDefunct {
		return ErrDefunct
	}
	if h.core != nil {
		h.core.Unload()
		h.dropCore()
	}
	if h.env != nil {
		h.env.Close()
	}
	h.state = StateShutdown
	h.log.Info("core deinitialized")
	return nil
}

// LoadGame moves Initialized → GameLoaded. A second load without an
// intervening UnloadGame is refused. If the frontend supplied only a
// path and the provider did not ask for full paths, the content is read
// (and, unless BlockExtract is set, un-archived) here.
func (h *Handle) LoadGame(game GameInfo) (err error) {
	defer h.recoverPanic("load_game", &err)
	if err := h.guard("load_game", StateInitialized); err != nil {
		return err
	}

	si := h.provider.SystemInfo()
	if game.Data == nil && game.Path == "" {
		return h.loadWithoutGame()
	}
	if game.Data == nil && game.Path != "" && !si.NeedFullpath {
		opts := content.Options{Extensions: si.ValidExtensions, RawOnly: si.BlockExtract}
		data, name, lerr := content.Load(game.Path, opts)
		if lerr != nil {
			return fmt.Errorf("loading content from %q: %w", game.Path, lerr)
		}
		game.Data = data
		h.log.WithFields(logrus.Fields{
			"path": game.Path,
			"file": name,
			"size": len(data),
		}).Debug("content loaded from path")
	}

	core, lerr := h.provider.LoadGame(game, h.env)
	if lerr != nil {
		h.log.WithError(lerr).Error("core refused content")
		return fmt.Errorf("load_game: %w", lerr)
	}
	h.adoptCore(core)
	h.log.WithFields(logrus.Fields{
		"path": game.Path,
		"size": len(game.Data),
	}).Info("game loaded")
	return nil
}

func (h *Handle) loadWithoutGame() error {
	nc, ok := h.provider.(NoContentProvider)
	if !ok {
		return ErrNoContent
	}
	core, err := nc.LoadWithoutGame(h.env)
	if err != nil {
		return fmt.Errorf("load_game (no content): %w", err)
	}
	h.adoptCore(core)
	h.log.Info("started without content")
	return nil
}

// adoptCore takes ownership of a freshly loaded core and probes its
// optional capabilities, eblitui-style.
func (h *Handle) adoptCore(core Core) {
	h.core = core
	h.serializer, _ = core.(Serializer)
	h.memory, _ = core.(MemoryMapper)
	h.cheats, _ = core.(CheatHandler)
	h.ports, _ = core.(PortDeviceAware)
	h.regions, _ = core.(RegionReporter)
	h.stateSize = 0
	h.state = StateGameLoaded
}

func (h *Handle) dropCore() {
	h.core = nil
	h.serializer = nil
	h.memory = nil
	h.cheats = nil
	h.ports = nil
	h.regions = nil
	h.stateSize = 0
}

// UnloadGame moves GameLoaded/Running → Initialized and discards the
// core instance. Borrowed views into core memory die with it.
func (h *Handle) UnloadGame() (err error) {
	defer h.recoverPanic("unload_game", &err)
	if err := h.guard("unload_game", StateGameLoaded, StateRunning); err != nil {
		return err
	}
	h.core.Unload()
	h.dropCore()
	h.state = StateInitialized
	h.log.Info("game unloaded")
	return nil
}

// Run produces exactly one frame and returns control to the frontend.
func (h *Handle) Run() (err error) {
	defer h.recoverPanic("run", &err)
	if err := h.guard("run", StateGameLoaded, StateRunning); err != nil {
		return err
	}
	h.state = StateRunning
	h.core.Run(&h.cb)
	return nil
}

// Reset re-enters the GameLoaded checkpoint without dropping AV info.
func (h *Handle) Reset() (err error) {
	defer h.recoverPanic("reset", &err)
	if err := h.guard("reset", StateGameLoaded, StateRunning); err != nil {
		return err
	}
	h.core.Reset()
	h.state = StateGameLoaded
	return nil
}

// AVInfo reports the loaded content's geometry and timing.
func (h *Handle) AVInfo() (SystemAVInfo, error) {
	if err := h.guard("get_system_av_info", StateGameLoaded, StateRunning); err != nil {
		return SystemAVInfo{}, err
	}
	return h.core.AVInfo(), nil
}

// SerializeSize reports the save-state size, or 0 when the core has no
// save-state support. Once reported for a loaded game the size is
// clamped so it can never grow, per protocol.
func (h *Handle) SerializeSize() (int, error) {
	if err := h.guard("serialize_size", StateGameLoaded, StateRunning); err != nil {
		return 0, err
	}
	if h.serializer == nil {
		return 0, nil
	}
	return h.latchedStateSize(), nil
}

// latchedStateSize reports the protocol-visible state size: the first
// value the serializer ever answered for this game, since the protocol
// forbids the size growing past it. Serialize and Unserialize validate
// buffers against this same value, so a frontend that allocated exactly
// the reported size always stays usable.
func (h *Handle) latchedStateSize() int {
	n := h.serializer.SerializeSize()
	if h.stateSize == 0 {
		h.stateSize = n
	} else if n > h.stateSize {
		n = h.stateSize
	}
	return n
}

// Serialize writes the core's state into buf. buf must be at least
// SerializeSize bytes.
func (h *Handle) Serialize(buf []byte) (err error) {
	defer h.recoverPanic("serialize", &err)
	if err := h.guard("serialize", StateGameLoaded, StateRunning); err != nil {
		return err
	}
	if h.serializer == nil {
		return ErrUnsupported
	}
	if len(buf) < h.latchedStateSize() {
		return ErrBufferSize
	}
	if err := h.serializer.Serialize(buf); err != nil {
		return fmt.Errorf("serialize: %w", err)
	}
	h.state = StateGameLoaded
	return nil
}

// Unserialize restores state from buf and re-enters the GameLoaded
// checkpoint. The buffer is validated before the core sees it.
func (h *Handle) Unserialize(buf []byte) (err error) {
	defer h.recoverPanic("unserialize", &err)
	if err := h.guard("unserialize", StateGameLoaded, StateRunning); err != nil {
		return err
	}
	if h.serializer == nil {
		return ErrUnsupported
	}
	if len(buf) < h.latchedStateSize() {
		return ErrBufferSize
	}
	if err := h.serializer.Unserialize(buf); err != nil {
		return fmt.Errorf("unserialize: %w", err)
	}
	h.state = StateGameLoaded
	return nil
}

// MemoryRegion returns a borrowed view of a core memory region, valid
// only until the next entry point runs.
func (h *Handle) MemoryRegion(id MemoryID) ([]byte, error) {
	if err := h.guard("get_memory", StateGameLoaded, StateRunning); err != nil {
		return nil, err
	}
	if h.memory == nil {
		return nil, nil
	}
	return h.memory.MemoryRegion(id), nil
}

// WriteMemoryRegion pushes frontend-restored data (save RAM) into the
// core.
func (h *Handle) WriteMemoryRegion(id MemoryID, data []byte) error {
	if err := h.guard("write_memory", StateGameLoaded, StateRunning); err != nil {
		return err
	}
	if h.memory == nil {
		return ErrUnsupported
	}
	h.memory.WriteMemoryRegion(id, data)
	return nil
}

// SetPortDevice forwards the frontend's controller-port device choice.
// Legal any time after init; cores without the capability ignore it.
func (h *Handle) SetPortDevice(port uint32, device Device) (err error) {
	defer h.recoverPanic("set_controller_port_device", &err)
	if err := h.guard("set_controller_port_device", StateInitialized, StateGameLoaded, StateRunning); err != nil {
		return err
	}
	if h.ports != nil {
		h.ports.SetPortDevice(port, device)
	}
	return nil
}

// CheatReset clears all active cheats.
func (h *Handle) CheatReset() (err error) {
	defer h.recoverPanic("cheat_reset", &err)
	if err := h.guard("cheat_reset", StateGameLoaded, StateRunning); err != nil {
		return err
	}
	if h.cheats != nil {
		h.cheats.CheatReset()
	}
	return nil
}

// CheatSet installs or toggles one cheat code.
func (h *Handle) CheatSet(index uint32, enabled bool, code string) (err error) {
	defer h.recoverPanic("cheat_set", &err)
	if err := h.guard("cheat_set", StateGameLoaded, StateRunning); err != nil {
		return err
	}
	if h.cheats != nil {
		h.cheats.CheatSet(index, enabled, code)
	}
	return nil
}

// Region reports the loaded content's video standard, defaulting to
// NTSC.
func (h *Handle) Region() Region {
	if h.regions != nil && (h.state == StateGameLoaded || h.state == StateRunning) {
		return h.regions.Region()
	}
	return RegionNTSC
}

// guard refuses the operation unless the current state is one of the
// allowed checkpoints. Terminal states override with ErrDefunct so the
// frontend-facing layer can tell "bad order" from "dead handle" in
// logs, even though both flatten to the same boolean on the wire.
func (h *Handle) guard(op string, allowed ...State) error {
	if h.state == StateShutdown || h.state == StateDefunct {
		h.log.WithFields(logrus.Fields{
			"op":    op,
			"state": h.state.String(),
		}).Error("call on retired handle refused")
		return ErrDefunct
	}
	for _, s := range allowed {
		if h.state == s {
			return nil
		}
	}
	h.log.WithFields(logrus.Fields{
		"op":    op,
		"state": h.state.String(),
	}).Error("out-of-order call refused")
	return fmt.Errorf("%s in state %s: %w", op, h.state, ErrWrongState)
}

// recoverPanic converts a core panic into a refusal and retires the
// handle. Unwinding must never reach the frontend's C stack; after a
// panic the core's invariants are unknowable, so every subsequent call
// is refused too.
func (h *Handle) recoverPanic(op string, err *error) {
	if r := recover(); r != nil {
		h.log.WithFields(logrus.Fields{
			"op":    op,
			"panic": fmt.Sprintf("%v", r),
		}).Error("core panicked; handle is now defunct")
		h.state = StateDefunct
		*err = fmt.Errorf("%s panicked: %v: %w", op, r, ErrDefunct)
	}
}
