package libretro

import (
	"runtime"
	"unsafe"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/libretro/ffi"
)

// EnvCallback is the raw environment channel the frontend registers at
// retro_set_environment time: one numeric command, one opaque payload,
// boolean handled/unhandled. The capi package wraps the C function
// pointer in one of these; tests substitute an in-process fake.
type EnvCallback func(cmd uint32, data unsafe.Pointer) bool

// Variable is one legacy core-option key/value registration. Value uses
// the protocol's "Description; default|alt1|alt2" encoding; see
// FormatVariable.
type Variable struct {
	Key   string
	Value string
}

// InputDescriptor labels one input element for the frontend's UI.
type InputDescriptor struct {
	Port        uint32
	Device      Device
	Index       uint32
	ID          uint32
	Description string
}

// ControllerDescription names one device class selectable on a port.
type ControllerDescription struct {
	Desc string
	ID   uint32
}

// Environment is the typed side of the environment negotiation channel.
// It is created when the frontend registers its callback and lives for
// the whole session; the callback reference is never reassigned.
//
// Every operation performs exactly one protocol command and reports the
// frontend's handled/unhandled answer. Unhandled is not an error: cores
// probe frontend capabilities this way. Operations never buffer; side
// effects (pixel format, geometry) are visible to the frontend as soon
// as the method returns true.
type Environment struct {
	call EnvCallback
	log  *logrus.Entry

	// pinner holds payload memory the frontend is allowed to read after
	// the registering call returns (variables, controller info).
	// Released by Close at deinit.
	pinner runtime.Pinner
	pinned [][]byte

	optionsVer      uint32
	optionsVerKnown bool
}

// NewEnvironment wraps a raw environment callback. A nil callback is
// legal and makes every operation report unhandled.
func NewEnvironment(call EnvCallback) *Environment {
	return &Environment{
		call: call,
		log:  logrus.WithField("component", "environment"),
	}
}

// Call issues a raw environment command. It is the escape hatch for
// commands without a typed wrapper; payload layout is the caller's
// responsibility.
func (e *Environment) Call(cmd uint32, data unsafe.Pointer) bool {
	if e == nil || e.call == nil {
		return false
	}
	return e.call(cmd, data)
}

// Close releases payload memory pinned for the frontend. The handle
// calls it during deinit; afterwards the environment must not be used.
func (e *Environment) Close() {
	if e == nil {
		return
	}
	e.pinner.Unpin()
	e.pinned = nil
	e.call = nil
}

// pinString converts s to a NUL-terminated buffer the frontend may keep
// reading until Close.
func (e *Environment) pinString(s string) *byte {
	b := ffi.CString(s)
	p := ffi.StringPtr(b)
	e.pinner.Pin(p)
	e.pinned = append(e.pinned, b)
	return p
}

// SetRotation rotates the display by rot*90 degrees counter-clockwise.
func (e *Environment) SetRotation(rot uint32) bool {
	return e.Call(ffi.EnvSetRotation, unsafe.Pointer(&rot))
}

// Overscan reports whether the frontend wants overscan regions drawn.
// Deprecated by the protocol but still answered by most frontends.
func (e *Environment) Overscan() (bool, bool) {
	var v bool
	ok := e.Call(ffi.EnvGetOverscan, unsafe.Pointer(&v))
	return v, ok
}

// CanDupe reports whether the frontend accepts nil video frames as
// "repeat the previous frame".
func (e *Environment) CanDupe() bool {
	var v bool
	return e.Call(ffi.EnvGetCanDupe, unsafe.Pointer(&v)) && v
}

// ShowMessage asks the frontend to display text for the given number of
// frames.
func (e *Environment) ShowMessage(text string, frames uint32) bool {
	buf := ffi.CString(text)
	msg := ffi.Message{Msg: ffi.StringPtr(buf), Frames: frames}
	ok := e.Call(ffi.EnvSetMessage, unsafe.Pointer(&msg))
	runtime.KeepAlive(buf)
	return ok
}

// MessageTarget selects where an extended message is delivered.
const (
	MessageTargetAll uint32 = ffi.MessageTargetAll
	MessageTargetOSD uint32 = ffi.MessageTargetOSD
	MessageTargetLog uint32 = ffi.MessageTargetLog
)

// MessageType selects how the frontend renders an extended message.
const (
	MessageTypeNotification    uint32 = ffi.MessageTypeNotification
	MessageTypeNotificationAlt uint32 = ffi.MessageTypeNotificationAlt
	MessageTypeStatus          uint32 = ffi.MessageTypeStatus
	MessageTypeProgress        uint32 = ffi.MessageTypeProgress
)

// MessageExt is a frontend message with routing and presentation hints.
// Progress is a percentage for MessageTypeProgress, or negative when
// indeterminate.
type MessageExt struct {
	Text       string
	DurationMs uint32
	Priority   uint32
	Level      LogLevel
	Target     uint32
	Type       uint32
	Progress   int8
}

// MessageInterfaceVersion queries which message API generation the
// frontend implements. Version 0 means only ShowMessage is understood.
func (e *Environment) MessageInterfaceVersion() (uint32, bool) {
	var v uint32
	ok := e.Call(ffi.EnvGetMessageInterfaceVer, unsafe.Pointer(&v))
	return v, ok
}

// ShowMessageExt delivers a message with duration, priority and routing
// hints. Frontends that only speak the version-0 message API get the
// text via ShowMessage instead, with the duration converted from
// milliseconds to frames at the nominal 60 FPS.
func (e *Environment) ShowMessageExt(m MessageExt) bool {
	if v, ok := e.MessageInterfaceVersion(); ok && v >= 1 {
		buf := ffi.CString(m.Text)
		raw := ffi.MessageExt{
			Msg:      ffi.StringPtr(buf),
			Duration: m.DurationMs,
			Priority: m.Priority,
			Level:    uint32(m.Level),
			Target:   m.Target,
			Type:     m.Type,
			Progress: m.Progress,
		}
		ok := e.Call(ffi.EnvSetMessageExt, unsafe.Pointer(&raw))
		runtime.KeepAlive(buf)
		if ok {
			return true
		}
	}
	return e.ShowMessage(m.Text, m.DurationMs*60/1000)
}

// DiskControlInterfaceVersion queries which disk-control API generation
// the frontend expects from the core.
func (e *Environment) DiskControlInterfaceVersion() (uint32, bool) {
	var v uint32
	ok := e.Call(ffi.EnvGetDiskControlIfaceVer, unsafe.Pointer(&v))
	return v, ok
}

// RumbleInterface fetches the frontend's rumble state setter. The
// returned pointer is a C function; only the capi package can invoke
// it.
func (e *Environment) RumbleInterface() (unsafe.Pointer, bool) {
	var iface ffi.RumbleInterface
	if !e.Call(ffi.EnvGetRumbleInterface, unsafe.Pointer(&iface)) || iface.SetRumbleState == nil {
		return nil, false
	}
	return iface.SetRumbleState, true
}

// Shutdown requests that the frontend terminate the session, used by
// games with a "power off" concept.
func (e *Environment) Shutdown() bool {
	return e.Call(ffi.EnvShutdown, nil)
}

// SetPerformanceLevel hints at the hardware class the core needs.
func (e *Environment) SetPerformanceLevel(level uint32) bool {
	return e.Call(ffi.EnvSetPerformanceLevel, unsafe.Pointer(&level))
}

// SystemDirectory returns the frontend's system/BIOS directory.
func (e *Environment) SystemDirectory() (string, bool) {
	return e.getString(ffi.EnvGetSystemDirectory)
}

// SaveDirectory returns the directory for save files.
func (e *Environment) SaveDirectory() (string, bool) {
	return e.getString(ffi.EnvGetSaveDirectory)
}

// CoreAssetsDirectory returns the directory for core-specific assets.
func (e *Environment) CoreAssetsDirectory() (string, bool) {
	return e.getString(ffi.EnvGetCoreAssetsDirectory)
}

// LibretroPath returns the filesystem path of the loaded core module.
func (e *Environment) LibretroPath() (string, bool) {
	return e.getString(ffi.EnvGetLibretroPath)
}

// Username returns the frontend user's name, when the frontend exposes
// one.
func (e *Environment) Username() (string, bool) {
	return e.getString(ffi.EnvGetUsername)
}

func (e *Environment) getString(cmd uint32) (string, bool) {
	var p *byte
	if !e.Call(cmd, unsafe.Pointer(&p)) || p == nil {
		return "", false
	}
	return ffi.GoString(p), true
}

// SetPixelFormat negotiates the framebuffer format. Must be called
// during LoadGame, before the first Run; the effect is immediate.
func (e *Environment) SetPixelFormat(f PixelFormat) bool {
	v := uint32(f)
	ok := e.Call(ffi.EnvSetPixelFormat, unsafe.Pointer(&v))
	if !ok {
		e.log.WithField("format", f.String()).Debug("frontend refused pixel format")
	}
	return ok
}

// SetInputDescriptors labels the core's input elements for the
// frontend's binding UI.
func (e *Environment) SetInputDescriptors(descs []InputDescriptor) bool {
	raw := make([]ffi.InputDescriptor, len(descs)+1)
	for i, d := range descs {
		raw[i] = ffi.InputDescriptor{
			Port:        d.Port,
			Device:      uint32(d.Device),
			Index:       d.Index,
			ID:          d.ID,
			Description: e.pinString(d.Description),
		}
	}
	ok := e.Call(ffi.EnvSetInputDescriptors, unsafe.Pointer(&raw[0]))
	runtime.KeepAlive(raw)
	return ok
}

// Variable reads the current value of a core option.
func (e *Environment) Variable(key string) (string, bool) {
	kb := ffi.CString(key)
	v := ffi.Variable{Key: ffi.StringPtr(kb)}
	ok := e.Call(ffi.EnvGetVariable, unsafe.Pointer(&v))
	runtime.KeepAlive(kb)
	if !ok || v.Value == nil {
		return "", false
	}
	return ffi.GoString(v.Value), true
}

// SetVariables registers the core's options with the frontend. Key
// strings stay readable by the frontend for the session, so their
// memory is pinned until Close.
func (e *Environment) SetVariables(vars []Variable) bool {
	raw := make([]ffi.Variable, len(vars)+1)
	for i, v := range vars {
		raw[i] = ffi.Variable{
			Key:   e.pinString(v.Key),
			Value: e.pinString(v.Value),
		}
	}
	ok := e.Call(ffi.EnvSetVariables, unsafe.Pointer(&raw[0]))
	runtime.KeepAlive(raw)
	return ok
}

// VariableUpdate reports whether any core option changed since the last
// Variable query. Poll it once per frame.
func (e *Environment) VariableUpdate() bool {
	var v bool
	return e.Call(ffi.EnvGetVariableUpdate, unsafe.Pointer(&v)) && v
}

// SetSupportNoGame announces that the core can start without content.
func (e *Environment) SetSupportNoGame(supported bool) bool {
	return e.Call(ffi.EnvSetSupportNoGame, unsafe.Pointer(&supported))
}

// SetSupportAchievements announces achievement-compatible memory maps.
func (e *Environment) SetSupportAchievements(supported bool) bool {
	return e.Call(ffi.EnvSetSupportAchievements, unsafe.Pointer(&supported))
}

// LogInterface fetches the frontend's printf-style log function. The
// returned pointer is a C function; only the capi package can invoke
// it.
func (e *Environment) LogInterface() (unsafe.Pointer, bool) {
	var cb ffi.LogCallback
	if !e.Call(ffi.EnvGetLogInterface, unsafe.Pointer(&cb)) || cb.Log == nil {
		return nil, false
	}
	return cb.Log, true
}

// InputDeviceCapabilities returns a bitmask of device classes the
// frontend can supply input for.
func (e *Environment) InputDeviceCapabilities() (uint64, bool) {
	var v uint64
	ok := e.Call(ffi.EnvGetInputDeviceCaps, unsafe.Pointer(&v))
	return v, ok
}

// SetSystemAVInfo renegotiates geometry and timing mid-session. Only
// call it from Run; it may cause the frontend to reinitialise audio and
// video pipelines.
func (e *Environment) SetSystemAVInfo(av SystemAVInfo) bool {
	raw := ffi.SystemAVInfo{
		Geometry: ffi.GameGeometry(av.Geometry),
		Timing:   ffi.SystemTiming(av.Timing),
	}
	return e.Call(ffi.EnvSetSystemAVInfo, unsafe.Pointer(&raw))
}

// SetGeometry changes dimensions/aspect without touching timing. Cheap;
// takes effect on the next video frame.
func (e *Environment) SetGeometry(g GameGeometry) bool {
	raw := ffi.GameGeometry(g)
	return e.Call(ffi.EnvSetGeometry, unsafe.Pointer(&raw))
}

// SetControllerInfo declares, per port, which device classes the core
// understands. The payload stays readable by the frontend, so it is
// pinned until Close.
func (e *Environment) SetControllerInfo(ports [][]ControllerDescription) bool {
	raw := make([]ffi.ControllerInfo, len(ports)+1)
	for i, types := range ports {
		// One trailing zero entry keeps the Types pointer non-nil for a
		// port with no selectable devices; a nil pointer would read as
		// the array terminator and drop every port after it. NumTypes
		// bounds what the frontend reads.
		rawTypes := make([]ffi.ControllerDescription, len(types)+1)
		for j, t := range types {
			rawTypes[j] = ffi.ControllerDescription{
				Desc: e.pinString(t.Desc),
				ID:   t.ID,
			}
		}
		// Pinning also keeps the array reachable until Close.
		e.pinner.Pin(&rawTypes[0])
		raw[i] = ffi.ControllerInfo{Types: &rawTypes[0], NumTypes: uint32(len(types))}
	}
	ok := e.Call(ffi.EnvSetControllerInfo, unsafe.Pointer(&raw[0]))
	runtime.KeepAlive(raw)
	return ok
}

// Language reports the frontend UI language.
func (e *Environment) Language() (Language, bool) {
	var v uint32
	if !e.Call(ffi.EnvGetLanguage, unsafe.Pointer(&v)) {
		return LangEnglish, false
	}
	lang, err := LanguageFromCode(v)
	if err != nil {
		e.log.WithField("code", v).Debug("frontend reported unknown language")
		return LangEnglish, false
	}
	return lang, true
}

// AudioVideoEnable returns the AVEnable* bitmask: which outputs the
// frontend currently wants (fast-forward can disable video, savestate
// runahead can disable both).
func (e *Environment) AudioVideoEnable() (uint32, bool) {
	var v uint32
	ok := e.Call(ffi.EnvGetAudioVideoEnable, unsafe.Pointer(&v))
	return v, ok
}

// Fastforwarding reports whether the frontend is fast-forwarding.
func (e *Environment) Fastforwarding() (bool, bool) {
	var v bool
	ok := e.Call(ffi.EnvGetFastforwarding, unsafe.Pointer(&v))
	return v, ok
}

// InputBitmasks reports whether the frontend supports the joypad
// bitmask shortcut (DeviceIDJoypadMask).
func (e *Environment) InputBitmasks() bool {
	var v bool
	return e.Call(ffi.EnvGetInputBitmasks, unsafe.Pointer(&v)) && v
}

// CoreOptionsVersion returns the core-options protocol revision the
// frontend speaks. 0 means only the legacy SetVariables path exists.
// The answer is cached; frontends never change it mid-session.
func (e *Environment) CoreOptionsVersion() uint32 {
	if e == nil {
		return 0
	}
	if !e.optionsVerKnown {
		var v uint32
		if e.Call(ffi.EnvGetCoreOptionsVersion, unsafe.Pointer(&v)) {
			e.optionsVer = v
		}
		e.optionsVerKnown = true
	}
	return e.optionsVer
}

// SetCoreOptionDisplay shows or hides one core option in the frontend
// UI. Versioned command: refused locally when the frontend negotiated
// core-options version 0.
func (e *Environment) SetCoreOptionDisplay(key string, visible bool) bool {
	if e.CoreOptionsVersion() < 1 {
		e.log.WithField("key", key).Debug("option display refused: frontend speaks core-options v0")
		return false
	}
	kb := ffi.CString(key)
	d := ffi.CoreOptionDisplay{Key: ffi.StringPtr(kb), Visible: visible}
	ok := e.Call(ffi.EnvSetCoreOptionsDisplay, unsafe.Pointer(&d))
	runtime.KeepAlive(kb)
	return ok
}

// FormatVariable renders a label, default value and alternatives into
// the legacy core-option value encoding ("Label; def|alt1|alt2").
func FormatVariable(label, def string, alts ...string) string {
	s := label + "; " + def
	for _, a := range alts {
		s += "|" + a
	}
	return s
}
