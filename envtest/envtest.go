// Package envtest provides an in-process fake frontend so cores (and
// this library's own tests) can exercise environment negotiation and
// the frame loop without a real libretro frontend. The Frontend's
// Callback decodes each command's payload exactly the way a C frontend
// would, so a set followed by the matching get observes the same value.
package envtest

import (
	"unsafe"

	"github.com/opd-ai/libretro"
	"github.com/opd-ai/libretro/ffi"
)

// Frontend is a recording fake for the environment channel. Zero-value
// fields answer like a conservative, old frontend; tests flip the
// Answer* knobs to simulate a capable one.
type Frontend struct {
	// Answers to capability queries.
	AnswerCanDupe        bool
	AnswerOverscan       bool
	AnswerBitmasks       bool
	AnswerFastforward    bool
	AnswerAVEnable       uint32
	AnswerInputCaps      uint64
	AnswerOptionsVersion uint32
	AnswerMessageVersion uint32
	SystemDir            string
	SaveDir              string
	AssetsDir            string
	CorePath             string
	User                 string
	Lang                 uint32

	// Observed core-side sets.
	PixelFormat      uint32
	PixelFormatSet   bool
	Rotation         uint32
	PerformanceLevel uint32
	Messages         []string
	MessageExts      []libretro.MessageExt
	SupportsNoGame   bool
	Achievements     bool
	ShutdownSeen     bool
	Geometry         ffi.GameGeometry
	GeometrySet      bool
	AVInfo           ffi.SystemAVInfo
	AVInfoSet        bool
	Descriptors      []libretro.InputDescriptor
	Controllers      [][]libretro.ControllerDescription
	HiddenOptions    map[string]bool

	// Registered core options and their current values.
	Options    []libretro.Variable
	Values     map[string]string
	valueDirty bool

	// Probes records command codes answered "unhandled".
	Probes []uint32

	// cstrings keeps frontend-owned strings alive for the session.
	cstrings [][]byte
}

// New returns a Frontend with empty option storage.
func New() *Frontend {
	return &Frontend{
		Values:        make(map[string]string),
		HiddenOptions: make(map[string]bool),
	}
}

// SetValue changes a core option value and raises the variable-update
// flag, the way a user edit in the frontend UI would.
func (f *Frontend) SetValue(key, value string) {
	f.Values[key] = value
	f.valueDirty = true
}

// lend hands out a C-shaped string the core may read after the call.
func (f *Frontend) lend(s string) *byte {
	b := ffi.CString(s)
	f.cstrings = append(f.cstrings, b)
	return ffi.StringPtr(b)
}

// Callback is the raw environment entry point; pass it to
// Handle.SetEnvironment or libretro.NewEnvironment.
func (f *Frontend) Callback(cmd uint32, data unsafe.Pointer) bool {
	switch cmd {
	case ffi.EnvSetRotation:
		f.Rotation = *(*uint32)(data)
		return true

	case ffi.EnvGetOverscan:
		*(*bool)(data) = f.AnswerOverscan
		return true

	case ffi.EnvGetCanDupe:
		*(*bool)(data) = f.AnswerCanDupe
		return true

	case ffi.EnvSetMessage:
		msg := (*ffi.Message)(data)
		f.Messages = append(f.Messages, ffi.GoString(msg.Msg))
		return true

	case ffi.EnvGetMessageInterfaceVer:
		*(*uint32)(data) = f.AnswerMessageVersion
		return true

	case ffi.EnvSetMessageExt:
		if f.AnswerMessageVersion < 1 {
			break
		}
		m := (*ffi.MessageExt)(data)
		f.MessageExts = append(f.MessageExts, libretro.MessageExt{
			Text:       ffi.GoString(m.Msg),
			DurationMs: m.Duration,
			Priority:   m.Priority,
			Level:      libretro.LogLevel(m.Level),
			Target:     m.Target,
			Type:       m.Type,
			Progress:   m.Progress,
		})
		return true

	case ffi.EnvShutdown:
		f.ShutdownSeen = true
		return true

	case ffi.EnvSetPerformanceLevel:
		f.PerformanceLevel = *(*uint32)(data)
		return true

	case ffi.EnvGetSystemDirectory:
		return f.lendString(data, f.SystemDir)
	case ffi.EnvGetSaveDirectory:
		return f.lendString(data, f.SaveDir)
	case ffi.EnvGetCoreAssetsDirectory:
		return f.lendString(data, f.AssetsDir)
	case ffi.EnvGetLibretroPath:
		return f.lendString(data, f.CorePath)
	case ffi.EnvGetUsername:
		return f.lendString(data, f.User)

	case ffi.EnvSetPixelFormat:
		v := *(*uint32)(data)
		if _, err := libretro.PixelFormatFromCode(v); err != nil {
			return false
		}
		f.PixelFormat = v
		f.PixelFormatSet = true
		return true

	case ffi.EnvSetInputDescriptors:
		f.Descriptors = nil
		for d := (*ffi.InputDescriptor)(data); d.Description != nil; d = (*ffi.InputDescriptor)(unsafe.Add(unsafe.Pointer(d), unsafe.Sizeof(*d))) {
			f.Descriptors = append(f.Descriptors, libretro.InputDescriptor{
				Port:        d.Port,
				Device:      libretro.Device(d.Device),
				Index:       d.Index,
				ID:          d.ID,
				Description: ffi.GoString(d.Description),
			})
		}
		return true

	case ffi.EnvGetVariable:
		v := (*ffi.Variable)(data)
		key := ffi.GoString(v.Key)
		val, ok := f.Values[key]
		if !ok {
			v.Value = nil
			return false
		}
		v.Value = f.lend(val)
		return true

	case ffi.EnvSetVariables:
		f.Options = nil
		for v := (*ffi.Variable)(data); v.Key != nil; v = (*ffi.Variable)(unsafe.Add(unsafe.Pointer(v), unsafe.Sizeof(*v))) {
			opt := libretro.Variable{Key: ffi.GoString(v.Key), Value: ffi.GoString(v.Value)}
			f.Options = append(f.Options, opt)
			if _, exists := f.Values[opt.Key]; !exists {
				f.Values[opt.Key] = defaultValue(opt.Value)
			}
		}
		return true

	case ffi.EnvGetVariableUpdate:
		*(*bool)(data) = f.valueDirty
		f.valueDirty = false
		return true

	case ffi.EnvSetSupportNoGame:
		f.SupportsNoGame = *(*bool)(data)
		return true

	case ffi.EnvSetSupportAchievements:
		f.Achievements = *(*bool)(data)
		return true

	case ffi.EnvSetSystemAVInfo:
		f.AVInfo = *(*ffi.SystemAVInfo)(data)
		f.AVInfoSet = true
		return true

	case ffi.EnvSetGeometry:
		f.Geometry = *(*ffi.GameGeometry)(data)
		f.GeometrySet = true
		return true

	case ffi.EnvSetControllerInfo:
		f.Controllers = nil
		for ci := (*ffi.ControllerInfo)(data); ci.Types != nil; ci = (*ffi.ControllerInfo)(unsafe.Add(unsafe.Pointer(ci), unsafe.Sizeof(*ci))) {
			types := unsafe.Slice(ci.Types, ci.NumTypes)
			port := make([]libretro.ControllerDescription, len(types))
			for i, t := range types {
				port[i] = libretro.ControllerDescription{Desc: ffi.GoString(t.Desc), ID: t.ID}
			}
			f.Controllers = append(f.Controllers, port)
		}
		return true

	case ffi.EnvGetLanguage:
		*(*uint32)(data) = f.Lang
		return true

	case ffi.EnvGetAudioVideoEnable:
		*(*uint32)(data) = f.AnswerAVEnable
		return true

	case ffi.EnvGetFastforwarding:
		*(*bool)(data) = f.AnswerFastforward
		return true

	case ffi.EnvGetInputBitmasks:
		if !f.AnswerBitmasks {
			break
		}
		*(*bool)(data) = true
		return true

	case ffi.EnvGetInputDeviceCaps:
		*(*uint64)(data) = f.AnswerInputCaps
		return true

	case ffi.EnvGetCoreOptionsVersion:
		*(*uint32)(data) = f.AnswerOptionsVersion
		return true

	case ffi.EnvSetCoreOptionsDisplay:
		d := (*ffi.CoreOptionDisplay)(data)
		f.HiddenOptions[ffi.GoString(d.Key)] = !d.Visible
		return true
	}

	// Unknown or refused command: record the probe, leave the payload
	// untouched.
	f.Probes = append(f.Probes, cmd)
	return false
}

func (f *Frontend) lendString(data unsafe.Pointer, s string) bool {
	if s == "" {
		return false
	}
	*(**byte)(data) = f.lend(s)
	return true
}

// defaultValue extracts the default from the legacy "Label; def|alt"
// option encoding.
func defaultValue(v string) string {
	for i := 0; i < len(v); i++ {
		if v[i] == ';' {
			v = v[i+1:]
			break
		}
	}
	for len(v) > 0 && v[0] == ' ' {
		v = v[1:]
	}
	for i := 0; i < len(v); i++ {
		if v[i] == '|' {
			return v[:i]
		}
	}
	return v
}
