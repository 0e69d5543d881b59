package ffi

import "unsafe"

// The structs below mirror the libretro C structs field for field. They
// are what frontend-supplied payload pointers are cast to, so field
// order, width and padding must match the C headers exactly (verified in
// layout_test.go). Pointer fields hold C addresses and must only be
// dereferenced through the helpers in cstring.go.

// SystemInfo mirrors struct retro_system_info.
type SystemInfo struct {
	LibraryName     *byte
	LibraryVersion  *byte
	ValidExtensions *byte
	NeedFullpath    bool
	BlockExtract    bool
}

// GameGeometry mirrors struct retro_game_geometry.
type GameGeometry struct {
	BaseWidth   uint32
	BaseHeight  uint32
	MaxWidth    uint32
	MaxHeight   uint32
	AspectRatio float32
}

// SystemTiming mirrors struct retro_system_timing.
type SystemTiming struct {
	FPS        float64
	SampleRate float64
}

// SystemAVInfo mirrors struct retro_system_av_info.
type SystemAVInfo struct {
	Geometry GameGeometry
	Timing   SystemTiming
}

// GameInfo mirrors struct retro_game_info. Data is only valid for the
// duration of the retro_load_game call that supplied it.
type GameInfo struct {
	Path *byte
	Data unsafe.Pointer
	Size uintptr
	Meta *byte
}

// Variable mirrors struct retro_variable, the key/value pair used by the
// legacy core-options commands.
type Variable struct {
	Key   *byte
	Value *byte
}

// Message mirrors struct retro_message (EnvSetMessage payload).
type Message struct {
	Msg    *byte
	Frames uint32
}

// MessageExt mirrors struct retro_message_ext (EnvSetMessageExt
// payload). Duration is in milliseconds; Progress is -1 or 0..100.
type MessageExt struct {
	Msg      *byte
	Duration uint32
	Priority uint32
	Level    uint32
	Target   uint32
	Type     uint32
	Progress int8
}

// LogCallback mirrors struct retro_log_callback. Log is a C function
// pointer of type retro_log_printf_t.
type LogCallback struct {
	Log unsafe.Pointer
}

// RumbleInterface mirrors struct retro_rumble_interface.
// SetRumbleState is a C function pointer of type
// retro_set_rumble_state_t.
type RumbleInterface struct {
	SetRumbleState unsafe.Pointer
}

// InputDescriptor mirrors struct retro_input_descriptor.
type InputDescriptor struct {
	Port        uint32
	Device      uint32
	Index       uint32
	ID          uint32
	Description *byte
}

// ControllerDescription mirrors struct retro_controller_description.
type ControllerDescription struct {
	Desc *byte
	ID   uint32
}

// ControllerInfo mirrors struct retro_controller_info.
type ControllerInfo struct {
	Types    *ControllerDescription
	NumTypes uint32
}

// CoreOptionDisplay mirrors struct retro_core_option_display.
type CoreOptionDisplay struct {
	Key     *byte
	Visible bool
}
