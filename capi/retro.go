package capi

/*
#include "libretro.h"
*/
import "C"

import (
	"unsafe"

	"github.com/opd-ai/libretro"
	"github.com/opd-ai/libretro/ffi"
)

//export retro_api_version
func retro_api_version() C.unsigned {
	return C.unsigned(ffi.APIVersion)
}

//export retro_set_environment
func retro_set_environment(f C.retro_environment_t) {
	envFn = f
	if handle == nil {
		return
	}
	if err := handle.SetEnvironment(callEnvironment); err != nil {
		refuse("retro_set_environment", err)
		return
	}
	// Pre-init negotiation: the protocol wants these announced from
	// inside retro_set_environment, before retro_init runs.
	env := handle.Environment()
	if _, ok := provider.(libretro.NoContentProvider); ok {
		env.SetSupportNoGame(true)
	}
	if op, ok := provider.(libretro.OptionProvider); ok {
		env.SetVariables(op.Variables())
	}
}

//export retro_set_video_refresh
func retro_set_video_refresh(f C.retro_video_refresh_t) {
	videoFn = f
}

//export retro_set_audio_sample
func retro_set_audio_sample(f C.retro_audio_sample_t) {
	audioFn = f
}

//export retro_set_audio_sample_batch
func retro_set_audio_sample_batch(f C.retro_audio_sample_batch_t) {
	audioBatchFn = f
}

//export retro_set_input_poll
func retro_set_input_poll(f C.retro_input_poll_t) {
	inputPollFn = f
}

//export retro_set_input_state
func retro_set_input_state(f C.retro_input_state_t) {
	inputStateFn = f
}

//export retro_init
func retro_init() {
	if handle == nil {
		return
	}
	if err := handle.Init(); err != nil {
		refuse("retro_init", err)
		return
	}
	attachFrontendLog(handle.Environment())
}

//export retro_deinit
func retro_deinit() {
	if handle == nil {
		return
	}
	detachFrontendLog()
	refuse("retro_deinit", handle.Deinit())
	freeMemBuffers()
	releaseSysStrings()
}

//export retro_get_system_info
func retro_get_system_info(info *C.struct_retro_system_info) {
	if info == nil || handle == nil {
		return
	}
	si := handle.SystemInfo()
	ensureSysStrings(si)
	info.library_name = sysStrings.name
	info.library_version = sysStrings.version
	info.valid_extensions = sysStrings.extensions
	info.need_fullpath = C.bool(si.NeedFullpath)
	info.block_extract = C.bool(si.BlockExtract)
}

//export retro_get_system_av_info
func retro_get_system_av_info(info *C.struct_retro_system_av_info) {
	if info == nil || handle == nil {
		return
	}
	out := (*ffi.SystemAVInfo)(unsafe.Pointer(info))
	av, err := handle.AVInfo()
	if err != nil {
		// Never leak a partially written struct on refusal.
		*out = ffi.SystemAVInfo{}
		refuse("retro_get_system_av_info", err)
		return
	}
	*out = ffi.SystemAVInfo{
		Geometry: ffi.GameGeometry(av.Geometry),
		Timing:   ffi.SystemTiming(av.Timing),
	}
}

//export retro_set_controller_port_device
func retro_set_controller_port_device(port, device C.unsigned) {
	if handle == nil {
		return
	}
	// Subclassed device IDs carry the base class in the low byte.
	dev, err := libretro.DeviceFromCode(uint32(device) & 0xff)
	if err != nil {
		refuse("retro_set_controller_port_device", err)
		return
	}
	refuse("retro_set_controller_port_device", handle.SetPortDevice(uint32(port), dev))
}

//export retro_reset
func retro_reset() {
	if handle == nil {
		return
	}
	refuse("retro_reset", resetSynced())
}

//export retro_run
func retro_run() {
	if handle == nil {
		return
	}
	refuse("retro_run", runFrame())
}

//export retro_serialize_size
func retro_serialize_size() C.size_t {
	if handle == nil {
		return 0
	}
	n, err := handle.SerializeSize()
	if err != nil {
		refuse("retro_serialize_size", err)
		return 0
	}
	return C.size_t(n)
}

//export retro_serialize
func retro_serialize(data unsafe.Pointer, size C.size_t) C.bool {
	if handle == nil {
		return C.bool(false)
	}
	return refuse("retro_serialize", handle.Serialize(ffi.ByteView(data, int(size))))
}

//export retro_unserialize
func retro_unserialize(data unsafe.Pointer, size C.size_t) C.bool {
	if handle == nil {
		return C.bool(false)
	}
	return refuse("retro_unserialize", unserializeSynced(ffi.ByteView(data, int(size))))
}

//export retro_cheat_reset
func retro_cheat_reset() {
	if handle == nil {
		return
	}
	refuse("retro_cheat_reset", handle.CheatReset())
}

//export retro_cheat_set
func retro_cheat_set(index C.unsigned, enabled C.bool, code *C.char) {
	if handle == nil {
		return
	}
	refuse("retro_cheat_set", cheatSetSynced(uint32(index), bool(enabled), C.GoString(code)))
}

//export retro_load_game
func retro_load_game(game *C.struct_retro_game_info) C.bool {
	if handle == nil {
		return C.bool(false)
	}
	var g libretro.GameInfo
	if game != nil {
		g = libretro.GameInfo{
			Path: C.GoString(game.path),
			Data: ffi.GoBytes(unsafe.Pointer(game.data), int(game.size)),
			Meta: C.GoString(game.meta),
		}
	}
	if err := handle.LoadGame(g); err != nil {
		return refuse("retro_load_game", err)
	}
	allocMemBuffers()
	return C.bool(true)
}

//export retro_load_game_special
func retro_load_game_special(gameType C.unsigned, info *C.struct_retro_game_info, num C.size_t) C.bool {
	// Multi-disk special loads are not part of this binding's surface.
	return C.bool(false)
}

//export retro_unload_game
func retro_unload_game() {
	if handle == nil {
		return
	}
	syncMemoryOut()
	freeMemBuffers()
	refuse("retro_unload_game", handle.UnloadGame())
}

//export retro_get_region
func retro_get_region() C.unsigned {
	if handle == nil {
		return C.unsigned(ffi.RegionNTSC)
	}
	return C.unsigned(handle.Region())
}

//export retro_get_memory_data
func retro_get_memory_data(id C.unsigned) unsafe.Pointer {
	mid, err := libretro.MemoryIDFromCode(uint32(id))
	if err != nil {
		return nil
	}
	ptr, _ := memoryData(mid)
	return ptr
}

//export retro_get_memory_size
func retro_get_memory_size(id C.unsigned) C.size_t {
	mid, err := libretro.MemoryIDFromCode(uint32(id))
	if err != nil {
		return 0
	}
	_, size := memoryData(mid)
	return C.size_t(size)
}
