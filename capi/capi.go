// Package capi exports the C ABI of a libretro core. A core author
// imports it for side effects from a package main built with
// -buildmode=c-shared and calls Register from an init function; the
// resulting shared object is loadable by any libretro frontend.
//
// The package is a thin trampoline: every exported retro_* symbol
// delegates to a single libretro.Handle, converts pointers at the
// boundary, and collapses Go errors into the protocol's booleans.
package capi

/*
#include <stdlib.h>
#include <string.h>
#include "libretro.h"

bool bridge_environment(retro_environment_t f, unsigned cmd, void *data);
void bridge_video_refresh(retro_video_refresh_t f, const void *data,
		unsigned width, unsigned height, size_t pitch);
void bridge_audio_sample(retro_audio_sample_t f, int16_t left, int16_t right);
size_t bridge_audio_sample_batch(retro_audio_sample_batch_t f,
		const int16_t *data, size_t frames);
void bridge_input_poll(retro_input_poll_t f);
int16_t bridge_input_state(retro_input_state_t f, unsigned port,
		unsigned device, unsigned index, unsigned id);
*/
import "C"

import (
	"sync"
	"unsafe"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/libretro"
	"github.com/opd-ai/libretro/ffi"
)

// The protocol is a non-reentrant per-process singleton, so the
// trampoline's state is package-level. Entry points are only ever
// called from the frontend's single emulation thread; the mutex guards
// Register against racing a concurrent dlopen-time init only.
var (
	mu       sync.Mutex
	provider libretro.CoreProvider
	handle   *libretro.Handle

	envFn        C.retro_environment_t
	videoFn      C.retro_video_refresh_t
	audioFn      C.retro_audio_sample_t
	audioBatchFn C.retro_audio_sample_batch_t
	inputPollFn  C.retro_input_poll_t
	inputStateFn C.retro_input_state_t

	sysStrings struct {
		name, version, extensions *C.char
	}

	memBuffers map[libretro.MemoryID]memBuffer
)

// memBuffer is a C allocation mirroring one core memory region. The
// frontend holds the pointer between entry points, so the memory must
// live outside the Go heap; it is synced with the core around each
// retro_run.
type memBuffer struct {
	ptr  unsafe.Pointer
	size int
}

// Register installs prov as the core behind the exported retro_*
// symbols. Call it from an init function; only one provider can be
// active per process, and re-registering retires the previous session.
func Register(prov libretro.CoreProvider) {
	mu.Lock()
	defer mu.Unlock()
	if handle != nil {
		logrus.WithField("function", "Register").Warn("replacing registered core provider")
		releaseSysStrings()
		freeMemBuffers()
	}
	provider = prov
	handle = libretro.NewHandle(prov)
	wireCallbacks(handle.FrameCallbacks())
}

// refuse is the single point where Go errors collapse into the
// protocol's boolean. The detail is logged here before it is lost.
func refuse(op string, err error) C.bool {
	if err == nil {
		return C.bool(true)
	}
	logrus.WithFields(logrus.Fields{
		"function": op,
		"error":    err,
	}).Error("libretro call failed")
	return C.bool(false)
}

// callEnvironment adapts the stored C environment pointer to the Go
// callback shape the Environment speaks.
func callEnvironment(cmd uint32, data unsafe.Pointer) bool {
	if envFn == nil {
		return false
	}
	return bool(C.bridge_environment(envFn, C.unsigned(cmd), data))
}

// wireCallbacks fills the handle's callback bundle with closures that
// forward through the C trampolines. The closures read the package
// pointers at call time, so the frontend may register them in any
// order relative to Register.
func wireCallbacks(cb *libretro.Callbacks) {
	cb.VideoRefresh = func(frame []byte, width, height, pitch uint32) {
		if videoFn == nil {
			return
		}
		var p unsafe.Pointer
		if len(frame) > 0 {
			p = unsafe.Pointer(&frame[0])
		}
		C.bridge_video_refresh(videoFn, p, C.unsigned(width), C.unsigned(height), C.size_t(pitch))
	}
	cb.AudioSample = func(left, right int16) {
		if audioFn == nil {
			return
		}
		C.bridge_audio_sample(audioFn, C.int16_t(left), C.int16_t(right))
	}
	cb.AudioSampleBatch = func(samples []int16) int {
		if audioBatchFn == nil || len(samples) < 2 {
			return 0
		}
		n := C.bridge_audio_sample_batch(audioBatchFn,
			(*C.int16_t)(unsafe.Pointer(&samples[0])), C.size_t(len(samples)/2))
		return int(n)
	}
	cb.InputPoll = func() {
		if inputPollFn == nil {
			return
		}
		C.bridge_input_poll(inputPollFn)
	}
	cb.InputState = func(port uint32, device libretro.Device, index, id uint32) int16 {
		if inputStateFn == nil {
			return 0
		}
		return int16(C.bridge_input_state(inputStateFn, C.unsigned(port),
			C.unsigned(device), C.unsigned(index), C.unsigned(id)))
	}
}

// ensureSysStrings materialises the provider's static description as
// C strings the frontend may cache for the process lifetime.
func ensureSysStrings(si libretro.SystemInfo) {
	if sysStrings.name != nil {
		return
	}
	sysStrings.name = C.CString(si.LibraryName)
	sysStrings.version = C.CString(si.LibraryVersion)
	sysStrings.extensions = C.CString(si.ExtensionString())
}

func releaseSysStrings() {
	if sysStrings.name != nil {
		C.free(unsafe.Pointer(sysStrings.name))
		C.free(unsafe.Pointer(sysStrings.version))
		C.free(unsafe.Pointer(sysStrings.extensions))
	}
	sysStrings.name = nil
	sysStrings.version = nil
	sysStrings.extensions = nil
}

// allocMemBuffers snapshots every exposed memory region into C memory
// after a successful load, so retro_get_memory_data can hand out
// pointers that outlive individual entry points.
func allocMemBuffers() {
	freeMemBuffers()
	memBuffers = make(map[libretro.MemoryID]memBuffer)
	ids := []libretro.MemoryID{
		libretro.MemorySaveRAM,
		libretro.MemoryRTC,
		libretro.MemorySystemRAM,
		libretro.MemoryVideoRAM,
	}
	for _, id := range ids {
		region, err := handle.MemoryRegion(id)
		if err != nil || len(region) == 0 {
			continue
		}
		p := C.malloc(C.size_t(len(region)))
		C.memcpy(p, unsafe.Pointer(&region[0]), C.size_t(len(region)))
		memBuffers[id] = memBuffer{ptr: p, size: len(region)}
	}
}

func freeMemBuffers() {
	for _, b := range memBuffers {
		C.free(b.ptr)
	}
	memBuffers = nil
}

// syncMemoryIn pushes frontend writes (restored save RAM) from the C
// buffers into the core before a frame runs. Only the regions the
// frontend legitimately writes are synced this direction.
func syncMemoryIn() {
	for id, b := range memBuffers {
		if id != libretro.MemorySaveRAM && id != libretro.MemoryRTC {
			continue
		}
		view := ffi.ByteView(b.ptr, b.size)
		if err := handle.WriteMemoryRegion(id, view); err != nil {
			return
		}
	}
}

// syncMemoryOut refreshes the C buffers from the core, keeping the
// pointers handed to the frontend current. Region sizes are fixed for
// a loaded game; a shrunk region leaves the tail as-is.
func syncMemoryOut() {
	for id, b := range memBuffers {
		region, err := handle.MemoryRegion(id)
		if err != nil || len(region) == 0 {
			continue
		}
		n := len(region)
		if n > b.size {
			n = b.size
		}
		C.memcpy(b.ptr, unsafe.Pointer(&region[0]), C.size_t(n))
	}
}

// runFrame orders one frame's memory traffic: frontend writes go into
// the core before it runs, core state comes back out after.
func runFrame() error {
	syncMemoryIn()
	err := handle.Run()
	if err == nil {
		syncMemoryOut()
	}
	return err
}

// Restores, resets and cheats mutate core state outside the frame
// loop. Each must refresh the mirror on success, or the next frame's
// syncMemoryIn would push the pre-mutation save RAM back into the core
// and retro_get_memory_data would hand the frontend stale bytes.

func unserializeSynced(buf []byte) error {
	err := handle.Unserialize(buf)
	if err == nil {
		syncMemoryOut()
	}
	return err
}

func resetSynced() error {
	err := handle.Reset()
	if err == nil {
		syncMemoryOut()
	}
	return err
}

func cheatSetSynced(index uint32, enabled bool, code string) error {
	err := handle.CheatSet(index, enabled, code)
	if err == nil {
		syncMemoryOut()
	}
	return err
}

// memoryData refreshes the mirror before handing out a region pointer,
// so the frontend observes the core's current bytes even between
// frames.
func memoryData(id libretro.MemoryID) (unsafe.Pointer, int) {
	b, ok := memBuffers[id]
	if !ok {
		return nil, 0
	}
	syncMemoryOut()
	return b.ptr, b.size
}
