// Package libretro implements a typed, lifecycle-checked bridge for
// authoring libretro cores in Go.
//
// A core author implements [CoreProvider] (and optionally capability
// interfaces such as [Serializer] or [MemoryMapper]); the library owns
// the protocol side: the lifecycle state machine every frontend call
// passes through, the environment negotiation channel, and the
// conversion of raw frontend pointers into bounds-checked Go views. The
// capi subpackage exports the retro_* C symbols and forwards them here.
//
// Example:
//
//	type provider struct{}
//
//	func (provider) SystemInfo() libretro.SystemInfo {
//	    return libretro.SystemInfo{
//	        LibraryName:     "example",
//	        LibraryVersion:  "0.1.0",
//	        ValidExtensions: []string{"bin"},
//	    }
//	}
//
//	func (provider) LoadGame(game libretro.GameInfo, env *libretro.Environment) (libretro.Core, error) {
//	    env.SetPixelFormat(libretro.PixelXRGB8888)
//	    return newCore(game.Data)
//	}
//
//	func init() {
//	    capi.Register(provider{})
//	}
//
// The frontend drives everything single-threaded; no method of this
// package blocks or spawns goroutines, and every borrowed buffer handed
// to a core is valid only for the call that produced it.
package libretro
