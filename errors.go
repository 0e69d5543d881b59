package libretro

import "errors"

// The protocol itself has no error channel richer than a boolean, so
// everything below exists for the Go side only. The single point where
// this taxonomy is flattened to the protocol's binary signal is the capi
// trampoline; nothing here ever crosses the C boundary.

var (
	// ErrWrongState means the frontend called an operation that is not
	// legal in the handle's current lifecycle state. The state is left
	// unchanged.
	ErrWrongState = errors.New("operation not legal in current lifecycle state")

	// ErrDefunct means the handle refused the call because a previous
	// core panic (or retro_deinit) permanently retired it.
	ErrDefunct = errors.New("core handle is defunct")

	// ErrUnsupported means the loaded core does not implement the
	// optional capability the operation requires.
	ErrUnsupported = errors.New("core does not implement this capability")

	// ErrBufferSize means a serialize/unserialize buffer does not match
	// the size the core requires.
	ErrBufferSize = errors.New("buffer length does not match serialized state size")

	// ErrNoContent means retro_load_game passed no content and the
	// provider does not support running without a game.
	ErrNoContent = errors.New("no content given and core requires a game")

	// ErrUnknownCode means a raw protocol value does not map onto any
	// known enumeration member.
	ErrUnknownCode = errors.New("unknown protocol code")
)
