// Package ffi holds the raw libretro protocol definitions: the numeric
// command codes and enum values exchanged with a frontend, Go mirrors of
// the protocol's C structs with identical byte layout, and helpers for
// crossing between Go strings/slices and C pointers.
//
// Nothing in this package validates protocol semantics; it is the thin
// binding layer the typed packages (libretro, env, capi) are built on.
// Struct layouts are pinned by tests using unsafe.Sizeof/Offsetof.
package ffi
