// Package state frames serialized core state in a versioned,
// tamper-evident container. The libretro protocol treats save-state
// buffers as opaque bytes; cores that want to detect truncated or
// corrupted states (bad files, frontend version skew) can wrap their
// payload here inside retro_serialize.
//
// Layout: 4-byte magic, uint32 format version, uint64 payload length,
// 32-byte BLAKE2b-256 digest of the payload, payload bytes. All integers
// little-endian.
package state

import (
	"crypto/subtle"
	"encoding/binary"
	"errors"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

var magic = [4]byte{'R', 'S', 'A', 'V'}

// Overhead is the fixed container size added on top of the payload.
const Overhead = 4 + 4 + 8 + blake2b.Size256

var (
	// ErrBadMagic means the buffer does not start with a container
	// header.
	ErrBadMagic = errors.New("not a state container")

	// ErrTruncated means the buffer is shorter than its header claims.
	ErrTruncated = errors.New("state container truncated")

	// ErrChecksum means the payload does not hash to the stored digest.
	ErrChecksum = errors.New("state payload checksum mismatch")
)

// Encode wraps payload in a container carrying the given core-defined
// version.
func Encode(version uint32, payload []byte) []byte {
	out := make([]byte, Overhead+len(payload))
	copy(out[0:4], magic[:])
	binary.LittleEndian.PutUint32(out[4:8], version)
	binary.LittleEndian.PutUint64(out[8:16], uint64(len(payload)))
	sum := blake2b.Sum256(payload)
	copy(out[16:16+blake2b.Size256], sum[:])
	copy(out[Overhead:], payload)
	return out
}

// Decode validates a container and returns its payload and version. The
// payload aliases buf; callers that outlive buf must copy.
func Decode(buf []byte) (payload []byte, version uint32, err error) {
	if len(buf) < Overhead || [4]byte(buf[0:4]) != magic {
		return nil, 0, ErrBadMagic
	}
	version = binary.LittleEndian.Uint32(buf[4:8])
	n := binary.LittleEndian.Uint64(buf[8:16])
	if uint64(len(buf)-Overhead) < n {
		return nil, 0, fmt.Errorf("%w: header claims %d payload bytes, have %d", ErrTruncated, n, len(buf)-Overhead)
	}
	payload = buf[Overhead : Overhead+int(n)]
	sum := blake2b.Sum256(payload)
	if subtle.ConstantTimeCompare(sum[:], buf[16:16+blake2b.Size256]) != 1 {
		return nil, 0, ErrChecksum
	}
	return payload, version, nil
}

// EncodedSize reports the container size for a payload of n bytes, for
// SerializeSize implementations.
func EncodedSize(n int) int {
	return Overhead + n
}
