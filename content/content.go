// Package content loads game content for a core: raw files or the first
// matching entry of a ZIP, 7z, gzip/tar.gz or RAR archive. It backs the
// need_fullpath=false path of load_game when a frontend hands over only
// a filesystem path, and is exported for cores that manage content
// themselves (block_extract).
package content

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrNoMatch means an archive held no entry with an accepted
	// extension.
	ErrNoMatch = errors.New("no matching content in archive")

	// ErrUnrecognized means the file is neither a known archive nor a
	// file with an accepted extension.
	ErrUnrecognized = errors.New("unrecognized content format")

	// ErrTooLarge means content exceeded Options.MaxSize.
	ErrTooLarge = errors.New("content exceeds size limit")
)

// DefaultMaxSize caps extracted content at 64 MiB unless overridden;
// large enough for any cartridge-era system, small enough to stop a
// zip bomb from taking the process down.
const DefaultMaxSize = 64 * 1024 * 1024

// Options controls content loading.
type Options struct {
	// Extensions the core accepts, without leading dots (as declared in
	// SystemInfo.ValidExtensions). Empty accepts everything.
	Extensions []string

	// RawOnly disables archive extraction, for cores that declare
	// block_extract and parse archives themselves.
	RawOnly bool

	// MaxSize bounds the loaded byte count; 0 means DefaultMaxSize.
	MaxSize int64
}

func (o Options) maxSize() int64 {
	if o.MaxSize > 0 {
		return o.MaxSize
	}
	return DefaultMaxSize
}

// accepts reports whether name carries one of the accepted extensions.
func (o Options) accepts(name string) bool {
	if len(o.Extensions) == 0 {
		return true
	}
	lower := strings.ToLower(name)
	for _, ext := range o.Extensions {
		if strings.HasSuffix(lower, "."+strings.ToLower(strings.TrimPrefix(ext, "."))) {
			return true
		}
	}
	return false
}

// Archive format magic numbers.
var (
	magicZip      = []byte{0x50, 0x4B, 0x03, 0x04}
	magicZipEmpty = []byte{0x50, 0x4B, 0x05, 0x06}
	magic7z       = []byte{0x37, 0x7A, 0xBC, 0xAF, 0x27, 0x1C}
	magicGzip     = []byte{0x1F, 0x8B}
	magicRar      = []byte{0x52, 0x61, 0x72, 0x21}
)

type format int

const (
	formatRaw format = iota
	formatZip
	format7z
	formatGzip
	formatRar
	formatUnknown
)

// sniff decides the container format from leading bytes, falling back
// to the filename. Magic bytes win over extensions.
func sniff(header []byte, name string, opts Options) format {
	switch {
	case bytes.HasPrefix(header, magic7z):
		return format7z
	case bytes.HasPrefix(header, magicZip), bytes.HasPrefix(header, magicZipEmpty):
		return formatZip
	case bytes.HasPrefix(header, magicRar):
		return formatRar
	case bytes.HasPrefix(header, magicGzip):
		return formatGzip
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".zip":
		return formatZip
	case ".7z":
		return format7z
	case ".gz", ".tgz":
		return formatGzip
	case ".rar":
		return formatRar
	}
	if opts.accepts(name) {
		return formatRaw
	}
	return formatUnknown
}

// Load reads content from a filesystem path, extracting archives unless
// Options.RawOnly is set. It returns the content bytes and the name of
// the file they came from (the archive entry for archives).
func Load(path string, opts Options) ([]byte, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("opening content: %w", err)
	}
	defer f.Close()

	header := make([]byte, 8)
	n, err := io.ReadFull(f, header)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, "", fmt.Errorf("reading content header: %w", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, "", fmt.Errorf("rewinding content: %w", err)
	}

	form := sniff(header[:n], path, opts)
	if opts.RawOnly && form != formatUnknown {
		form = formatRaw
	}

	switch form {
	case formatRaw:
		data, err := readBounded(f, opts.maxSize())
		if err != nil {
			return nil, "", err
		}
		return data, filepath.Base(path), nil
	case formatZip:
		return extractZipFile(path, opts)
	case format7z:
		return extract7zFile(path, opts)
	case formatGzip:
		return extractGzip(f, path, opts)
	case formatRar:
		return extractRarFile(path, opts)
	default:
		return nil, "", fmt.Errorf("%w: %s", ErrUnrecognized, path)
	}
}

// FromMemory behaves like Load for content already in memory, e.g. a
// frontend-supplied data buffer for a block_extract core.
func FromMemory(data []byte, name string, opts Options) ([]byte, string, error) {
	form := sniff(data, name, opts)
	if opts.RawOnly && form != formatUnknown {
		form = formatRaw
	}

	switch form {
	case formatRaw:
		if int64(len(data)) > opts.maxSize() {
			return nil, "", ErrTooLarge
		}
		return data, filepath.Base(name), nil
	case formatZip:
		return extractZipMemory(data, opts)
	case format7z:
		return extract7zMemory(data, opts)
	case formatGzip:
		return extractGzip(bytes.NewReader(data), name, opts)
	case formatRar:
		return extractRarMemory(data, opts)
	default:
		return nil, "", fmt.Errorf("%w: %s", ErrUnrecognized, name)
	}
}

// readBounded reads everything from r, failing past the size limit
// instead of truncating.
func readBounded(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("reading content: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, ErrTooLarge
	}
	return data, nil
}
