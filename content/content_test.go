package content

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var romBytes = []byte("NES\x1a fake rom payload")

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func zipBytes(t *testing.T, entries map[string][]byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, data := range entries {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func gzipBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func targzBytes(t *testing.T, entries map[string][]byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gw)
	for name, data := range entries {
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name: name,
			Mode: 0o644,
			Size: int64(len(data)),
		}))
		_, err := tw.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gw.Close())
	return buf.Bytes()
}

func TestLoadRawFile(t *testing.T) {
	path := writeFile(t, "game.nes", romBytes)

	data, name, err := Load(path, Options{Extensions: []string{"nes"}})
	require.NoError(t, err)
	assert.Equal(t, romBytes, data)
	assert.Equal(t, "game.nes", name)
}

func TestLoadRejectsUnknownExtension(t *testing.T) {
	path := writeFile(t, "game.exe", romBytes)

	_, _, err := Load(path, Options{Extensions: []string{"nes"}})
	require.ErrorIs(t, err, ErrUnrecognized)
}

func TestLoadZipPicksMatchingEntry(t *testing.T) {
	archive := zipBytes(t, map[string][]byte{
		"readme.txt":    []byte("docs"),
		"roms/game.nes": romBytes,
	})
	path := writeFile(t, "game.zip", archive)

	data, name, err := Load(path, Options{Extensions: []string{"nes"}})
	require.NoError(t, err)
	assert.Equal(t, romBytes, data)
	assert.Equal(t, "game.nes", name)
}

func TestLoadZipWithoutMatch(t *testing.T) {
	archive := zipBytes(t, map[string][]byte{"readme.txt": []byte("docs")})
	path := writeFile(t, "game.zip", archive)

	_, _, err := Load(path, Options{Extensions: []string{"nes"}})
	require.ErrorIs(t, err, ErrNoMatch)
}

func TestLoadMagicBeatsExtension(t *testing.T) {
	// A zip renamed to .nes must still extract: the frontend cannot be
	// trusted to name files truthfully.
	archive := zipBytes(t, map[string][]byte{"game.nes": romBytes})
	path := writeFile(t, "mislabeled.nes", archive)

	data, _, err := Load(path, Options{Extensions: []string{"nes"}})
	require.NoError(t, err)
	assert.Equal(t, romBytes, data)
}

func TestLoadRawOnlySkipsExtraction(t *testing.T) {
	archive := zipBytes(t, map[string][]byte{"game.nes": romBytes})
	path := writeFile(t, "game.zip", archive)

	data, _, err := Load(path, Options{Extensions: []string{"nes"}, RawOnly: true})
	require.NoError(t, err)
	assert.Equal(t, archive, data, "block_extract cores get the archive bytes verbatim")
}

func TestLoadGzip(t *testing.T) {
	path := writeFile(t, "game.nes.gz", gzipBytes(t, romBytes))

	data, name, err := Load(path, Options{Extensions: []string{"nes"}})
	require.NoError(t, err)
	assert.Equal(t, romBytes, data)
	assert.Equal(t, "game.nes", name)
}

func TestLoadGzipChecksInnerExtension(t *testing.T) {
	path := writeFile(t, "game.exe.gz", gzipBytes(t, romBytes))

	_, _, err := Load(path, Options{Extensions: []string{"nes"}})
	require.ErrorIs(t, err, ErrNoMatch)
}

func TestLoadTarGz(t *testing.T) {
	archive := targzBytes(t, map[string][]byte{
		"notes.txt": []byte("notes"),
		"game.nes":  romBytes,
	})
	path := writeFile(t, "bundle.tar.gz", archive)

	data, name, err := Load(path, Options{Extensions: []string{"nes"}})
	require.NoError(t, err)
	assert.Equal(t, romBytes, data)
	assert.Equal(t, "game.nes", name)
}

func TestLoadEnforcesSizeLimit(t *testing.T) {
	big := bytes.Repeat([]byte{0xAB}, 1024)
	path := writeFile(t, "game.nes", big)

	_, _, err := Load(path, Options{Extensions: []string{"nes"}, MaxSize: 512})
	require.ErrorIs(t, err, ErrTooLarge)

	// Extracted entries are bounded too, not just raw files.
	archive := zipBytes(t, map[string][]byte{"game.nes": big})
	zpath := writeFile(t, "game.zip", archive)
	_, _, err = Load(zpath, Options{Extensions: []string{"nes"}, MaxSize: 512})
	require.ErrorIs(t, err, ErrTooLarge)
}

func TestLoadMissingFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "absent.nes"), Options{})
	require.Error(t, err)
}

func TestFromMemory(t *testing.T) {
	t.Run("raw", func(t *testing.T) {
		data, name, err := FromMemory(romBytes, "game.nes", Options{Extensions: []string{"nes"}})
		require.NoError(t, err)
		assert.Equal(t, romBytes, data)
		assert.Equal(t, "game.nes", name)
	})

	t.Run("zip", func(t *testing.T) {
		archive := zipBytes(t, map[string][]byte{"game.nes": romBytes})
		data, name, err := FromMemory(archive, "game.zip", Options{Extensions: []string{"nes"}})
		require.NoError(t, err)
		assert.Equal(t, romBytes, data)
		assert.Equal(t, "game.nes", name)
	})

	t.Run("empty extensions accept anything", func(t *testing.T) {
		data, _, err := FromMemory(romBytes, "whatever.xyz", Options{})
		require.NoError(t, err)
		assert.Equal(t, romBytes, data)
	})
}

func TestOptionsAccepts(t *testing.T) {
	opts := Options{Extensions: []string{"smc", ".SFC"}}
	assert.True(t, opts.accepts("Game.smc"))
	assert.True(t, opts.accepts("game.sfc"))
	assert.False(t, opts.accepts("game.gb"))
	assert.False(t, opts.accepts("smc"))
}
