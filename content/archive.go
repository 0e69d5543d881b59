package content

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/nwaples/rardecode/v2"
)

func extractZipFile(path string, opts Options) ([]byte, string, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, "", fmt.Errorf("opening zip: %w", err)
	}
	defer r.Close()
	return pickZipEntry(&r.Reader, opts)
}

func extractZipMemory(data []byte, opts Options) ([]byte, string, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, "", fmt.Errorf("opening zip: %w", err)
	}
	return pickZipEntry(r, opts)
}

func pickZipEntry(r *zip.Reader, opts Options) ([]byte, string, error) {
	for _, f := range r.File {
		if f.FileInfo().IsDir() || !opts.accepts(f.Name) {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, "", fmt.Errorf("opening %s in zip: %w", f.Name, err)
		}
		data, err := readBounded(rc, opts.maxSize())
		rc.Close()
		if err != nil {
			return nil, "", fmt.Errorf("extracting %s: %w", f.Name, err)
		}
		return data, filepath.Base(f.Name), nil
	}
	return nil, "", ErrNoMatch
}

func extract7zFile(path string, opts Options) ([]byte, string, error) {
	r, err := sevenzip.OpenReader(path)
	if err != nil {
		return nil, "", fmt.Errorf("opening 7z: %w", err)
	}
	defer r.Close()
	return pick7zEntry(&r.Reader, opts)
}

func extract7zMemory(data []byte, opts Options) ([]byte, string, error) {
	r, err := sevenzip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, "", fmt.Errorf("opening 7z: %w", err)
	}
	return pick7zEntry(r, opts)
}

func pick7zEntry(r *sevenzip.Reader, opts Options) ([]byte, string, error) {
	for _, f := range r.File {
		if f.FileInfo().IsDir() || !opts.accepts(f.Name) {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, "", fmt.Errorf("opening %s in 7z: %w", f.Name, err)
		}
		data, err := readBounded(rc, opts.maxSize())
		rc.Close()
		if err != nil {
			return nil, "", fmt.Errorf("extracting %s: %w", f.Name, err)
		}
		return data, filepath.Base(f.Name), nil
	}
	return nil, "", ErrNoMatch
}

func extractRarFile(path string, opts Options) ([]byte, string, error) {
	r, err := rardecode.OpenReader(path)
	if err != nil {
		return nil, "", fmt.Errorf("opening rar: %w", err)
	}
	defer r.Close()
	return pickRarEntry(&r.Reader, opts)
}

func extractRarMemory(data []byte, opts Options) ([]byte, string, error) {
	r, err := rardecode.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("opening rar: %w", err)
	}
	return pickRarEntry(r, opts)
}

func pickRarEntry(r *rardecode.Reader, opts Options) ([]byte, string, error) {
	for {
		header, err := r.Next()
		if err == io.EOF {
			return nil, "", ErrNoMatch
		}
		if err != nil {
			return nil, "", fmt.Errorf("reading rar entry: %w", err)
		}
		if header.IsDir || !opts.accepts(header.Name) {
			continue
		}
		data, err := readBounded(r, opts.maxSize())
		if err != nil {
			return nil, "", fmt.Errorf("extracting %s: %w", header.Name, err)
		}
		return data, filepath.Base(header.Name), nil
	}
}

// extractGzip handles plain .gz content and tar.gz bundles.
func extractGzip(r io.Reader, name string, opts Options) ([]byte, string, error) {
	gr, err := gzip.NewReader(r)
	if err != nil {
		return nil, "", fmt.Errorf("opening gzip: %w", err)
	}
	defer gr.Close()

	lower := strings.ToLower(name)
	if strings.HasSuffix(lower, ".tar.gz") || strings.HasSuffix(lower, ".tgz") {
		return extractTar(gr, opts)
	}

	// The inner name is the filename minus the .gz suffix; it must pass
	// the same extension filter archive entries do.
	base := filepath.Base(name)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if !opts.accepts(base) {
		return nil, "", fmt.Errorf("%w: %s", ErrNoMatch, base)
	}

	data, err := readBounded(gr, opts.maxSize())
	if err != nil {
		return nil, "", err
	}
	return data, base, nil
}

func extractTar(r io.Reader, opts Options) ([]byte, string, error) {
	tr := tar.NewReader(r)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			return nil, "", ErrNoMatch
		}
		if err != nil {
			return nil, "", fmt.Errorf("reading tar entry: %w", err)
		}
		if header.Typeflag != tar.TypeReg || !opts.accepts(header.Name) {
			continue
		}
		data, err := readBounded(tr, opts.maxSize())
		if err != nil {
			return nil, "", fmt.Errorf("extracting %s: %w", header.Name, err)
		}
		return data, filepath.Base(header.Name), nil
	}
}
