package file

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/revelaction/conllx/conllx"
	sent "github.com/revelaction/conllx/sentence"
	"github.com/ulikunitz/xz"
)

// Extensions of corpus files. A compression extension may follow, f.ex.
// tiger.conll.xz
var Extensions = []string{".conll", ".conllx", ".conll06", ".txt"}

// IsCorpus reports whether name looks like a CoNLL-X file.
func IsCorpus(name string) bool {
	ext := filepath.Ext(trimCompression(name))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Title returns the name of the file without directory and extensions.
func Title(path string) string {
	base := trimCompression(filepath.Base(path))
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func trimCompression(name string) string {
	for _, ext := range []string{".gz", ".xz", ".zst"} {
		if strings.HasSuffix(name, ext) {
			return strings.TrimSuffix(name, ext)
		}
	}
	return name
}

// readCloser closes the decompressor and the file.
type readCloser struct {
	io.Reader
	closers []func() error
}

func (rc *readCloser) Close() error {
	var errs []error
	for _, c := range rc.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

// Open opens a corpus file for reading, decompressing .gz, .xz and .zst
// files. "-" is stdin.
func Open(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	rc := &readCloser{Reader: f, closers: []func() error{f.Close}}

	switch filepath.Ext(path) {
	case ".gz":
		zr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("gzip %s: %w", path, err)
		}
		rc.Reader = zr
		rc.closers = append([]func() error{zr.Close}, rc.closers...)
	case ".xz":
		xr, err := xz.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("xz %s: %w", path, err)
		}
		rc.Reader = xr
	case ".zst":
		zr, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("zstd %s: %w", path, err)
		}
		rc.Reader = zr
		rc.closers = append([]func() error{func() error { zr.Close(); return nil }}, rc.closers...)
	}

	return rc, nil
}

// writeCloser flushes the compressor before closing the file.
type writeCloser struct {
	io.Writer
	closers []func() error
}

func (wc *writeCloser) Close() error {
	// stop at the first error: closing the file after a failed flush would
	// hide a truncated file.
	for _, c := range wc.closers {
		if err := c(); err != nil {
			return err
		}
	}
	return nil
}

// Create creates a corpus file, compressing by extension like Open. "-" is
// stdout.
func Create(path string) (io.WriteCloser, error) {
	if path == "-" {
		return &writeCloser{Writer: os.Stdout}, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	wc := &writeCloser{Writer: f, closers: []func() error{f.Close}}

	switch filepath.Ext(path) {
	case ".gz":
		zw := gzip.NewWriter(f)
		wc.Writer = zw
		wc.closers = append([]func() error{zw.Close}, wc.closers...)
	case ".xz":
		xw, err := xz.NewWriter(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("xz %s: %w", path, err)
		}
		wc.Writer = xw
		wc.closers = append([]func() error{xw.Close}, wc.closers...)
	case ".zst":
		zw, err := zstd.NewWriter(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("zstd %s: %w", path, err)
		}
		wc.Writer = zw
		wc.closers = append([]func() error{zw.Close}, wc.closers...)
	}

	return wc, nil
}

// ReadDoc reads all sentences of a corpus file. The first malformed sentence
// aborts the read.
func ReadDoc(path string) (sent.Doc, error) {
	f, err := Open(path)
	if err != nil {
		return sent.Doc{}, err
	}
	defer f.Close()

	doc := sent.Doc{Title: Title(path)}
	for s, err := range conllx.NewReader(f).Sentences() {
		if err != nil {
			return sent.Doc{}, fmt.Errorf("%s: %w", path, err)
		}
		doc.Sentences = append(doc.Sentences, s)
	}

	return doc, nil
}

// WriteDoc writes the sentences of doc to path.
func WriteDoc(path string, doc sent.Doc) (err error) {
	f, err := Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	w := conllx.NewWriter(f)
	for _, s := range doc.Sentences {
		if err := w.WriteSentence(s); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}

	return nil
}
