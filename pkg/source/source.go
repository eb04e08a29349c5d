// Package source presents a uniform read surface over a named file and
// standard input, and truthfully reports whether rewinding and O(1)
// byte-length queries are available.
package source

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// Source wraps an input stream together with its capabilities. A regular
// file (or block device) is seekable and knows its byte length up front;
// standard input and pipes are sequential with unknown length.
type Source struct {
	r        *bufio.Reader
	file     *os.File
	seekable bool
	size     int64
	name     string
}

// Open opens the named input. An empty path or "-" selects standard
// input. Directories are rejected before any read.
func Open(path string) (*Source, error) {
	if path == "" || path == "-" {
		return &Source{r: bufio.NewReader(os.Stdin), name: "stdin"}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening input: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("opening input: %w", err)
	}
	if info.IsDir() {
		f.Close()
		return nil, fmt.Errorf("input %s is a directory", path)
	}

	src := &Source{
		r:    bufio.NewReader(f),
		file: f,
		name: path,
	}

	// Regular files and block devices can be rewound; FIFOs and
	// character devices cannot. Seeking to the end is the authoritative
	// length probe (Stat reports 0 for block devices).
	mode := info.Mode()
	if mode.IsRegular() || (mode&os.ModeDevice != 0 && mode&os.ModeCharDevice == 0) {
		size, err := f.Seek(0, io.SeekEnd)
		if err == nil {
			if _, err := f.Seek(0, io.SeekStart); err != nil {
				f.Close()
				return nil, fmt.Errorf("opening input: %w", err)
			}
			src.seekable = true
			src.size = size
		}
	}

	return src, nil
}

// FromReader wraps an arbitrary reader as a sequential, unknown-length
// source. Used by the library facade and tests.
func FromReader(r io.Reader, name string) *Source {
	return &Source{r: bufio.NewReader(r), name: name}
}

// Name returns a human-readable name for error messages.
func (s *Source) Name() string {
	return s.name
}

// Seekable reports whether Rewind and SeekTo are available.
func (s *Source) Seekable() bool {
	return s.seekable
}

// ByteLen returns the total byte length if it is known without reading
// the input.
func (s *Source) ByteLen() (int64, bool) {
	return s.size, s.seekable
}

// Reader returns the buffered reader positioned at the current cursor.
// The same reader stays valid across Rewind and SeekTo.
func (s *Source) Reader() *bufio.Reader {
	return s.r
}

// Read implements io.Reader.
func (s *Source) Read(p []byte) (int, error) {
	return s.r.Read(p)
}

// Rewind repositions a seekable source at its first byte.
func (s *Source) Rewind() error {
	return s.SeekTo(0)
}

// SeekTo repositions a seekable source at the given byte offset and
// discards buffered data.
func (s *Source) SeekTo(offset int64) error {
	if !s.seekable {
		return fmt.Errorf("input %s is not seekable", s.name)
	}
	if _, err := s.file.Seek(offset, io.SeekStart); err != nil {
		return fmt.Errorf("seeking input: %w", err)
	}
	s.r.Reset(s.file)
	return nil
}

// Close releases the underlying file. Closing a stdin or reader-backed
// source is a no-op.
func (s *Source) Close() error {
	if s.file == nil || s.file == os.Stdin {
		return nil
	}
	return s.file.Close()
}
