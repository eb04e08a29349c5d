// Package carve slices a contiguous span out of a line or byte stream,
// selected by a Python-style range expression.
//
// # Basic Usage
//
// Copy lines 10-19 of a reader to a writer:
//
//	err := carve.Slice(os.Stdout, f, "10:20")
//
// Take the last kilobyte of a file:
//
//	err := carve.SliceFile(os.Stdout, "core.img", "-1024:", carve.WithUnit(carve.UnitByte))
//
// Endpoints may be negative (counted from the end of the input) or
// omitted, and the end may be written "+N" for "N units past the
// start". Ranges that need the input's total length force a counting
// pass; on an unseekable reader that pass buffers the whole input.
package carve

import (
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/carvekit/carve/pkg/extract"
	"github.com/carvekit/carve/pkg/rangeexpr"
	"github.com/carvekit/carve/pkg/source"
	"github.com/carvekit/carve/pkg/types"
)

// Re-export commonly used types so callers can import just
// "github.com/carvekit/carve" without subpackages.
type (
	// Unit selects line or byte counting.
	Unit = types.Unit

	// Span is the resolved half-open unit interval [Lo, Hi).
	Span = types.Span

	// Intent is a parsed range expression.
	Intent = rangeexpr.Intent
)

const (
	UnitLine = types.UnitLine
	UnitByte = types.UnitByte
)

// ErrInvalidRange is returned for range expressions that fail the
// grammar. Check with errors.Is.
var ErrInvalidRange = rangeexpr.ErrInvalidRange

// config holds slicing configuration.
type config struct {
	unit   types.Unit
	logger zerolog.Logger
}

// Option configures a slice operation.
type Option func(*config)

// WithUnit selects the counting unit. The default is UnitLine.
func WithUnit(u Unit) Option {
	return func(c *config) {
		c.unit = u
	}
}

// WithLogger routes strategy diagnostics to the given logger. The
// default discards them.
func WithLogger(l zerolog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

func newConfig(opts []Option) *config {
	cfg := &config{
		unit:   types.UnitLine,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Slice writes the units of src selected by rangeText to dst. The
// reader is treated as sequential with unknown length, so end-anchored
// ranges buffer it in full; use SliceFile to let regular files resolve
// by seeking instead.
func Slice(dst io.Writer, src io.Reader, rangeText string, opts ...Option) error {
	cfg := newConfig(opts)
	intent, err := rangeexpr.Parse(rangeText)
	if err != nil {
		return err
	}
	s := source.FromReader(src, "reader")
	return extract.New(extract.Config{Unit: cfg.unit, Logger: cfg.logger}).Extract(dst, s, intent)
}

// SliceFile opens the named file ("" or "-" for stdin) and writes the
// selected units to dst.
func SliceFile(dst io.Writer, path, rangeText string, opts ...Option) error {
	cfg := newConfig(opts)
	intent, err := rangeexpr.Parse(rangeText)
	if err != nil {
		return err
	}
	s, err := source.Open(path)
	if err != nil {
		return err
	}
	defer s.Close()
	return extract.New(extract.Config{Unit: cfg.unit, Logger: cfg.logger}).Extract(dst, s, intent)
}

// SliceString slices a string and returns the selected span.
func SliceString(content, rangeText string, opts ...Option) (string, error) {
	var sb strings.Builder
	if err := Slice(&sb, strings.NewReader(content), rangeText, opts...); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// ParseRange parses a range expression without running an extraction.
// Useful for validating user input early.
func ParseRange(rangeText string) (Intent, error) {
	return rangeexpr.Parse(rangeText)
}
