// Package extract walks an input source and writes exactly the units of
// the resolved span to the output. Streaming ranges are emitted in one
// bounded-memory pass; ranges anchored on the end of the input cost
// either a seek-and-rewind (seekable sources) or a full in-memory
// buffer (pipes).
package extract

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/carvekit/carve/pkg/rangeexpr"
	"github.com/carvekit/carve/pkg/resolve"
	"github.com/carvekit/carve/pkg/source"
	"github.com/carvekit/carve/pkg/types"
)

// Config for extractor initialization.
type Config struct {
	// Unit selects line or byte counting.
	Unit types.Unit

	// Logger receives strategy and span diagnostics at debug level.
	// Pass zerolog.Nop() to discard them.
	Logger zerolog.Logger
}

// Extractor copies one contiguous span of an input to a writer.
type Extractor struct {
	unit types.Unit
	log  zerolog.Logger
}

// New creates an Extractor with the given config.
func New(cfg Config) *Extractor {
	return &Extractor{unit: cfg.Unit, log: cfg.Logger}
}

// Extract resolves the intent against the source and writes the selected
// units to w, in order. It stops reading as soon as the span's upper
// bound is reached; it does not drain the source.
func (e *Extractor) Extract(w io.Writer, src *source.Source, in rangeexpr.Intent) error {
	strategy := resolve.PickStrategy(in, e.unit, src.Seekable())
	e.log.Debug().
		Stringer("unit", e.unit).
		Stringer("strategy", strategy).
		Str("input", src.Name()).
		Msg("extracting")

	switch strategy {
	case resolve.StrategyLength:
		return e.extractByLength(w, src, in)
	case resolve.StrategyCount:
		return e.extractByCount(w, src, in)
	default:
		win, bounded := resolve.Window(in)
		return e.emit(w, src.Reader(), win, bounded)
	}
}

// extractByLength handles byte mode on a seekable source: the length is
// known up front, so the span is a single seek plus a bounded copy.
func (e *Extractor) extractByLength(w io.Writer, src *source.Source, in rangeexpr.Intent) error {
	total, ok := src.ByteLen()
	if !ok {
		return fmt.Errorf("input %s does not report its length", src.Name())
	}

	span := resolve.Resolve(in, total)
	e.log.Debug().Int64("total", total).Int64("lo", span.Lo).Int64("hi", span.Hi).Msg("resolved")
	if span.IsEmpty() {
		return nil
	}

	if err := src.SeekTo(span.Lo); err != nil {
		return err
	}
	if _, err := io.CopyN(w, src.Reader(), span.Len()); err != nil && err != io.EOF {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// extractByCount handles intents that need the total unit count when it
// is not known up front. Seekable sources are scanned, rewound and read
// again; sequential sources are buffered whole and replayed. The buffer
// is the documented memory cost of anchoring on an unknown-length
// stream.
func (e *Extractor) extractByCount(w io.Writer, src *source.Source, in rangeexpr.Intent) error {
	if src.Seekable() {
		total, err := e.countUnits(src.Reader())
		if err != nil {
			return err
		}
		span := resolve.Resolve(in, total)
		e.log.Debug().Int64("total", total).Int64("lo", span.Lo).Int64("hi", span.Hi).Msg("resolved after counting pass")
		if span.IsEmpty() {
			return nil
		}
		if err := src.Rewind(); err != nil {
			return err
		}
		return e.emit(w, src.Reader(), span, true)
	}

	buf, err := io.ReadAll(src.Reader())
	if err != nil {
		return fmt.Errorf("buffering input: %w", err)
	}
	total := e.unitsIn(buf)
	span := resolve.Resolve(in, total)
	e.log.Debug().Int64("total", total).Int("buffered_bytes", len(buf)).
		Int64("lo", span.Lo).Int64("hi", span.Hi).Msg("resolved from buffered input")
	if span.IsEmpty() {
		return nil
	}
	return e.emit(w, bufio.NewReader(bytes.NewReader(buf)), span, true)
}

// emit skips span.Lo units, then copies units until span.Hi (or EOF
// when the window is unbounded). A source shorter than the window is
// not an error; output is simply truncated at EOF.
func (e *Extractor) emit(w io.Writer, r *bufio.Reader, span types.Span, bounded bool) error {
	if e.unit == types.UnitByte {
		return e.emitBytes(w, r, span, bounded)
	}
	return e.emitLines(w, r, span, bounded)
}

func (e *Extractor) emitBytes(w io.Writer, r *bufio.Reader, span types.Span, bounded bool) error {
	if span.Lo > 0 {
		if _, err := io.CopyN(io.Discard, r, span.Lo); err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("reading input: %w", err)
		}
	}

	if !bounded {
		if _, err := io.Copy(w, r); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		return nil
	}

	if span.IsEmpty() {
		return nil
	}
	if _, err := io.CopyN(w, r, span.Len()); err != nil && err != io.EOF {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

func (e *Extractor) emitLines(w io.Writer, r *bufio.Reader, span types.Span, bounded bool) error {
	var idx int64
	for {
		if bounded && idx >= span.Hi {
			return nil
		}
		line, err := r.ReadBytes('\n')
		if len(line) > 0 && idx >= span.Lo {
			if _, werr := w.Write(line); werr != nil {
				return fmt.Errorf("writing output: %w", werr)
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
		idx++
	}
}

// countUnits scans the remainder of the reader counting units. In line
// mode a trailing record without a newline counts as one unit.
func (e *Extractor) countUnits(r *bufio.Reader) (int64, error) {
	buf := make([]byte, 32*1024)
	var total int64
	var last byte
	var sawData bool

	for {
		n, err := r.Read(buf)
		if n > 0 {
			sawData = true
			if e.unit == types.UnitByte {
				total += int64(n)
			} else {
				total += int64(bytes.Count(buf[:n], []byte{'\n'}))
			}
			last = buf[n-1]
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("counting input: %w", err)
		}
	}

	if e.unit == types.UnitLine && sawData && last != '\n' {
		total++
	}
	return total, nil
}

// unitsIn counts the units in an already-buffered input.
func (e *Extractor) unitsIn(p []byte) int64 {
	if e.unit == types.UnitByte {
		return int64(len(p))
	}
	total := int64(bytes.Count(p, []byte{'\n'}))
	if len(p) > 0 && p[len(p)-1] != '\n' {
		total++
	}
	return total
}
