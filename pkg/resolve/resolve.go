// Package resolve turns a parsed range intent into a concrete half-open
// span, choosing a strategy based on whether the intent requires the
// input's total length and whether the source can supply it cheaply.
package resolve

import (
	"math"

	"github.com/carvekit/carve/pkg/rangeexpr"
	"github.com/carvekit/carve/pkg/types"
)

// Strategy selects how the extractor learns enough about the input to
// pin down the requested span.
type Strategy int

const (
	// StrategyStream: the span is computable from the intent alone.
	// One pass, bounded memory, no length knowledge needed.
	StrategyStream Strategy = iota

	// StrategyLength: the total is available in O(1) from the source
	// (byte mode on a seekable source). One bounded copy after a seek,
	// never a per-unit walk, whatever the endpoint signs.
	StrategyLength

	// StrategyCount: the total must be discovered by a counting pass.
	// Seekable sources rewind for the second pass; sequential sources
	// buffer the whole input and replay it.
	StrategyCount
)

func (s Strategy) String() string {
	switch s {
	case StrategyLength:
		return "length"
	case StrategyCount:
		return "count"
	default:
		return "stream"
	}
}

// NeedsTotal reports whether resolving the intent requires knowing the
// input's total unit count. That is the case exactly when the start is
// negative or the end is a negative absolute index.
func NeedsTotal(in rangeexpr.Intent) bool {
	if in.Start != nil && *in.Start < 0 {
		return true
	}
	return in.End.Kind == rangeexpr.EndAbsolute && in.End.N < 0
}

// PickStrategy decides how the extractor should run for the given
// intent, unit and source capability. Byte mode on a seekable source
// always resolves from the O(1) length so the extractor can seek past
// the skipped prefix instead of reading it.
func PickStrategy(in rangeexpr.Intent, unit types.Unit, seekable bool) Strategy {
	if unit == types.UnitByte && seekable {
		return StrategyLength
	}
	if !NeedsTotal(in) {
		return StrategyStream
	}
	return StrategyCount
}

// Resolve computes the concrete span for an intent once the total unit
// count is known. Negative endpoints anchor on the end of the input;
// everything is clamped into [0, total]. An empty span is valid and
// means empty output.
func Resolve(in rangeexpr.Intent, total int64) types.Span {
	var lo int64
	if in.Start != nil {
		lo = *in.Start
		if lo < 0 {
			lo += total
		}
	}
	lo = clamp(lo, 0, total)

	var hi int64
	switch in.End.Kind {
	case rangeexpr.EndAbsolute:
		hi = in.End.N
		if hi < 0 {
			hi += total
		}
	case rangeexpr.EndRelative:
		hi = addSaturating(lo, in.End.N)
	default:
		hi = total
	}
	hi = clamp(hi, lo, total)

	return types.Span{Lo: lo, Hi: hi}
}

// Window computes the skip/take window for intents that need no total
// length (the streaming path). The second return value reports whether
// the window has an upper bound; when it is false the extractor emits
// until EOF and Span.Hi is meaningless.
//
// Only valid when NeedsTotal(in) is false.
func Window(in rangeexpr.Intent) (types.Span, bool) {
	var lo int64
	if in.Start != nil && *in.Start > 0 {
		lo = *in.Start
	}

	switch in.End.Kind {
	case rangeexpr.EndAbsolute:
		hi := in.End.N
		if hi < lo {
			hi = lo
		}
		return types.Span{Lo: lo, Hi: hi}, true
	case rangeexpr.EndRelative:
		return types.Span{Lo: lo, Hi: addSaturating(lo, in.End.N)}, true
	default:
		return types.Span{Lo: lo, Hi: lo}, false
	}
}

// addSaturating adds two non-negative counts, capping at MaxInt64
// instead of wrapping. A "+N" end near the int64 ceiling must mean "the
// rest of the input", not an empty span.
func addSaturating(a, b int64) int64 {
	if b > math.MaxInt64-a {
		return math.MaxInt64
	}
	return a + b
}

func clamp(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
