// Package rangeexpr parses Python-style slice range expressions of the
// form "[start]:[end]" into a structured intent. Only syntax is checked
// here; endpoint semantics (negative anchoring, clamping) are resolved
// later against the input length.
package rangeexpr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidRange indicates a range expression that fails the grammar:
// missing colon, more than one colon, or an unparsable endpoint.
var ErrInvalidRange = errors.New("invalid range")

// EndKind discriminates the three forms an end endpoint can take.
type EndKind int

const (
	// EndAbsent means the end was omitted; it resolves to the input length.
	EndAbsent EndKind = iota

	// EndAbsolute is a signed index, possibly negative (from the end).
	EndAbsolute

	// EndRelative is the "+N" form: N units past the resolved start.
	EndRelative
)

// End is the parsed end endpoint. N is meaningful only for EndAbsolute
// and EndRelative.
type End struct {
	Kind EndKind
	N    int64
}

// Intent is the parsed, unvalidated range. A nil Start means the range
// begins at the first unit. Intent is immutable once parsed.
type Intent struct {
	Start *int64
	End   End
}

// Parse parses a range expression. The grammar is "[start]:[end]" with
// exactly one colon, where start is an optional signed integer and end
// is an optional signed integer or "+N" for non-negative N.
//
// Start greater than end is not a parse error; the resolver clamps such
// ranges to empty output.
func Parse(s string) (Intent, error) {
	startText, endText, found := strings.Cut(s, ":")
	if !found {
		return Intent{}, fmt.Errorf("%w %q: missing ':' separator", ErrInvalidRange, s)
	}
	if strings.Contains(endText, ":") {
		return Intent{}, fmt.Errorf("%w %q: more than one ':' separator", ErrInvalidRange, s)
	}

	var intent Intent

	if startText != "" {
		start, err := strconv.ParseInt(startText, 10, 64)
		if err != nil {
			return Intent{}, fmt.Errorf("%w %q: bad start %q", ErrInvalidRange, s, startText)
		}
		intent.Start = &start
	}

	end, err := parseEnd(endText)
	if err != nil {
		return Intent{}, fmt.Errorf("%w %q: %v", ErrInvalidRange, s, err)
	}
	intent.End = end

	return intent, nil
}

func parseEnd(text string) (End, error) {
	if text == "" {
		return End{Kind: EndAbsent}, nil
	}

	if rest, ok := strings.CutPrefix(text, "+"); ok {
		// ParseUint rejects a second sign, so "+-3" and "++3" fail here.
		n, err := strconv.ParseUint(rest, 10, 63)
		if err != nil {
			return End{}, fmt.Errorf("bad relative end %q", text)
		}
		return End{Kind: EndRelative, N: int64(n)}, nil
	}

	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return End{}, fmt.Errorf("bad end %q", text)
	}
	return End{Kind: EndAbsolute, N: n}, nil
}
