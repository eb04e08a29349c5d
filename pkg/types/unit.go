package types

// Unit is the granularity of counting and slicing: whole lines or raw
// bytes. It is fixed for the whole invocation.
type Unit int

const (
	// UnitLine counts newline-delimited records. A record includes its
	// terminator; a final record without one still counts.
	UnitLine Unit = iota

	// UnitByte counts raw bytes.
	UnitByte
)

func (u Unit) String() string {
	switch u {
	case UnitByte:
		return "byte"
	default:
		return "line"
	}
}
