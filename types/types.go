package types

// Mode selects the unit that counts are measured in.
type Mode int

const (
	LineMode Mode = iota
	ByteMode
)

func (m Mode) String() string {
	if m == ByteMode {
		return "byte"
	}
	return "line"
}

// Counts is the number of lines and bytes in one source.
type Counts struct {
	Lines uint64
	Bytes uint64
}
