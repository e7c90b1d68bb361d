// Package offset parses user supplied line and byte counts and resolves them
// against the size of a source to find where emission begins.
package offset

import "strconv"

// Kind tells which variant a Spec holds.
type Kind uint8

const (
	// KindSigned is a count anchored to the start (positive) or the end
	// (negative) of a source. Zero means emit nothing.
	KindSigned Kind = iota
	// KindRelativeZero is the "+0" count: the whole source, unless it is
	// empty.
	KindRelativeZero
)

// Spec is a parsed count. The zero value is Signed(0).
type Spec struct {
	kind Kind
	n    int64
}

// Signed returns a count of n units. A positive n is a 1-based position from
// the start, a negative n is a number of units counted back from the end.
func Signed(n int64) Spec {
	return Spec{kind: KindSigned, n: n}
}

// RelativeZero returns the "+0" count.
func RelativeZero() Spec {
	return Spec{kind: KindRelativeZero}
}

// Kind returns the variant held by s.
func (s Spec) Kind() Kind {
	return s.kind
}

// Value returns the signed count. It is always 0 for KindRelativeZero, use
// Kind to tell it apart from Signed(0).
func (s Spec) Value() int64 {
	return s.n
}

// FromStart reports whether the count is anchored to the start of a source.
func (s Spec) FromStart() bool {
	return s.kind == KindRelativeZero || s.n > 0
}

func (s Spec) String() string {
	if s.kind == KindRelativeZero {
		return "+0"
	}
	if s.n > 0 {
		return "+" + strconv.FormatInt(s.n, 10)
	}
	return strconv.FormatInt(s.n, 10)
}
