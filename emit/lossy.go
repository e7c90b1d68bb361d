package emit

import (
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// NewLossyWriter returns a writer that passes valid UTF-8 through to w and
// replaces each invalid byte with U+FFFD. Sequences split across writes are
// reassembled. Close must be called to flush a trailing partial sequence; it
// does not close w.
func NewLossyWriter(w io.Writer) io.WriteCloser {
	return transform.NewWriter(w, unicode.UTF8.NewDecoder())
}
