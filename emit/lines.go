// Package emit counts and streams the suffix of a source. Line mode reads
// sequentially from any io.Reader. Byte mode positions an io.ReadSeeker
// directly at the first byte to emit.
package emit

import (
	"bufio"
	"fmt"
	"io"

	"github.com/ipld/go-tail/types"
)

const (
	// DefaultDelimiter terminates a line unless another byte is configured.
	DefaultDelimiter = '\n'

	// bufferSize is the size of I/O buffers. It has the same size as the
	// linux pipe size.
	bufferSize = 16 * 4096
)

// lineReader reads delimited lines into a single buffer that is reused for
// every line, so memory stays proportional to the longest line.
type lineReader struct {
	r     *bufio.Reader
	delim byte
	line  []byte
}

func newLineReader(r io.Reader, delim byte) *lineReader {
	return &lineReader{
		r:     bufio.NewReaderSize(r, bufferSize),
		delim: delim,
	}
}

// next returns the next line with its delimiter, if it has one. A final line
// without a delimiter is still a line. The returned slice is only valid until
// the next call. At the end of input next returns io.EOF.
func (lr *lineReader) next() ([]byte, error) {
	lr.line = lr.line[:0]
	for {
		frag, err := lr.r.ReadSlice(lr.delim)
		lr.line = append(lr.line, frag...)
		switch err {
		case nil:
			return lr.line, nil
		case bufio.ErrBufferFull:
			continue
		case io.EOF:
			if len(lr.line) != 0 {
				return lr.line, nil
			}
		}
		return nil, err
	}
}

// Count reads r to the end and returns the number of lines and bytes in it.
func Count(r io.Reader, delim byte) (types.Counts, error) {
	var counts types.Counts
	lr := newLineReader(r, delim)
	for {
		line, err := lr.next()
		if err != nil {
			if err == io.EOF {
				return counts, nil
			}
			return types.Counts{}, fmt.Errorf("cannot read line %d: %w", counts.Lines+1, err)
		}
		counts.Lines++
		counts.Bytes += uint64(len(line))
	}
}

// Lines copies every line of r, starting at the 0-based line index start, to
// w. Lines are written verbatim with their delimiters. Lines before start are
// read and discarded. It returns the number of bytes written.
func Lines(w io.Writer, r io.Reader, start uint64, delim byte) (int64, error) {
	var written int64
	var lineNum uint64
	lr := newLineReader(r, delim)
	for ; ; lineNum++ {
		line, err := lr.next()
		if err != nil {
			if err == io.EOF {
				return written, nil
			}
			return written, fmt.Errorf("cannot read line %d: %w", lineNum+1, err)
		}
		if lineNum < start {
			continue
		}
		n, err := w.Write(line)
		written += int64(n)
		if err != nil {
			return written, fmt.Errorf("cannot write output: %w", err)
		}
	}
}
