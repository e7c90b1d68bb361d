package emit

import (
	"fmt"
	"io"
	"math"
)

// Bytes moves rs to the 0-based byte offset start and copies everything from
// there to the end of rs into w. Nothing before start is read. It returns the
// number of bytes written.
func Bytes(w io.Writer, rs io.ReadSeeker, start uint64) (int64, error) {
	if start > math.MaxInt64 {
		return 0, fmt.Errorf("cannot seek to %d: offset out of range", start)
	}
	if _, err := rs.Seek(int64(start), io.SeekStart); err != nil {
		return 0, fmt.Errorf("cannot seek to %d: %w", start, err)
	}
	buf := make([]byte, bufferSize)
	n, err := io.CopyBuffer(w, rs, buf)
	if err != nil {
		return n, fmt.Errorf("cannot copy from offset %d: %w", start, err)
	}
	return n, nil
}

// Size returns the length of s by seeking to its end. s is left positioned at
// its start.
func Size(s io.Seeker) (uint64, error) {
	end, err := s.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, fmt.Errorf("cannot seek to end: %w", err)
	}
	if _, err = s.Seek(0, io.SeekStart); err != nil {
		return 0, fmt.Errorf("cannot seek to start: %w", err)
	}
	return uint64(end), nil
}
