package types

import "fmt"

type errorType string

func (e errorType) Error() string {
	return string(e)
}

// ErrConflictingModes indicates that both a line count and a byte count were
// requested. Only one mode may be active.
const ErrConflictingModes = errorType("line count and byte count are mutually exclusive")

// ErrInvalidOffset indicates that a count token does not have the form of an
// optional sign followed by decimal digits. Unit is empty until the caller
// knows which count the token was given for.
type ErrInvalidOffset struct {
	Token string
	Unit  string
}

func (e ErrInvalidOffset) Error() string {
	if e.Unit == "" {
		return fmt.Sprintf("invalid offset: %s", e.Token)
	}
	return fmt.Sprintf("illegal %s count -- %s", e.Unit, e.Token)
}

// ErrFileOpen indicates that a listed file could not be opened. The file
// contributes no output and processing continues with the next file.
type ErrFileOpen struct {
	Path string
	Err  error
}

func (e ErrFileOpen) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e ErrFileOpen) Unwrap() error {
	return e.Err
}

// ErrFileIO indicates a read, seek or write failure part way through a file.
// Op names the step that failed: "count", "size", "seek" or "emit".
type ErrFileIO struct {
	Path string
	Op   string
	Err  error
}

func (e ErrFileIO) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e ErrFileIO) Unwrap() error {
	return e.Err
}
