package tail

import (
	"github.com/ipfs/go-cid"
	"github.com/ipld/go-tail/emit"
)

const (
	defaultLines = "10"
	defaultDelim = emit.DefaultDelimiter
)

type config struct {
	lines    string
	linesSet bool
	bytes    string
	bytesSet bool
	quiet    bool
	delim    byte
	lossy    bool
	digest   uint64
	onDigest func(name string, c cid.Cid)
}

type Option func(*config)

// apply applies the given options to this config.
func (c *config) apply(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// Lines sets the line count token, such as "10", "-3" or "+5". The default is
// "10", the last ten lines.
func Lines(count string) Option {
	return func(c *config) {
		c.lines = count
		c.linesSet = true
	}
}

// Bytes switches to byte mode with the given count token. It cannot be
// combined with Lines.
func Bytes(count string) Option {
	return func(c *config) {
		c.bytes = count
		c.bytesSet = true
	}
}

// Quiet suppresses the "==> name <==" banners written when tailing more than
// one file.
func Quiet(quiet bool) Option {
	return func(c *config) {
		c.quiet = quiet
	}
}

// Delimiter sets the byte that terminates a line.
func Delimiter(delim byte) Option {
	return func(c *config) {
		c.delim = delim
	}
}

// Lossy replaces invalid UTF-8 in the output with U+FFFD. Counting and
// positioning always use the raw bytes.
func Lossy(lossy bool) Option {
	return func(c *config) {
		c.lossy = lossy
	}
}

// Digest hashes the bytes emitted for each source with the multihash function
// identified by code, and calls fn with the source name and a raw CIDv1 of
// the result once the source is done.
func Digest(code uint64, fn func(name string, c cid.Cid)) Option {
	return func(c *config) {
		c.digest = code
		c.onDigest = fn
	}
}
