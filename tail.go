// Package tail prints the end of files. A count of lines or bytes, anchored
// to either the start or the end of each file, is resolved to a start position
// and everything from there to the end of the file is copied to the output.
package tail

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ipfs/go-cid"
	logging "github.com/ipfs/go-log/v2"
	"github.com/ipld/go-tail/emit"
	"github.com/ipld/go-tail/filecache"
	"github.com/ipld/go-tail/offset"
	"github.com/ipld/go-tail/types"
	"go.uber.org/multierr"
)

var log = logging.Logger("tail")

// Tailer writes the tail of each source it is given to one output, and
// reports per-source errors to a separate diagnostic writer. A Tailer handles
// one source at a time and is not safe for concurrent use.
type Tailer struct {
	out   io.Writer
	diag  io.Writer
	mode  types.Mode
	spec  offset.Spec
	quiet bool
	delim byte
	lossy bool

	digest   uint64
	onDigest func(name string, c cid.Cid)

	files *filecache.FileCache
}

// New parses the configured count and returns a Tailer writing data to out and
// diagnostics to diag. An unparsable count returns types.ErrInvalidOffset
// before any file is touched.
func New(out, diag io.Writer, options ...Option) (*Tailer, error) {
	cfg := config{
		lines: defaultLines,
		delim: defaultDelim,
	}
	cfg.apply(options)

	if cfg.linesSet && cfg.bytesSet {
		return nil, types.ErrConflictingModes
	}

	mode, count := types.LineMode, cfg.lines
	if cfg.bytesSet {
		mode, count = types.ByteMode, cfg.bytes
	}
	spec, err := offset.Parse(count)
	if err != nil {
		var invalid types.ErrInvalidOffset
		if errors.As(err, &invalid) {
			invalid.Unit = mode.String()
			return nil, invalid
		}
		return nil, err
	}

	if cfg.onDigest != nil {
		// Fail early on an unknown hash function.
		if _, err = newDigester(cfg.digest); err != nil {
			return nil, fmt.Errorf("cannot digest output: %w", err)
		}
	}

	return &Tailer{
		out:      out,
		diag:     diag,
		mode:     mode,
		spec:     spec,
		quiet:    cfg.quiet,
		delim:    cfg.delim,
		lossy:    cfg.lossy,
		digest:   cfg.digest,
		onDigest: cfg.onDigest,
		files:    filecache.New(1),
	}, nil
}

// Mode returns whether the Tailer counts lines or bytes.
func (t *Tailer) Mode() types.Mode {
	return t.mode
}

// Spec returns the parsed count.
func (t *Tailer) Spec() offset.Spec {
	return t.spec
}

// Run tails each path in order. When there is more than one path and quiet is
// not set, each opened file is preceded by a "==> path <==" banner.
//
// A file that cannot be opened or read is reported to the diagnostic writer
// and skipped. Run returns all such errors combined, and can be inspected
// with multierr.Errors. ctx is only checked between files.
func (t *Tailer) Run(ctx context.Context, paths []string) error {
	var errs error
	banners := !t.quiet && len(paths) > 1
	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			return multierr.Append(errs, err)
		}

		file, err := t.files.Acquire(path)
		if err != nil {
			errs = multierr.Append(errs, t.report(types.ErrFileOpen{Path: path, Err: unwrapPath(err)}))
			continue
		}

		if banners {
			sep := ""
			if i != 0 {
				sep = "\n"
			}
			if _, err = fmt.Fprintf(t.out, "%s==> %s <==\n", sep, path); err != nil {
				t.close(path, file)
				errs = multierr.Append(errs, t.report(types.ErrFileIO{Path: path, Op: "emit", Err: err}))
				continue
			}
		}

		err = t.tailFile(path, file)
		t.close(path, file)
		if err != nil {
			errs = multierr.Append(errs, t.report(err))
		}
	}
	return errs
}

// TailFile tails a single file without a banner. Errors are returned, not
// written to the diagnostic writer.
func (t *Tailer) TailFile(path string) error {
	file, err := t.files.Acquire(path)
	if err != nil {
		return types.ErrFileOpen{Path: path, Err: unwrapPath(err)}
	}
	defer t.close(path, file)
	return t.tailFile(path, file)
}

// Tail tails an already open source. In byte mode its size is found by
// seeking to its end.
func (t *Tailer) Tail(name string, src io.ReadSeeker) error {
	return t.tail(name, src, func() (uint64, error) {
		return emit.Size(src)
	})
}

// Close releases any files still held open.
func (t *Tailer) Close() error {
	return t.files.Purge()
}

func (t *Tailer) tailFile(path string, file *os.File) error {
	return t.tail(path, file, func() (uint64, error) {
		fi, err := file.Stat()
		if err != nil {
			return 0, err
		}
		return uint64(fi.Size()), nil
	})
}

// tail runs the per-source sequence: obtain the total, resolve the start, and
// emit from the start to the end. Nothing is emitted when the start does not
// resolve.
func (t *Tailer) tail(name string, src io.ReadSeeker, size func() (uint64, error)) error {
	var total uint64
	if t.mode == types.ByteMode {
		var err error
		total, err = size()
		if err != nil {
			return types.ErrFileIO{Path: name, Op: "size", Err: err}
		}
	} else {
		if _, err := src.Seek(0, io.SeekStart); err != nil {
			return types.ErrFileIO{Path: name, Op: "seek", Err: err}
		}
		counts, err := emit.Count(src, t.delim)
		if err != nil {
			return types.ErrFileIO{Path: name, Op: "count", Err: err}
		}
		total = counts.Lines
		// The counting pass leaves the shared handle at the end.
		if _, err = src.Seek(0, io.SeekStart); err != nil {
			return types.ErrFileIO{Path: name, Op: "seek", Err: err}
		}
	}

	start, ok := offset.Resolve(t.spec, total)
	log.Debugw("Resolved start", "name", name, "mode", t.mode, "spec", t.spec, "total", total, "start", start, "emit", ok)

	err := t.output(name, func(w io.Writer) error {
		if !ok {
			return nil
		}
		var err error
		if t.mode == types.ByteMode {
			_, err = emit.Bytes(w, src, start)
		} else {
			_, err = emit.Lines(w, src, start, t.delim)
		}
		return err
	})
	if err != nil {
		return types.ErrFileIO{Path: name, Op: "emit", Err: err}
	}
	return nil
}

// output runs fn with the output writer for one source, wrapped for lossy
// output and digesting as configured.
func (t *Tailer) output(name string, fn func(io.Writer) error) error {
	w := t.out

	var lossy io.WriteCloser
	if t.lossy {
		lossy = emit.NewLossyWriter(w)
		w = lossy
	}

	var d *digester
	if t.onDigest != nil {
		var err error
		if d, err = newDigester(t.digest); err != nil {
			return err
		}
		// Digest the raw bytes, before any substitution.
		w = io.MultiWriter(d, w)
	}

	err := fn(w)
	if lossy != nil {
		if cerr := lossy.Close(); err == nil {
			err = cerr
		}
	}
	if err != nil {
		return err
	}

	if d != nil {
		c, err := d.cid()
		if err != nil {
			return err
		}
		t.onDigest(name, c)
	}
	return nil
}

func (t *Tailer) close(path string, file *os.File) {
	if err := t.files.Release(file); err != nil {
		log.Warnw("Cannot release file", "path", path, "err", err)
	}
	if err := t.files.Evict(path); err != nil {
		log.Warnw("Cannot close file", "path", path, "err", err)
	}
}

// report writes err to the diagnostic writer and returns it.
func (t *Tailer) report(err error) error {
	log.Warnw("Skipped file", "err", err)
	fmt.Fprintln(t.diag, err)
	return err
}

// unwrapPath drops the operation and path from an *os.PathError, since the
// path is already part of the reported error.
func unwrapPath(err error) error {
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err
	}
	return err
}
