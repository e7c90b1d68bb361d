package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/ipfs/go-cid"
	logging "github.com/ipfs/go-log/v2"
	tail "github.com/ipld/go-tail"
	"github.com/multiformats/go-multihash"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var (
		lines    string
		bytes    string
		quiet    bool
		zero     bool
		lossy    bool
		digest   string
		logLevel string
	)
	fs := flag.NewFlagSet("tailr", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: tailr [flags] FILE...")
		fs.PrintDefaults()
	}
	fs.StringVar(&lines, "n", "10", "number of lines, +N to start at line N")
	fs.StringVar(&bytes, "c", "", "number of bytes, +N to start at byte N")
	fs.BoolVar(&quiet, "q", false, "never print file name banners")
	fs.BoolVar(&zero, "z", false, "lines are terminated by NUL, not newline")
	fs.BoolVar(&lossy, "lossy", false, "replace invalid UTF-8 in output")
	fs.StringVar(&digest, "digest", "", "print a CID of each file's output using this multihash function, e.g. sha2-256")
	fs.StringVar(&logLevel, "log-level", "", "log level {debug, info, warn, error}")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	if fs.NArg() == 0 {
		fmt.Fprintln(stderr, "missing file operand")
		fs.Usage()
		return 1
	}

	if logLevel != "" {
		lvl, err := logging.LevelFromString(logLevel)
		if err != nil {
			fmt.Fprintln(stderr, "invalid log level:", logLevel)
			return 1
		}
		logging.SetAllLoggers(lvl)
	}

	opts := []tail.Option{tail.Quiet(quiet), tail.Lossy(lossy)}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "n":
			opts = append(opts, tail.Lines(lines))
		case "c":
			opts = append(opts, tail.Bytes(bytes))
		}
	})
	if zero {
		opts = append(opts, tail.Delimiter(0))
	}
	if digest != "" {
		code, ok := multihash.Names[digest]
		if !ok {
			fmt.Fprintln(stderr, "unknown digest function:", digest)
			return 1
		}
		opts = append(opts, tail.Digest(code, func(name string, c cid.Cid) {
			fmt.Fprintf(stderr, "%s  %s\n", c, name)
		}))
	}

	tl, err := tail.New(stdout, stderr, opts...)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer tl.Close()

	// Per-file errors were already written to stderr.
	if err = tl.Run(context.Background(), fs.Args()); err != nil {
		return 1
	}
	return 0
}
