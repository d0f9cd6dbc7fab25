package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/ernie/qwgo/internal/mvd"
)

const (
	ansiDim   = "\x1b[2m"
	ansiReset = "\x1b[0m"
)

func runDump(args []string, stdout *os.File) error {
	fs := flag.NewFlagSet("qwreplay dump", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("qwreplay dump: exactly one demo path is required")
	}

	data, err := readDemoFile(fs.Arg(0))
	if err != nil {
		return err
	}
	demo, err := decodeDemo(data)
	if err != nil {
		return err
	}

	color := isatty.IsTerminal(stdout.Fd())
	for i, f := range demo.Frames {
		dumpFrame(stdout, i, f, color)
	}
	return nil
}

func dumpFrame(w io.Writer, index int, f mvd.Frame, color bool) {
	if color {
		fmt.Fprintf(w, "%sframe %5d%s to=%-3d cmd=%-2d messages=%d\n",
			ansiDim, index, ansiReset, f.Target.To, f.Target.Command, len(f.Messages))
		return
	}
	fmt.Fprintf(w, "frame %5d to=%-3d cmd=%-2d messages=%d\n", index, f.Target.To, f.Target.Command, len(f.Messages))
}
