// Command qwreplay works with recorded MVD demo files: it can catalog them
// into a sqlite index, dump their decoded frames to the console, or export
// their final world state as a compressed snapshot.
package main

import (
	"fmt"
	"log"
	"os"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Printf("qwreplay: %v", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: qwreplay <index|dump|export> [flags] <demo...>")
	}

	sub, rest := args[0], args[1:]
	switch sub {
	case "index":
		return runIndex(rest, os.Stdout)
	case "dump":
		return runDump(rest, os.Stdout)
	case "export":
		return runExport(rest, os.Stdout)
	default:
		return fmt.Errorf("qwreplay: unknown subcommand %q", sub)
	}
}
