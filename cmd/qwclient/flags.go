package main

import (
	"fmt"

	"github.com/spf13/pflag"
)

// Options holds cmd/qwclient's parsed command-line configuration.
type Options struct {
	Server      string
	Port        int
	Name        string
	AskPassword bool
}

// parseFlags parses args (excluding the program name) into Options.
func parseFlags(args []string) (*Options, error) {
	fs := pflag.NewFlagSet("qwclient", pflag.ContinueOnError)
	server := fs.StringP("server", "s", "", "QuakeWorld server address, host:port")
	port := fs.IntP("port", "p", 27501, "local qport to advertise in connect")
	name := fs.StringP("name", "n", "player", "userinfo name")
	askPassword := fs.Bool("password", false, "prompt for a connect password")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if *server == "" {
		return nil, fmt.Errorf("qwclient: --server is required")
	}
	return &Options{
		Server:      *server,
		Port:        *port,
		Name:        *name,
		AskPassword: *askPassword,
	}, nil
}
