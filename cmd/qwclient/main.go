// Command qwclient is a headless QuakeWorld client: it runs the
// connection state machine in internal/conn over a real UDP socket and
// prints a periodic snapshot of the folded world state to stdout.
package main

import (
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"sort"
	"time"

	"golang.org/x/term"

	"github.com/ernie/qwgo/internal/conn"
	"github.com/ernie/qwgo/internal/world"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Printf("qwclient: %v", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	password := ""
	if opts.AskPassword {
		password, err = readPassword()
		if err != nil {
			return fmt.Errorf("qwclient: read password: %w", err)
		}
	}

	c := conn.NewClient(opts.Port)
	c.Userinfo.Set("name", opts.Name)
	if password != "" {
		c.Userinfo.Set("password", password)
	}

	udpConn, err := net.Dial("udp", opts.Server)
	if err != nil {
		return fmt.Errorf("qwclient: dial %s: %w", opts.Server, err)
	}
	defer udpConn.Close()

	state := world.New()
	out := c.Connect()
	if _, err := udpConn.Write(out); err != nil {
		return fmt.Errorf("qwclient: write getchallenge: %w", err)
	}

	buf := make([]byte, 8192)
	lastSnapshot := time.Now()
	for c.State != conn.StateError && c.State != conn.StateDisconnected {
		udpConn.SetReadDeadline(time.Now().Add(3 * time.Second))
		n, err := udpConn.Read(buf)
		if err != nil {
			if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
				if reply := c.HandleTimeout(); reply != nil {
					udpConn.Write(reply)
				}
				continue
			}
			return fmt.Errorf("qwclient: read: %w", err)
		}

		reply, err := c.HandlePacket(append([]byte(nil), buf[:n]...))
		if err != nil {
			return fmt.Errorf("qwclient: handle packet: %w", err)
		}
		if len(c.LastMessages) > 0 {
			state.ApplyMessages(c.LastMessages)
		}
		if reply != nil {
			if _, err := udpConn.Write(reply); err != nil {
				return fmt.Errorf("qwclient: write reply: %w", err)
			}
		}

		if time.Since(lastSnapshot) > 2*time.Second {
			printSnapshot(stdout, state.Snapshot())
			lastSnapshot = time.Now()
		}
	}
	return nil
}

func readPassword() (string, error) {
	fmt.Fprint(os.Stderr, "password: ")
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

func printSnapshot(w io.Writer, snap world.Snapshot) {
	indexes := make([]uint16, 0, len(snap.PlayerIndexes))
	indexes = append(indexes, snap.PlayerIndexes...)
	sort.Slice(indexes, func(i, j int) bool { return indexes[i] < indexes[j] })

	fmt.Fprintf(w, "-- players (%d), entities (%d) --\n", len(snap.PlayerIndexes), len(snap.EntityIndexes))
	for _, idx := range indexes {
		p := snap.Players[idx]
		fmt.Fprintf(w, "  [%2d] %-16s frags=%-4d ping=%-4d\n", idx, p.Name, p.Frags, p.Ping)
	}
}
