package conn

import (
	"fmt"
	"strings"

	"github.com/ernie/qwgo/internal/entities"
)

// composeResponse walks one batch of incoming server messages and builds
// the client command strings the handshake's soundlist/modellist/
// prespawn/spawn/begin sequencing calls for.
func (c *Client) composeResponse(messages []entities.ServerMessage) []string {
	var cmds []string
	for _, sm := range messages {
		switch body := sm.Body.(type) {
		case entities.Serverdata:
			sd := body
			c.Serverdata = &sd
			cmds = append(cmds, fmt.Sprintf("soundlist %d 0", sd.ServerCount))
		case entities.Soundlist:
			if c.Serverdata == nil {
				continue
			}
			if body.Offset > 0 {
				cmds = append(cmds, fmt.Sprintf("soundlist %d %d", c.Serverdata.ServerCount, body.Offset))
			} else {
				cmds = append(cmds, fmt.Sprintf("modellist %d 0", c.Serverdata.ServerCount))
			}
		case entities.Modellist:
			if c.Serverdata == nil {
				continue
			}
			if body.Offset > 0 {
				cmds = append(cmds, fmt.Sprintf("modellist %d %d", c.Serverdata.ServerCount, body.Offset))
			} else {
				cmds = append(cmds, fmt.Sprintf("prespawn %d 0 %d", c.Serverdata.ServerCount, c.MapCRC))
				c.PrespawnSent = true
				pmodel, _ := c.Userinfo.Get("pmodel")
				emodel, _ := c.Userinfo.Get("emodel")
				cmds = append(cmds, fmt.Sprintf("setinfo pmodel %s", pmodel))
				cmds = append(cmds, fmt.Sprintf("setinfo emodel %s", emodel))
			}
		case entities.Stufftext:
			cmds = append(cmds, c.handleStufftext(string(body.Text.Bytes))...)
		}
	}
	return cmds
}

// handleStufftext translates the console commands the server stuffs at a
// connecting client into the next client reply. Anything not matched here
// is left for a higher layer (e.g. an actual console) to execute.
func (c *Client) handleStufftext(text string) []string {
	text = strings.TrimSpace(text)

	switch {
	case strings.HasPrefix(text, "cmd pext_"):
		return extensionAdvertisements(c.Flags)

	case strings.HasPrefix(text, "cmd new"):
		return []string{"new"}

	case strings.HasPrefix(text, "cmd prespawn"):
		fields := strings.Fields(text)
		if len(fields) >= 5 {
			return []string{fmt.Sprintf("prespawn %s %s", fields[3], fields[4])}
		}

	case strings.HasPrefix(text, "cmd spawn"):
		fields := strings.Fields(text)
		if len(fields) >= 5 {
			return []string{fmt.Sprintf("spawn %s %s", fields[3], fields[4])}
		}

	case strings.Contains(text, "skins"):
		if c.Serverdata != nil {
			return []string{fmt.Sprintf("begin %d", c.Serverdata.ServerCount)}
		}
	}
	return nil
}
