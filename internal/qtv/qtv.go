// Package qtv is a QuakeTV-style relay: it republishes decoded MVD frames
// to websocket spectators and exposes a small JWT-guarded control surface
// for starting and stopping a broadcast.
package qtv

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"

	"github.com/ernie/qwgo/internal/mvd"
)

// FrameEnvelope is the JSON shape a spectator receives for each relayed
// MVD frame: just enough to drive a viewer without re-decoding the wire
// format client-side.
type FrameEnvelope struct {
	FrameIndex int      `json:"frame_index"`
	TimeMs     float64  `json:"time_ms"`
	To         uint32   `json:"to"`
	OpCodes    []string `json:"opcodes"`
}

// Relay fans out decoded frames to any number of connected websocket
// spectators and exposes control endpoints guarded by a JWT secret.
type Relay struct {
	upgrader  websocket.Upgrader
	jwtSecret []byte

	mu          sync.Mutex
	subscribers map[*websocket.Conn]chan []byte
	broadcastOn bool
}

// New returns a Relay whose admin endpoints require tokens signed with
// jwtSecret.
func New(jwtSecret string) *Relay {
	return &Relay{
		upgrader:    websocket.Upgrader{ReadBufferSize: 1024, WriteBufferSize: 4096},
		jwtSecret:   []byte(jwtSecret),
		subscribers: make(map[*websocket.Conn]chan []byte),
	}
}

// Publish relays one demultiplexed frame to every connected spectator while
// the broadcast is on; while it is off the frame is discarded.
// Slow subscribers are dropped rather than allowed to block the relay.
func (r *Relay) Publish(frameIndex int, timeSeconds float64, frame mvd.Frame) {
	env := FrameEnvelope{
		FrameIndex: frameIndex,
		TimeMs:     timeSeconds * 1000,
		To:         frame.Target.To,
	}
	for _, sm := range frame.Messages {
		env.OpCodes = append(env.OpCodes, fmt.Sprintf("%d", sm.Op))
	}
	data, err := json.Marshal(env)
	if err != nil {
		log.Printf("qtv: marshal frame %d: %v", frameIndex, err)
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.broadcastOn {
		return
	}
	for conn, ch := range r.subscribers {
		select {
		case ch <- data:
		default:
			log.Printf("qtv: dropping slow spectator")
			delete(r.subscribers, conn)
			close(ch)
		}
	}
}

// ServeSpectator upgrades an HTTP request to a websocket and streams
// published frames to it until the connection closes.
func (r *Relay) ServeSpectator(w http.ResponseWriter, req *http.Request) {
	conn, err := r.upgrader.Upgrade(w, req, nil)
	if err != nil {
		log.Printf("qtv: upgrade: %v", err)
		return
	}

	ch := make(chan []byte, 32)
	r.mu.Lock()
	r.subscribers[conn] = ch
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		delete(r.subscribers, conn)
		r.mu.Unlock()
		conn.Close()
	}()

	for data := range ch {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("qtv: write to spectator: %v", err)
			return
		}
	}
}

// SpectatorCount returns the number of currently connected spectators.
func (r *Relay) SpectatorCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subscribers)
}

type controlClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// IssueControlToken mints a short-lived admin token for out-of-band
// distribution to an operator.
func (r *Relay) IssueControlToken(subject string, ttl time.Duration) (string, error) {
	claims := controlClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
		Role: "admin",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(r.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("qtv: sign control token: %w", err)
	}
	return signed, nil
}

func (r *Relay) verifyControlToken(raw string) (*controlClaims, error) {
	var claims controlClaims
	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		return r.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("qtv: parse control token: %w", err)
	}
	if !token.Valid || claims.Role != "admin" {
		return nil, fmt.Errorf("qtv: control token is not a valid admin token")
	}
	return &claims, nil
}

// HandleControl serves the relay's admin surface: GET returns spectator
// count and broadcast state, POST toggles broadcast on/off. Both require
// a bearer token signed with the relay's secret.
func (r *Relay) HandleControl(w http.ResponseWriter, req *http.Request) {
	token := bearerToken(req)
	if token == "" {
		http.Error(w, "missing bearer token", http.StatusUnauthorized)
		return
	}
	if _, err := r.verifyControlToken(token); err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	switch req.Method {
	case http.MethodGet:
		r.mu.Lock()
		state := struct {
			Spectators  int  `json:"spectators"`
			BroadcastOn bool `json:"broadcast_on"`
		}{len(r.subscribers), r.broadcastOn}
		r.mu.Unlock()
		json.NewEncoder(w).Encode(state)
	case http.MethodPost:
		r.mu.Lock()
		r.broadcastOn = !r.broadcastOn
		on := r.broadcastOn
		r.mu.Unlock()
		log.Printf("qtv: broadcast toggled to %v", on)
		fmt.Fprintf(w, "{\"broadcast_on\":%v}", on)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func bearerToken(req *http.Request) string {
	h := req.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(h) > len(prefix) && h[:len(prefix)] == prefix {
		return h[len(prefix):]
	}
	return ""
}
