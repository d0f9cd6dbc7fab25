// Package world folds an ordered sequence of decoded server messages into
// a players/entities/baselines store: the final consumer in the
// bytes -> codec -> opcode records -> (demux | connection) -> world-state
// pipeline.
package world

import (
	"fmt"
	"sort"

	"golang.org/x/exp/maps"

	"github.com/ernie/qwgo/internal/entities"
	"github.com/ernie/qwgo/internal/message"
	"github.com/ernie/qwgo/internal/mvd"
	"github.com/ernie/qwgo/internal/userinfo"
)

// Player is one connected or MVD-tracked client's resolved state.
type Player struct {
	Frags     int16
	Ping      uint16
	Pl        uint8
	EnterTime float32
	UID       uint32
	Userinfo  *userinfo.Bag
	Name      string
	Team      string
	Angle     message.Vector3
	Stats     [32]int32
}

// Entity is a world object tracked by baseline, static spawn, or the
// packet-entity delta stream.
type Entity struct {
	Index    uint16
	Model    uint16
	Frame    uint8
	Colormap uint8
	Skinnum  uint8
	Effects  uint8
	Origin   message.Vector3
	Angle    message.Vector3
}

func entityFromBaseline(v entities.Spawnbaseline) Entity {
	return Entity{
		Index:    v.Index,
		Model:    uint16(v.ModelIndex),
		Frame:    v.ModelFrame,
		Colormap: v.Colormap,
		Skinnum:  v.Skinnum,
		Origin:   v.Origin,
		Angle:    v.Angle,
	}
}

func entityFromPacketentity(p entities.Packetentity) Entity {
	e := Entity{Index: p.EntityIndex}
	if p.Model != nil {
		e.Model = *p.Model
	}
	if p.Frame != nil {
		e.Frame = *p.Frame
	}
	if p.Colormap != nil {
		e.Colormap = *p.Colormap
	}
	if p.Skin != nil {
		e.Skinnum = *p.Skin
	}
	if p.Effects != nil {
		e.Effects = *p.Effects
	}
	if p.Origin != nil {
		p.Origin.ApplyTo(&e.Origin)
	}
	if p.Angle != nil {
		p.Angle.ApplyTo(&e.Angle)
	}
	return e
}

// applyDelta merges a Deltapacketentities record into e. Each field writes
// its own target field; colormap/skin/effects do not alias frame.
func (e *Entity) applyDelta(p entities.Packetentity) {
	if p.Model != nil {
		e.Model = *p.Model
	}
	if p.Frame != nil {
		e.Frame = *p.Frame
	}
	if p.Colormap != nil {
		e.Colormap = *p.Colormap
	}
	if p.Skin != nil {
		e.Skinnum = *p.Skin
	}
	if p.Effects != nil {
		e.Effects = *p.Effects
	}
	if p.Origin != nil {
		p.Origin.ApplyTo(&e.Origin)
	}
	if p.Angle != nil {
		p.Angle.ApplyTo(&e.Angle)
	}
}

// State is a pure reducer over ordered server messages. It holds no
// reference to the codec or transport that produced those messages.
type State struct {
	Serverdata       entities.Serverdata
	Players          map[uint16]*Player
	Sounds           []message.StringByte
	Models           []message.StringByte
	BaselineEntities map[uint16]Entity
	StaticEntities   []entities.Spawnstatic
	Entities         map[uint16]Entity
	TempEntities     map[uint16]entities.Tempentity
	StaticSounds     []entities.Spawnstaticsound
}

// New returns an empty State ready to receive server messages.
func New() *State {
	return &State{
		Players:          make(map[uint16]*Player),
		BaselineEntities: make(map[uint16]Entity),
		Entities:         make(map[uint16]Entity),
		TempEntities:     make(map[uint16]entities.Tempentity),
	}
}

func (s *State) player(index uint16) *Player {
	p, ok := s.Players[index]
	if !ok {
		p = &Player{Userinfo: userinfo.New()}
		s.Players[index] = p
	}
	return p
}

func (p *Player) refreshUserinfo() {
	if name, ok := p.Userinfo.Get("name"); ok {
		p.Name = name
	}
	if team, ok := p.Userinfo.Get("team"); ok {
		p.Team = team
	}
}

// updatePlayer routes one player-scoped message body to the player at
// index, auto-vivifying the player record. Any body kind the router would
// not route here is a caller bug, not a wire condition.
func (s *State) updatePlayer(index uint16, body any) {
	p := s.player(index)
	switch v := body.(type) {
	case entities.Updatefrags:
		p.Frags = v.Frags
	case entities.Updateping:
		p.Ping = v.Ping
	case entities.Updatepl:
		p.Pl = v.Pl
	case entities.Updateentertime:
		p.EnterTime = v.EnterTime
	case entities.Updateuserinfo:
		p.UID = v.UID
		p.Userinfo.Update(userinfo.Parse(string(v.Userinfo.Bytes)))
		p.refreshUserinfo()
	case entities.Updatestatlong:
		p.Stats[v.Stat] = v.Value
	case entities.Updatestat:
		p.Stats[v.Stat] = int32(v.Value)
	case entities.Setinfo:
		p.Userinfo.Set(string(v.Key.Bytes), string(v.Value.Bytes))
		p.refreshUserinfo()
	case entities.Setangle:
		p.Angle = v.Angle
	default:
		panic(fmt.Sprintf("world: %T is not applicable to a player", body))
	}
}

func (s *State) packetentities(v entities.Packetentities) {
	for _, pe := range v.Entities {
		s.Entities[pe.EntityIndex] = entityFromPacketentity(pe)
	}
}

func (s *State) deltapacketentities(v entities.Deltapacketentities) {
	for _, pe := range v.Entities {
		if pe.Remove {
			delete(s.Entities, pe.EntityIndex)
			continue
		}
		e, ok := s.Entities[pe.EntityIndex]
		if !ok {
			continue
		}
		e.applyDelta(pe)
		s.Entities[pe.EntityIndex] = e
	}
}

// applyCommon folds the message kinds whose routing does not depend on
// whether the source was a live connection or an MVD stream. It reports
// whether it handled sm, leaving player-scoped and ignored kinds to the
// caller.
func (s *State) applyCommon(sm entities.ServerMessage) bool {
	switch v := sm.Body.(type) {
	case entities.Serverdata:
		s.Serverdata = v
	case entities.Soundlist:
		s.Sounds = append(s.Sounds, v.Sounds...)
	case entities.Modellist:
		s.Models = append(s.Models, v.Models...)
	case entities.Spawnbaseline:
		s.BaselineEntities[v.Index] = entityFromBaseline(v)
	case entities.Spawnstatic:
		s.StaticEntities = append(s.StaticEntities, v)
	case entities.Spawnstaticsound:
		s.StaticSounds = append(s.StaticSounds, v)
	case entities.Packetentities:
		s.packetentities(v)
	case entities.Deltapacketentities:
		s.deltapacketentities(v)
	case entities.Tempentity:
		s.TempEntities[v.Entity] = v
	case entities.FteSpawnbaseline2:
		s.BaselineEntities[v.Entity.EntityIndex] = entityFromPacketentity(v.Entity)
	case entities.Cdtrack, entities.Stufftext, entities.Lightstyle,
		entities.Serverinfo, entities.Centerprint, entities.Print,
		entities.Sound, entities.Damage, entities.Smallkick,
		entities.Bigkick, entities.Muzzleflash, entities.Chokecount,
		entities.Intermission, entities.Disconnect, entities.Nop,
		entities.Setview, entities.SpawnstaticFte2:
		// folded without further action
	default:
		return false
	}
	return true
}

// ApplyMessages folds one connected session's server messages, routing
// player-scoped updates by each message's own player-number field.
func (s *State) ApplyMessages(messages []entities.ServerMessage) {
	for _, sm := range messages {
		if s.applyCommon(sm) {
			continue
		}
		switch v := sm.Body.(type) {
		case entities.Updatefrags:
			s.updatePlayer(uint16(v.PlayerNumber), v)
		case entities.Updateping:
			s.updatePlayer(uint16(v.PlayerNumber), v)
		case entities.Updatepl:
			s.updatePlayer(uint16(v.PlayerNumber), v)
		case entities.Updateentertime:
			s.updatePlayer(uint16(v.PlayerNumber), v)
		case entities.Updateuserinfo:
			s.updatePlayer(uint16(v.PlayerNumber), v)
		case entities.Setinfo:
			s.updatePlayer(uint16(v.PlayerNumber), v)
		case entities.Setangle:
			s.updatePlayer(uint16(v.Index), v)
		case entities.Updatestatlong, entities.Updatestat:
			// A live connection has no MVD routing target to fall back to;
			// the source never resolves these without one, so they are
			// dropped rather than misrouted to player 0.
		case entities.PlayerinfoConnection, entities.PlayerinfoMvd:
			// not applied: both variants carry a PlayerNumber, but Player
			// has no origin/model/frame fields, so the record is dropped.
		default:
			panic(fmt.Sprintf("world: %T has no connected-session routing", sm.Body))
		}
	}
}

// ApplyMessagesMvd folds one MVD frame's server messages, routing
// Updatestat/Updatestatlong by the frame's last routing target instead of
// a player field (those opcodes carry no player number of their own in the
// demo stream).
func (s *State) ApplyMessagesMvd(messages []entities.ServerMessage, last mvd.Target) {
	for _, sm := range messages {
		if s.applyCommon(sm) {
			continue
		}
		switch v := sm.Body.(type) {
		case entities.Updatefrags:
			s.updatePlayer(uint16(v.PlayerNumber), v)
		case entities.Updateping:
			s.updatePlayer(uint16(v.PlayerNumber), v)
		case entities.Updatepl:
			s.updatePlayer(uint16(v.PlayerNumber), v)
		case entities.Updateentertime:
			s.updatePlayer(uint16(v.PlayerNumber), v)
		case entities.Updateuserinfo:
			s.updatePlayer(uint16(v.PlayerNumber), v)
		case entities.Setinfo:
			s.updatePlayer(uint16(v.PlayerNumber), v)
		case entities.Setangle:
			s.updatePlayer(uint16(v.Index), v)
		case entities.Updatestatlong:
			s.updatePlayer(uint16(last.To), v)
		case entities.Updatestat:
			s.updatePlayer(uint16(last.To), v)
		case entities.PlayerinfoConnection, entities.PlayerinfoMvd:
			// not applied, see ApplyMessages.
		default:
			panic(fmt.Sprintf("world: %T (to=%d) has no mvd routing", sm.Body, last.To))
		}
	}
}

// Snapshot is a deterministic, key-sorted rendering of the live entity and
// player tables, suitable for serialization (cmd/qwreplay export).
type Snapshot struct {
	PlayerIndexes []uint16
	EntityIndexes []uint16
	Players       map[uint16]*Player
	Entities      map[uint16]Entity
}

// Snapshot renders s's maps into deterministically ordered index lists so
// two runs over the same message log produce byte-identical output.
func (s *State) Snapshot() Snapshot {
	playerIdx := maps.Keys(s.Players)
	sort.Slice(playerIdx, func(i, j int) bool { return playerIdx[i] < playerIdx[j] })
	entityIdx := maps.Keys(s.Entities)
	sort.Slice(entityIdx, func(i, j int) bool { return entityIdx[i] < entityIdx[j] })
	return Snapshot{
		PlayerIndexes: playerIdx,
		EntityIndexes: entityIdx,
		Players:       s.Players,
		Entities:      s.Entities,
	}
}
