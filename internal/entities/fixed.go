package entities

import "github.com/ernie/qwgo/internal/message"

// Soundlist is a page of the sound precache: zero or more names followed by
// a continuation offset (0 means no more pages).
type Soundlist struct {
	Start  uint8
	Sounds StringVector
	Offset uint8
}

func ReadSoundlist(m *message.Message) (Soundlist, error) {
	var v Soundlist
	var err error
	if v.Start, err = m.ReadU8(false); err != nil {
		return v, err
	}
	sv, err := m.ReadStringVector(false)
	if err != nil {
		return v, err
	}
	v.Sounds = sv
	if v.Offset, err = m.ReadU8(false); err != nil {
		return v, err
	}
	return v, nil
}

func WriteSoundlist(m *message.Message, v Soundlist) {
	m.WriteU8(v.Start)
	m.WriteStringVector(stringsOf(v.Sounds))
	m.WriteU8(v.Offset)
}

// Modellist is the model precache equivalent of Soundlist.
type Modellist struct {
	Start  uint8
	Models StringVector
	Offset uint8
}

func ReadModellist(m *message.Message) (Modellist, error) {
	var v Modellist
	var err error
	if v.Start, err = m.ReadU8(false); err != nil {
		return v, err
	}
	sv, err := m.ReadStringVector(false)
	if err != nil {
		return v, err
	}
	v.Models = sv
	if v.Offset, err = m.ReadU8(false); err != nil {
		return v, err
	}
	return v, nil
}

func WriteModellist(m *message.Message, v Modellist) {
	m.WriteU8(v.Start)
	m.WriteStringVector(stringsOf(v.Models))
	m.WriteU8(v.Offset)
}

func stringsOf(sv StringVector) []string {
	out := make([]string, len(sv))
	for i, s := range sv {
		out[i] = string(s.Bytes)
	}
	return out
}

type Cdtrack struct{ Track uint8 }

func ReadCdtrack(m *message.Message) (Cdtrack, error) {
	v, err := m.ReadU8(false)
	return Cdtrack{Track: v}, err
}

func WriteCdtrack(m *message.Message, v Cdtrack) { m.WriteU8(v.Track) }

type Stufftext struct{ Text message.StringByte }

func ReadStufftext(m *message.Message) (Stufftext, error) {
	sb, err := m.ReadStringByte(false)
	return Stufftext{Text: sb}, err
}

func WriteStufftext(m *message.Message, v Stufftext) { m.WriteStringByte(v.Text.Bytes) }

type Spawnstatic struct {
	ModelIndex, ModelFrame, Colormap, Skinnum uint8
	Origin, Angle                             message.Vector3
}

func ReadSpawnstatic(m *message.Message) (Spawnstatic, error) {
	var v Spawnstatic
	var err error
	if v.ModelIndex, err = m.ReadU8(false); err != nil {
		return v, err
	}
	if v.ModelFrame, err = m.ReadU8(false); err != nil {
		return v, err
	}
	if v.Colormap, err = m.ReadU8(false); err != nil {
		return v, err
	}
	if v.Skinnum, err = m.ReadU8(false); err != nil {
		return v, err
	}
	if v.Origin, err = m.ReadCoordinateVector(false); err != nil {
		return v, err
	}
	if v.Angle, err = m.ReadAngleVector(false); err != nil {
		return v, err
	}
	return v, nil
}

func WriteSpawnstatic(m *message.Message, v Spawnstatic) {
	m.WriteU8(v.ModelIndex)
	m.WriteU8(v.ModelFrame)
	m.WriteU8(v.Colormap)
	m.WriteU8(v.Skinnum)
	m.WriteCoordinateVector(v.Origin)
	m.WriteAngleVector(v.Angle)
}

type Spawnbaseline struct {
	Index                                      uint16
	ModelIndex, ModelFrame, Colormap, Skinnum uint8
	Origin, Angle                              message.Vector3
}

func ReadSpawnbaseline(m *message.Message) (Spawnbaseline, error) {
	var v Spawnbaseline
	var err error
	if v.Index, err = m.ReadU16(false); err != nil {
		return v, err
	}
	if v.ModelIndex, err = m.ReadU8(false); err != nil {
		return v, err
	}
	if v.ModelFrame, err = m.ReadU8(false); err != nil {
		return v, err
	}
	if v.Colormap, err = m.ReadU8(false); err != nil {
		return v, err
	}
	if v.Skinnum, err = m.ReadU8(false); err != nil {
		return v, err
	}
	if v.Origin, err = m.ReadCoordinateVector(false); err != nil {
		return v, err
	}
	if v.Angle, err = m.ReadAngleVector(false); err != nil {
		return v, err
	}
	return v, nil
}

func WriteSpawnbaseline(m *message.Message, v Spawnbaseline) {
	m.WriteU16(v.Index)
	m.WriteU8(v.ModelIndex)
	m.WriteU8(v.ModelFrame)
	m.WriteU8(v.Colormap)
	m.WriteU8(v.Skinnum)
	m.WriteCoordinateVector(v.Origin)
	m.WriteAngleVector(v.Angle)
}

type Spawnstaticsound struct {
	Origin                           message.Vector3
	Index, Volume, Attenuation uint8
}

func ReadSpawnstaticsound(m *message.Message) (Spawnstaticsound, error) {
	var v Spawnstaticsound
	var err error
	if v.Origin, err = m.ReadCoordinateVector(false); err != nil {
		return v, err
	}
	if v.Index, err = m.ReadU8(false); err != nil {
		return v, err
	}
	if v.Volume, err = m.ReadU8(false); err != nil {
		return v, err
	}
	if v.Attenuation, err = m.ReadU8(false); err != nil {
		return v, err
	}
	return v, nil
}

func WriteSpawnstaticsound(m *message.Message, v Spawnstaticsound) {
	m.WriteCoordinateVector(v.Origin)
	m.WriteU8(v.Index)
	m.WriteU8(v.Volume)
	m.WriteU8(v.Attenuation)
}

type Updatefrags struct {
	PlayerNumber uint8
	Frags        int16
}

func ReadUpdatefrags(m *message.Message) (Updatefrags, error) {
	var v Updatefrags
	var err error
	if v.PlayerNumber, err = m.ReadU8(false); err != nil {
		return v, err
	}
	if v.Frags, err = m.ReadI16(false); err != nil {
		return v, err
	}
	return v, nil
}

func WriteUpdatefrags(m *message.Message, v Updatefrags) {
	m.WriteU8(v.PlayerNumber)
	m.WriteI16(v.Frags)
}

type Updateping struct {
	PlayerNumber uint8
	Ping         uint16
}

func ReadUpdateping(m *message.Message) (Updateping, error) {
	var v Updateping
	var err error
	if v.PlayerNumber, err = m.ReadU8(false); err != nil {
		return v, err
	}
	if v.Ping, err = m.ReadU16(false); err != nil {
		return v, err
	}
	return v, nil
}

func WriteUpdateping(m *message.Message, v Updateping) {
	m.WriteU8(v.PlayerNumber)
	m.WriteU16(v.Ping)
}

type Updatepl struct {
	PlayerNumber uint8
	Pl           uint8
}

func ReadUpdatepl(m *message.Message) (Updatepl, error) {
	var v Updatepl
	var err error
	if v.PlayerNumber, err = m.ReadU8(false); err != nil {
		return v, err
	}
	if v.Pl, err = m.ReadU8(false); err != nil {
		return v, err
	}
	return v, nil
}

func WriteUpdatepl(m *message.Message, v Updatepl) {
	m.WriteU8(v.PlayerNumber)
	m.WriteU8(v.Pl)
}

type Updateentertime struct {
	PlayerNumber uint8
	EnterTime    float32
}

func ReadUpdateentertime(m *message.Message) (Updateentertime, error) {
	var v Updateentertime
	var err error
	if v.PlayerNumber, err = m.ReadU8(false); err != nil {
		return v, err
	}
	if v.EnterTime, err = m.ReadF32(false); err != nil {
		return v, err
	}
	return v, nil
}

func WriteUpdateentertime(m *message.Message, v Updateentertime) {
	m.WriteU8(v.PlayerNumber)
	m.WriteF32(v.EnterTime)
}

type Updateuserinfo struct {
	PlayerNumber uint8
	UID          uint32
	Userinfo     message.StringByte
}

func ReadUpdateuserinfo(m *message.Message) (Updateuserinfo, error) {
	var v Updateuserinfo
	var err error
	if v.PlayerNumber, err = m.ReadU8(false); err != nil {
		return v, err
	}
	if v.UID, err = m.ReadU32(false); err != nil {
		return v, err
	}
	if v.Userinfo, err = m.ReadStringByte(false); err != nil {
		return v, err
	}
	return v, nil
}

func WriteUpdateuserinfo(m *message.Message, v Updateuserinfo) {
	m.WriteU8(v.PlayerNumber)
	m.WriteU32(v.UID)
	m.WriteStringByte(v.Userinfo.Bytes)
}

type Updatestatlong struct {
	Stat  uint8
	Value int32
}

func ReadUpdatestatlong(m *message.Message) (Updatestatlong, error) {
	var v Updatestatlong
	var err error
	if v.Stat, err = m.ReadU8(false); err != nil {
		return v, err
	}
	if v.Value, err = m.ReadI32(false); err != nil {
		return v, err
	}
	return v, nil
}

func WriteUpdatestatlong(m *message.Message, v Updatestatlong) {
	m.WriteU8(v.Stat)
	m.WriteI32(v.Value)
}

type Updatestat struct {
	Stat  uint8
	Value int8
}

func ReadUpdatestat(m *message.Message) (Updatestat, error) {
	var v Updatestat
	var err error
	if v.Stat, err = m.ReadU8(false); err != nil {
		return v, err
	}
	if v.Value, err = m.ReadI8(false); err != nil {
		return v, err
	}
	return v, nil
}

func WriteUpdatestat(m *message.Message, v Updatestat) {
	m.WriteU8(v.Stat)
	m.WriteI8(v.Value)
}

type Lightstyle struct {
	Index uint8
	Style message.StringByte
}

func ReadLightstyle(m *message.Message) (Lightstyle, error) {
	var v Lightstyle
	var err error
	if v.Index, err = m.ReadU8(false); err != nil {
		return v, err
	}
	if v.Style, err = m.ReadStringByte(false); err != nil {
		return v, err
	}
	return v, nil
}

func WriteLightstyle(m *message.Message, v Lightstyle) {
	m.WriteU8(v.Index)
	m.WriteStringByte(v.Style.Bytes)
}

type Serverinfo struct {
	Key, Value message.StringByte
}

func ReadServerinfo(m *message.Message) (Serverinfo, error) {
	var v Serverinfo
	var err error
	if v.Key, err = m.ReadStringByte(false); err != nil {
		return v, err
	}
	if v.Value, err = m.ReadStringByte(false); err != nil {
		return v, err
	}
	return v, nil
}

func WriteServerinfo(m *message.Message, v Serverinfo) {
	m.WriteStringByte(v.Key.Bytes)
	m.WriteStringByte(v.Value.Bytes)
}

type Centerprint struct{ Message message.StringByte }

func ReadCenterprint(m *message.Message) (Centerprint, error) {
	sb, err := m.ReadStringByte(false)
	return Centerprint{Message: sb}, err
}

func WriteCenterprint(m *message.Message, v Centerprint) { m.WriteStringByte(v.Message.Bytes) }

type Setinfo struct {
	PlayerNumber uint8
	Key, Value   message.StringByte
}

func ReadSetinfo(m *message.Message) (Setinfo, error) {
	var v Setinfo
	var err error
	if v.PlayerNumber, err = m.ReadU8(false); err != nil {
		return v, err
	}
	if v.Key, err = m.ReadStringByte(false); err != nil {
		return v, err
	}
	if v.Value, err = m.ReadStringByte(false); err != nil {
		return v, err
	}
	return v, nil
}

func WriteSetinfo(m *message.Message, v Setinfo) {
	m.WriteU8(v.PlayerNumber)
	m.WriteStringByte(v.Key.Bytes)
	m.WriteStringByte(v.Value.Bytes)
}

type Print struct {
	From    uint8
	Message message.StringByte
}

func ReadPrint(m *message.Message) (Print, error) {
	var v Print
	var err error
	if v.From, err = m.ReadU8(false); err != nil {
		return v, err
	}
	if v.Message, err = m.ReadStringByte(false); err != nil {
		return v, err
	}
	return v, nil
}

func WritePrint(m *message.Message, v Print) {
	m.WriteU8(v.From)
	m.WriteStringByte(v.Message.Bytes)
}

type Damage struct {
	Armor, Blood uint8
	Origin       message.Vector3
}

func ReadDamage(m *message.Message) (Damage, error) {
	var v Damage
	var err error
	if v.Armor, err = m.ReadU8(false); err != nil {
		return v, err
	}
	if v.Blood, err = m.ReadU8(false); err != nil {
		return v, err
	}
	if v.Origin, err = m.ReadCoordinateVector(false); err != nil {
		return v, err
	}
	return v, nil
}

func WriteDamage(m *message.Message, v Damage) {
	m.WriteU8(v.Armor)
	m.WriteU8(v.Blood)
	m.WriteCoordinateVector(v.Origin)
}

type Setangle struct {
	Index uint8
	Angle message.Vector3
}

func ReadSetangle(m *message.Message) (Setangle, error) {
	var v Setangle
	var err error
	if v.Index, err = m.ReadU8(false); err != nil {
		return v, err
	}
	if v.Angle, err = m.ReadAngleVector(false); err != nil {
		return v, err
	}
	return v, nil
}

func WriteSetangle(m *message.Message, v Setangle) {
	m.WriteU8(v.Index)
	m.WriteAngleVector(v.Angle)
}

type Setview struct{ SetView uint16 }

func ReadSetview(m *message.Message) (Setview, error) {
	v, err := m.ReadU16(false)
	return Setview{SetView: v}, err
}

func WriteSetview(m *message.Message, v Setview) { m.WriteU16(v.SetView) }

type Smallkick struct{}

func ReadSmallkick(*message.Message) (Smallkick, error) { return Smallkick{}, nil }
func WriteSmallkick(*message.Message, Smallkick)        {}

type Bigkick struct{}

func ReadBigkick(*message.Message) (Bigkick, error) { return Bigkick{}, nil }
func WriteBigkick(*message.Message, Bigkick)        {}

type Muzzleflash struct{ EntityIndex uint16 }

func ReadMuzzleflash(m *message.Message) (Muzzleflash, error) {
	v, err := m.ReadU16(false)
	return Muzzleflash{EntityIndex: v}, err
}

func WriteMuzzleflash(m *message.Message, v Muzzleflash) { m.WriteU16(v.EntityIndex) }

type Chokecount struct{ ChokeCount uint8 }

func ReadChokecount(m *message.Message) (Chokecount, error) {
	v, err := m.ReadU8(false)
	return Chokecount{ChokeCount: v}, err
}

func WriteChokecount(m *message.Message, v Chokecount) { m.WriteU8(v.ChokeCount) }

type Intermission struct {
	Origin, Angle message.Vector3
}

func ReadIntermission(m *message.Message) (Intermission, error) {
	var v Intermission
	var err error
	if v.Origin, err = m.ReadCoordinateVector(false); err != nil {
		return v, err
	}
	if v.Angle, err = m.ReadAngleVector(false); err != nil {
		return v, err
	}
	return v, nil
}

func WriteIntermission(m *message.Message, v Intermission) {
	m.WriteCoordinateVector(v.Origin)
	m.WriteAngleVector(v.Angle)
}

type Disconnect struct{}

func ReadDisconnect(*message.Message) (Disconnect, error) { return Disconnect{}, nil }
func WriteDisconnect(*message.Message, Disconnect)        {}

// Nop is svc_nop: zero-length keep-alive opcode.
type Nop struct{}
