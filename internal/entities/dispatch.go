package entities

import (
	"fmt"

	"github.com/ernie/qwgo/internal/message"
	"github.com/ernie/qwgo/internal/protoflags"
)

// ServerMessage pairs a decoded opcode body with the opcode it came from,
// so callers that only care about a subset of message types can type-switch
// on Body.
type ServerMessage struct {
	Op   protoflags.ServerOp
	Body any
}

// DecodeOne reads one opcode byte and dispatches to the matching decoder.
// Callers loop this until m.AtEnd() to drain every message packed into a
// connected datagram or MVD frame.
func DecodeOne(m *message.Message) (ServerMessage, error) {
	opByte, err := m.ReadU8(false)
	if err != nil {
		return ServerMessage{}, err
	}
	op := protoflags.ServerOp(opByte)

	var body any
	switch op {
	case protoflags.SvcNop:
		body = Nop{}
	case protoflags.SvcServerData:
		body, err = ReadServerdata(m)
	case protoflags.SvcSoundList:
		body, err = ReadSoundlist(m)
	case protoflags.SvcModelList:
		body, err = ReadModellist(m)
	case protoflags.SvcCdTrack:
		body, err = ReadCdtrack(m)
	case protoflags.SvcStuffText:
		body, err = ReadStufftext(m)
	case protoflags.SvcSpawnStatic:
		body, err = ReadSpawnstatic(m)
	case protoflags.SvcSpawnBaseline:
		body, err = ReadSpawnbaseline(m)
	case protoflags.SvcSpawnStaticSound:
		body, err = ReadSpawnstaticsound(m)
	case protoflags.SvcUpdateFrags:
		body, err = ReadUpdatefrags(m)
	case protoflags.SvcUpdatePing:
		body, err = ReadUpdateping(m)
	case protoflags.SvcUpdatePl:
		body, err = ReadUpdatepl(m)
	case protoflags.SvcUpdateEnterTime:
		body, err = ReadUpdateentertime(m)
	case protoflags.SvcUpdateUserInfo:
		body, err = ReadUpdateuserinfo(m)
	case protoflags.SvcPlayerInfo:
		body, err = ReadPlayerinfo(m)
	case protoflags.SvcUpdateStatLong:
		body, err = ReadUpdatestatlong(m)
	case protoflags.SvcUpdateStat:
		body, err = ReadUpdatestat(m)
	case protoflags.SvcLightStyle:
		body, err = ReadLightstyle(m)
	case protoflags.SvcServerInfo:
		body, err = ReadServerinfo(m)
	case protoflags.SvcCenterPrint:
		body, err = ReadCenterprint(m)
	case protoflags.SvcPacketEntities:
		body, err = ReadPacketentities(m)
	case protoflags.SvcDeltaPacketEntities:
		body, err = ReadDeltapacketentities(m)
	case protoflags.SvcTempEntity:
		body, err = ReadTempentity(m)
	case protoflags.SvcSetInfo:
		body, err = ReadSetinfo(m)
	case protoflags.SvcPrint:
		body, err = ReadPrint(m)
	case protoflags.SvcSound:
		body, err = ReadSound(m)
	case protoflags.SvcDamage:
		body, err = ReadDamage(m)
	case protoflags.SvcSetAngle:
		body, err = ReadSetangle(m)
	case protoflags.SvcSmallKick:
		body, err = ReadSmallkick(m)
	case protoflags.SvcBigKick:
		body, err = ReadBigkick(m)
	case protoflags.SvcMuzzleFlash:
		body, err = ReadMuzzleflash(m)
	case protoflags.SvcChokeCount:
		body, err = ReadChokecount(m)
	case protoflags.SvcIntermission:
		body, err = ReadIntermission(m)
	case protoflags.SvcDisconnect:
		body, err = ReadDisconnect(m)
	case protoflags.SvcSetView:
		body, err = ReadSetview(m)
	case protoflags.SvcSpawnStaticFte2:
		body, err = ReadSpawnstaticFte2(m)
	case protoflags.SvcFteSpawnBaseline2:
		body, err = ReadFteSpawnbaseline2(m)
	case protoflags.SvcBad:
		return ServerMessage{}, fmt.Errorf("decode: svc_bad: %w", message.ErrBadRead)
	default:
		return ServerMessage{}, &message.UnknownTypeError{Opcode: opByte}
	}
	if err != nil {
		return ServerMessage{}, fmt.Errorf("decode op %d: %w", opByte, err)
	}
	return ServerMessage{Op: op, Body: body}, nil
}
